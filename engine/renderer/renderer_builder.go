package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*rendererImpl)

// WithSurface attaches a presentation surface to the renderer, enabling
// Present. The descriptor usually comes from a window implementation such as
// the glfw one in engine/window. Without this option the renderer runs fully
// offscreen.
//
// Parameters:
//   - descriptor: the platform surface descriptor
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the surface option to a renderer
func WithSurface(descriptor *wgpu.SurfaceDescriptor, width, height int) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.surface = descriptor
		r.surfaceWidth = width
		r.surfaceHeight = height
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.pendingPresentMode = &mode
	}
}

// WithSampleCount sets the default multisample count cameras inherit from the
// renderer. A count of 1 disables multisampling. Higher values (8, 16) are
// adapter-dependent and may not be supported by all hardware.
//
// Parameters:
//   - count: the sample count (1, 4, 8, or 16)
//
// Returns:
//   - RendererBuilderOption: a function that applies the sample count option to a renderer
func WithSampleCount(count int) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe). Useful for headless rendering on machines without a GPU.
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.forceSoftware = force
	}
}
