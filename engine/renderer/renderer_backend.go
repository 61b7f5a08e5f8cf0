package renderer

import (
	"github.com/XingYaoA/manim/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how preview frames are presented to a display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// Framebuffer is an offscreen render target: a color texture paired with a
// depth texture at a fixed pixel size and sample count.
type Framebuffer interface {
	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int

	// Samples returns the multisample count (1 means no multisampling).
	Samples() int

	// Release frees the framebuffer's GPU textures. Releasing twice is a no-op.
	Release()
}

// Buffer is an immutable GPU buffer created from raw bytes.
type Buffer interface {
	// Size returns the buffer length in bytes.
	Size() int

	// Release frees the GPU buffer. Releasing twice is a no-op.
	Release()
}

// VertexArray ties a vertex buffer, an optional index buffer, and a program's
// vertex layout into a drawable unit. It owns no GPU resources of its own.
type VertexArray interface {
	// VertexCount returns the number of vertices in the vertex buffer.
	VertexCount() int

	// IndexCount returns the number of indices, or 0 for non-indexed drawing.
	IndexCount() int

	// Release detaches the vertex array. The underlying buffers are released
	// separately by their owner.
	Release()
}

// RendererBackend is the low-level GPU interface behind the Renderer. The wgpu
// implementation is the only production backend; tests substitute fakes.
type RendererBackend interface {
	// ConfigureSurface (re)configures the presentation surface size. A no-op
	// for offscreen backends created without a surface.
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode.
	SetPresentMode(mode PresentMode)

	// CreateFramebuffer allocates a color+depth render target.
	CreateFramebuffer(width, height, samples int, label string) (Framebuffer, error)

	// Clear fills the framebuffer's color attachment with the given RGBA color
	// and resets its depth attachment.
	Clear(fb Framebuffer, color [4]float32) error

	// Blit copies the source framebuffer's color into the destination. A
	// multisampled source is resolved; a single-sample source is copied.
	Blit(src, dst Framebuffer) error

	// CreateBuffer uploads raw bytes into a new GPU buffer with the given usage.
	CreateBuffer(data []byte, usage wgpu.BufferUsage, label string) (Buffer, error)

	// CompileProgram builds a render pipeline plus uniform/texture binding
	// machinery from a parsed shader descriptor.
	CompileProgram(desc shader.ProgramDescriptor) (shader.Program, error)

	// CreateVertexArray ties buffers to a program's vertex layout.
	CreateVertexArray(vbo Buffer, program shader.Program, ibo Buffer) (VertexArray, error)

	// Draw encodes and submits one draw of the vertex array with the program
	// into the framebuffer. Rendering is synchronous from the caller's view.
	Draw(fb Framebuffer, program shader.Program, va VertexArray) error

	// ReadPixels copies the framebuffer's color attachment back to the CPU as
	// tightly packed RGBA bytes, bottom row first.
	ReadPixels(fb Framebuffer) ([]byte, error)

	// Present copies the framebuffer's color into the surface and presents it.
	// Returns an error when the backend has no surface.
	Present(fb Framebuffer) error

	// Release frees the backend's GPU context.
	Release()
}
