package camera

import (
	"github.com/XingYaoA/manim/engine/renderer"
)

type CameraBuilderOption func(*cameraImpl)

// WithRenderer injects an existing GPU context instead of letting the camera
// create its own offscreen one. The camera will not release an injected
// renderer.
//
// Parameters:
//   - rend: the renderer to draw with
//
// Returns:
//   - CameraBuilderOption: a function that sets the renderer
func WithRenderer(rend renderer.Renderer) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.rend = rend
	}
}

// WithFrame injects a pre-configured camera frame.
//
// Parameters:
//   - frame: the frame holding pose and extent
//
// Returns:
//   - CameraBuilderOption: a function that sets the frame
func WithFrame(frame CameraFrame) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.frame = frame
	}
}

// WithLight injects a pre-configured light source.
//
// Parameters:
//   - light: the light source
//
// Returns:
//   - CameraBuilderOption: a function that sets the light
func WithLight(light LightSource) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.light = light
	}
}

// WithPixelShape sets the output resolution.
//
// Parameters:
//   - width: the output width in pixels
//   - height: the output height in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the pixel shape
func WithPixelShape(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pixelWidth = width
		c.pixelHeight = height
	}
}

// WithBackgroundColor sets the clear color.
//
// Parameters:
//   - color: the RGBA background with components in [0, 1]
//
// Returns:
//   - CameraBuilderOption: a function that sets the background
func WithBackgroundColor(color [4]float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.background = color
	}
}

// WithSamples sets the multisample count for the draw framebuffer. Values
// below 1 fall back to the renderer's configured sample count.
//
// Parameters:
//   - samples: the multisample count, 1 disables multisampling
//
// Returns:
//   - CameraBuilderOption: a function that sets the sample count
func WithSamples(samples int) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.samples = samples
	}
}

// WithAntiAliasWidth sets the edge feather width in pixels.
//
// Parameters:
//   - width: the anti-alias width in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the anti-alias width
func WithAntiAliasWidth(width float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.antiAliasWidth = width
	}
}

// WithMaxTextureDimension caps decoded texture dimensions; larger images are
// downscaled preserving aspect ratio.
//
// Parameters:
//   - maxDim: the maximum texture width or height in pixels, 0 for unlimited
//
// Returns:
//   - CameraBuilderOption: a function that sets the texture size cap
func WithMaxTextureDimension(maxDim int) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.maxTextureDim = maxDim
	}
}
