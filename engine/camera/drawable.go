package camera

import "github.com/XingYaoA/manim/engine/renderer/shader"

// Drawable is anything the camera can capture. A drawable exposes the shader
// units describing its geometry; the camera decides how their GPU resources
// are created, cached, and issued, never what they contain.
type Drawable interface {
	// ShaderUnits retrieves the units to render, in draw order.
	//
	// Returns:
	//   - []shader.Unit: the drawable's shader units
	ShaderUnits() []shader.Unit
}
