package camera

import (
	"github.com/XingYaoA/manim/engine/renderer"
	"github.com/XingYaoA/manim/engine/renderer/shader"
)

// StaticHandle identifies a drawable's persistent render groups in the
// camera's static index. Handles are issued by the camera at registration
// time and are never reused, so a stale handle can not alias a later
// registration.
type StaticHandle uint64

// RenderGroup bundles the GPU resources needed to issue one draw call: a
// vertex buffer, an optional index buffer, a vertex array tying them to a
// compiled program, and the originating shader unit whose uniforms and
// textures are bound at draw time.
//
// A group moves strictly forward through its lifecycle: built, drawn
// (single-use groups are released immediately after their draw), released.
// A released group is never drawn again.
type RenderGroup struct {
	vbo     renderer.Buffer
	ibo     renderer.Buffer
	vao     renderer.VertexArray
	program shader.Program
	unit    shader.Unit

	singleUse bool
	released  bool
}

// Unit retrieves the shader unit this group was built from.
//
// Returns:
//   - shader.Unit: the originating unit
func (g *RenderGroup) Unit() shader.Unit {
	return g.unit
}

// Program retrieves the compiled program the group draws with. The program
// is owned by the camera's program cache, not by the group.
//
// Returns:
//   - shader.Program: the shared compiled program
func (g *RenderGroup) Program() shader.Program {
	return g.program
}

// SingleUse reports whether the group is released immediately after its
// first draw.
//
// Returns:
//   - bool: true for ephemeral groups
func (g *RenderGroup) SingleUse() bool {
	return g.singleUse
}

// Released reports whether the group's buffers have been freed.
//
// Returns:
//   - bool: true once released
func (g *RenderGroup) Released() bool {
	return g.released
}

// Release frees the group's buffers. The shared program stays alive in the
// program cache. Releasing an already-released group is a no-op.
func (g *RenderGroup) Release() {
	if g.released {
		return
	}
	g.released = true
	if g.vao != nil {
		g.vao.Release()
	}
	if g.ibo != nil {
		g.ibo.Release()
	}
	if g.vbo != nil {
		g.vbo.Release()
	}
}
