package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// unitImpl is the implementation of the Unit interface.
type unitImpl struct {
	name       string
	source     string
	sourcePath string
	vertexData []byte
	indices    []uint32
	uniforms   map[string][]float32
	textures   map[string]string
	topology   wgpu.PrimitiveTopology
	depthTest  bool
}

// Unit defines the interface for a renderable shader unit: one batch of vertex
// data plus everything needed to draw it. Drawables produce a list of units
// each frame; the camera turns each unit into GPU resources and a draw call.
//
// Two units with the same Signature share one compiled program regardless of
// their uniform or texture values.
type Unit interface {
	// Name retrieves the unit's identifier, used for resource labels.
	//
	// Returns:
	//   - string: the unit name
	Name() string

	// Source retrieves the WGSL source code, which may contain #INSERT directives.
	// Empty when the unit references a source file via SourcePath instead.
	//
	// Returns:
	//   - string: the raw WGSL source
	Source() string

	// SourcePath retrieves the file path of the WGSL source, or an empty string
	// when the source is provided inline.
	//
	// Returns:
	//   - string: the source file path
	SourcePath() string

	// VertexData retrieves the raw interleaved vertex bytes matching the source's
	// vertex input struct layout.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// Indices retrieves the optional index list. A nil or empty slice means
	// non-indexed drawing.
	//
	// Returns:
	//   - []uint32: the indices, or nil
	Indices() []uint32

	// Uniforms retrieves the per-unit uniform values keyed by WGSL field name.
	//
	// Returns:
	//   - map[string][]float32: the uniform values
	Uniforms() map[string][]float32

	// Textures retrieves the texture file paths keyed by WGSL variable name.
	//
	// Returns:
	//   - map[string]string: WGSL var name to image file path
	Textures() map[string]string

	// Topology retrieves the primitive topology used to draw this unit.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the topology
	Topology() wgpu.PrimitiveTopology

	// DepthTest reports whether depth testing is enabled for this unit.
	//
	// Returns:
	//   - bool: true when depth testing is on
	DepthTest() bool

	// SetUniform sets or replaces a per-unit uniform value.
	//
	// Parameters:
	//   - name: the WGSL field name
	//   - values: the float values to bind
	SetUniform(name string, values []float32)

	// Signature computes the program cache key for this unit. The key covers
	// the source text, topology, and depth flag; uniform and texture values do
	// not participate, so units differing only in those share a program.
	//
	// Returns:
	//   - ProgramKey: the cache key
	Signature() ProgramKey
}

var _ Unit = &unitImpl{}

// NewUnit creates a new shader Unit configured with the provided options.
// Exactly one of WithSource or WithSourcePath must be supplied alongside
// vertex data; a unit with neither panics at construction.
//
// Parameters:
//   - name: the unit identifier, used for resource labels
//   - options: variadic list of UnitBuilderOption functions to configure the unit
//
// Returns:
//   - Unit: a new Unit instance
func NewUnit(name string, options ...UnitBuilderOption) Unit {
	u := &unitImpl{
		name:     name,
		uniforms: make(map[string][]float32),
		textures: make(map[string]string),
		topology: wgpu.PrimitiveTopologyTriangleList,
	}
	for _, opt := range options {
		opt(u)
	}
	if u.source == "" && u.sourcePath == "" {
		panic(fmt.Sprintf("shader: unit %s must have a source provided via WithSource or WithSourcePath", name))
	}
	return u
}

func (u *unitImpl) Name() string {
	return u.name
}

func (u *unitImpl) Source() string {
	return u.source
}

func (u *unitImpl) SourcePath() string {
	return u.sourcePath
}

func (u *unitImpl) VertexData() []byte {
	return u.vertexData
}

func (u *unitImpl) Indices() []uint32 {
	return u.indices
}

func (u *unitImpl) Uniforms() map[string][]float32 {
	return u.uniforms
}

func (u *unitImpl) Textures() map[string]string {
	return u.textures
}

func (u *unitImpl) Topology() wgpu.PrimitiveTopology {
	return u.topology
}

func (u *unitImpl) DepthTest() bool {
	return u.depthTest
}

func (u *unitImpl) SetUniform(name string, values []float32) {
	u.uniforms[name] = values
}

func (u *unitImpl) Signature() ProgramKey {
	src := u.source
	if src == "" {
		src = u.sourcePath
	}
	return ComputeProgramKey(src, u.topology, u.depthTest)
}
