package shader

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/XingYaoA/manim/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// ProgramKey identifies a compiled program in the cache. Keys are derived from
// the shader source text plus the render state baked into the pipeline
// (topology and depth flag), never from uniform or texture values.
type ProgramKey uint64

// ComputeProgramKey hashes a shader source and its baked render state into a
// ProgramKey using FNV-64a.
//
// Parameters:
//   - source: the WGSL source text (or source path for file-backed units)
//   - topology: the primitive topology baked into the pipeline
//   - depthTest: whether depth testing is baked into the pipeline
//
// Returns:
//   - ProgramKey: the cache key
func ComputeProgramKey(source string, topology wgpu.PrimitiveTopology, depthTest bool) ProgramKey {
	h := fnv.New64a()
	h.Write([]byte(source))
	var state [5]byte
	binary.LittleEndian.PutUint32(state[:4], uint32(topology))
	if depthTest {
		state[4] = 1
	}
	h.Write(state[:])
	return ProgramKey(h.Sum64())
}

// ProgramDescriptor carries everything the renderer needs to compile a program:
// the parsed shader plus the render state baked into the pipeline.
type ProgramDescriptor struct {
	// Key is the cache key the compiled program is stored under. The cache
	// computes it from the originating unit's signature.
	Key ProgramKey

	// Shader is the parsed WGSL module.
	Shader Shader

	// Topology is the primitive topology baked into the pipeline.
	Topology wgpu.PrimitiveTopology

	// DepthTest enables depth testing in the pipeline's depth-stencil state.
	DepthTest bool
}

// Program defines the interface for a compiled shader program: a render
// pipeline plus the uniform and texture binding machinery parsed from its
// source. Programs are owned by the ProgramCache and shared between units
// with equal signatures.
type Program interface {
	// Key retrieves the program's cache key.
	//
	// Returns:
	//   - ProgramKey: the cache key
	Key() ProgramKey

	// Shader retrieves the parsed WGSL module this program was compiled from.
	//
	// Returns:
	//   - Shader: the parsed shader
	Shader() Shader

	// SetUniform writes float values into the program's uniform buffer at the
	// offset of the named field. Names that do not appear in any var<uniform>
	// struct are silently ignored.
	//
	// Parameters:
	//   - name: the WGSL field name
	//   - values: the float values to write
	//
	// Returns:
	//   - bool: true if the name resolved to a uniform field
	SetUniform(name string, values []float32) bool

	// SetTexture binds decoded image data to the named texture variable,
	// creating or replacing the GPU texture behind it. Names that do not
	// appear in the source are silently ignored.
	//
	// Parameters:
	//   - varName: the texture variable name in the WGSL source
	//   - data: the decoded RGBA pixel data
	//
	// Returns:
	//   - bool: true if the name resolved to a texture binding
	//   - error: an error if the GPU texture could not be created
	SetTexture(varName string, data common.TextureStagingData) (bool, error)

	// Release frees the program's GPU resources. Releasing twice is a no-op.
	Release()
}
