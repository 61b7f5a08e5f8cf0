package shader

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// shader is the implementation of the Shader interface.
// It holds the parsed layout metadata extracted from a single WGSL source
// containing both a @vertex and a @fragment entry point.
type shader struct {
	key                        string
	source                     string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	uniformFields              map[string]map[string]FieldLayout
	vertexLayout               wgpu.VertexBufferLayout
	hasVertexLayout            bool
	vertexEntryPoint           string
	fragmentEntryPoint         string
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a parsed WGSL shader source. It exposes the
// shader's key, source code, entry points, bind group layout descriptors, vertex
// buffer layout, and uniform field offsets needed for pipeline creation and
// by-name uniform writes.
type Shader interface {
	// Key retrieves the identifier for this shader, used for labels and lookups.
	//
	// Returns:
	//   - string: the shader's key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors.
	// These are the CPU-side descriptors extracted from the shader source which can be
	// used by the renderer to create the actual wgpu.BindGroupLayout GPU objects.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name for a given group and binding index, if it exists.
	// This is used to bind textures and samplers declared in the source by name.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name associated with the group and binding, or an empty string if not found
	BindGroupVarName(group, binding int) string

	// BindGroupVarNames retrieves all variable names for all bind groups.
	//
	// Returns:
	//   - map[int]map[int]string: variable names keyed by group and binding index
	BindGroupVarNames() map[int]map[int]string

	// UniformField resolves a uniform field name to its byte layout, searching every
	// var<uniform> struct declared in the source. Field names are unique across the
	// sources this library consumes, so the first match wins.
	//
	// Parameters:
	//   - name: the uniform field name as written in the WGSL struct
	//
	// Returns:
	//   - string: the uniform variable name owning the field
	//   - FieldLayout: the field's byte offset and size
	//   - bool: true if the field exists in any uniform struct
	UniformField(name string) (string, FieldLayout, bool)

	// UniformFields retrieves the full by-name field layout of every var<uniform>
	// declaration, keyed by uniform variable name.
	//
	// Returns:
	//   - map[string]map[string]FieldLayout: uniform variable name to field name to layout
	UniformFields() map[string]map[string]FieldLayout

	// VertexLayout retrieves the vertex buffer layout parsed from the source's
	// vertex input struct.
	//
	// Returns:
	//   - wgpu.VertexBufferLayout: the vertex buffer layout
	//   - bool: true if the source declares a vertex input struct
	VertexLayout() (wgpu.VertexBufferLayout, bool)

	// VertexEntryPoint returns the @vertex entry point name.
	//
	// Returns:
	//   - string: the vertex entry point name, or empty string if absent
	VertexEntryPoint() string

	// FragmentEntryPoint returns the @fragment entry point name.
	//
	// Returns:
	//   - string: the fragment entry point name, or empty string if absent
	FragmentEntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor for this shader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader parses a WGSL source string into a Shader. The source must already be
// pre-processed (see PreProcessor); parsing is tolerant and never fails, but a
// source without entry points will produce a Shader the backend rejects at
// pipeline creation.
//
// Parameters:
//   - key: an identifier for the shader, used for module labels
//   - source: the complete WGSL source code
//
// Returns:
//   - Shader: a new Shader instance with parsed layout metadata
func NewShader(key, source string) Shader {
	s := &shader{
		key:    key,
		source: source,
		module: &wgpu.ShaderModuleDescriptor{
			Label: key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: source,
			},
		},
	}
	s.vertexEntryPoint = parseEntryPoint(source, wgpu.ShaderStageVertex)
	s.fragmentEntryPoint = parseEntryPoint(source, wgpu.ShaderStageFragment)
	s.vertexLayout, s.hasVertexLayout = parseVertexLayout(source)
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(source, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	s.uniformFields = parseUniformFields(source)
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) BindGroupVarNames() map[int]map[int]string {
	return s.bindingVarNames
}

func (s *shader) UniformField(name string) (string, FieldLayout, bool) {
	for varName, fields := range s.uniformFields {
		if layout, ok := fields[name]; ok {
			return varName, layout, true
		}
	}
	return "", FieldLayout{}, false
}

func (s *shader) UniformFields() map[string]map[string]FieldLayout {
	return s.uniformFields
}

func (s *shader) VertexLayout() (wgpu.VertexBufferLayout, bool) {
	return s.vertexLayout, s.hasVertexLayout
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntryPoint
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoint
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
