package shader

import "github.com/cogentcore/webgpu/wgpu"

// UnitBuilderOption configures a Unit during construction.
type UnitBuilderOption func(*unitImpl)

// WithSource sets the inline WGSL source code for the unit.
//
// Parameters:
//   - source: the WGSL source, which may contain #INSERT directives
//
// Returns:
//   - UnitBuilderOption: the option to apply
func WithSource(source string) UnitBuilderOption {
	return func(u *unitImpl) {
		u.source = source
	}
}

// WithSourcePath sets the file path the WGSL source is read from. Units built
// this way participate in hot reload when a Watcher observes the file.
//
// Parameters:
//   - path: the path to a .wgsl file
//
// Returns:
//   - UnitBuilderOption: the option to apply
func WithSourcePath(path string) UnitBuilderOption {
	return func(u *unitImpl) {
		u.sourcePath = path
	}
}

// WithVertexData sets the raw interleaved vertex bytes for the unit.
//
// Parameters:
//   - data: vertex bytes matching the source's vertex input struct layout
//
// Returns:
//   - UnitBuilderOption: the option to apply
func WithVertexData(data []byte) UnitBuilderOption {
	return func(u *unitImpl) {
		u.vertexData = data
	}
}

// WithIndices sets the index list for indexed drawing.
//
// Parameters:
//   - indices: the vertex indices
//
// Returns:
//   - UnitBuilderOption: the option to apply
func WithIndices(indices []uint32) UnitBuilderOption {
	return func(u *unitImpl) {
		u.indices = indices
	}
}

// WithUniform adds a per-unit uniform value keyed by WGSL field name.
//
// Parameters:
//   - name: the WGSL field name
//   - values: the float values to bind
//
// Returns:
//   - UnitBuilderOption: the option to apply
func WithUniform(name string, values []float32) UnitBuilderOption {
	return func(u *unitImpl) {
		u.uniforms[name] = values
	}
}

// WithTexture adds a texture file path keyed by WGSL variable name.
//
// Parameters:
//   - varName: the texture variable name in the WGSL source
//   - path: the image file path
//
// Returns:
//   - UnitBuilderOption: the option to apply
func WithTexture(varName, path string) UnitBuilderOption {
	return func(u *unitImpl) {
		u.textures[varName] = path
	}
}

// WithTopology sets the primitive topology. Defaults to triangle list.
//
// Parameters:
//   - topology: the wgpu primitive topology
//
// Returns:
//   - UnitBuilderOption: the option to apply
func WithTopology(topology wgpu.PrimitiveTopology) UnitBuilderOption {
	return func(u *unitImpl) {
		u.topology = topology
	}
}

// WithDepthTest enables or disables depth testing for the unit. Defaults to off.
//
// Parameters:
//   - enabled: true to enable depth testing
//
// Returns:
//   - UnitBuilderOption: the option to apply
func WithDepthTest(enabled bool) UnitBuilderOption {
	return func(u *unitImpl) {
		u.depthTest = enabled
	}
}
