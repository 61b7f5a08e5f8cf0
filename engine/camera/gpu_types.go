package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/XingYaoA/manim/common"
)

// PerspectiveUniformsSource is the canonical WGSL definition of the
// PerspectiveUniforms struct plus its uniform binding. Shader sources pull it
// in with an `#INSERT camera_uniforms` directive; the camera registers it on
// its program cache under that name.
//
//go:embed assets/perspective_uniforms.wgsl
var PerspectiveUniformsSource string

// PerspectiveUniformsSnippetName is the #INSERT name the camera registers the
// WGSL source under.
const PerspectiveUniformsSnippetName = "camera_uniforms"

// PerspectiveUniforms is the GPU-aligned per-capture uniform bundle shared by
// every draw within one capture. Matches the WGSL PerspectiveUniforms struct
// layout exactly (see PerspectiveUniformsSource). Size: 96 bytes (WGSL
// aligned; the mat3x3 occupies three 16-byte columns).
type PerspectiveUniforms struct {
	FrameShape     [2]float32  // offset  0: frame width and height in world units (vec2<f32>)
	AntiAliasWidth float32     // offset  8: anti-alias width in frame units (f32)
	FocalDistance  float32     // offset 12: focal distance in world units (f32)
	CameraCenter   [3]float32  // offset 16: frame center in world space (vec3<f32>)
	_pad0          float32     // offset 28: padding to mat3x3 alignment
	CameraRotation [12]float32 // offset 32: world-to-camera rotation, three vec3 columns each padded to 16 bytes (mat3x3<f32>)
	LightPosition  [3]float32  // offset 80: light position in camera space (vec3<f32>)
	_pad1          float32     // offset 92: padding to 96 bytes
}

// Size returns the size of the PerspectiveUniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (p *PerspectiveUniforms) Size() int {
	return int(unsafe.Sizeof(*p))
}

// SetCameraRotation packs a world-to-camera rotation matrix into the
// column-padded layout WGSL expects for mat3x3<f32>.
//
// Parameters:
//   - m: the inverse rotation matrix
func (p *PerspectiveUniforms) SetCameraRotation(m common.Mat3) {
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			p.CameraRotation[col*4+row] = float32(m.At(row, col))
		}
		p.CameraRotation[col*4+3] = 0
	}
}

// Marshal serializes the PerspectiveUniforms struct into a byte buffer
// suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (p *PerspectiveUniforms) Marshal() []byte {
	buf := make([]byte, p.Size())
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(p.FrameShape[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(p.FrameShape[1]))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(p.AntiAliasWidth))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(p.FocalDistance))
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(p.CameraCenter[i]))
	}
	binary.LittleEndian.PutUint32(buf[28:], 0) // _pad0
	for i := range 12 {
		binary.LittleEndian.PutUint32(buf[32+i*4:], math.Float32bits(p.CameraRotation[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[80+i*4:], math.Float32bits(p.LightPosition[i]))
	}
	binary.LittleEndian.PutUint32(buf[92:], 0) // _pad1
	return buf
}

// Values maps WGSL field names to their float values for by-name uniform
// binding. Programs whose source omits a field silently ignore it.
//
// Returns:
//   - map[string][]float32: field name to values
func (p *PerspectiveUniforms) Values() map[string][]float32 {
	return map[string][]float32{
		"frame_shape":      p.FrameShape[:],
		"anti_alias_width": {p.AntiAliasWidth},
		"focal_distance":   {p.FocalDistance},
		"camera_center":    p.CameraCenter[:],
		"camera_rotation":  p.CameraRotation[:],
		"light_position":   p.LightPosition[:],
	}
}
