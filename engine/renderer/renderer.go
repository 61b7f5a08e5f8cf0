package renderer

import (
	"fmt"
	"sync"

	"github.com/XingYaoA/manim/common"
	"github.com/XingYaoA/manim/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// rendererImpl is the implementation of the Renderer interface.
type rendererImpl struct {
	mu          sync.Mutex
	backend     RendererBackend
	backendType RendererBackendType
	sampleCount int
	released    bool

	// pending options applied during construction, before the backend exists
	pendingPresentMode *PresentMode
	pendingMSAA        *int
	surface            *wgpu.SurfaceDescriptor
	surfaceWidth       int
	surfaceHeight      int
	forceSoftware      bool
}

// Renderer is the GPU context used by cameras to allocate render targets,
// compile programs, and issue draws. A renderer created without a surface runs
// fully offscreen; one created with a surface can additionally present frames
// to a window for previewing.
type Renderer interface {
	// CreateFramebuffer allocates an offscreen color+depth render target.
	//
	// Parameters:
	//   - width: the target width in pixels
	//   - height: the target height in pixels
	//   - samples: the multisample count, 1 for no multisampling
	//   - label: a debug label for GPU tooling
	//
	// Returns:
	//   - Framebuffer: the allocated render target
	//   - error: an error if allocation failed
	CreateFramebuffer(width, height, samples int, label string) (Framebuffer, error)

	// Clear fills the framebuffer's color attachment with the given RGBA color
	// and resets its depth attachment to the far plane.
	//
	// Parameters:
	//   - fb: the framebuffer to clear
	//   - color: the RGBA clear color with components in [0, 1]
	//
	// Returns:
	//   - error: an error if the clear pass could not be encoded
	Clear(fb Framebuffer, color [4]float32) error

	// Blit transfers the source framebuffer's color image into the destination.
	// A multisampled source is resolved down to the single-sample destination;
	// a single-sample source is copied directly. Both framebuffers must share
	// the same pixel dimensions.
	//
	// Parameters:
	//   - src: the source framebuffer
	//   - dst: the destination framebuffer, which must be single-sample
	//
	// Returns:
	//   - error: an error if the transfer could not be encoded
	Blit(src, dst Framebuffer) error

	// CreateBuffer uploads raw vertex bytes into a new GPU vertex buffer.
	//
	// Parameters:
	//   - data: the interleaved vertex bytes
	//   - label: a debug label for GPU tooling
	//
	// Returns:
	//   - Buffer: the uploaded buffer
	//   - error: an error if the upload failed
	CreateBuffer(data []byte, label string) (Buffer, error)

	// CreateIndexBuffer uploads a uint32 index list into a new GPU index buffer.
	//
	// Parameters:
	//   - indices: the vertex indices
	//   - label: a debug label for GPU tooling
	//
	// Returns:
	//   - Buffer: the uploaded buffer
	//   - error: an error if the upload failed
	CreateIndexBuffer(indices []uint32, label string) (Buffer, error)

	// CompileProgram builds a render pipeline plus binding machinery from a
	// parsed shader descriptor. Intended to be passed to a shader.ProgramCache
	// as its CompileFunc.
	//
	// Parameters:
	//   - desc: the program descriptor produced by the cache
	//
	// Returns:
	//   - shader.Program: the compiled program
	//   - error: an error if compilation failed
	CompileProgram(desc shader.ProgramDescriptor) (shader.Program, error)

	// CreateVertexArray ties a vertex buffer and optional index buffer to a
	// program's vertex layout. The vertex count is derived from the buffer size
	// and the layout's stride.
	//
	// Parameters:
	//   - vbo: the vertex buffer
	//   - program: the program whose vertex layout describes the buffer
	//   - ibo: the index buffer, or nil for non-indexed drawing
	//
	// Returns:
	//   - VertexArray: the drawable unit
	//   - error: an error if the program has no vertex input
	CreateVertexArray(vbo Buffer, program shader.Program, ibo Buffer) (VertexArray, error)

	// Draw renders the vertex array with the program into the framebuffer,
	// blending over the existing contents.
	//
	// Parameters:
	//   - fb: the target framebuffer
	//   - program: the compiled program
	//   - va: the vertex array to draw
	//
	// Returns:
	//   - error: an error if the draw could not be encoded
	Draw(fb Framebuffer, program shader.Program, va VertexArray) error

	// ReadPixels copies the framebuffer's color attachment back to the CPU as
	// tightly packed RGBA bytes, bottom row first. The framebuffer must be
	// single-sample; resolve multisampled targets with Blit first.
	//
	// Parameters:
	//   - fb: the framebuffer to read
	//
	// Returns:
	//   - []byte: width*height*4 bytes of RGBA data
	//   - error: an error if the readback failed
	ReadPixels(fb Framebuffer) ([]byte, error)

	// Resize reconfigures the presentation surface. A no-op for offscreen
	// renderers.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// Present copies the framebuffer's color into the presentation surface and
	// presents it. Returns an error for offscreen renderers.
	//
	// Parameters:
	//   - fb: the single-sample framebuffer to present
	//
	// Returns:
	//   - error: an error if the renderer has no surface or the copy failed
	Present(fb Framebuffer) error

	// SampleCount retrieves the multisample count the renderer was configured
	// with. Cameras use it as the default for their multisampled framebuffer.
	//
	// Returns:
	//   - int: the configured sample count
	SampleCount() int

	// Release frees the renderer's GPU context. Releasing twice is a no-op.
	Release()
}

var _ Renderer = &rendererImpl{}

// NewRenderer creates a new Renderer backed by the requested GPU backend.
// Without a WithSurface option the renderer is offscreen and needs no window
// or display connection.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - options: variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: a new Renderer instance
//   - error: an error if the GPU context could not be created
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) (Renderer, error) {
	r := &rendererImpl{
		backendType: backendType,
		sampleCount: 1,
	}
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		backend, err := newWGPURendererBackend(wgpuBackendConfig{
			surface:       r.surface,
			surfaceWidth:  r.surfaceWidth,
			surfaceHeight: r.surfaceHeight,
			forceSoftware: r.forceSoftware,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
		}
		r.backend = backend
	default:
		return nil, fmt.Errorf("unsupported renderer backend type: %d", backendType)
	}

	if r.pendingMSAA != nil {
		r.sampleCount = *r.pendingMSAA
		r.pendingMSAA = nil
	}
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
		r.pendingPresentMode = nil
	}
	return r, nil
}

func (r *rendererImpl) CreateFramebuffer(width, height, samples int, label string) (Framebuffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.CreateFramebuffer(width, height, samples, label)
}

func (r *rendererImpl) Clear(fb Framebuffer, color [4]float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.Clear(fb, color)
}

func (r *rendererImpl) Blit(src, dst Framebuffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.Blit(src, dst)
}

func (r *rendererImpl) CreateBuffer(data []byte, label string) (Buffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.CreateBuffer(data, wgpu.BufferUsageVertex|wgpu.BufferUsageCopyDst, label)
}

func (r *rendererImpl) CreateIndexBuffer(indices []uint32, label string) (Buffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.CreateBuffer(common.SliceToBytes(indices), wgpu.BufferUsageIndex|wgpu.BufferUsageCopyDst, label)
}

func (r *rendererImpl) CompileProgram(desc shader.ProgramDescriptor) (shader.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.CompileProgram(desc)
}

func (r *rendererImpl) CreateVertexArray(vbo Buffer, program shader.Program, ibo Buffer) (VertexArray, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.CreateVertexArray(vbo, program, ibo)
}

func (r *rendererImpl) Draw(fb Framebuffer, program shader.Program, va VertexArray) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.Draw(fb, program, va)
}

func (r *rendererImpl) ReadPixels(fb Framebuffer) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.ReadPixels(fb)
}

func (r *rendererImpl) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *rendererImpl) Present(fb Framebuffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.Present(fb)
}

func (r *rendererImpl) SampleCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sampleCount
}

func (r *rendererImpl) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	r.backend.Release()
}
