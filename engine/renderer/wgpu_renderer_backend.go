package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/XingYaoA/manim/common"
	"github.com/XingYaoA/manim/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// colorFormat is the format of every framebuffer color attachment. Readback
// and image encoding assume 8-bit RGBA, so this is fixed.
const colorFormat = wgpu.TextureFormatRGBA8Unorm

// depthFormat is the format of every framebuffer depth attachment.
const depthFormat = wgpu.TextureFormatDepth24Plus

// readbackAlign is the wgpu requirement for bytes-per-row in texture-to-buffer
// copies.
const readbackAlign = 256

// presentShaderSource is a fullscreen-triangle blit used to copy a framebuffer
// into the presentation surface, which may not share the framebuffer's format.
const presentShaderSource = `
@group(0) @binding(0) var src: texture_2d<f32>;
@group(0) @binding(1) var src_sampler: sampler;

struct BlitOut {
    @builtin(position) pos: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) vi: u32) -> BlitOut {
    var out: BlitOut;
    let uv = vec2<f32>(f32((vi << 1u) & 2u), f32(vi & 2u));
    out.pos = vec4<f32>(uv * 2.0 - 1.0, 0.0, 1.0);
    out.uv = vec2<f32>(uv.x, 1.0 - uv.y);
    return out;
}

@fragment
fn fs_main(in: BlitOut) -> @location(0) vec4<f32> {
    return textureSample(src, src_sampler, in.uv);
}
`

// wgpuBackendConfig carries the construction-time settings collected by the
// renderer's builder options.
type wgpuBackendConfig struct {
	surface       *wgpu.SurfaceDescriptor
	surfaceWidth  int
	surfaceHeight int
	forceSoftware bool
}

type wgpuRendererBackendImpl struct {
	mu       sync.Mutex
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surface       *wgpu.Surface
	surfaceFormat *wgpu.TextureFormat
	presentMode   wgpu.PresentMode

	presentPipeline *wgpu.RenderPipeline
	presentLayout   *wgpu.BindGroupLayout
	presentSampler  *wgpu.Sampler

	released bool
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// wgpuFramebuffer is the wgpu implementation of the Framebuffer interface.
type wgpuFramebuffer struct {
	width   int
	height  int
	samples int

	colorTexture *wgpu.Texture
	colorView    *wgpu.TextureView
	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	released bool
}

var _ Framebuffer = &wgpuFramebuffer{}

func (f *wgpuFramebuffer) Width() int   { return f.width }
func (f *wgpuFramebuffer) Height() int  { return f.height }
func (f *wgpuFramebuffer) Samples() int { return f.samples }

func (f *wgpuFramebuffer) Release() {
	if f.released {
		return
	}
	f.released = true
	f.colorView.Release()
	f.colorTexture.Release()
	f.depthView.Release()
	f.depthTexture.Release()
}

// wgpuBuffer is the wgpu implementation of the Buffer interface.
type wgpuBuffer struct {
	buf      *wgpu.Buffer
	size     int
	released bool
}

var _ Buffer = &wgpuBuffer{}

func (b *wgpuBuffer) Size() int { return b.size }

func (b *wgpuBuffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.buf.Release()
}

// wgpuVertexArray is the wgpu implementation of the VertexArray interface.
type wgpuVertexArray struct {
	vbo         *wgpuBuffer
	ibo         *wgpuBuffer
	vertexCount int
	indexCount  int
}

var _ VertexArray = &wgpuVertexArray{}

func (v *wgpuVertexArray) VertexCount() int { return v.vertexCount }
func (v *wgpuVertexArray) IndexCount() int  { return v.indexCount }
func (v *wgpuVertexArray) Release()         {}

func newWGPURendererBackend(cfg wgpuBackendConfig) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}

	if cfg.surface != nil {
		b.surface = b.instance.CreateSurface(cfg.surface)
	}

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: cfg.forceSoftware,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Render Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	if b.surface != nil {
		b.configureSurfaceLocked(cfg.surfaceWidth, cfg.surfaceHeight)
	}

	common.Logger().Info("created wgpu context",
		"surface", b.surface != nil,
		"softwareFallback", cfg.forceSoftware,
	)
	return b, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.surface == nil {
		return
	}
	b.configureSurfaceLocked(width, height)
}

func (b *wgpuRendererBackendImpl) configureSurfaceLocked(width, height int) {
	capabilities := b.surface.GetCapabilities(b.adapter)
	format := capabilities.Formats[0]

	// The present blit pipeline is baked against the surface format.
	if b.surfaceFormat == nil || *b.surfaceFormat != format {
		if b.presentPipeline != nil {
			b.presentPipeline.Release()
			b.presentPipeline = nil
		}
	}
	b.surfaceFormat = &format

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) CreateFramebuffer(width, height, samples int, label string) (Framebuffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	if samples < 1 {
		samples = 1
	}

	// Multisampled color is resolve-only; single-sample color participates in
	// copies, readback, and the present blit.
	colorUsage := wgpu.TextureUsageRenderAttachment
	if samples == 1 {
		colorUsage |= wgpu.TextureUsageCopySrc | wgpu.TextureUsageCopyDst | wgpu.TextureUsageTextureBinding
	}

	colorTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label + " Color Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   uint32(samples),
		Dimension:     wgpu.TextureDimension2D,
		Format:        colorFormat,
		Usage:         colorUsage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create color texture: %w", err)
	}
	colorView, err := colorTexture.CreateView(nil)
	if err != nil {
		colorTexture.Release()
		return nil, fmt.Errorf("failed to create color view: %w", err)
	}

	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label + " Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   uint32(samples),
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		colorView.Release()
		colorTexture.Release()
		return nil, fmt.Errorf("failed to create depth texture: %w", err)
	}
	depthView, err := depthTexture.CreateView(nil)
	if err != nil {
		depthTexture.Release()
		colorView.Release()
		colorTexture.Release()
		return nil, fmt.Errorf("failed to create depth view: %w", err)
	}

	return &wgpuFramebuffer{
		width:        width,
		height:       height,
		samples:      samples,
		colorTexture: colorTexture,
		colorView:    colorView,
		depthTexture: depthTexture,
		depthView:    depthView,
	}, nil
}

func (b *wgpuRendererBackendImpl) Clear(fb Framebuffer, color [4]float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	target, err := asWGPUFramebuffer(fb)
	if err != nil {
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    target.colorView,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: float64(color[0]),
					G: float64(color[1]),
					B: float64(color[2]),
					A: float64(color[3]),
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            target.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	pass.End()

	return b.submitLocked(encoder)
}

func (b *wgpuRendererBackendImpl) Blit(src, dst Framebuffer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	source, err := asWGPUFramebuffer(src)
	if err != nil {
		return err
	}
	target, err := asWGPUFramebuffer(dst)
	if err != nil {
		return err
	}
	if source.width != target.width || source.height != target.height {
		return fmt.Errorf("blit size mismatch: %dx%d vs %dx%d", source.width, source.height, target.width, target.height)
	}
	if target.samples != 1 {
		return errors.New("blit destination must be single-sample")
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	if source.samples > 1 {
		// An empty pass whose color attachment resolves into the destination.
		pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
			ColorAttachments: []wgpu.RenderPassColorAttachment{
				{
					View:          source.colorView,
					ResolveTarget: target.colorView,
					LoadOp:        wgpu.LoadOpLoad,
					StoreOp:       wgpu.StoreOpDiscard,
				},
			},
		})
		pass.End()
	} else {
		encoder.CopyTextureToTexture(
			&wgpu.ImageCopyTexture{
				Texture:  source.colorTexture,
				MipLevel: 0,
				Origin:   wgpu.Origin3D{},
				Aspect:   wgpu.TextureAspectAll,
			},
			&wgpu.ImageCopyTexture{
				Texture:  target.colorTexture,
				MipLevel: 0,
				Origin:   wgpu.Origin3D{},
				Aspect:   wgpu.TextureAspectAll,
			},
			&wgpu.Extent3D{
				Width:              uint32(source.width),
				Height:             uint32(source.height),
				DepthOrArrayLayers: 1,
			},
		)
	}

	return b.submitLocked(encoder)
}

func (b *wgpuRendererBackendImpl) CreateBuffer(data []byte, usage wgpu.BufferUsage, label string) (Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(data) == 0 {
		return nil, errors.New("cannot create an empty buffer")
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create buffer %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)

	return &wgpuBuffer{buf: buf, size: len(data)}, nil
}

func (b *wgpuRendererBackendImpl) CompileProgram(desc shader.ProgramDescriptor) (shader.Program, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return newWGPUProgram(b.device, b.queue, desc)
}

func (b *wgpuRendererBackendImpl) CreateVertexArray(vbo Buffer, program shader.Program, ibo Buffer) (VertexArray, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	prog, ok := program.(*wgpuProgram)
	if !ok {
		return nil, errors.New("program was not compiled by this backend")
	}
	vertexBuffer, ok := vbo.(*wgpuBuffer)
	if !ok {
		return nil, errors.New("vertex buffer was not created by this backend")
	}
	layout, ok := prog.sh.VertexLayout()
	if !ok {
		return nil, fmt.Errorf("program %d has no vertex input struct", prog.key)
	}
	if layout.ArrayStride == 0 {
		return nil, fmt.Errorf("program %d has a zero-stride vertex layout", prog.key)
	}

	va := &wgpuVertexArray{
		vbo:         vertexBuffer,
		vertexCount: vertexBuffer.size / int(layout.ArrayStride),
	}
	if ibo != nil {
		indexBuffer, ok := ibo.(*wgpuBuffer)
		if !ok {
			return nil, errors.New("index buffer was not created by this backend")
		}
		va.ibo = indexBuffer
		va.indexCount = indexBuffer.size / 4
	}
	return va, nil
}

func (b *wgpuRendererBackendImpl) Draw(fb Framebuffer, program shader.Program, va VertexArray) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	target, err := asWGPUFramebuffer(fb)
	if err != nil {
		return err
	}
	prog, ok := program.(*wgpuProgram)
	if !ok {
		return errors.New("program was not compiled by this backend")
	}
	array, ok := va.(*wgpuVertexArray)
	if !ok {
		return errors.New("vertex array was not created by this backend")
	}

	pipeline, err := prog.pipelineFor(target.samples)
	if err != nil {
		return err
	}
	bindGroups, err := prog.prepare()
	if err != nil {
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    target.colorView,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            target.depthView,
			DepthLoadOp:     wgpu.LoadOpLoad,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	pass.SetPipeline(pipeline)
	for group, bg := range bindGroups {
		pass.SetBindGroup(uint32(group), bg, nil)
	}
	pass.SetVertexBuffer(0, array.vbo.buf, 0, wgpu.WholeSize)
	if array.ibo != nil {
		pass.SetIndexBuffer(array.ibo.buf, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(uint32(array.indexCount), 1, 0, 0, 0)
	} else {
		pass.Draw(uint32(array.vertexCount), 1, 0, 0)
	}
	pass.End()

	return b.submitLocked(encoder)
}

func (b *wgpuRendererBackendImpl) ReadPixels(fb Framebuffer) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	source, err := asWGPUFramebuffer(fb)
	if err != nil {
		return nil, err
	}
	if source.samples != 1 {
		return nil, errors.New("cannot read a multisampled framebuffer, blit it to a single-sample target first")
	}

	rowBytes := source.width * 4
	paddedRowBytes := (rowBytes + readbackAlign - 1) &^ (readbackAlign - 1)
	bufferSize := uint64(paddedRowBytes * source.height)

	readback, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Readback Buffer",
		Size:  bufferSize,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readback buffer: %w", err)
	}
	defer readback.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  source.colorTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: readback,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(paddedRowBytes),
				RowsPerImage: uint32(source.height),
			},
		},
		&wgpu.Extent3D{
			Width:              uint32(source.width),
			Height:             uint32(source.height),
			DepthOrArrayLayers: 1,
		},
	)
	if err := b.submitLocked(encoder); err != nil {
		return nil, err
	}

	var mapErr error
	mapped := false
	err = readback.MapAsync(wgpu.MapModeRead, 0, bufferSize, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			mapErr = fmt.Errorf("readback map failed with status %d", status)
			return
		}
		mapped = true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to map readback buffer: %w", err)
	}
	b.device.Poll(true, nil)
	if mapErr != nil {
		return nil, mapErr
	}
	if !mapped {
		return nil, errors.New("readback map never completed")
	}
	defer readback.Unmap()

	data := readback.GetMappedRange(0, uint(bufferSize))

	// Compact the padded rows and flip vertically so row 0 is the bottom of
	// the image, matching GL-style framebuffer reads.
	out := make([]byte, rowBytes*source.height)
	for row := 0; row < source.height; row++ {
		srcOffset := (source.height - 1 - row) * paddedRowBytes
		copy(out[row*rowBytes:(row+1)*rowBytes], data[srcOffset:srcOffset+rowBytes])
	}
	return out, nil
}

func (b *wgpuRendererBackendImpl) Present(fb Framebuffer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surface == nil {
		return errors.New("renderer has no presentation surface")
	}
	source, err := asWGPUFramebuffer(fb)
	if err != nil {
		return err
	}
	if source.samples != 1 {
		return errors.New("cannot present a multisampled framebuffer, blit it to a single-sample target first")
	}

	if err := b.ensurePresentPipelineLocked(); err != nil {
		return err
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	surfaceView, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create surface view: %w", err)
	}
	defer surfaceView.Release()

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Present Bind Group",
		Layout: b.presentLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: source.colorView},
			{Binding: 1, Sampler: b.presentSampler},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create present bind group: %w", err)
	}
	defer bindGroup.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       surfaceView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	pass.SetPipeline(b.presentPipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()

	if err := b.submitLocked(encoder); err != nil {
		return err
	}
	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return
	}
	b.released = true

	if b.presentPipeline != nil {
		b.presentPipeline.Release()
	}
	if b.presentLayout != nil {
		b.presentLayout.Release()
	}
	if b.presentSampler != nil {
		b.presentSampler.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}

// submitLocked finishes the encoder and submits the resulting command buffer.
// The caller holds the backend mutex.
func (b *wgpuRendererBackendImpl) submitLocked(encoder *wgpu.CommandEncoder) error {
	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

// ensurePresentPipelineLocked lazily builds the fullscreen blit pipeline used
// by Present, baked against the current surface format.
func (b *wgpuRendererBackendImpl) ensurePresentPipelineLocked() error {
	if b.presentPipeline != nil {
		return nil
	}
	if b.surfaceFormat == nil {
		return errors.New("surface not configured")
	}

	if b.presentSampler == nil {
		sampler, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
			Label:         "Present Sampler",
			AddressModeU:  wgpu.AddressModeClampToEdge,
			AddressModeV:  wgpu.AddressModeClampToEdge,
			AddressModeW:  wgpu.AddressModeClampToEdge,
			MagFilter:     wgpu.FilterModeLinear,
			MinFilter:     wgpu.FilterModeLinear,
			MipmapFilter:  wgpu.MipmapFilterModeNearest,
			LodMaxClamp:   32.0,
			MaxAnisotropy: 1,
		})
		if err != nil {
			return fmt.Errorf("failed to create present sampler: %w", err)
		}
		b.presentSampler = sampler
	}

	if b.presentLayout == nil {
		layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label: "Present Bind Group Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageFragment,
					Texture: wgpu.TextureBindingLayout{
						SampleType:    wgpu.TextureSampleTypeFloat,
						ViewDimension: wgpu.TextureViewDimension2D,
					},
				},
				{
					Binding:    1,
					Visibility: wgpu.ShaderStageFragment,
					Sampler: wgpu.SamplerBindingLayout{
						Type: wgpu.SamplerBindingTypeFiltering,
					},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create present bind group layout: %w", err)
		}
		b.presentLayout = layout
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Present Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: presentShaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create present shader module: %w", err)
	}
	defer module.Release()

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Present Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.presentLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create present pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	pipeline, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Present Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create present pipeline: %w", err)
	}
	b.presentPipeline = pipeline
	return nil
}

// asWGPUFramebuffer narrows a Framebuffer to the wgpu implementation.
func asWGPUFramebuffer(fb Framebuffer) (*wgpuFramebuffer, error) {
	target, ok := fb.(*wgpuFramebuffer)
	if !ok {
		return nil, errors.New("framebuffer was not created by this backend")
	}
	if target.released {
		return nil, errors.New("framebuffer has been released")
	}
	return target, nil
}
