package renderer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/XingYaoA/manim/common"
	"github.com/XingYaoA/manim/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuProgram is the wgpu implementation of the shader.Program interface.
// Uniform values are staged on the CPU per var<uniform> declaration and
// flushed to their GPU buffers right before a draw. Pipelines are built lazily
// per render target sample count, since the same program can draw into both
// the multisampled and the single-sample framebuffer of a camera.
type wgpuProgram struct {
	mu     sync.Mutex
	key    shader.ProgramKey
	sh     shader.Shader
	device *wgpu.Device
	queue  *wgpu.Queue

	module           *wgpu.ShaderModule
	pipelineLayout   *wgpu.PipelineLayout
	bindGroupLayouts map[int]*wgpu.BindGroupLayout
	topology         wgpu.PrimitiveTopology
	depthTest        bool
	pipelines        map[int]*wgpu.RenderPipeline

	uniformBuffers map[string]*wgpu.Buffer
	uniformStaging map[string][]byte
	uniformDirty   map[string]bool

	textures     map[string]*wgpu.Texture
	textureViews map[string]*wgpu.TextureView
	sampler      *wgpu.Sampler

	bindGroups      map[int]*wgpu.BindGroup
	bindGroupsDirty bool
	released        bool
}

var _ shader.Program = &wgpuProgram{}

func newWGPUProgram(device *wgpu.Device, queue *wgpu.Queue, desc shader.ProgramDescriptor) (*wgpuProgram, error) {
	sh := desc.Shader
	if sh.VertexEntryPoint() == "" || sh.FragmentEntryPoint() == "" {
		return nil, fmt.Errorf("shader %s must declare both a @vertex and a @fragment entry point", sh.Key())
	}

	module, err := device.CreateShaderModule(sh.Module())
	if err != nil {
		return nil, fmt.Errorf("failed to create shader module %s: %w", sh.Key(), err)
	}

	p := &wgpuProgram{
		key:              desc.Key,
		sh:               sh,
		device:           device,
		queue:            queue,
		module:           module,
		topology:         desc.Topology,
		depthTest:        desc.DepthTest,
		bindGroupLayouts: make(map[int]*wgpu.BindGroupLayout),
		pipelines:        make(map[int]*wgpu.RenderPipeline),
		uniformBuffers:   make(map[string]*wgpu.Buffer),
		uniformStaging:   make(map[string][]byte),
		uniformDirty:     make(map[string]bool),
		textures:         make(map[string]*wgpu.Texture),
		textureViews:     make(map[string]*wgpu.TextureView),
		bindGroupsDirty:  true,
	}

	descriptors := sh.BindGroupLayoutDescriptors()
	maxGroup := -1
	for g := range descriptors {
		if g > maxGroup {
			maxGroup = g
		}
	}
	layoutSlice := make([]*wgpu.BindGroupLayout, maxGroup+1)
	for g, d := range descriptors {
		layout, layoutErr := device.CreateBindGroupLayout(&d)
		if layoutErr != nil {
			p.Release()
			return nil, fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		p.bindGroupLayouts[g] = layout
		layoutSlice[g] = layout
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            sh.Key() + " Pipeline Layout",
		BindGroupLayouts: layoutSlice,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("failed to create pipeline layout: %w", err)
	}
	p.pipelineLayout = pipelineLayout

	// One GPU buffer and CPU staging block per var<uniform> declaration, sized
	// from the binding's minimum size.
	for g, d := range descriptors {
		for _, entry := range d.Entries {
			if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
				continue
			}
			varName := sh.BindGroupVarName(g, int(entry.Binding))
			if varName == "" || entry.Buffer.MinBindingSize == 0 {
				continue
			}
			buf, bufErr := device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: varName + " Uniform Buffer",
				Size:  entry.Buffer.MinBindingSize,
				Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
			})
			if bufErr != nil {
				p.Release()
				return nil, fmt.Errorf("failed to create uniform buffer %s: %w", varName, bufErr)
			}
			p.uniformBuffers[varName] = buf
			p.uniformStaging[varName] = make([]byte, entry.Buffer.MinBindingSize)
		}
	}

	return p, nil
}

func (p *wgpuProgram) Key() shader.ProgramKey {
	return p.key
}

func (p *wgpuProgram) Shader() shader.Shader {
	return p.sh
}

func (p *wgpuProgram) SetUniform(name string, values []float32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	varName, field, ok := p.sh.UniformField(name)
	if !ok {
		return false
	}
	staging, ok := p.uniformStaging[varName]
	if !ok {
		return false
	}

	data := common.SliceToBytes(values)
	n := int(field.Size)
	if len(data) < n {
		n = len(data)
	}
	copy(staging[field.Offset:int(field.Offset)+n], data[:n])
	p.uniformDirty[varName] = true
	return true
}

func (p *wgpuProgram) SetTexture(varName string, data common.TextureStagingData) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.hasTextureBinding(varName) {
		return false, nil
	}

	tex, err := p.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     varName + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return true, fmt.Errorf("failed to create texture %s: %w", varName, err)
	}

	p.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * 4,
			RowsPerImage: data.Height,
		},
		&wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return true, fmt.Errorf("failed to create texture view %s: %w", varName, err)
	}

	if old := p.textureViews[varName]; old != nil {
		old.Release()
	}
	if old := p.textures[varName]; old != nil {
		old.Release()
	}
	p.textures[varName] = tex
	p.textureViews[varName] = view
	p.bindGroupsDirty = true
	return true, nil
}

func (p *wgpuProgram) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return
	}
	p.released = true

	for _, bg := range p.bindGroups {
		bg.Release()
	}
	for _, pl := range p.pipelines {
		pl.Release()
	}
	for _, view := range p.textureViews {
		view.Release()
	}
	for _, tex := range p.textures {
		tex.Release()
	}
	for _, buf := range p.uniformBuffers {
		buf.Release()
	}
	if p.sampler != nil {
		p.sampler.Release()
	}
	if p.pipelineLayout != nil {
		p.pipelineLayout.Release()
	}
	for _, layout := range p.bindGroupLayouts {
		layout.Release()
	}
	if p.module != nil {
		p.module.Release()
	}
}

// pipelineFor returns the render pipeline targeting the given sample count,
// building it on first use.
func (p *wgpuProgram) pipelineFor(samples int) (*wgpu.RenderPipeline, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pipeline, ok := p.pipelines[samples]; ok {
		return pipeline, nil
	}

	var vertexBuffers []wgpu.VertexBufferLayout
	if layout, ok := p.sh.VertexLayout(); ok {
		vertexBuffers = []wgpu.VertexBufferLayout{layout}
	}

	depthCompare := wgpu.CompareFunctionAlways
	if p.depthTest {
		depthCompare = wgpu.CompareFunctionLess
	}

	pipeline, err := p.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.sh.Key() + " Render Pipeline",
		Layout: p.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     p.module,
			EntryPoint: p.sh.VertexEntryPoint(),
			Buffers:    vertexBuffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     p.module,
			EntryPoint: p.sh.FragmentEntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format: colorFormat,
					// Premultiplied-style composition: colors blend over the
					// destination while alpha accumulates additively.
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOne,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(samples),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: p.depthTest,
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create render pipeline %s: %w", p.sh.Key(), err)
	}
	p.pipelines[samples] = pipeline
	return pipeline, nil
}

// prepare flushes dirty uniform staging blocks to the GPU and returns the
// program's bind groups, rebuilding them if a texture changed.
func (p *wgpuProgram) prepare() (map[int]*wgpu.BindGroup, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for varName, dirty := range p.uniformDirty {
		if !dirty {
			continue
		}
		p.queue.WriteBuffer(p.uniformBuffers[varName], 0, p.uniformStaging[varName])
		p.uniformDirty[varName] = false
	}

	if err := p.ensureBindGroupsLocked(); err != nil {
		return nil, err
	}
	return p.bindGroups, nil
}

func (p *wgpuProgram) ensureBindGroupsLocked() error {
	if !p.bindGroupsDirty && p.bindGroups != nil {
		return nil
	}

	for _, bg := range p.bindGroups {
		bg.Release()
	}
	groups := make(map[int]*wgpu.BindGroup)

	descriptors := p.sh.BindGroupLayoutDescriptors()
	groupIndices := make([]int, 0, len(descriptors))
	for g := range descriptors {
		groupIndices = append(groupIndices, g)
	}
	sort.Ints(groupIndices)

	for _, g := range groupIndices {
		d := descriptors[g]
		entries := make([]wgpu.BindGroupEntry, len(d.Entries))
		for i, entry := range d.Entries {
			binding := int(entry.Binding)
			varName := p.sh.BindGroupVarName(g, binding)

			isTexture := entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined
			isSampler := entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined

			switch {
			case isTexture:
				view := p.textureViews[varName]
				if view == nil {
					return fmt.Errorf("texture binding %s has no texture data", varName)
				}
				entries[i] = wgpu.BindGroupEntry{
					Binding:     entry.Binding,
					TextureView: view,
				}
			case isSampler:
				sampler, err := p.ensureSamplerLocked()
				if err != nil {
					return err
				}
				entries[i] = wgpu.BindGroupEntry{
					Binding: entry.Binding,
					Sampler: sampler,
				}
			default:
				buf := p.uniformBuffers[varName]
				if buf == nil {
					return fmt.Errorf("uniform binding %s has no buffer", varName)
				}
				entries[i] = wgpu.BindGroupEntry{
					Binding: entry.Binding,
					Buffer:  buf,
					Offset:  0,
					Size:    wgpu.WholeSize,
				}
			}
		}

		bg, err := p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   fmt.Sprintf("%s Bind Group %d", p.sh.Key(), g),
			Layout:  p.bindGroupLayouts[g],
			Entries: entries,
		})
		if err != nil {
			for _, created := range groups {
				created.Release()
			}
			return fmt.Errorf("failed to create bind group %d: %w", g, err)
		}
		groups[g] = bg
	}

	p.bindGroups = groups
	p.bindGroupsDirty = false
	return nil
}

func (p *wgpuProgram) ensureSamplerLocked() (*wgpu.Sampler, error) {
	if p.sampler != nil {
		return p.sampler, nil
	}
	sampler, err := p.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         p.sh.Key() + " Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sampler: %w", err)
	}
	p.sampler = sampler
	return sampler, nil
}

// hasTextureBinding reports whether the shader declares a sampled texture
// variable with the given name. Caller holds the mutex.
func (p *wgpuProgram) hasTextureBinding(varName string) bool {
	for g, d := range p.sh.BindGroupLayoutDescriptors() {
		for _, entry := range d.Entries {
			if entry.Texture.SampleType == wgpu.TextureSampleTypeUndefined {
				continue
			}
			if p.sh.BindGroupVarName(g, int(entry.Binding)) == varName {
				return true
			}
		}
	}
	return false
}
