package camera

import (
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/XingYaoA/manim/common"
	"github.com/XingYaoA/manim/engine/renderer"
	"github.com/XingYaoA/manim/engine/renderer/shader"
	"github.com/XingYaoA/manim/engine/renderer/texture"
)

// Output defaults: full HD pixels, transparent-black background, and a
// 1.5-pixel anti-alias feather.
const (
	DefaultPixelWidth  = 1920
	DefaultPixelHeight = 1080

	// DefaultAntiAliasWidth is the edge feather width measured in pixels.
	// Each capture converts it into frame units for the shaders.
	DefaultAntiAliasWidth = 1.5
)

// DefaultBackground is the clear color used when none is configured.
var DefaultBackground = [4]float32{0, 0, 0, 1}

type cameraImpl struct {
	mu sync.Mutex

	frame CameraFrame
	light LightSource

	rend         renderer.Renderer
	ownsRenderer bool

	// fbo is the single-sample target reads and presentation go through;
	// fboMsaa is the multisampled target every draw lands in. A Blit resolves
	// fboMsaa into fbo before any readback.
	fbo     renderer.Framebuffer
	fboMsaa renderer.Framebuffer

	pixelWidth     int
	pixelHeight    int
	samples        int
	background     [4]float32
	antiAliasWidth float64
	maxTextureDim  int

	programCache shader.ProgramCache
	textureCache texture.Cache

	// staticGroups holds persistent render groups keyed by the handle issued
	// at registration. handleByDrawable maps each registered drawable to its
	// current handle so re-registration replaces rather than accumulates.
	staticGroups     map[StaticHandle][]*RenderGroup
	handleByDrawable map[Drawable]StaticHandle
	nextHandle       uint64

	perspective PerspectiveUniforms

	// boundTextures tracks which file path is bound to each texture var per
	// program, so redrawing a unit skips redundant texture uploads.
	boundTextures map[shader.ProgramKey]map[string]string

	prepPool worker.DynamicWorkerPool
	released bool
}

// Camera turns drawables into pixels. It owns the camera frame (pose and
// extent), a light source, a pair of framebuffers (one multisampled draw
// target, one single-sample resolve target), and the caches that share
// compiled programs and decoded textures across draws.
type Camera interface {
	// Frame retrieves the camera frame holding pose and extent.
	//
	// Returns:
	//   - CameraFrame: the frame
	Frame() CameraFrame

	// Light retrieves the camera's light source.
	//
	// Returns:
	//   - LightSource: the light
	Light() LightSource

	// Renderer retrieves the GPU context the camera draws with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// ProgramCache retrieves the camera's shared program cache. Shader
	// watchers hook eviction through it.
	//
	// Returns:
	//   - shader.ProgramCache: the program cache
	ProgramCache() shader.ProgramCache

	// PixelShape retrieves the output resolution.
	//
	// Returns:
	//   - width: the output width in pixels
	//   - height: the output height in pixels
	PixelShape() (width, height int)

	// Background retrieves the clear color.
	//
	// Returns:
	//   - [4]float32: the RGBA background with components in [0, 1]
	Background() [4]float32

	// SetBackground replaces the clear color used by Clear and Capture.
	//
	// Parameters:
	//   - color: the RGBA background with components in [0, 1]
	SetBackground(color [4]float32)

	// Clear fills both framebuffers with the background color.
	//
	// Returns:
	//   - error: an error if a clear pass failed
	Clear() error

	// Capture renders the drawables into the multisampled framebuffer in
	// order, compositing onto whatever the target already holds; callers
	// clear explicitly between frames. The perspective uniforms are
	// refreshed once for the whole batch. Drawables registered as static are
	// drawn from their persistent groups; all others get ephemeral groups
	// released as soon as their draw is issued.
	//
	// Parameters:
	//   - drawables: the drawables to render, back to front
	//
	// Returns:
	//   - error: the first error hit while building or drawing a group
	Capture(drawables ...Drawable) error

	// RenderGroupList resolves the render groups a capture would draw for a
	// drawable. A drawable registered as static returns its persistent
	// groups, which the camera still owns; anything else gets fresh
	// single-use groups built from its current units. Units whose source
	// resolves to an empty string are skipped.
	//
	// Parameters:
	//   - d: the drawable to resolve groups for
	//
	// Returns:
	//   - []*RenderGroup: the groups, in unit order
	//   - error: an error if a program or buffer could not be created
	RenderGroupList(d Drawable) ([]*RenderGroup, error)

	// SetMobjectsAsStatic builds persistent render groups for drawables whose
	// geometry will not change, so later captures skip the rebuild. Unit
	// collection runs in parallel on the camera's worker pool; GPU resource
	// creation stays serial. Registering an already-registered drawable
	// releases its previous groups and issues a fresh handle.
	//
	// Parameters:
	//   - drawables: the drawables to register
	//
	// Returns:
	//   - []StaticHandle: one handle per drawable, in argument order
	//   - error: an error if any group could not be built
	SetMobjectsAsStatic(drawables ...Drawable) ([]StaticHandle, error)

	// ReleaseStaticMobjects releases every persistent render group and
	// empties the static index. Registered drawables render ephemerally
	// again until re-registered.
	ReleaseStaticMobjects()

	// ReleaseTexture drops the decoded pixels cached for an image path and
	// invalidates every program binding that still points at it, so the next
	// draw referencing the path decodes and uploads it again under a fresh
	// slot. Unknown paths are a no-op.
	//
	// Parameters:
	//   - path: the image file path to release
	ReleaseTexture(path string)

	// RefreshPerspectiveUniforms recomputes the per-capture uniform bundle
	// from the frame and light: frame shape and center, anti-alias width in
	// frame units, the flattened inverse rotation, the light position mapped
	// into camera space, and the focal distance.
	RefreshPerspectiveUniforms()

	// PerspectiveUniforms retrieves a copy of the current uniform bundle.
	//
	// Returns:
	//   - PerspectiveUniforms: the bundle as of the last refresh
	PerspectiveUniforms() PerspectiveUniforms

	// RawFBOData resolves the multisampled framebuffer and reads the result
	// back as tightly packed RGBA bytes, bottom row first.
	//
	// Returns:
	//   - []byte: pixelWidth*pixelHeight*4 bytes of RGBA data
	//   - error: an error if the resolve or readback failed
	RawFBOData() ([]byte, error)

	// PixelArray reads the framebuffer back as rows of RGBA bytes, top row
	// first.
	//
	// Returns:
	//   - [][]byte: pixelHeight rows of pixelWidth*4 bytes each
	//   - error: an error if the readback failed
	PixelArray() ([][]byte, error)

	// Pixmap reads the framebuffer back as a top-down CPU image.
	//
	// Returns:
	//   - *renderer.Pixmap: the image
	//   - error: an error if the readback failed
	Pixmap() (*renderer.Pixmap, error)

	// Image reads the framebuffer back as a standard library image.
	//
	// Returns:
	//   - *image.RGBA: the image, top row first
	//   - error: an error if the readback failed
	Image() (*image.RGBA, error)

	// ResizeFrameShape stretches the frame so its aspect ratio matches the
	// pixel aspect ratio. fixedDimension selects which extent is preserved:
	// 0 keeps the width and recomputes the height, any other value keeps the
	// height and recomputes the width.
	//
	// Parameters:
	//   - fixedDimension: 0 to hold width, nonzero to hold height
	ResizeFrameShape(fixedDimension int)

	// ResetPixelShape reallocates both framebuffers at a new resolution,
	// clears them to the background, and refreshes the perspective uniforms.
	//
	// Parameters:
	//   - width: the new output width in pixels
	//   - height: the new output height in pixels
	//
	// Returns:
	//   - error: an error if the framebuffers could not be reallocated
	ResetPixelShape(width, height int) error

	// Present resolves the multisampled framebuffer and pushes it to the
	// renderer's presentation surface. Fails on offscreen renderers.
	//
	// Returns:
	//   - error: an error if the renderer has no surface
	Present() error

	// Release frees the camera's GPU resources: static groups, cached
	// programs, and both framebuffers. A renderer the camera created itself
	// is released too; an injected one is left alive. Releasing twice is a
	// no-op.
	Release()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with an offscreen WGPU renderer unless one is
// injected via WithRenderer. Both framebuffers are allocated and cleared to
// the background before the camera is returned.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions
//
// Returns:
//   - Camera: a new Camera instance
//   - error: an error if the GPU context or framebuffers could not be created
func NewCamera(options ...CameraBuilderOption) (Camera, error) {
	c := &cameraImpl{
		background:       DefaultBackground,
		staticGroups:     make(map[StaticHandle][]*RenderGroup),
		handleByDrawable: make(map[Drawable]StaticHandle),
		boundTextures:    make(map[shader.ProgramKey]map[string]string),
	}
	for _, option := range options {
		option(c)
	}
	c.pixelWidth = common.Coalesce(c.pixelWidth, DefaultPixelWidth)
	c.pixelHeight = common.Coalesce(c.pixelHeight, DefaultPixelHeight)
	c.antiAliasWidth = common.Coalesce(c.antiAliasWidth, DefaultAntiAliasWidth)

	if c.frame == nil {
		c.frame = NewCameraFrame()
	}
	if c.light == nil {
		c.light = NewLightSource()
	}
	if c.rend == nil {
		rend, err := renderer.NewRenderer(renderer.BackendTypeWGPU)
		if err != nil {
			return nil, fmt.Errorf("failed to create camera renderer: %w", err)
		}
		c.rend = rend
		c.ownsRenderer = true
	}
	if c.samples <= 0 {
		c.samples = max(c.rend.SampleCount(), 1)
	}

	c.programCache = shader.NewProgramCache(c.rend.CompileProgram,
		shader.WithCacheSnippet(PerspectiveUniformsSnippetName, PerspectiveUniformsSource),
	)
	c.textureCache = texture.NewCache(texture.WithMaxDimension(c.maxTextureDim))

	// Queue size of 256 accommodates typical drawable batch sizes with headroom.
	c.prepPool = worker.NewDynamicWorkerPool(max(runtime.NumCPU()-1, 1), 256, 1*time.Second)

	if err := c.allocateFramebuffersLocked(c.pixelWidth, c.pixelHeight); err != nil {
		if c.ownsRenderer {
			c.rend.Release()
		}
		return nil, err
	}
	if err := c.clearLocked(); err != nil {
		c.releaseFramebuffersLocked()
		if c.ownsRenderer {
			c.rend.Release()
		}
		return nil, err
	}
	c.refreshPerspectiveUniformsLocked()
	return c, nil
}

func (c *cameraImpl) Frame() CameraFrame {
	return c.frame
}

func (c *cameraImpl) Light() LightSource {
	return c.light
}

func (c *cameraImpl) Renderer() renderer.Renderer {
	return c.rend
}

func (c *cameraImpl) ProgramCache() shader.ProgramCache {
	return c.programCache
}

func (c *cameraImpl) PixelShape() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pixelWidth, c.pixelHeight
}

func (c *cameraImpl) Background() [4]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.background
}

func (c *cameraImpl) SetBackground(color [4]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.background = color
}

func (c *cameraImpl) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearLocked()
}

func (c *cameraImpl) Capture(drawables ...Drawable) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshPerspectiveUniformsLocked()

	for _, d := range drawables {
		if err := c.renderDrawableLocked(d); err != nil {
			return err
		}
	}
	return nil
}

func (c *cameraImpl) RenderGroupList(d Drawable) ([]*RenderGroup, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if handle, ok := c.handleByDrawable[d]; ok {
		return c.staticGroups[handle], nil
	}
	return c.buildRenderGroupsLocked(d.ShaderUnits(), true)
}

func (c *cameraImpl) SetMobjectsAsStatic(drawables ...Drawable) ([]StaticHandle, error) {
	// CPU-side unit collection runs in parallel; a WaitGroup provides the
	// batch barrier since the pool has no per-batch wait of its own.
	unitLists := make([][]shader.Unit, len(drawables))
	var wg sync.WaitGroup
	for i, d := range drawables {
		wg.Add(1)
		idx, dCap := i, d
		c.prepPool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				unitLists[idx] = dCap.ShaderUnits()
				return nil, nil
			},
		})
	}
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	handles := make([]StaticHandle, 0, len(drawables))
	for i, d := range drawables {
		groups, err := c.buildRenderGroupsLocked(unitLists[i], false)
		if err != nil {
			return nil, fmt.Errorf("failed to build static render groups: %w", err)
		}
		if prev, ok := c.handleByDrawable[d]; ok {
			for _, g := range c.staticGroups[prev] {
				g.Release()
			}
			delete(c.staticGroups, prev)
		}
		c.nextHandle++
		handle := StaticHandle(c.nextHandle)
		c.staticGroups[handle] = groups
		c.handleByDrawable[d] = handle
		handles = append(handles, handle)
	}
	return handles, nil
}

func (c *cameraImpl) ReleaseStaticMobjects() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseStaticLocked()
}

func (c *cameraImpl) ReleaseTexture(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.textureCache.Release(path)
	for key, vars := range c.boundTextures {
		for varName, bound := range vars {
			if bound == path {
				delete(vars, varName)
			}
		}
		if len(vars) == 0 {
			delete(c.boundTextures, key)
		}
	}
}

func (c *cameraImpl) RefreshPerspectiveUniforms() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshPerspectiveUniformsLocked()
}

func (c *cameraImpl) PerspectiveUniforms() PerspectiveUniforms {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.perspective
}

func (c *cameraImpl) RawFBOData() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readPixelsLocked()
}

func (c *cameraImpl) PixelArray() ([][]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.readPixelsLocked()
	if err != nil {
		return nil, err
	}
	rowBytes := c.pixelWidth * 4
	rows := make([][]byte, c.pixelHeight)
	for y := 0; y < c.pixelHeight; y++ {
		src := (c.pixelHeight - 1 - y) * rowBytes
		rows[y] = raw[src : src+rowBytes : src+rowBytes]
	}
	return rows, nil
}

func (c *cameraImpl) Pixmap() (*renderer.Pixmap, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.readPixelsLocked()
	if err != nil {
		return nil, err
	}
	rowBytes := c.pixelWidth * 4
	flipped := make([]byte, len(raw))
	for y := 0; y < c.pixelHeight; y++ {
		src := (c.pixelHeight - 1 - y) * rowBytes
		copy(flipped[y*rowBytes:(y+1)*rowBytes], raw[src:src+rowBytes])
	}
	return renderer.NewPixmap(c.pixelWidth, c.pixelHeight, flipped)
}

func (c *cameraImpl) Image() (*image.RGBA, error) {
	pixmap, err := c.Pixmap()
	if err != nil {
		return nil, err
	}
	return pixmap.Image(), nil
}

func (c *cameraImpl) ResizeFrameShape(fixedDimension int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	width, height := c.frame.Shape()
	pixelAspect := float64(c.pixelWidth) / float64(c.pixelHeight)
	if fixedDimension == 0 {
		height = width / pixelAspect
	} else {
		width = pixelAspect * height
	}
	c.frame.SetHeight(height)
	c.frame.SetWidth(width)
	c.refreshPerspectiveUniformsLocked()
}

func (c *cameraImpl) ResetPixelShape(width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	oldFBO, oldMsaa := c.fbo, c.fboMsaa
	if err := c.allocateFramebuffersLocked(width, height); err != nil {
		c.fbo, c.fboMsaa = oldFBO, oldMsaa
		return err
	}
	if oldFBO != nil {
		oldFBO.Release()
	}
	if oldMsaa != nil {
		oldMsaa.Release()
	}
	c.pixelWidth = width
	c.pixelHeight = height
	if err := c.clearLocked(); err != nil {
		return err
	}
	c.refreshPerspectiveUniformsLocked()
	return nil
}

func (c *cameraImpl) Present() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.rend.Blit(c.fboMsaa, c.fbo); err != nil {
		return fmt.Errorf("failed to resolve framebuffer: %w", err)
	}
	return c.rend.Present(c.fbo)
}

func (c *cameraImpl) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return
	}
	c.released = true

	c.releaseStaticLocked()
	c.programCache.Release()
	c.releaseFramebuffersLocked()
	if c.ownsRenderer {
		c.rend.Release()
	}
}

// renderDrawableLocked draws one drawable: from its persistent groups when it
// is registered as static, otherwise through freshly built single-use groups.
// Caller holds the mutex.
func (c *cameraImpl) renderDrawableLocked(d Drawable) error {
	if handle, ok := c.handleByDrawable[d]; ok {
		for _, g := range c.staticGroups[handle] {
			if err := c.renderGroupLocked(g); err != nil {
				return err
			}
		}
		return nil
	}

	groups, err := c.buildRenderGroupsLocked(d.ShaderUnits(), true)
	if err != nil {
		return err
	}
	for _, g := range groups {
		if err := c.renderGroupLocked(g); err != nil {
			return err
		}
	}
	return nil
}

// renderGroupLocked binds the perspective and per-unit uniforms, resolves the
// unit's textures, and issues the draw into the multisampled framebuffer.
// Uniform names a program's source omits are silently ignored. Single-use
// groups are released right after their draw is encoded. Caller holds the
// mutex.
func (c *cameraImpl) renderGroupLocked(g *RenderGroup) error {
	if g.Released() {
		return fmt.Errorf("render group %s already released", g.unit.Name())
	}

	for name, values := range c.perspective.Values() {
		g.program.SetUniform(name, values)
	}
	for name, values := range g.unit.Uniforms() {
		g.program.SetUniform(name, values)
	}
	if err := c.bindTexturesLocked(g); err != nil {
		return err
	}

	if err := c.rend.Draw(c.fboMsaa, g.program, g.vao); err != nil {
		return fmt.Errorf("failed to draw %s: %w", g.unit.Name(), err)
	}
	if g.singleUse {
		g.Release()
	}
	return nil
}

// bindTexturesLocked uploads the unit's textures to its program, skipping
// vars already bound to the same path. Caller holds the mutex.
func (c *cameraImpl) bindTexturesLocked(g *RenderGroup) error {
	key := g.program.Key()
	for varName, path := range g.unit.Textures() {
		if c.boundTextures[key][varName] == path {
			continue
		}
		entry, err := c.textureCache.Acquire(path)
		if err != nil {
			return err
		}
		bound, err := g.program.SetTexture(varName, entry.Data)
		if err != nil {
			return fmt.Errorf("failed to bind texture %s on %s: %w", varName, g.unit.Name(), err)
		}
		if bound {
			if c.boundTextures[key] == nil {
				c.boundTextures[key] = make(map[string]string)
			}
			c.boundTextures[key][varName] = path
		}
	}
	return nil
}

// buildRenderGroupsLocked turns shader units into render groups, sharing
// compiled programs through the cache. Units with empty sources are skipped.
// On error the groups built so far are released. Caller holds the mutex.
func (c *cameraImpl) buildRenderGroupsLocked(units []shader.Unit, singleUse bool) ([]*RenderGroup, error) {
	groups := make([]*RenderGroup, 0, len(units))
	for _, u := range units {
		g, err := c.buildRenderGroupLocked(u, singleUse)
		if err != nil {
			for _, built := range groups {
				built.Release()
			}
			return nil, err
		}
		if g != nil {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

// buildRenderGroupLocked creates the GPU resources for one unit. A nil group
// with no error means the unit's source resolved empty and there is nothing
// to draw. Caller holds the mutex.
func (c *cameraImpl) buildRenderGroupLocked(u shader.Unit, singleUse bool) (*RenderGroup, error) {
	prog, err := c.programCache.Get(u)
	if err != nil {
		return nil, err
	}
	if prog == nil {
		return nil, nil
	}

	vbo, err := c.rend.CreateBuffer(u.VertexData(), u.Name()+" vertices")
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex buffer for %s: %w", u.Name(), err)
	}

	var ibo renderer.Buffer
	if indices := u.Indices(); len(indices) > 0 {
		ibo, err = c.rend.CreateIndexBuffer(indices, u.Name()+" indices")
		if err != nil {
			vbo.Release()
			return nil, fmt.Errorf("failed to create index buffer for %s: %w", u.Name(), err)
		}
	}

	vao, err := c.rend.CreateVertexArray(vbo, prog, ibo)
	if err != nil {
		if ibo != nil {
			ibo.Release()
		}
		vbo.Release()
		return nil, fmt.Errorf("failed to create vertex array for %s: %w", u.Name(), err)
	}

	return &RenderGroup{
		vbo:       vbo,
		ibo:       ibo,
		vao:       vao,
		program:   prog,
		unit:      u,
		singleUse: singleUse,
	}, nil
}

// refreshPerspectiveUniformsLocked rebuilds the uniform bundle from the frame
// and light. The anti-alias width converts from pixels to frame units by
// dividing out the pixels-per-frame-unit density, and the light position is
// mapped into camera space with the frame's inverse rotation. Caller holds
// the mutex.
func (c *cameraImpl) refreshPerspectiveUniformsLocked() {
	width, height := c.frame.Shape()
	center := c.frame.Center()
	invRot := c.frame.InverseRotationMatrix()
	lightCam := invRot.MulVec(c.light.Position())

	c.perspective.FrameShape = [2]float32{float32(width), float32(height)}
	c.perspective.AntiAliasWidth = float32(c.antiAliasWidth / (float64(c.pixelHeight) / height))
	c.perspective.FocalDistance = float32(c.frame.FocalDistance())
	c.perspective.CameraCenter = vec3ToFloat32(center)
	c.perspective.SetCameraRotation(invRot)
	c.perspective.LightPosition = vec3ToFloat32(lightCam)
}

// readPixelsLocked resolves the multisampled framebuffer into the
// single-sample one and reads it back. Caller holds the mutex.
func (c *cameraImpl) readPixelsLocked() ([]byte, error) {
	if err := c.rend.Blit(c.fboMsaa, c.fbo); err != nil {
		return nil, fmt.Errorf("failed to resolve framebuffer: %w", err)
	}
	return c.rend.ReadPixels(c.fbo)
}

func (c *cameraImpl) clearLocked() error {
	if err := c.rend.Clear(c.fbo, c.background); err != nil {
		return fmt.Errorf("failed to clear framebuffer: %w", err)
	}
	if err := c.rend.Clear(c.fboMsaa, c.background); err != nil {
		return fmt.Errorf("failed to clear draw framebuffer: %w", err)
	}
	return nil
}

func (c *cameraImpl) allocateFramebuffersLocked(width, height int) error {
	fbo, err := c.rend.CreateFramebuffer(width, height, 1, "camera fbo")
	if err != nil {
		return fmt.Errorf("failed to create framebuffer: %w", err)
	}
	fboMsaa, err := c.rend.CreateFramebuffer(width, height, c.samples, "camera fbo msaa")
	if err != nil {
		fbo.Release()
		return fmt.Errorf("failed to create multisampled framebuffer: %w", err)
	}
	c.fbo = fbo
	c.fboMsaa = fboMsaa
	return nil
}

func (c *cameraImpl) releaseFramebuffersLocked() {
	if c.fboMsaa != nil {
		c.fboMsaa.Release()
		c.fboMsaa = nil
	}
	if c.fbo != nil {
		c.fbo.Release()
		c.fbo = nil
	}
}

func (c *cameraImpl) releaseStaticLocked() {
	for handle, groups := range c.staticGroups {
		for _, g := range groups {
			g.Release()
		}
		delete(c.staticGroups, handle)
	}
	c.handleByDrawable = make(map[Drawable]StaticHandle)
}

func vec3ToFloat32(v common.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
