package camera

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/XingYaoA/manim/common"
	"github.com/XingYaoA/manim/engine/renderer"
	"github.com/XingYaoA/manim/engine/renderer/shader"
)

const testShaderA = `
struct VertexIn {
    @location(0) position: vec3<f32>,
}

@vertex
fn vs_main(in: VertexIn) -> @builtin(position) vec4<f32> {
    return vec4<f32>(in.position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

const testShaderB = `
struct VertexIn {
    @location(0) position: vec3<f32>,
}

@vertex
fn vs_main(in: VertexIn) -> @builtin(position) vec4<f32> {
    return vec4<f32>(in.position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 1.0, 1.0);
}
`

// fakeFramebuffer implements renderer.Framebuffer for camera tests.
type fakeFramebuffer struct {
	width    int
	height   int
	samples  int
	released bool
}

func (f *fakeFramebuffer) Width() int   { return f.width }
func (f *fakeFramebuffer) Height() int  { return f.height }
func (f *fakeFramebuffer) Samples() int { return f.samples }
func (f *fakeFramebuffer) Release()     { f.released = true }

type fakeBuffer struct {
	size     int
	released bool
}

func (b *fakeBuffer) Size() int { return b.size }
func (b *fakeBuffer) Release()  { b.released = true }

type fakeVertexArray struct {
	vertexCount int
	indexCount  int
}

func (v *fakeVertexArray) VertexCount() int { return v.vertexCount }
func (v *fakeVertexArray) IndexCount() int  { return v.indexCount }
func (v *fakeVertexArray) Release()         {}

// fakeProgram records every uniform and texture handed to it.
type fakeProgram struct {
	mu             sync.Mutex
	key            shader.ProgramKey
	uniforms       map[string][]float32
	textures       map[string]common.TextureStagingData
	textureUploads int
	released       bool
}

func newFakeProgram(key shader.ProgramKey) *fakeProgram {
	return &fakeProgram{
		key:      key,
		uniforms: make(map[string][]float32),
		textures: make(map[string]common.TextureStagingData),
	}
}

func (p *fakeProgram) Key() shader.ProgramKey { return p.key }
func (p *fakeProgram) Shader() shader.Shader  { return nil }

func (p *fakeProgram) SetUniform(name string, values []float32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uniforms[name] = append([]float32(nil), values...)
	return true
}

func (p *fakeProgram) SetTexture(varName string, data common.TextureStagingData) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.textures[varName] = data
	p.textureUploads++
	return true, nil
}

func (p *fakeProgram) Release() { p.released = true }

type drawRecord struct {
	fb      renderer.Framebuffer
	program shader.ProgramKey
}

// fakeRenderer implements renderer.Renderer, recording every call so tests
// can assert on resource lifecycles without a GPU.
type fakeRenderer struct {
	mu sync.Mutex

	sampleCount  int
	framebuffers []*fakeFramebuffer
	buffers      []*fakeBuffer
	programs     []*fakeProgram
	draws        []drawRecord
	clears       []renderer.Framebuffer
	blits        [][2]renderer.Framebuffer
	pixels       []byte
	released     bool
}

var _ renderer.Renderer = &fakeRenderer{}

func newFakeRenderer(sampleCount int) *fakeRenderer {
	return &fakeRenderer{sampleCount: sampleCount}
}

func (r *fakeRenderer) CreateFramebuffer(width, height, samples int, label string) (renderer.Framebuffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fb := &fakeFramebuffer{width: width, height: height, samples: samples}
	r.framebuffers = append(r.framebuffers, fb)
	return fb, nil
}

func (r *fakeRenderer) Clear(fb renderer.Framebuffer, color [4]float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears = append(r.clears, fb)
	return nil
}

func (r *fakeRenderer) Blit(src, dst renderer.Framebuffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blits = append(r.blits, [2]renderer.Framebuffer{src, dst})
	return nil
}

func (r *fakeRenderer) CreateBuffer(data []byte, label string) (renderer.Buffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf := &fakeBuffer{size: len(data)}
	r.buffers = append(r.buffers, buf)
	return buf, nil
}

func (r *fakeRenderer) CreateIndexBuffer(indices []uint32, label string) (renderer.Buffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf := &fakeBuffer{size: len(indices) * 4}
	r.buffers = append(r.buffers, buf)
	return buf, nil
}

func (r *fakeRenderer) CompileProgram(desc shader.ProgramDescriptor) (shader.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prog := newFakeProgram(desc.Key)
	r.programs = append(r.programs, prog)
	return prog, nil
}

func (r *fakeRenderer) CreateVertexArray(vbo renderer.Buffer, program shader.Program, ibo renderer.Buffer) (renderer.VertexArray, error) {
	va := &fakeVertexArray{vertexCount: vbo.Size() / 12}
	if ibo != nil {
		va.indexCount = ibo.Size() / 4
	}
	return va, nil
}

func (r *fakeRenderer) Draw(fb renderer.Framebuffer, program shader.Program, va renderer.VertexArray) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draws = append(r.draws, drawRecord{fb: fb, program: program.Key()})
	return nil
}

func (r *fakeRenderer) ReadPixels(fb renderer.Framebuffer) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pixels != nil {
		return r.pixels, nil
	}
	return make([]byte, fb.Width()*fb.Height()*4), nil
}

func (r *fakeRenderer) Resize(width, height int)              {}
func (r *fakeRenderer) Present(fb renderer.Framebuffer) error { return nil }
func (r *fakeRenderer) SampleCount() int                      { return r.sampleCount }
func (r *fakeRenderer) Release()                              { r.released = true }

func (r *fakeRenderer) liveBuffers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.buffers {
		if !b.released {
			n++
		}
	}
	return n
}

// testDrawable wraps fixed units.
type testDrawable struct {
	units []shader.Unit
}

func (d *testDrawable) ShaderUnits() []shader.Unit { return d.units }

func newTestDrawable(sources ...string) *testDrawable {
	d := &testDrawable{}
	for _, src := range sources {
		d.units = append(d.units, shader.NewUnit("test",
			shader.WithSource(src),
			shader.WithVertexData(common.SliceToBytes([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})),
		))
	}
	return d
}

func newTestCamera(t *testing.T, rend *fakeRenderer, options ...CameraBuilderOption) Camera {
	t.Helper()
	cam, err := NewCamera(append([]CameraBuilderOption{WithRenderer(rend)}, options...)...)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return cam
}

func TestNewCameraAllocatesBothFramebuffers(t *testing.T) {
	rend := newFakeRenderer(4)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	if len(rend.framebuffers) != 2 {
		t.Fatalf("framebuffers = %d, want 2", len(rend.framebuffers))
	}
	primary, msaa := rend.framebuffers[0], rend.framebuffers[1]
	if primary.samples != 1 {
		t.Fatalf("primary samples = %d, want 1", primary.samples)
	}
	if msaa.samples != 4 {
		t.Fatalf("draw target samples = %d, want renderer's 4", msaa.samples)
	}
	if primary.width != DefaultPixelWidth || primary.height != DefaultPixelHeight {
		t.Fatalf("primary size = %dx%d", primary.width, primary.height)
	}
	// Both targets are cleared during construction.
	if len(rend.clears) != 2 {
		t.Fatalf("clears = %d, want 2", len(rend.clears))
	}
}

func TestInitialPerspectiveUniforms(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	p := cam.PerspectiveUniforms()

	if math.Abs(float64(p.FrameShape[0])-DefaultFrameWidth) > 1e-5 {
		t.Fatalf("frame width = %v", p.FrameShape[0])
	}
	if p.FrameShape[1] != DefaultFrameHeight {
		t.Fatalf("frame height = %v", p.FrameShape[1])
	}

	// 1.5 px feather over 1080 px / 8 units = 1/90 frame units.
	wantAA := DefaultAntiAliasWidth / (float64(DefaultPixelHeight) / DefaultFrameHeight)
	if math.Abs(float64(p.AntiAliasWidth)-wantAA) > 1e-7 {
		t.Fatalf("anti-alias width = %v, want %v", p.AntiAliasWidth, wantAA)
	}
	if p.FocalDistance != 16 {
		t.Fatalf("focal distance = %v, want 16", p.FocalDistance)
	}

	// At identity orientation the light maps to camera space unchanged.
	if p.LightPosition != [3]float32{-10, 10, 10} {
		t.Fatalf("light position = %v", p.LightPosition)
	}

	// Identity rotation packs ones on the padded-column diagonal.
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			want := float32(0)
			if row == col {
				want = 1
			}
			if p.CameraRotation[col*4+row] != want {
				t.Fatalf("rotation[%d] = %v", col*4+row, p.CameraRotation[col*4+row])
			}
		}
	}
}

func TestCaptureDrawsIntoMultisampledTarget(t *testing.T) {
	rend := newFakeRenderer(4)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	d := newTestDrawable(testShaderA, testShaderB)
	if err := cam.Capture(d); err != nil {
		t.Fatalf("Capture: %v", err)
	}

	if len(rend.draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(rend.draws))
	}
	for i, dr := range rend.draws {
		if dr.fb.Samples() != 4 {
			t.Fatalf("draw %d targeted a %d-sample framebuffer", i, dr.fb.Samples())
		}
	}
	// Distinct sources draw with distinct programs, in unit order.
	if rend.draws[0].program == rend.draws[1].program {
		t.Fatalf("distinct sources shared a program")
	}
	wantFirst := d.units[0].Signature()
	if rend.draws[0].program != wantFirst {
		t.Fatalf("first draw used program %v, want %v", rend.draws[0].program, wantFirst)
	}
}

func TestCaptureCompositesWithoutClearing(t *testing.T) {
	rend := newFakeRenderer(4)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	clearsAfterInit := len(rend.clears)
	d := newTestDrawable(testShaderA)
	for i := 0; i < 2; i++ {
		if err := cam.Capture(d); err != nil {
			t.Fatalf("Capture: %v", err)
		}
	}
	if extra := len(rend.clears) - clearsAfterInit; extra != 0 {
		t.Fatalf("captures issued %d clears; successive captures composite", extra)
	}
	if len(rend.draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(rend.draws))
	}

	// Clearing between frames stays the caller's call.
	if err := cam.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(rend.clears) != clearsAfterInit+2 {
		t.Fatalf("clears = %d after explicit clear, want %d", len(rend.clears), clearsAfterInit+2)
	}
}

func TestCaptureReleasesEphemeralGroups(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	d := newTestDrawable(testShaderA)
	if err := cam.Capture(d); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if live := rend.liveBuffers(); live != 0 {
		t.Fatalf("%d buffers alive after ephemeral capture, want 0", live)
	}
}

func TestProgramSharedAcrossEqualSignatures(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	a := newTestDrawable(testShaderA)
	b := newTestDrawable(testShaderA)
	if err := cam.Capture(a, b); err != nil {
		t.Fatalf("Capture: %v", err)
	}

	if len(rend.programs) != 1 {
		t.Fatalf("compiles = %d, want 1", len(rend.programs))
	}
	if len(rend.draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(rend.draws))
	}
	if rend.draws[0].program != rend.draws[1].program {
		t.Fatalf("equal signatures used different programs")
	}
}

func TestCaptureBindsPerspectiveAndUnitUniforms(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	d := newTestDrawable(testShaderA)
	d.units[0].SetUniform("tint", []float32{1, 0, 0, 1})
	if err := cam.Capture(d); err != nil {
		t.Fatalf("Capture: %v", err)
	}

	prog := rend.programs[0]
	for _, name := range []string{"frame_shape", "anti_alias_width", "focal_distance", "camera_center", "camera_rotation", "light_position", "tint"} {
		if _, ok := prog.uniforms[name]; !ok {
			t.Fatalf("uniform %s was not bound", name)
		}
	}
}

func TestSetMobjectsAsStaticIssuesFreshHandles(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	d := newTestDrawable(testShaderA)
	first, err := cam.SetMobjectsAsStatic(d)
	if err != nil {
		t.Fatalf("SetMobjectsAsStatic: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("handles = %d, want 1", len(first))
	}
	liveAfterFirst := rend.liveBuffers()

	// Re-registration replaces the prior entry: old groups released, new
	// handle issued, no leak.
	second, err := cam.SetMobjectsAsStatic(d)
	if err != nil {
		t.Fatalf("SetMobjectsAsStatic: %v", err)
	}
	if second[0] == first[0] {
		t.Fatalf("handle %v reused across registrations", second[0])
	}
	if live := rend.liveBuffers(); live != liveAfterFirst {
		t.Fatalf("live buffers = %d after re-registration, want %d", live, liveAfterFirst)
	}
}

func TestStaticDrawablesSkipRebuildOnCapture(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	d := newTestDrawable(testShaderA)
	if _, err := cam.SetMobjectsAsStatic(d); err != nil {
		t.Fatalf("SetMobjectsAsStatic: %v", err)
	}
	buffersBefore := len(rend.buffers)

	for i := 0; i < 3; i++ {
		if err := cam.Capture(d); err != nil {
			t.Fatalf("Capture: %v", err)
		}
	}
	if len(rend.buffers) != buffersBefore {
		t.Fatalf("captures of a static drawable created %d new buffers", len(rend.buffers)-buffersBefore)
	}
	if len(rend.draws) != 3 {
		t.Fatalf("draws = %d, want 3", len(rend.draws))
	}
	if live := rend.liveBuffers(); live == 0 {
		t.Fatalf("static groups were released by capture")
	}
}

func TestReleaseStaticMobjects(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	d := newTestDrawable(testShaderA)
	if _, err := cam.SetMobjectsAsStatic(d); err != nil {
		t.Fatalf("SetMobjectsAsStatic: %v", err)
	}

	cam.ReleaseStaticMobjects()
	if live := rend.liveBuffers(); live != 0 {
		t.Fatalf("%d buffers alive after release, want 0", live)
	}

	// The drawable renders ephemerally again.
	buffersBefore := len(rend.buffers)
	if err := cam.Capture(d); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if len(rend.buffers) == buffersBefore {
		t.Fatalf("capture after release did not rebuild groups")
	}
}

func TestResizeFrameShape(t *testing.T) {
	tests := []struct {
		name           string
		fixedDimension int
		wantWidth      float64
		wantHeight     float64
	}{
		{"hold width on square pixels", 0, DefaultFrameWidth, DefaultFrameWidth},
		{"hold height on square pixels", 1, DefaultFrameHeight, DefaultFrameHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rend := newFakeRenderer(1)
			cam := newTestCamera(t, rend, WithPixelShape(1000, 1000))
			defer cam.Release()

			cam.ResizeFrameShape(tt.fixedDimension)
			width, height := cam.Frame().Shape()
			if math.Abs(width-tt.wantWidth) > tol || math.Abs(height-tt.wantHeight) > tol {
				t.Fatalf("shape = %v x %v, want %v x %v", width, height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestResetPixelShape(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	oldPrimary := rend.framebuffers[0]
	if err := cam.ResetPixelShape(640, 360); err != nil {
		t.Fatalf("ResetPixelShape: %v", err)
	}

	w, h := cam.PixelShape()
	if w != 640 || h != 360 {
		t.Fatalf("pixel shape = %dx%d, want 640x360", w, h)
	}
	if !oldPrimary.released {
		t.Fatalf("old framebuffer not released")
	}
	latest := rend.framebuffers[len(rend.framebuffers)-1]
	if latest.width != 640 || latest.height != 360 {
		t.Fatalf("new framebuffer size = %dx%d", latest.width, latest.height)
	}

	// The anti-alias width tracks the new pixel density.
	p := cam.PerspectiveUniforms()
	wantAA := DefaultAntiAliasWidth / (360.0 / DefaultFrameHeight)
	if math.Abs(float64(p.AntiAliasWidth)-wantAA) > 1e-7 {
		t.Fatalf("anti-alias width = %v, want %v", p.AntiAliasWidth, wantAA)
	}
}

func TestRawFBODataResolvesBeforeReadback(t *testing.T) {
	rend := newFakeRenderer(4)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	data, err := cam.RawFBOData()
	if err != nil {
		t.Fatalf("RawFBOData: %v", err)
	}
	if len(data) != DefaultPixelWidth*DefaultPixelHeight*4 {
		t.Fatalf("data length = %d", len(data))
	}
	if len(rend.blits) != 1 {
		t.Fatalf("blits = %d, want 1", len(rend.blits))
	}
	src, dst := rend.blits[0][0], rend.blits[0][1]
	if src.Samples() != 4 || dst.Samples() != 1 {
		t.Fatalf("blit resolved %d-sample into %d-sample", src.Samples(), dst.Samples())
	}
}

func TestPixmapFlipsRowsTopDown(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend, WithPixelShape(2, 2))
	defer cam.Release()

	// Bottom row first, as the renderer returns it: row 0 = bottom (value 1),
	// row 1 = top (value 2).
	rend.pixels = []byte{
		1, 1, 1, 1, 1, 1, 1, 1,
		2, 2, 2, 2, 2, 2, 2, 2,
	}

	pixmap, err := cam.Pixmap()
	if err != nil {
		t.Fatalf("Pixmap: %v", err)
	}
	data := pixmap.Data()
	if data[0] != 2 {
		t.Fatalf("top-left byte = %d, want 2 (top row)", data[0])
	}
	if data[8] != 1 {
		t.Fatalf("bottom-left byte = %d, want 1 (bottom row)", data[8])
	}

	img := pixmap.Image()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("image bounds = %v", img.Bounds())
	}
}

func TestPixelArrayRowsTopDown(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend, WithPixelShape(2, 2))
	defer cam.Release()

	rend.pixels = []byte{
		1, 1, 1, 1, 1, 1, 1, 1,
		2, 2, 2, 2, 2, 2, 2, 2,
	}
	rows, err := cam.PixelArray()
	if err != nil {
		t.Fatalf("PixelArray: %v", err)
	}
	if len(rows) != 2 || len(rows[0]) != 8 {
		t.Fatalf("rows = %dx%d", len(rows), len(rows[0]))
	}
	if rows[0][0] != 2 || rows[1][0] != 1 {
		t.Fatalf("rows not top-down: %v / %v", rows[0][0], rows[1][0])
	}
}

func TestRenderGroupListReturnsPersistentGroupsForStatic(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	d := newTestDrawable(testShaderA)
	handles, err := cam.SetMobjectsAsStatic(d)
	if err != nil {
		t.Fatalf("SetMobjectsAsStatic: %v", err)
	}
	buffersBefore := len(rend.buffers)

	groups, err := cam.RenderGroupList(d)
	if err != nil {
		t.Fatalf("RenderGroupList: %v", err)
	}
	if created := len(rend.buffers) - buffersBefore; created != 0 {
		t.Fatalf("resolving a static drawable created %d new buffers", created)
	}
	static := cam.(*cameraImpl).staticGroups[handles[0]]
	if len(groups) != len(static) || groups[0] != static[0] {
		t.Fatalf("static drawable did not return its persistent groups")
	}
	if groups[0].singleUse {
		t.Fatalf("persistent group marked single-use")
	}

	// An unregistered drawable still gets fresh single-use groups.
	fresh, err := cam.RenderGroupList(newTestDrawable(testShaderA))
	if err != nil {
		t.Fatalf("RenderGroupList: %v", err)
	}
	if len(rend.buffers) == buffersBefore {
		t.Fatalf("unregistered drawable reused persistent buffers")
	}
	if !fresh[0].singleUse {
		t.Fatalf("ephemeral group not marked single-use")
	}
	for _, g := range fresh {
		g.Release()
	}
}

func writeTexturePNG(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	path := filepath.Join(t.TempDir(), "texture.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestReleaseTextureForcesReupload(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	path := writeTexturePNG(t, 4, 4)
	unit := shader.NewUnit("textured",
		shader.WithSource(testShaderA),
		shader.WithVertexData(common.SliceToBytes([]float32{0, 0, 0})),
		shader.WithTexture("Texture", path),
	)
	d := &testDrawable{units: []shader.Unit{unit}}

	for i := 0; i < 2; i++ {
		if err := cam.Capture(d); err != nil {
			t.Fatalf("Capture: %v", err)
		}
	}
	prog := rend.programs[0]
	if prog.textureUploads != 1 {
		t.Fatalf("uploads = %d after two captures, want 1 (bound path skips)", prog.textureUploads)
	}

	cam.ReleaseTexture(path)
	if err := cam.Capture(d); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if prog.textureUploads != 2 {
		t.Fatalf("uploads = %d after release, want 2", prog.textureUploads)
	}
}

func TestCaptureUnloadableTexturePropagatesError(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	unit := shader.NewUnit("textured",
		shader.WithSource(testShaderA),
		shader.WithVertexData(common.SliceToBytes([]float32{0, 0, 0})),
		shader.WithTexture("Texture", filepath.Join(t.TempDir(), "missing.png")),
	)
	d := &testDrawable{units: []shader.Unit{unit}}

	if err := cam.Capture(d); err == nil {
		t.Fatalf("expected error for unloadable texture")
	}
}

func TestEmptySourceUnitIsSkipped(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend)
	defer cam.Release()

	path := filepath.Join(t.TempDir(), "empty.wgsl")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	unit := shader.NewUnit("empty",
		shader.WithSourcePath(path),
		shader.WithVertexData(common.SliceToBytes([]float32{0, 0, 0})),
	)
	d := &testDrawable{units: []shader.Unit{unit}}

	if err := cam.Capture(d); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if len(rend.draws) != 0 {
		t.Fatalf("draws = %d, want 0 for empty source", len(rend.draws))
	}
}

func TestCameraReleaseLeavesInjectedRendererAlive(t *testing.T) {
	rend := newFakeRenderer(1)
	cam := newTestCamera(t, rend)

	d := newTestDrawable(testShaderA)
	if _, err := cam.SetMobjectsAsStatic(d); err != nil {
		t.Fatalf("SetMobjectsAsStatic: %v", err)
	}

	cam.Release()
	if rend.released {
		t.Fatalf("camera released an injected renderer")
	}
	if live := rend.liveBuffers(); live != 0 {
		t.Fatalf("%d buffers alive after camera release", live)
	}
	for _, fb := range rend.framebuffers {
		if !fb.released {
			t.Fatalf("framebuffer not released")
		}
	}
	for _, p := range rend.programs {
		if !p.released {
			t.Fatalf("cached program not released")
		}
	}
}
