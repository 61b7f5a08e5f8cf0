package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/XingYaoA/manim/common"
)

// stubProgram is a GPU-free Program for cache tests.
type stubProgram struct {
	key      ProgramKey
	shader   Shader
	released bool
}

var _ Program = &stubProgram{}

func (p *stubProgram) Key() ProgramKey { return p.key }
func (p *stubProgram) Shader() Shader  { return p.shader }

func (p *stubProgram) SetUniform(name string, values []float32) bool { return false }

func (p *stubProgram) SetTexture(varName string, data common.TextureStagingData) (bool, error) {
	return false, nil
}

func (p *stubProgram) Release() { p.released = true }

// stubCompiler counts compilations and keeps the descriptors it saw.
type stubCompiler struct {
	descs    []ProgramDescriptor
	programs []*stubProgram
}

func (c *stubCompiler) compile(desc ProgramDescriptor) (Program, error) {
	c.descs = append(c.descs, desc)
	p := &stubProgram{key: desc.Key, shader: desc.Shader}
	c.programs = append(c.programs, p)
	return p, nil
}

func TestNewProgramCacheRequiresCompileFunc(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil compile function")
		}
	}()
	NewProgramCache(nil)
}

func TestProgramCacheSharesEqualSignatures(t *testing.T) {
	comp := &stubCompiler{}
	cache := NewProgramCache(comp.compile)

	a := NewUnit("a", WithSource("fn main() {}"), WithVertexData([]byte{0}))
	b := NewUnit("b", WithSource("fn main() {}"), WithVertexData([]byte{1}))

	pa, err := cache.Get(a)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	pb, err := cache.Get(b)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if pa != pb {
		t.Fatalf("equal signatures resolved to different programs")
	}
	if len(comp.descs) != 1 {
		t.Fatalf("compiles = %d, want 1", len(comp.descs))
	}
	if cache.Len() != 1 {
		t.Fatalf("Len = %d, want 1", cache.Len())
	}

	if got, ok := cache.Lookup(a.Signature()); !ok || got != pa {
		t.Fatalf("Lookup did not return the cached program")
	}
}

func TestProgramCacheSeparatesRenderState(t *testing.T) {
	comp := &stubCompiler{}
	cache := NewProgramCache(comp.compile)

	flat := NewUnit("flat", WithSource("fn main() {}"), WithVertexData([]byte{0}))
	depth := NewUnit("depth", WithSource("fn main() {}"), WithVertexData([]byte{0}), WithDepthTest(true))

	pFlat, err := cache.Get(flat)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	pDepth, err := cache.Get(depth)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if pFlat == pDepth {
		t.Fatalf("depth flag should bake into separate programs")
	}
	if len(comp.descs) != 2 {
		t.Fatalf("compiles = %d, want 2", len(comp.descs))
	}
	if !comp.descs[1].DepthTest {
		t.Fatalf("depth flag not carried into the descriptor")
	}
}

func TestProgramCacheResolvesSnippets(t *testing.T) {
	comp := &stubCompiler{}
	cache := NewProgramCache(comp.compile, WithCacheSnippet("uniforms", "struct U { x: f32 }"))

	u := NewUnit("u", WithSource("#INSERT uniforms\nfn main() {}"), WithVertexData([]byte{0}))
	if _, err := cache.Get(u); err != nil {
		t.Fatalf("Get: %v", err)
	}

	compiled := comp.descs[0].Shader.Source()
	if !strings.Contains(compiled, "struct U { x: f32 }") {
		t.Fatalf("snippet not resolved before compilation: %s", compiled)
	}
}

func TestProgramCacheUnknownSnippetFails(t *testing.T) {
	comp := &stubCompiler{}
	cache := NewProgramCache(comp.compile)

	u := NewUnit("u", WithSource("#INSERT missing"), WithVertexData([]byte{0}))
	if _, err := cache.Get(u); err == nil {
		t.Fatalf("expected pre-processing error")
	}
	if cache.Len() != 0 {
		t.Fatalf("failed compile was cached")
	}
}

func TestProgramCacheFileBackedUnits(t *testing.T) {
	comp := &stubCompiler{}
	cache := NewProgramCache(comp.compile)
	path := filepath.Join(t.TempDir(), "shader.wgsl")

	u := NewUnit("file", WithSourcePath(path), WithVertexData([]byte{0}))
	if _, err := cache.Get(u); err == nil {
		t.Fatalf("expected error for a missing source file")
	}

	if err := os.WriteFile(path, []byte("fn from_disk() {}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	prog, err := cache.Get(u)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if prog == nil {
		t.Fatalf("file-backed unit yielded nil program")
	}
	if got := comp.descs[0].Shader.Source(); !strings.Contains(got, "from_disk") {
		t.Fatalf("compiled source = %s", got)
	}
}

func TestProgramCacheEmptySourceYieldsNilProgram(t *testing.T) {
	comp := &stubCompiler{}
	cache := NewProgramCache(comp.compile)
	path := filepath.Join(t.TempDir(), "empty.wgsl")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	u := NewUnit("empty", WithSourcePath(path), WithVertexData([]byte{0}))
	prog, err := cache.Get(u)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if prog != nil {
		t.Fatalf("empty source compiled to a program")
	}
	if len(comp.descs) != 0 || cache.Len() != 0 {
		t.Fatalf("empty source reached the compiler")
	}
}

func TestProgramCacheEvictPathRecompilesFromDisk(t *testing.T) {
	comp := &stubCompiler{}
	cache := NewProgramCache(comp.compile)
	path := filepath.Join(t.TempDir(), "shader.wgsl")
	if err := os.WriteFile(path, []byte("fn v1() {}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	u := NewUnit("hot", WithSourcePath(path), WithVertexData([]byte{0}))
	if _, err := cache.Get(u); err != nil {
		t.Fatalf("Get: %v", err)
	}

	if err := os.WriteFile(path, []byte("fn v2() {}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cache.EvictPath(path)
	if cache.Len() != 0 {
		t.Fatalf("Len = %d after eviction, want 0", cache.Len())
	}
	if !comp.programs[0].released {
		t.Fatalf("evicted program not released")
	}

	if _, err := cache.Get(u); err != nil {
		t.Fatalf("Get after eviction: %v", err)
	}
	if len(comp.descs) != 2 {
		t.Fatalf("compiles = %d, want 2", len(comp.descs))
	}
	if got := comp.descs[1].Shader.Source(); !strings.Contains(got, "v2") {
		t.Fatalf("recompile did not pick up the new source: %s", got)
	}
}

func TestProgramCacheRelease(t *testing.T) {
	comp := &stubCompiler{}
	cache := NewProgramCache(comp.compile)

	u := NewUnit("u", WithSource("fn main() {}"), WithVertexData([]byte{0}))
	if _, err := cache.Get(u); err != nil {
		t.Fatalf("Get: %v", err)
	}

	cache.Release()
	if cache.Len() != 0 {
		t.Fatalf("Len = %d after release", cache.Len())
	}
	if !comp.programs[0].released {
		t.Fatalf("program not released")
	}

	// The cache stays usable and recompiles on demand.
	if _, err := cache.Get(u); err != nil {
		t.Fatalf("Get after release: %v", err)
	}
	if len(comp.descs) != 2 {
		t.Fatalf("compiles = %d, want 2", len(comp.descs))
	}
}
