package shader

import (
	"fmt"
	"os"
	"sync"

	"github.com/XingYaoA/manim/common"
)

// CompileFunc turns a program descriptor into a compiled Program. The renderer
// supplies this so the cache stays free of GPU API types.
type CompileFunc func(desc ProgramDescriptor) (Program, error)

// programCacheImpl is the implementation of the ProgramCache interface.
type programCacheImpl struct {
	mu       sync.Mutex
	compile  CompileFunc
	pp       PreProcessor
	programs map[ProgramKey]Program
	pathKeys map[string][]ProgramKey
}

// ProgramCache compiles and shares programs keyed by unit signature. Two units
// with identical source, topology, and depth flag resolve to the same Program
// instance no matter how their uniform or texture values differ. Compilation
// happens once per key; subsequent requests are lookups.
type ProgramCache interface {
	// Get resolves the unit's program, compiling it on first request. Units
	// whose source resolves to an empty string yield a nil Program with no
	// error. File-backed sources are read from disk on the compiling request.
	//
	// Parameters:
	//   - u: the shader unit to resolve
	//
	// Returns:
	//   - Program: the shared compiled program, or nil for empty sources
	//   - error: an error if the source could not be read or compiled
	Get(u Unit) (Program, error)

	// Lookup returns the cached program for a key without compiling.
	//
	// Parameters:
	//   - key: the program key
	//
	// Returns:
	//   - Program: the cached program
	//   - bool: true if the key is present
	Lookup(key ProgramKey) (Program, bool)

	// Evict releases and removes the program stored under the key. Unknown
	// keys are a no-op.
	//
	// Parameters:
	//   - key: the program key to evict
	Evict(key ProgramKey)

	// EvictPath releases and removes every program compiled from the given
	// source file. The next Get re-reads the file, which is how shader hot
	// reload takes effect.
	//
	// Parameters:
	//   - path: the source file path
	EvictPath(path string)

	// Len reports the number of cached programs.
	//
	// Returns:
	//   - int: the cache size
	Len() int

	// Release evicts every cached program. The cache remains usable afterwards.
	Release()
}

var _ ProgramCache = &programCacheImpl{}

// ProgramCacheBuilderOption configures a ProgramCache during construction.
type ProgramCacheBuilderOption func(*programCacheImpl)

// WithPreProcessor replaces the cache's pre-processor.
//
// Parameters:
//   - pp: the pre-processor to use for #INSERT resolution
//
// Returns:
//   - ProgramCacheBuilderOption: the option to apply
func WithPreProcessor(pp PreProcessor) ProgramCacheBuilderOption {
	return func(c *programCacheImpl) {
		c.pp = pp
	}
}

// WithCacheSnippet registers a named snippet on the cache's pre-processor.
//
// Parameters:
//   - name: the snippet name referenced by #INSERT directives
//   - source: the WGSL text to inject
//
// Returns:
//   - ProgramCacheBuilderOption: the option to apply
func WithCacheSnippet(name, source string) ProgramCacheBuilderOption {
	return func(c *programCacheImpl) {
		c.pp.Register(name, source)
	}
}

// NewProgramCache creates a new ProgramCache backed by the given compile
// function.
//
// Parameters:
//   - compile: the function that compiles descriptors into Programs
//   - options: variadic list of ProgramCacheBuilderOption functions
//
// Returns:
//   - ProgramCache: a new ProgramCache instance
func NewProgramCache(compile CompileFunc, options ...ProgramCacheBuilderOption) ProgramCache {
	if compile == nil {
		panic("shader: program cache requires a compile function")
	}
	c := &programCacheImpl{
		compile:  compile,
		pp:       NewPreProcessor(),
		programs: make(map[ProgramKey]Program),
		pathKeys: make(map[string][]ProgramKey),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *programCacheImpl) Get(u Unit) (Program, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := u.Signature()
	if prog, ok := c.programs[key]; ok {
		return prog, nil
	}

	source := u.Source()
	if source == "" && u.SourcePath() != "" {
		data, err := os.ReadFile(u.SourcePath())
		if err != nil {
			return nil, fmt.Errorf("failed to read shader source %s: %w", u.SourcePath(), err)
		}
		source = string(data)
	}
	if source == "" {
		return nil, nil
	}

	processed, err := c.pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("failed to pre-process shader %s: %w", u.Name(), err)
	}

	desc := ProgramDescriptor{
		Key:       key,
		Shader:    NewShader(u.Name(), processed),
		Topology:  u.Topology(),
		DepthTest: u.DepthTest(),
	}
	prog, err := c.compile(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader %s: %w", u.Name(), err)
	}

	c.programs[key] = prog
	if path := u.SourcePath(); path != "" {
		c.pathKeys[path] = append(c.pathKeys[path], key)
	}
	common.Logger().Debug("compiled shader program", "name", u.Name(), "key", key)
	return prog, nil
}

func (c *programCacheImpl) Lookup(key ProgramKey) (Program, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[key]
	return prog, ok
}

func (c *programCacheImpl) Evict(key ProgramKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked(key)
}

func (c *programCacheImpl) EvictPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range c.pathKeys[path] {
		c.evictLocked(key)
	}
	delete(c.pathKeys, path)
}

func (c *programCacheImpl) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.programs)
}

func (c *programCacheImpl) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.programs {
		c.evictLocked(key)
	}
	c.pathKeys = make(map[string][]ProgramKey)
}

func (c *programCacheImpl) evictLocked(key ProgramKey) {
	if prog, ok := c.programs[key]; ok {
		prog.Release()
		delete(c.programs, key)
	}
}
