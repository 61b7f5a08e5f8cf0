// pre_processor.go implements the WGSL shader pre-processor. It scans shader
// source code for #INSERT directives and replaces each one with a registered
// WGSL snippet, so shared struct definitions (such as the perspective uniform
// block) are written once and injected into every shader that needs them.
package shader

import (
	"fmt"
	"strings"
)

// insertPrefix is the directive marker. A directive occupies a whole line:
//
//	#INSERT <snippet_name>
const insertPrefix = "#INSERT"

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// snippets maps snippet names to their WGSL source text.
	snippets map[string]string
}

// PreProcessor processes raw WGSL shader source code containing #INSERT
// directives, replacing them with registered snippet sources. Snippets may
// themselves contain further #INSERT directives.
type PreProcessor interface {
	// Register adds or replaces a named snippet in the registry.
	//
	// Parameters:
	//   - name: the snippet name referenced by #INSERT directives
	//   - source: the WGSL text to inject
	Register(name, source string)

	// Process takes raw WGSL shader source code and replaces every #INSERT
	// directive with the registered snippet of the same name. Directives are
	// resolved recursively; a cycle or an unknown snippet name is an error.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code
	//
	// Returns:
	//   - string: the processed WGSL shader source code with directives replaced
	//   - error: an error if a directive is malformed, unknown, or cyclic
	Process(source string) (string, error)
}

var _ PreProcessor = &preProcessor{}

// PreProcessorBuilderOption configures a PreProcessor during construction.
type PreProcessorBuilderOption func(*preProcessor)

// WithSnippet registers a named snippet at construction time.
//
// Parameters:
//   - name: the snippet name referenced by #INSERT directives
//   - source: the WGSL text to inject
//
// Returns:
//   - PreProcessorBuilderOption: the option to apply
func WithSnippet(name, source string) PreProcessorBuilderOption {
	return func(p *preProcessor) {
		p.snippets[name] = source
	}
}

// NewPreProcessor creates a new PreProcessor with the provided snippets registered.
//
// Parameters:
//   - options: variadic list of PreProcessorBuilderOption functions
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(options ...PreProcessorBuilderOption) PreProcessor {
	p := &preProcessor{
		snippets: make(map[string]string),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *preProcessor) Register(name, source string) {
	p.snippets[name] = source
}

func (p *preProcessor) Process(source string) (string, error) {
	return p.process(source, make(map[string]bool))
}

// process resolves directives recursively. The active set guards against
// snippets that insert themselves.
func (p *preProcessor) process(source string, active map[string]bool) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, insertPrefix) {
			out = append(out, line)
			continue
		}

		args := strings.Fields(trimmed)
		if len(args) != 2 {
			return "", fmt.Errorf("line %d: %s directive requires exactly one snippet name", i+1, insertPrefix)
		}

		name := args[1]
		snippet, ok := p.snippets[name]
		if !ok {
			return "", fmt.Errorf("line %d: unknown %s snippet %q", i+1, insertPrefix, name)
		}
		if active[name] {
			return "", fmt.Errorf("line %d: %s cycle through snippet %q", i+1, insertPrefix, name)
		}

		active[name] = true
		resolved, err := p.process(snippet, active)
		if err != nil {
			return "", err
		}
		delete(active, name)

		out = append(out, resolved)
	}
	return strings.Join(out, "\n"), nil
}
