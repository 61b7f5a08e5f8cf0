package shader

import (
	"strings"
	"testing"
)

func TestPreProcessorPassthrough(t *testing.T) {
	pp := NewPreProcessor()
	// A commented-out directive is not a directive.
	source := "fn main() {}\n// #INSERT not_a_directive"
	got, err := pp.Process(source)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got != source {
		t.Fatalf("directive-free source was modified")
	}
}

func TestPreProcessorInsertsSnippets(t *testing.T) {
	pp := NewPreProcessor(WithSnippet("uniforms", "struct U { x: f32 }"))

	got, err := pp.Process("#INSERT uniforms\nfn main() {}")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.Contains(got, "struct U { x: f32 }") {
		t.Fatalf("snippet not inserted: %s", got)
	}
	if strings.Contains(got, "#INSERT") {
		t.Fatalf("directive survived: %s", got)
	}
}

func TestPreProcessorIndentedDirective(t *testing.T) {
	pp := NewPreProcessor(WithSnippet("s", "inserted"))
	got, err := pp.Process("    #INSERT s")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got != "inserted" {
		t.Fatalf("got %q", got)
	}
}

func TestPreProcessorNestedSnippets(t *testing.T) {
	pp := NewPreProcessor(
		WithSnippet("outer", "before\n#INSERT inner\nafter"),
		WithSnippet("inner", "middle"),
	)
	got, err := pp.Process("#INSERT outer")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got != "before\nmiddle\nafter" {
		t.Fatalf("got %q", got)
	}
}

func TestPreProcessorErrors(t *testing.T) {
	tests := []struct {
		name     string
		snippets map[string]string
		source   string
	}{
		{"unknown snippet", nil, "#INSERT nope"},
		{"missing name", nil, "#INSERT"},
		{"extra arguments", nil, "#INSERT one two"},
		{"direct cycle", map[string]string{"self": "#INSERT self"}, "#INSERT self"},
		{"indirect cycle", map[string]string{"a": "#INSERT b", "b": "#INSERT a"}, "#INSERT a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pp := NewPreProcessor()
			for name, src := range tt.snippets {
				pp.Register(name, src)
			}
			if _, err := pp.Process(tt.source); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestPreProcessorRepeatedSnippetIsNotACycle(t *testing.T) {
	pp := NewPreProcessor(WithSnippet("s", "x"))
	got, err := pp.Process("#INSERT s\n#INSERT s")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got != "x\nx" {
		t.Fatalf("got %q", got)
	}
}
