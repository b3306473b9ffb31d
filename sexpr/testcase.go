package sexpr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputFence is the language of the code fence holding the program
// of a test case.
const InputFence = "crux"

// AssertionType represents the language of an assertion code fence.
type AssertionType string

const (
	// AssertionAST compares the decoded program with its printed form.
	AssertionAST AssertionType = "ast"
	// AssertionAsm requires the fence's lines to appear in the generated
	// assembly as a contiguous run.
	AssertionAsm AssertionType = "asm"
	// AssertionFrames compares the activation record layout.
	AssertionFrames AssertionType = "frames"
	// AssertionOutput compares what the program prints when run.
	AssertionOutput AssertionType = "output"
	// AssertionCompileError requires compilation to fail with an error
	// containing the fence's content.
	AssertionCompileError AssertionType = "compile-error"
)

var assertionTypes = []AssertionType{
	AssertionAST,
	AssertionAsm,
	AssertionFrames,
	AssertionOutput,
	AssertionCompileError,
}

type Assertion struct {
	Type    AssertionType
	Content string
	Line    int
}

// TestCase is a program and its assertions extracted from Markdown.
type TestCase struct {
	Name       string // heading text after "Test: "
	Input      string
	Assertions []Assertion
}

// ExtractTestCases parses a Markdown document and extracts every test case.
// A test case starts at a heading "Test: name" and is followed by exactly
// one crux fence and at least one assertion fence.
func ExtractTestCases(markdown string) ([]TestCase, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []TestCase
	var current *TestCase

	flush := func() error {
		if current == nil {
			return nil
		}
		if current.Input == "" {
			return fmt.Errorf("test '%s' has no input fence", current.Name)
		}
		if len(current.Assertions) == 0 {
			return fmt.Errorf("test '%s' has no assertion fences", current.Name)
		}
		cases = append(cases, *current)
		return nil
	}

	err := gast.Walk(doc, func(node gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *gast.Heading:
			heading := textOf(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return gast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return gast.WalkStop, err
			}
			current = &TestCase{Name: strings.TrimPrefix(heading, "Test: ")}

		case *gast.FencedCodeBlock:
			language := string(n.Language(source))
			line := lineOf(n, source)
			if language == "" {
				return gast.WalkContinue, nil
			}
			if current == nil {
				return gast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
			}

			content := strings.TrimRight(contentOf(n, source), "\n")
			switch {
			case language == InputFence:
				if current.Input != "" {
					return gast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", line, current.Name)
				}
				current.Input = content
			case isAssertion(language):
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionType(language),
					Content: content,
					Line:    line,
				})
			default:
				return gast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, current.Name)
			}
		}

		return gast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func isAssertion(language string) bool {
	for _, t := range assertionTypes {
		if string(t) == language {
			return true
		}
	}
	return false
}

func textOf(node gast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = gast.Walk(node, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if t, ok := n.(*gast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return gast.WalkContinue, nil
	})
	return buf.String()
}

func contentOf(block *gast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

func lineOf(node gast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:min(start, len(source))], []byte("\n")) + 1
}
