package sexpr

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestExtractTestCases(t *testing.T) {
	md := "# Suite\n\nSome prose.\n\n" +
		"## Test: first\n\n" +
		"```crux\n(program (func main () void))\n```\n\n" +
		"```asm\nmain:\n```\n\n" +
		"```frames\nmain 0\n```\n\n" +
		"## Test: second\n\n" +
		"```crux\n(program)\n```\n\n" +
		"```compile-error\nmain\n```\n"

	cases, err := ExtractTestCases(md)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	be.Equal(t, cases[0].Name, "first")
	be.Equal(t, cases[0].Input, "(program (func main () void))")
	be.Equal(t, len(cases[0].Assertions), 2)
	be.Equal(t, cases[0].Assertions[0].Type, AssertionAsm)
	be.Equal(t, cases[0].Assertions[0].Content, "main:")
	be.Equal(t, cases[0].Assertions[1].Type, AssertionFrames)

	be.Equal(t, cases[1].Name, "second")
	be.Equal(t, cases[1].Assertions[0].Type, AssertionCompileError)
	be.Equal(t, cases[1].Assertions[0].Line, 26)
}

func TestExtractTestCases_Errors(t *testing.T) {
	tests := []struct {
		name   string
		md     string
		expect string
	}{
		{
			name:   "fence outside test",
			md:     "```asm\nnop\n```\n",
			expect: "asm fence found outside of test case",
		},
		{
			name:   "unknown language",
			md:     "## Test: t\n\n```crux\n(program)\n```\n\n```python\nx\n```\n",
			expect: "unknown fence language 'python'",
		},
		{
			name:   "no input",
			md:     "## Test: t\n\n```asm\nnop\n```\n",
			expect: "test 't' has no input fence",
		},
		{
			name:   "no assertion",
			md:     "## Test: t\n\n```crux\n(program)\n```\n",
			expect: "test 't' has no assertion fences",
		},
		{
			name:   "two inputs",
			md:     "## Test: t\n\n```crux\n(program)\n```\n\n```crux\n(program)\n```\n",
			expect: "multiple input fences",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ExtractTestCases(test.md)
			be.Err(t, err, test.expect)
		})
	}
}

func TestExtractTestCases_PlainFencesIgnored(t *testing.T) {
	md := "```\nuntagged\n```\n\n## Test: t\n\n```crux\n(program)\n```\n\n```\nnote\n```\n\n```asm\nnop\n```\n"

	cases, err := ExtractTestCases(md)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 1)
	be.Equal(t, len(cases[0].Assertions), 1)
}
