package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/srcindex/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{
			name:     "js extension",
			path:     "src/index.js",
			content:  "x",
			expected: "javascript",
		},
		{
			name:     "extension wins over content",
			path:     "lib/util.mjs",
			content:  "#!/usr/bin/env python3\nprint('hello')",
			expected: "javascript",
		},
		{
			name:     "shebang node",
			content:  "#!/usr/bin/env node\nmain();",
			expected: "javascript",
		},
		{
			name:     "shebang bash",
			content:  "#!/bin/bash\necho hello",
			expected: "bash",
		},
		{
			name:     "arrow function",
			content:  "const x = () => { return 42; };\nconsole.log(x());",
			expected: "javascript",
		},
		{
			name:     "type annotations",
			content:  "function greet(name: string): void {\n  console.log(name);\n}",
			expected: "typescript",
		},
		{
			name:     "json object",
			content:  `{"type": "Program", "body": []}`,
			expected: "json",
		},
		{
			name:     "empty content fallback",
			content:  "",
			expected: "text",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := langdetect.Detect(testCase.path, []byte(testCase.content))
			assert.Equal(t, testCase.expected, got)
		})
	}
}

func TestInterpreter(t *testing.T) {
	t.Parallel()

	lang, ok := langdetect.Interpreter([]byte("#!/usr/bin/env node\n"))
	assert.True(t, ok)
	assert.Equal(t, "javascript", lang)

	_, ok = langdetect.Interpreter([]byte("let a = 1;"))
	assert.False(t, ok)
}

func TestIsScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang     string
		expected bool
	}{
		{lang: "javascript", expected: true},
		{lang: "typescript", expected: true},
		{lang: "tsx", expected: true},
		{lang: "jsx", expected: true},
		{lang: "json", expected: false},
		{lang: "bash", expected: false},
		{lang: "text", expected: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.lang, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, langdetect.IsScript(testCase.lang))
		})
	}
}
