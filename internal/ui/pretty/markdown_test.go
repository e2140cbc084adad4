package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/srcindex/internal/ui/pretty"
)

func TestMarkdownRenderer(t *testing.T) {
	t.Parallel()

	renderer := pretty.NewMarkdownRenderer(false, 80)

	tests := []struct {
		name     string
		markdown string
		contains []string
		empty    bool
	}{
		{
			name:     "blank input",
			markdown: " \n\n",
			empty:    true,
		},
		{
			name:     "paragraphs",
			markdown: "Greets a person.\n\nReturns the `name` unchanged.",
			contains: []string{"Greets a person.", "Returns the", "name"},
		},
		{
			name:     "list",
			markdown: "Options:\n\n- fast\n- safe",
			contains: []string{"Options:", "fast", "safe"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			out := renderer.Render(testCase.markdown)
			if testCase.empty {
				assert.Empty(t, out)
				return
			}

			assert.True(t, strings.HasSuffix(out, "\n"))
			assert.False(t, strings.HasPrefix(out, "\n"))
			for _, want := range testCase.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}
