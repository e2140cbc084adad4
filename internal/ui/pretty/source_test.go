package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/srcindex/internal/ui/pretty"
)

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		line   string
		column int
		want   string
	}{
		{
			name:   "caret under column",
			line:   "let x = 1;",
			column: 4,
			want:   "    let x = 1;\n        ^\n",
		},
		{
			name:   "column zero",
			line:   "foo()",
			column: 0,
			want:   "    foo()\n    ^\n",
		},
		{
			name:   "end of line",
			line:   "ab",
			column: 2,
			want:   "    ab\n      ^\n",
		},
		{
			name:   "tab counts as one cell",
			line:   "\tx",
			column: 1,
			want:   "     x\n     ^\n",
		},
		{
			name:   "multi-byte prefix",
			line:   "'é' + y",
			column: 7,
			want:   "    'é' + y\n          ^\n",
		},
		{
			name:   "wide characters take two cells",
			line:   "'日本' + y",
			column: 11,
			want:   "    '日本' + y\n" + strings.Repeat(" ", 13) + "^\n",
		},
		{
			name:   "column past line has no caret",
			line:   "ab",
			column: 5,
			want:   "    ab\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, styles.FormatSourceContext(testCase.line, testCase.column))
		})
	}
}

func TestFormatSourceContext_Highlighted(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	out := styles.FormatSourceContext("function greet(name) {}", 9)

	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "greet")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestFormatComment(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "// note", styles.FormatComment("Line", " note"))
	assert.Equal(t, "/** doc */", styles.FormatComment("Block", "* doc "))
	assert.Equal(t, "#!/usr/bin/env node", styles.FormatComment("Shebang", "/usr/bin/env node"))
	assert.Equal(t, "raw", styles.FormatComment("Other", "raw"))
}

func TestFormatNode(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "Identifier [4, 7)", styles.FormatNode("Identifier", 4, 7))
	assert.Equal(t, "2:5", styles.FormatPosition(2, 5))
}
