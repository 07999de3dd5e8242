package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "heading and paragraph",
			in:   "<h2>Sum</h2><p>Write a function that adds two numbers.</p>",
			want: "## Sum\n\nWrite a function that adds two numbers.",
		},
		{
			name: "inline code and emphasis",
			in:   "<p>Implement <code>Sum(a, b int) int</code> and <strong>do not</strong> print.</p>",
			want: "Implement `Sum(a, b int) int` and **do not** print.",
		},
		{
			name: "unordered list",
			in:   "<ul><li>one</li><li>two</li></ul>",
			want: "- one\n- two",
		},
		{
			name: "ordered list",
			in:   "<ol><li>read</li><li>write</li></ol>",
			want: "1. read\n2. write",
		},
		{
			name: "link",
			in:   `<p>See <a href="https://go.dev/tour">the tour</a></p>`,
			want: "See [the tour](https://go.dev/tour)",
		},
		{
			name: "scripts dropped",
			in:   "<p>visible</p><script>alert(1)</script>",
			want: "visible",
		},
		{
			name: "plain text",
			in:   "Just   text",
			want: "Just text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMarkdown(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToMarkdown_PreservesPreformatted(t *testing.T) {
	in := "<p>Example:</p><pre><code>func Sum(a, b int) int {\n\treturn a + b\n}</code></pre>"

	got, err := ToMarkdown(in)
	require.NoError(t, err)
	assert.Equal(t, "Example:\n\n```\nfunc Sum(a, b int) int {\n\treturn a + b\n}\n```", got)
}

func TestRenderer_Plain(t *testing.T) {
	r, err := NewPlainRenderer(60)
	require.NoError(t, err)
	assert.Equal(t, 60, r.Width())

	out := r.Render("<h1>Exercise</h1><p>Add the numbers.</p>")
	assert.Contains(t, out, "Exercise")
	assert.Contains(t, out, "Add the numbers.")
}
