package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	t.Run("heading", func(t *testing.T) {
		html := Render("# Title")
		assert.Contains(t, html, "<h1")
		assert.Contains(t, html, "Title")
	})

	t.Run("paragraph", func(t *testing.T) {
		assert.Contains(t, Render("plain text"), "<p>plain text</p>")
	})

	t.Run("gfm table", func(t *testing.T) {
		html := Render("| a | b |\n|---|---|\n| 1 | 2 |")
		assert.Contains(t, html, "<table>")
	})

	t.Run("empty source", func(t *testing.T) {
		assert.Equal(t, "", Render(""))
	})
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, " hello ", StripTags("<p>hello</p>"))
	assert.Equal(t, "no tags here", StripTags("no tags here"))

	// Tags become spaces so adjacent words stay separate
	assert.Equal(t, "a b", StripTags("a<br>b"))
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"whitespace only", "  \n\t ", 0},
		{"plain words", "one two three", 3},
		{"tags excluded", "<p>one two</p><div>three</div>", 3},
		{"tag glues nothing", "one<br>two", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WordCount(tt.content))
		})
	}
}
