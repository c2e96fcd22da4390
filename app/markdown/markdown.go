// Package markdown renders post content and derives plain-text measures
// from it.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// renderer configured with the GFM extension set plus raw-URL linkify.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(),
	),
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Render converts markdown source to HTML.
func Render(source string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	return buf.String()
}

// StripTags replaces markup tags in s with spaces so that adjacent words
// are not glued together.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, " ")
}

// WordCount returns the number of whitespace-delimited tokens in s after
// markup tags are stripped.
func WordCount(s string) int {
	return len(strings.Fields(StripTags(s)))
}
