package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Hello, World!", "hello-world"},
		{"already a slug", "hello-world", "hello-world"},
		{"mixed case", "My First POST", "my-first-post"},
		{"digits kept", "Go 1.23 Released", "go-1-23-released"},
		{"punctuation runs collapse", "What?! -- Really...", "what-really"},
		{"leading and trailing junk", "  ...Hello...  ", "hello"},
		{"unicode stripped", "Café au lait ☕", "caf-au-lait"},
		{"empty title", "", "post"},
		{"only punctuation", "?!&", "post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}

	t.Run("truncates long titles", func(t *testing.T) {
		slug := Slugify(strings.Repeat("a", 80))
		assert.Len(t, slug, 50)
	})

	t.Run("no trailing hyphen after truncation", func(t *testing.T) {
		// Cut lands exactly on a word boundary hyphen
		title := strings.Repeat("aaaaaaaaa ", 10)
		slug := Slugify(title)
		assert.LessOrEqual(t, len(slug), 50)
		assert.False(t, strings.HasSuffix(slug, "-"))
	})

	t.Run("output charset", func(t *testing.T) {
		titles := []string{
			"Hello, World!",
			"Ünïcödé Everywhere",
			"100% Pure GO — and then some",
			"tabs\tand\nnewlines",
		}
		for _, title := range titles {
			slug := Slugify(title)
			assert.False(t, strings.HasPrefix(slug, "-"), "slug %q has leading hyphen", slug)
			assert.False(t, strings.HasSuffix(slug, "-"), "slug %q has trailing hyphen", slug)
			for _, r := range slug {
				valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
				assert.True(t, valid, "slug %q contains invalid rune %q", slug, r)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Slugify("Some Title"), Slugify("Some Title"))
	})
}
