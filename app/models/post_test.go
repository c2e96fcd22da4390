package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPost() *Post {
	post := &Post{
		Title:    "Test Post",
		Content:  "This is a test post content",
		AuthorID: 1,
	}
	post.BeforeCreate()
	return post
}

func TestPostValidate(t *testing.T) {
	t.Run("valid post", func(t *testing.T) {
		assert.NoError(t, validPost().Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		post := validPost()
		post.Title = ""
		assert.Error(t, post.Validate())
	})

	t.Run("missing author", func(t *testing.T) {
		post := validPost()
		post.AuthorID = 0
		assert.Error(t, post.Validate())
	})

	t.Run("unknown status", func(t *testing.T) {
		post := validPost()
		post.Status = "pending"
		assert.Error(t, post.Validate())
	})

	t.Run("zero created_at", func(t *testing.T) {
		post := validPost()
		post.CreatedAt = time.Time{}
		assert.Error(t, post.Validate())
	})
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{Title: "T", Content: "C", AuthorID: 1}
	post.BeforeCreate()

	assert.False(t, post.CreatedAt.IsZero())
	assert.False(t, post.UpdatedAt.IsZero())
	assert.Equal(t, StatusDraft, post.Status)
	assert.Nil(t, post.PublishedAt)
}

func TestPostSetStatus(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		post := validPost()
		assert.Error(t, post.SetStatus("pending"))
		assert.Equal(t, StatusDraft, post.Status)
	})

	t.Run("first publish stamps published_at", func(t *testing.T) {
		post := validPost()
		require.Nil(t, post.PublishedAt)

		require.NoError(t, post.SetStatus(StatusPublished))
		require.NotNil(t, post.PublishedAt)
		assert.WithinDuration(t, time.Now(), *post.PublishedAt, time.Second)
	})

	t.Run("archive and republish keep the first stamp", func(t *testing.T) {
		post := validPost()
		require.NoError(t, post.SetStatus(StatusPublished))
		first := *post.PublishedAt

		require.NoError(t, post.SetStatus(StatusArchived))
		assert.Equal(t, first, *post.PublishedAt)

		require.NoError(t, post.SetStatus(StatusPublished))
		assert.Equal(t, first, *post.PublishedAt)
	})

	t.Run("unpublish keeps the stamp", func(t *testing.T) {
		post := validPost()
		require.NoError(t, post.SetStatus(StatusPublished))
		first := *post.PublishedAt

		require.NoError(t, post.SetStatus(StatusDraft))
		assert.Equal(t, StatusDraft, post.Status)
		assert.Equal(t, first, *post.PublishedAt)
	})
}

func TestPostRecalculateReadingTime(t *testing.T) {
	t.Run("empty content", func(t *testing.T) {
		post := validPost()
		post.Content = ""
		post.RecalculateReadingTime()
		assert.Equal(t, 0, post.ReadingTime)
	})

	t.Run("short content rounds up to one minute", func(t *testing.T) {
		post := validPost()
		post.Content = "just a few words"
		post.RecalculateReadingTime()
		assert.Equal(t, 1, post.ReadingTime)
	})

	t.Run("300 words is two minutes", func(t *testing.T) {
		post := validPost()
		post.Content = strings.TrimSpace(strings.Repeat("word ", 300))
		post.RecalculateReadingTime()
		assert.Equal(t, 2, post.ReadingTime)
	})

	t.Run("exact multiple", func(t *testing.T) {
		post := validPost()
		post.Content = strings.TrimSpace(strings.Repeat("word ", 400))
		post.RecalculateReadingTime()
		assert.Equal(t, 2, post.ReadingTime)
	})

	t.Run("markup tags do not count as words", func(t *testing.T) {
		post := validPost()
		post.Content = "<p>one two</p><br/><div>three</div>"
		post.RecalculateReadingTime()
		assert.Equal(t, 1, post.ReadingTime)
	})

	t.Run("markup-only content still takes a minute", func(t *testing.T) {
		post := validPost()
		post.Content = "<p></p>"
		post.RecalculateReadingTime()
		assert.Equal(t, 1, post.ReadingTime)
	})

	t.Run("idempotent for unchanged content", func(t *testing.T) {
		post := validPost()
		post.Content = strings.Repeat("word ", 250)
		post.RecalculateReadingTime()
		first := post.ReadingTime
		post.RecalculateReadingTime()
		assert.Equal(t, first, post.ReadingTime)
	})
}

func TestPostToggleLike(t *testing.T) {
	post := validPost()

	assert.True(t, post.ToggleLike(7))
	assert.Equal(t, []int{7}, post.Likes)

	// No duplicates
	assert.False(t, post.ToggleLike(7))
	assert.Empty(t, post.Likes)

	post.ToggleLike(1)
	post.ToggleLike(2)
	assert.True(t, post.ToggleLike(3))
	assert.False(t, post.ToggleLike(2))
	assert.Equal(t, []int{1, 3}, post.Likes)
}
