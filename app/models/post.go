package models

import (
	"errors"
	"fmt"
	"time"

	"inkwell/app/markdown"
)

// wordsPerMinute is the reading speed used for the reading-time estimate.
const wordsPerMinute = 200

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
}

// SetStatus transitions the post to the given lifecycle state. Entering
// published for the first time stamps PublishedAt; the stamp records first
// publication and is never reset by later archive/republish cycles.
func (p *Post) SetStatus(status string) error {
	switch status {
	case StatusDraft, StatusPublished, StatusArchived:
	default:
		return fmt.Errorf("invalid status %q", status)
	}

	if status == StatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	p.Status = status
	return nil
}

// RecalculateReadingTime recomputes the reading-time estimate from the
// current content: ceil(words/200) minutes, at least 1 for non-empty
// content and 0 for empty content. Content that strips to zero words
// (markup only) still counts as a minute.
func (p *Post) RecalculateReadingTime() {
	if p.Content == "" {
		p.ReadingTime = 0
		return
	}
	words := markdown.WordCount(p.Content)
	if words < 1 {
		words = 1
	}
	p.ReadingTime = (words + wordsPerMinute - 1) / wordsPerMinute
}

// ToggleLike flips the given user's membership in the likes set and
// reports whether the post is liked afterwards.
func (p *Post) ToggleLike(userID int) bool {
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return false
		}
	}
	p.Likes = append(p.Likes, userID)
	return true
}
