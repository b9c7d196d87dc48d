package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pinscraper/pkg/models"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"https://i.pinimg.com/a.jpg", "https://i.pinimg.com/a.jpg"},
		{"https://i.pinimg.com/a.jpg?x=1", "https://i.pinimg.com/a.jpg"},
		{"https://i.pinimg.com/a.jpg?x=1?y=2", "https://i.pinimg.com/a.jpg"},
		{"https://i.pinimg.com/a.jpg?", "https://i.pinimg.com/a.jpg"},
		{"https://i.pinimg.com/a.jpg#frag", "https://i.pinimg.com/a.jpg#frag"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Canonicalize(tt.in))
		})
	}
}

func TestDedupe(t *testing.T) {
	candidates := []models.MediaCandidate{
		{Kind: models.Image, URL: "https://i.pinimg.com/a.jpg?w=1"},
		{Kind: models.Image, URL: "https://i.pinimg.com/b.png"},
		{Kind: models.Video, URL: "https://i.pinimg.com/a.jpg?w=2"},
		{Kind: models.Image, URL: "https://i.pinimg.com/b.png?cache=0"},
		{Kind: models.Video, URL: "https://v.pinimg.com/c.mp4"},
	}

	items := Dedupe(candidates)

	assert.Equal(t, []models.MediaItem{
		{Kind: models.Video, URL: "https://i.pinimg.com/a.jpg"},
		{Kind: models.Image, URL: "https://i.pinimg.com/b.png"},
		{Kind: models.Video, URL: "https://v.pinimg.com/c.mp4"},
	}, items)
}

func TestDedupeLastWriteWins(t *testing.T) {
	items := Dedupe([]models.MediaCandidate{
		{Kind: models.Video, URL: "https://x/y.mp4"},
		{Kind: models.Image, URL: "https://x/y.mp4?a"},
		{Kind: models.Video, URL: "https://x/y.mp4?b"},
		{Kind: models.Image, URL: "https://x/y.mp4?c"},
	})

	assert.Equal(t, []models.MediaItem{{Kind: models.Image, URL: "https://x/y.mp4"}}, items)
}

func TestDedupeEmpty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
	assert.Empty(t, Dedupe([]models.MediaCandidate{}))
}
