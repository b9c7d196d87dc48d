package extractor

import (
	"strings"

	"pinscraper/pkg/models"
)

// Canonicalize drops everything from the first '?' onward
func Canonicalize(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

// Dedupe collapses candidates to one item per canonical URL. Items keep the
// position of their first appearance, while the kind comes from the last
// candidate seen for that URL.
func Dedupe(candidates []models.MediaCandidate) []models.MediaItem {
	index := make(map[string]int, len(candidates))
	items := make([]models.MediaItem, 0, len(candidates))

	for _, c := range candidates {
		key := Canonicalize(c.URL)
		if i, ok := index[key]; ok {
			items[i].Kind = c.Kind
			continue
		}
		index[key] = len(items)
		items = append(items, models.MediaItem{Kind: c.Kind, URL: key})
	}

	return items
}
