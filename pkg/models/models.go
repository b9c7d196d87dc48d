package models

import "strings"

// MediaKind classifies a discovered asset
type MediaKind int

const (
	Image MediaKind = iota
	Video
)

var (
	imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}
	videoExtensions = []string{".mp4", ".webm", ".mov"}
)

// String returns the lowercase kind name used in synthesized filenames
func (k MediaKind) String() string {
	switch k {
	case Video:
		return "video"
	default:
		return "image"
	}
}

// Extensions returns the accepted extension set for the kind
func (k MediaKind) Extensions() []string {
	if k == Video {
		return videoExtensions
	}
	return imageExtensions
}

// DefaultExtension returns the extension used when a filename has none or a mismatched one
func (k MediaKind) DefaultExtension() string {
	if k == Video {
		return ".mp4"
	}
	return ".jpg"
}

// Accepts reports whether ext (including the dot) belongs to the kind's extension set
func (k MediaKind) Accepts(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range k.Extensions() {
		if e == ext {
			return true
		}
	}
	return false
}

// ContainsExtension reports whether the lowercased URL contains any of the
// kind's extensions anywhere in the string. This is a substring match, so
// query-embedded extensions qualify too.
func (k MediaKind) ContainsExtension(url string) bool {
	lower := strings.ToLower(url)
	for _, e := range k.Extensions() {
		if strings.Contains(lower, e) {
			return true
		}
	}
	return false
}

// MediaCandidate is a raw extraction result
type MediaCandidate struct {
	Kind MediaKind
	URL  string
}

// MediaItem is a candidate after canonicalization. URL holds the canonical
// form (query string removed).
type MediaItem struct {
	Kind MediaKind
	URL  string
}

// DownloadOutcome is the per-item result of a download pass
type DownloadOutcome struct {
	Item     MediaItem
	Success  bool
	Filename string
	Error    error
}

// Summary describes a finished pipeline run
type Summary struct {
	Found     int
	Succeeded int
	Failed    int
}

// AllFailed reports whether media was found but nothing could be saved
func (s Summary) AllFailed() bool {
	return s.Found > 0 && s.Succeeded == 0
}
