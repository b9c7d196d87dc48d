package scraper

import (
	"context"

	"pinscraper/pkg/models"
	"pinscraper/pkg/progress"
)

// PageFetcher retrieves the raw HTML of a pin page
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// MediaExtractor finds media references in a page body
type MediaExtractor interface {
	Extract(body []byte, baseURL string) ([]models.MediaCandidate, error)
}

// MediaDownloader downloads a deduplicated item list and reports progress
type MediaDownloader interface {
	Run(ctx context.Context, items []models.MediaItem, reporter progress.Reporter) []models.DownloadOutcome
}
