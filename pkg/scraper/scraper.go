package scraper

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"pinscraper/internal/downloader"
	"pinscraper/pkg/config"
	"pinscraper/pkg/errors"
	"pinscraper/pkg/extractor"
	"pinscraper/pkg/logger"
	"pinscraper/pkg/models"
	"pinscraper/pkg/pinterest"
	"pinscraper/pkg/progress"
	"pinscraper/pkg/storage"
)

// Scraper orchestrates a pin page download: fetch, extract, dedupe, download
type Scraper struct {
	fetcher    PageFetcher
	extractor  MediaExtractor
	downloader MediaDownloader
	saveFolder string
	logger     logger.Logger
}

// New wires a Scraper from configuration. saveFolder is created here if it
// does not exist yet.
func New(cfg *config.Config, saveFolder string, log logger.Logger) (*Scraper, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	manager, err := storage.NewManager(saveFolder, cfg.Download.ChunkSize)
	if err != nil {
		return nil, err
	}

	client := pinterest.NewClientWithConfig(cfg, log)

	s := NewWithComponents(client, extractor.New(log), downloader.New(client, manager, log), log)
	s.saveFolder = manager.GetOutputDir()
	return s, nil
}

// NewWithComponents assembles a Scraper from explicit collaborators
func NewWithComponents(fetcher PageFetcher, ex MediaExtractor, dl MediaDownloader, log logger.Logger) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Scraper{
		fetcher:    fetcher,
		extractor:  ex,
		downloader: dl,
		logger:     log,
	}
}

// SaveFolder returns the folder media is written to
func (s *Scraper) SaveFolder() string {
	return s.saveFolder
}

// Run processes one pin page. Every user-facing status line goes to
// reporter; the returned Summary counts the media found and saved.
//
// A fetch failure is reported once and returned. A page without media is a
// normal outcome and returns a zero Summary. Anything unexpected, panics
// included, is reported as a critical error and ends the run.
func (s *Scraper) Run(ctx context.Context, pageURL string, reporter progress.Reporter) (summary models.Summary, err error) {
	if reporter == nil {
		reporter = progress.Nop
	}

	log := s.logger.WithField("pin_url", pageURL)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = &errors.Error{
				Type:    errors.ErrorTypeUnexpected,
				Message: fmt.Sprintf("panic: %v", r),
				URL:     pageURL,
			}
			log.ErrorWithFields("Pipeline panicked", map[string]interface{}{
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			})
			reporter.Report(fmt.Sprintf("%s Critical error: %v", progress.GlyphFailure, r))
		}
	}()

	reporter.Report(fmt.Sprintf("%s Fetching pin page: %s", progress.GlyphInfo, pageURL))

	body, err := s.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		log.WithError(err).Error("Failed to fetch pin page")
		reporter.Report(fmt.Sprintf("%s Failed to fetch page: %v", progress.GlyphFailure, err))
		return summary, err
	}

	candidates, err := s.extractor.Extract(body, pageURL)
	if err != nil {
		log.WithError(err).Error("Failed to extract media")
		reporter.Report(fmt.Sprintf("%s Critical error: %v", progress.GlyphFailure, err))
		return summary, err
	}

	items := extractor.Dedupe(candidates)
	log.DebugWithFields("Media extracted", map[string]interface{}{
		"candidates": len(candidates),
		"unique":     len(items),
	})

	if len(items) == 0 {
		reporter.Report(fmt.Sprintf("%s No media found on this page", progress.GlyphInfo))
		return summary, nil
	}

	reporter.Report(fmt.Sprintf("%s Found %d media item(s)", progress.GlyphInfo, len(items)))

	outcomes := s.downloader.Run(ctx, items, reporter)

	summary.Found = len(items)
	for _, o := range outcomes {
		if o.Success {
			summary.Succeeded++
		}
	}
	summary.Failed = summary.Found - summary.Succeeded

	log.InfoWithFields("Pin page processed", map[string]interface{}{
		"found":     summary.Found,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
		"duration":  time.Since(start),
	})

	if ctxErr := ctx.Err(); ctxErr != nil {
		return summary, ctxErr
	}
	return summary, nil
}
