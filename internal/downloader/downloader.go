package downloader

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"pinscraper/pkg/logger"
	"pinscraper/pkg/models"
	"pinscraper/pkg/progress"
	"pinscraper/pkg/storage"
)

// MediaOpener starts the transfer of a single media URL
type MediaOpener interface {
	Open(ctx context.Context, url string) (io.ReadCloser, int64, error)
}

// MediaStorage persists a media payload under a derived filename
type MediaStorage interface {
	Save(r io.Reader, name string) (string, int64, error)
}

// Downloader fetches media items one at a time. A failed item is reported
// and skipped; it never stops the items after it.
type Downloader struct {
	client  MediaOpener
	storage MediaStorage
	logger  logger.Logger
}

// New creates a Downloader
func New(client MediaOpener, storageManager MediaStorage, log logger.Logger) *Downloader {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Downloader{
		client:  client,
		storage: storageManager,
		logger:  log,
	}
}

// Run downloads every item in order and reports one line per item followed
// by a completion line. If ctx is cancelled the remaining items are skipped
// and a warning replaces the completion line.
func (d *Downloader) Run(ctx context.Context, items []models.MediaItem, reporter progress.Reporter) []models.DownloadOutcome {
	if reporter == nil {
		reporter = progress.Nop
	}

	total := len(items)
	outcomes := make([]models.DownloadOutcome, 0, total)
	start := time.Now()

	logger.LogComponentStart(d.logger, "downloader", map[string]interface{}{
		"items": total,
	})

	for i, item := range items {
		if ctx.Err() != nil {
			reporter.Report(fmt.Sprintf("%s Download cancelled after %d of %d items", progress.GlyphWarning, i, total))
			logger.LogComponentStop(d.logger, "downloader", "cancelled")
			return outcomes
		}

		outcomes = append(outcomes, d.downloadOne(ctx, item, i, total, reporter))
	}

	succeeded := 0
	for _, o := range outcomes {
		if o.Success {
			succeeded++
		}
	}

	reporter.Report(fmt.Sprintf("%s All downloads completed (%d saved, %d failed)",
		progress.GlyphComplete, succeeded, total-succeeded))

	d.logger.InfoWithFields("Download pass finished", map[string]interface{}{
		"succeeded": succeeded,
		"failed":    total - succeeded,
		"duration":  time.Since(start),
	})
	logger.LogComponentStop(d.logger, "downloader", "completed")

	return outcomes
}

// downloadOne transfers a single item and reports its outcome
func (d *Downloader) downloadOne(ctx context.Context, item models.MediaItem, index, total int, reporter progress.Reporter) models.DownloadOutcome {
	outcome := models.DownloadOutcome{Item: item}
	name := storage.DeriveFilename(item, index)

	d.logger.DebugWithFields("Downloading media item", map[string]interface{}{
		"index":    index + 1,
		"total":    total,
		"url":      item.URL,
		"filename": name,
	})

	body, _, err := d.client.Open(ctx, item.URL)
	if err != nil {
		return d.fail(outcome, index, total, err, reporter)
	}
	defer body.Close()

	path, size, err := d.storage.Save(body, name)
	if err != nil {
		return d.fail(outcome, index, total, err, reporter)
	}

	outcome.Success = true
	outcome.Filename = path

	logger.LogDownload(d.logger, item.URL, path, item.Kind.String(), size, nil)
	reporter.Report(fmt.Sprintf("%s [%d/%d] Saved %s: %s",
		progress.GlyphSuccess, index+1, total, item.Kind, filepath.Base(path)))

	return outcome
}

func (d *Downloader) fail(outcome models.DownloadOutcome, index, total int, err error, reporter progress.Reporter) models.DownloadOutcome {
	outcome.Error = err

	logger.LogDownload(d.logger, outcome.Item.URL, "", outcome.Item.Kind.String(), 0, err)
	reporter.Report(fmt.Sprintf("%s [%d/%d] Failed to download %s: %v",
		progress.GlyphFailure, index+1, total, outcome.Item.URL, err))

	return outcome
}
