package ui

import (
	"context"
	"errors"
	"fmt"

	"pinscraper/pkg/models"
)

// NoticeLevel grades the final notice of a run
type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeWarning
	NoticeError
)

// Notice is the closing message shown once a run is over
type Notice struct {
	Level   NoticeLevel
	Title   string
	Message string
}

// NoticeFor picks the final notice for a finished run. Runs that found
// media but saved none get a warning instead of the success notice.
func NoticeFor(summary models.Summary, err error, saveFolder string) Notice {
	switch {
	case errors.Is(err, context.Canceled):
		return Notice{NoticeWarning, "Cancelled", "The download was interrupted"}
	case err != nil:
		return Notice{NoticeError, "Download failed", err.Error()}
	case summary.Found == 0:
		return Notice{NoticeWarning, "Nothing to download", "No media found on this page"}
	case summary.AllFailed():
		return Notice{NoticeWarning, "Download finished",
			fmt.Sprintf("None of the %d media item(s) could be saved", summary.Found)}
	default:
		return Notice{NoticeSuccess, "Download complete",
			fmt.Sprintf("%d of %d media item(s) saved to %s", summary.Succeeded, summary.Found, saveFolder)}
	}
}
