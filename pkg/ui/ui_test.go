package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinscraper/pkg/models"
	"pinscraper/pkg/progress"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prevOut, prevColor := Output, colorEnabled
	Output = buf
	SetColor(false)
	t.Cleanup(func() {
		Output = prevOut
		SetColor(prevColor)
	})
	return buf
}

type recordingSender struct {
	titles []string
}

func (r *recordingSender) Send(title, message string) error {
	r.titles = append(r.titles, title)
	return errors.New("no notification daemon")
}

func TestColorizeLine(t *testing.T) {
	SetColor(true)
	defer SetColor(true)

	assert.Equal(t, "\033[32m✅ ok\033[0m", ColorizeLine("✅ ok"))
	assert.Equal(t, "\033[31m❌ bad\033[0m", ColorizeLine("❌ bad"))
	assert.Equal(t, "\033[33m⚠️ hmm\033[0m", ColorizeLine("⚠️ hmm"))
	assert.Equal(t, "\033[35m🎉 done\033[0m", ColorizeLine("🎉 done"))
	assert.Equal(t, "\033[36mℹ️ info\033[0m", ColorizeLine("ℹ️ info"))

	SetColor(false)
	assert.Equal(t, "✅ ok", ColorizeLine("✅ ok"))
}

func TestStatusTracker(t *testing.T) {
	st := NewStatusTracker()
	for _, line := range []string{
		"ℹ️ Fetching pin page: https://www.pinterest.com/pin/1/",
		"ℹ️ Found 4 media item(s)",
		"✅ [1/4] Saved image: a.png",
		"❌ [2/4] Failed to download https://x/b.jpg: HTTP 404",
	} {
		st.Observe(line)
	}

	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 1, st.Succeeded)
	assert.Equal(t, 1, st.Failed)
	assert.Equal(t, 0.5, st.Percent())
	assert.Equal(t, "[█████░░░░░] 2/4", st.GetProgressBar(10))
	assert.False(t, st.Finished)

	st.Observe("🎉 All downloads completed (1 saved, 1 failed)")
	assert.True(t, st.Finished)
}

func TestStatusTrackerEmpty(t *testing.T) {
	st := NewStatusTracker()
	assert.Equal(t, float64(0), st.Percent())
	assert.Equal(t, "[░░░░] 0/0", st.GetProgressBar(4))
}

func TestShellWatch(t *testing.T) {
	buf := captureOutput(t)
	shell := NewShell("/tmp/pinterest_downloads", nil)

	ch := progress.NewChannel()
	go func() {
		ch.Report("ℹ️ Fetching pin page: https://www.pinterest.com/pin/1/")
		ch.Report("ℹ️ Found 1 media item(s)")
		ch.Report("✅ [1/1] Saved image: a.png")
		ch.Report("🎉 All downloads completed (1 saved, 0 failed)")
		ch.Close()
	}()

	tracker := shell.Watch(ch)

	require.True(t, tracker.Finished)
	assert.Equal(t, 1, tracker.Succeeded)
	assert.Contains(t, buf.String(), "✅ [1/1] Saved image: a.png\n")
	assert.Contains(t, buf.String(), "🎉 All downloads completed (1 saved, 0 failed)\n")
}

func TestShellFinish(t *testing.T) {
	tests := []struct {
		name     string
		summary  models.Summary
		err      error
		title    string
		contains string
	}{
		{"success", models.Summary{Found: 3, Succeeded: 2, Failed: 1}, nil, "Download complete", "2 of 3 media item(s) saved to /saves"},
		{"all failed", models.Summary{Found: 2, Failed: 2}, nil, "Download finished", "None of the 2 media item(s) could be saved"},
		{"no media", models.Summary{}, nil, "Nothing to download", "No media found"},
		{"fetch error", models.Summary{}, errors.New("HTTP 404: gone"), "Download failed", "HTTP 404: gone"},
		{"cancelled", models.Summary{}, fmt.Errorf("fetch: %w", context.Canceled), "Cancelled", "interrupted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureOutput(t)
			sender := &recordingSender{}
			shell := NewShell("/saves", NewNotifierWithSender(sender))

			shell.Finish(tt.summary, tt.err)

			assert.Equal(t, []string{tt.title}, sender.titles)
			assert.Contains(t, buf.String(), tt.title)
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}

func TestNewNotifierWithoutDesktop(t *testing.T) {
	buf := captureOutput(t)
	n := NewNotifier(false)
	assert.Nil(t, n.sender)

	n.SendSuccess("Done", "all good")
	assert.Equal(t, "\nDone: all good\n", buf.String())
}
