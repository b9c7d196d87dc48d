package ui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pinscraper/pkg/progress"
)

const (
	ProgressBar   = "█"
	ProgressEmpty = "░"
)

var itemCounter = regexp.MustCompile(`^\S+ \[(\d+)/(\d+)\]`)

// StatusTracker follows a run by reading its status lines
type StatusTracker struct {
	Total     int
	Succeeded int
	Failed    int
	Finished  bool
	StartTime time.Time
}

// NewStatusTracker creates a new status tracker
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{
		StartTime: time.Now(),
	}
}

// Observe updates the counters from one status line
func (st *StatusTracker) Observe(line string) {
	if m := itemCounter.FindStringSubmatch(line); m != nil {
		if total, err := strconv.Atoi(m[2]); err == nil {
			st.Total = total
		}
		switch {
		case strings.HasPrefix(line, progress.GlyphSuccess):
			st.Succeeded++
		case strings.HasPrefix(line, progress.GlyphFailure):
			st.Failed++
		}
		return
	}

	if strings.HasPrefix(line, progress.GlyphComplete) {
		st.Finished = true
	}
}

// Done returns the number of items processed so far
func (st *StatusTracker) Done() int {
	return st.Succeeded + st.Failed
}

// Percent returns the processed fraction in [0, 1]
func (st *StatusTracker) Percent() float64 {
	if st.Total == 0 {
		return 0
	}
	return float64(st.Done()) / float64(st.Total)
}

// GetProgressBar returns a formatted progress bar of the given width
func (st *StatusTracker) GetProgressBar(width int) string {
	filled := int(st.Percent() * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat(ProgressBar, filled) +
		strings.Repeat(ProgressEmpty, width-filled)

	return fmt.Sprintf("[%s] %d/%d", bar, st.Done(), st.Total)
}

// GetElapsedTime returns the elapsed time since tracking started
func (st *StatusTracker) GetElapsedTime() time.Duration {
	return time.Since(st.StartTime)
}
