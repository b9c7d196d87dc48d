// Package progress carries human-readable status lines from the pipeline to
// whatever is presenting them.
//
// Implementations of Reporter must be safe to call from the goroutine that
// runs the pipeline while another goroutine consumes the lines.
package progress

import "sync"

// Status glyphs prefixed to every reported line
const (
	GlyphInfo     = "ℹ️"
	GlyphSuccess  = "✅"
	GlyphFailure  = "❌"
	GlyphWarning  = "⚠️"
	GlyphComplete = "🎉"
)

// Reporter receives status lines in the order they are produced
type Reporter interface {
	Report(msg string)
}

// Func adapts an ordinary function to the Reporter interface
type Func func(msg string)

// Report calls f(msg)
func (f Func) Report(msg string) { f(msg) }

// Nop discards every line
var Nop Reporter = Func(func(string) {})

// Recorder keeps every reported line in memory
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// Report appends msg
func (r *Recorder) Report(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, msg)
}

// Lines returns a copy of the recorded lines
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}
