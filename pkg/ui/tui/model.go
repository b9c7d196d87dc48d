package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pinscraper/pkg/models"
	pinprogress "pinscraper/pkg/progress"
	"pinscraper/pkg/ui"
)

// LogLine is a status line as displayed in the log panel
type LogLine struct {
	Time  time.Time
	Text  string
	Style lipgloss.Style
}

// Model is the bubbletea model for a single pin page run
type Model struct {
	// UI components
	spinner  spinner.Model
	progress progress.Model

	// Run state
	pinURL     string
	saveFolder string
	tracker    *ui.StatusTracker
	running    bool
	notice     *ui.Notice
	cancel     context.CancelFunc

	// UI state
	width       int
	height      int
	showHelp    bool
	logMessages []LogLine
	maxLogLines int
}

// NewModel creates a model for a run of pinURL. cancel aborts the run when
// the user quits early; it may be nil.
func NewModel(pinURL, saveFolder string, cancel context.CancelFunc) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(neonCyan)

	p := progress.New(progress.WithDefaultGradient())
	p.Width = 40

	return &Model{
		spinner:     s,
		progress:    p,
		pinURL:      pinURL,
		saveFolder:  saveFolder,
		tracker:     ui.NewStatusTracker(),
		running:     true,
		cancel:      cancel,
		maxLogLines: 200,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// AddLine records a status line from the pipeline
func (m *Model) AddLine(line string) {
	m.tracker.Observe(line)

	m.logMessages = append(m.logMessages, LogLine{
		Time:  time.Now(),
		Text:  line,
		Style: styleFor(line),
	})

	// Keep only the last N lines
	if len(m.logMessages) > m.maxLogLines {
		m.logMessages = m.logMessages[len(m.logMessages)-m.maxLogLines:]
	}
}

// Finish stores the run outcome and stops the spinner
func (m *Model) Finish(summary models.Summary, err error) {
	notice := ui.NoticeFor(summary, err, m.saveFolder)
	m.notice = &notice
	m.running = false
}

// Running reports whether the pipeline is still working
func (m *Model) Running() bool {
	return m.running
}

// Notice returns the final notice once the run has finished
func (m *Model) Notice() *ui.Notice {
	return m.notice
}

// Tracker exposes the counters derived from the status lines
func (m *Model) Tracker() *ui.StatusTracker {
	return m.tracker
}

func styleFor(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, pinprogress.GlyphSuccess):
		return successStyle
	case strings.HasPrefix(line, pinprogress.GlyphFailure):
		return errorStyle
	case strings.HasPrefix(line, pinprogress.GlyphWarning):
		return warningStyle
	case strings.HasPrefix(line, pinprogress.GlyphComplete):
		return completeStyle
	default:
		return infoStyle
	}
}
