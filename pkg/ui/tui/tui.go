package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"pinscraper/pkg/models"
	"pinscraper/pkg/progress"
)

// TUI represents the terminal user interface
type TUI struct {
	program *tea.Program
	model   *Model
}

// NewTUI creates a new TUI instance. Without options the program takes over
// the terminal's alternate screen.
func NewTUI(pinURL, saveFolder string, cancel context.CancelFunc, opts ...tea.ProgramOption) *TUI {
	model := NewModel(pinURL, saveFolder, cancel)
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}

	return &TUI{
		program: tea.NewProgram(model, opts...),
		model:   model,
	}
}

// Start runs the TUI until the user quits
func (t *TUI) Start() error {
	_, err := t.program.Run()
	return err
}

// Stop stops the TUI gracefully
func (t *TUI) Stop() {
	t.program.Quit()
}

// Send sends a message to the TUI
func (t *TUI) Send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

// Watch forwards every line of ch to the TUI until ch is closed
func (t *TUI) Watch(ch *progress.Channel) {
	for line := range ch.Lines() {
		t.Send(LineMsg{Line: line})
	}
}

// Finish reports the run outcome to the TUI
func (t *TUI) Finish(summary models.Summary, err error) {
	t.Send(FinishedMsg{Summary: summary, Err: err})
}
