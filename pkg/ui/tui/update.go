package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"pinscraper/pkg/models"
)

// Message types for the TUI

// LineMsg carries one status line from the pipeline
type LineMsg struct {
	Line string
}

// FinishedMsg is sent once the pipeline has returned
type FinishedMsg struct {
	Summary models.Summary
	Err     error
}

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(10, m.width/2-20)
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LineMsg:
		m.AddLine(msg.Line)
		return m, nil

	case FinishedMsg:
		m.Finish(msg.Summary, msg.Err)
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c", "esc":
		if m.running && m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case "enter":
		if !m.running {
			return m, tea.Quit
		}
		return m, nil

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "ctrl+l":
		m.logMessages = nil
		return m, nil
	}

	return m, nil
}
