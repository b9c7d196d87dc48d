package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"pinscraper/pkg/ui"
)

// View renders the entire TUI
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderLogo())

	width := (m.width - 4) / 2
	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderStatsPanel(width),
		"  ", // spacing
		m.renderLogsPanel(width),
	)
	sections = append(sections, mainContent)

	if m.notice != nil {
		sections = append(sections, m.renderNotice())
	}

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, helpStyle.Render("Press ? for help"))
	}

	return baseStyle.Width(m.width).Height(m.height).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

// renderLogo renders the logo
func (m *Model) renderLogo() string {
	logo := `
╔═════════════════════════════════════╗
║   P I N S C R A P E R               ║
║   pin page media downloader         ║
╚═════════════════════════════════════╝`

	return logoStyle.Width(m.width).Render(logo)
}

// renderStatsPanel renders the run statistics and progress bar
func (m *Model) renderStatsPanel(width int) string {
	title := titleStyle.Render(" RUN STATUS ")

	state := successStyle.Render("finished")
	if m.running {
		state = m.spinner.View() + " " + statsValueStyle.Render("working")
	}

	st := m.tracker
	stats := []string{
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Pin:"), statsValueStyle.Render(truncate(m.pinURL, width-12))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Save folder:"), statsValueStyle.Render(truncate(m.saveFolder, width-20))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Elapsed:"), statsValueStyle.Render(formatDuration(st.GetElapsedTime()))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("State:"), state),
		"",
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Saved:"), successStyle.Render(fmt.Sprintf("%d", st.Succeeded))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Failed:"), errorStyle.Render(fmt.Sprintf("%d", st.Failed))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Items:"), statsValueStyle.Render(fmt.Sprintf("%d/%d", st.Done(), st.Total))),
		m.progress.ViewAs(st.Percent()),
	}

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, stats...)),
	)
}

// renderLogsPanel renders the status lines that fit the terminal
func (m *Model) renderLogsPanel(width int) string {
	title := titleStyle.Render(" STATUS LOG ")

	visible := m.height - 20
	if visible < 5 {
		visible = 5
	}

	start := len(m.logMessages) - visible
	if start < 0 {
		start = 0
	}

	var logs []string
	for _, log := range m.logMessages[start:] {
		timestamp := logTimestampStyle.Render(log.Time.Format("15:04:05"))
		logs = append(logs, fmt.Sprintf("%s %s", timestamp, log.Style.Render(truncate(log.Text, width-16))))
	}

	content := strings.Join(logs, "\n")
	if content == "" {
		content = lipgloss.NewStyle().Foreground(dimWhite).Render("Waiting for the first status line...")
	}

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderNotice renders the closing notice of the run
func (m *Model) renderNotice() string {
	style := successStyle
	switch m.notice.Level {
	case ui.NoticeWarning:
		style = warningStyle
	case ui.NoticeError:
		style = errorStyle
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		style.Render(m.notice.Title),
		m.notice.Message,
		helpStyle.Render("Press enter or q to exit"),
	)

	return panelStyle.BorderForeground(style.GetForeground()).Width(m.width - 4).Render(body)
}

// renderHelp renders the help panel
func (m *Model) renderHelp() string {
	help := `
  Keys:
    q/esc    - Quit (cancels a running download)
    enter    - Close once the run has finished
    ctrl+l   - Clear the status log
    ?        - Toggle this help

  Status lines:
    ` + successStyle.Render("Green") + `    - Item saved
    ` + errorStyle.Render("Red") + `      - Item or page failed
    ` + warningStyle.Render("Orange") + `   - Warning
`

	return panelStyle.Width(m.width - 4).Render(help)
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	if n <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "00:00"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
