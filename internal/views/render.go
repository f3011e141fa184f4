package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type Line struct {
	FromUser bool
	Text     string
}

type ConsoleData struct {
	Header     string
	Transcript string
	Input      string
	StatusLine string
	StatusErr  bool
	Footer     string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	userStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	botStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderConsole(data ConsoleData) string {
	status := statusStyle.Render(data.StatusLine)
	if data.StatusErr {
		status = errorStyle.Render(data.StatusLine)
	}
	lines := []string{
		headerStyle.Render(data.Header),
		data.Transcript,
		panelStyle.Render(data.Input),
		status,
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderTranscript prints user lines with a prompt marker and bot replies
// indented below them.
func RenderTranscript(lines []Line) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.FromUser {
			out = append(out, userStyle.Render("> "+l.Text))
			continue
		}
		text := strings.TrimRight(l.Text, "\n")
		out = append(out, botStyle.Render(indent(text, "  ")))
	}
	return strings.Join(out, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func indent(s, prefix string) string {
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		parts[i] = prefix + p
	}
	return strings.Join(parts, "\n")
}
