// Package console runs the bot in a terminal so commands can be tried
// without a messenger account. Each line typed is handled exactly like a
// chat message from the configured sender.
package console

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studystreak/internal/bot"
	"github.com/sandeepkv93/studystreak/internal/views"
)

type Handler interface {
	Handle(ctx context.Context, req bot.Request) (string, bool)
}

type StatusBar struct {
	Text    string
	IsError bool
}

// ReplyMsg carries the dispatcher's answer back into the update loop.
type ReplyMsg struct {
	Text string
	OK   bool
}

const helpMarkdown = "Type a command and press **enter**. Try `/start`, `/addtask <task>`, `/tasks`, `/done <n>`, `/score`, `/terminate`."

type Model struct {
	ctx      context.Context
	handler  Handler
	sender   bot.Sender
	input    textinput.Model
	viewport viewport.Model
	Lines    []views.Line
	Status   StatusBar
	Quitting bool
	banner   string
}

func NewModel(ctx context.Context, h Handler, sender bot.Sender) Model {
	in := textinput.New()
	in.Placeholder = "/start"
	in.Prompt = "> "
	in.CharLimit = 512
	in.Focus()

	return Model{
		ctx:      ctx,
		handler:  h,
		sender:   sender,
		input:    in,
		viewport: viewport.New(80, 16),
		Status:   StatusBar{Text: "ready"},
		banner:   views.RenderMarkdown(helpMarkdown),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-8, 4)
		m.input.Width = max(msg.Width-6, 10)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	case ReplyMsg:
		if !msg.OK {
			m.Status = StatusBar{Text: "error: unknown command", IsError: true}
			return m, nil
		}
		m.Lines = append(m.Lines, views.Line{Text: msg.Text})
		m.Status = StatusBar{Text: "ready"}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()
	m.Lines = append(m.Lines, views.Line{FromUser: true, Text: text})
	m.refresh()

	req, ok := bot.RequestFromText(text, "", m.sender)
	if !ok {
		m.Status = StatusBar{Text: "error: commands start with /", IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: "sending /" + req.Command}
	h, ctx := m.handler, m.ctx
	return m, func() tea.Msg {
		reply, ok := h.Handle(ctx, req)
		return ReplyMsg{Text: reply, OK: ok}
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(views.RenderTranscript(m.Lines))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	return views.RenderConsole(views.ConsoleData{
		Header:     "studystreak console · " + m.sender.DisplayName() + "\n" + m.banner,
		Transcript: m.viewport.View(),
		Input:      m.input.View(),
		StatusLine: m.Status.Text,
		StatusErr:  m.Status.IsError,
		Footer:     "enter send · esc quit",
	})
}
