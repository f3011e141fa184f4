package console

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studystreak/internal/bot"
)

type fakeHandler struct {
	requests []bot.Request
}

func (f *fakeHandler) Handle(_ context.Context, req bot.Request) (string, bool) {
	f.requests = append(f.requests, req)
	if req.Command == "nope" {
		return "", false
	}
	return "reply to " + req.Command, true
}

func typeLine(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	updated, cmd := updated.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestSubmitDispatchesCommand(t *testing.T) {
	h := &fakeHandler{}
	sender := bot.Sender{ID: "local", FirstName: "Dev"}
	m := NewModel(context.Background(), h, sender)

	m, cmd := typeLine(t, m, "/addtask Read chapter 1")
	if cmd == nil {
		t.Fatal("expected dispatch command")
	}
	msg := cmd()
	reply, ok := msg.(ReplyMsg)
	if !ok || !reply.OK || reply.Text != "reply to addtask" {
		t.Fatalf("unexpected reply msg: %#v", msg)
	}
	if len(h.requests) != 1 {
		t.Fatalf("expected one request, got %d", len(h.requests))
	}
	got := h.requests[0]
	if got.Sender != sender || strings.Join(got.Args, " ") != "Read chapter 1" {
		t.Fatalf("unexpected request: %+v", got)
	}

	updated, _ := m.Update(msg)
	m = updated.(Model)
	if len(m.Lines) != 2 || !m.Lines[0].FromUser || m.Lines[1].Text != "reply to addtask" {
		t.Fatalf("unexpected transcript: %+v", m.Lines)
	}
	if m.Status.IsError {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}
}

func TestSubmitRejectsPlainText(t *testing.T) {
	h := &fakeHandler{}
	m := NewModel(context.Background(), h, bot.Sender{ID: "local"})
	m, cmd := typeLine(t, m, "hello")
	if cmd != nil {
		t.Fatal("plain text must not be dispatched")
	}
	if !m.Status.IsError {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
	if len(h.requests) != 0 {
		t.Fatalf("unexpected requests: %+v", h.requests)
	}
}

func TestUnknownCommandSetsError(t *testing.T) {
	m := NewModel(context.Background(), &fakeHandler{}, bot.Sender{ID: "local"})
	updated, _ := m.Update(ReplyMsg{OK: false})
	next := updated.(Model)
	if !next.Status.IsError || len(next.Lines) != 0 {
		t.Fatalf("unexpected state: status=%+v lines=%+v", next.Status, next.Lines)
	}
}

func TestEscQuits(t *testing.T) {
	m := NewModel(context.Background(), &fakeHandler{}, bot.Sender{ID: "local"})
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next := updated.(Model)
	if !next.Quitting || cmd == nil {
		t.Fatalf("expected quit, quitting=%v cmd=%v", next.Quitting, cmd)
	}
	if next.View() != "" {
		t.Fatal("expected empty view after quit")
	}
}
