package views

import (
	"strings"
	"testing"
)

func TestRenderTranscriptKeepsOrder(t *testing.T) {
	out := RenderTranscript([]Line{
		{FromUser: true, Text: "/tasks"},
		{Text: "Today's tasks:\n1. Read ❌\n"},
	})
	userAt := strings.Index(out, "> /tasks")
	replyAt := strings.Index(out, "1. Read ❌")
	if userAt < 0 || replyAt < 0 || userAt > replyAt {
		t.Fatalf("unexpected transcript:\n%s", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("trailing newline should be trimmed: %q", out)
	}
}

func TestRenderConsoleIncludesSections(t *testing.T) {
	out := RenderConsole(ConsoleData{
		Header:     "studystreak",
		Transcript: "> /start",
		Input:      "/score",
		StatusLine: "ready",
		Footer:     "esc quit",
	})
	for _, want := range []string{"studystreak", "> /start", "/score", "ready", "esc quit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdown("  \n"); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := RenderMarkdown("# Commands"); !strings.Contains(got, "Commands") {
		t.Fatalf("expected heading text in output, got %q", got)
	}
}

func TestRenderConsoleStatusStyle(t *testing.T) {
	plain := RenderConsole(ConsoleData{StatusLine: "error budget ok"})
	flagged := RenderConsole(ConsoleData{StatusLine: "error budget ok", StatusErr: true})
	if !strings.Contains(flagged, "error budget ok") {
		t.Fatalf("missing status in:\n%s", flagged)
	}
	if got, want := statusLine(plain), statusStyle.Render("error budget ok"); got != want {
		t.Fatalf("plain status = %q, want %q", got, want)
	}
	if got, want := statusLine(flagged), errorStyle.Render("error budget ok"); got != want {
		t.Fatalf("error status = %q, want %q", got, want)
	}
}

func statusLine(out string) string {
	lines := strings.Split(out, "\n")
	return lines[len(lines)-1]
}
