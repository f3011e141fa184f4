package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/start", TypeStart},
		{"/addtask Read chapter 1", TypeAddTask},
		{"/tasks", TypeTasks},
		{"/done 1", TypeDone},
		{"/score", TypeScore},
		{"/terminate", TypeTerminate},
		{"  /TASKS  ", TypeTasks},
		{"/score@StudyStreakBot", TypeScore},
		{"/start extra args are ignored", TypeStart},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestSplitBotAddressing(t *testing.T) {
	cases := []struct {
		in      string
		botName string
		want    string
		ok      bool
	}{
		{"/terminate", "StudyStreakBot", "terminate", true},
		{"/terminate@StudyStreakBot", "StudyStreakBot", "terminate", true},
		{"/Score@studystreakbot", "StudyStreakBot", "score", true},
		{"/done@StudyStreakBot 2", "@StudyStreakBot", "done", true},
		{"/terminate@SomeOtherBot", "StudyStreakBot", "", false},
		{"/terminate@", "StudyStreakBot", "", false},
		{"/terminate@SomeOtherBot", "", "terminate", true},
	}
	for _, tc := range cases {
		name, _, ok := Split(tc.in, tc.botName)
		if ok != tc.ok || name != tc.want {
			t.Fatalf("split %q for %q = (%q, %v), want (%q, %v)", tc.in, tc.botName, name, ok, tc.want, tc.ok)
		}
	}
}

func TestParseAddTaskJoinsArgs(t *testing.T) {
	cmd, err := Parse("/addtask   Read   chapter 1 ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.AddTask.Text != "Read chapter 1" {
		t.Fatalf("text = %q", cmd.AddTask.Text)
	}
}

func TestParseUsageErrors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/addtask", UsageAddTask},
		{"/addtask    ", UsageAddTask},
		{"/done", UsageDone},
		{"/done two", UsageDone},
		{"/done -1", UsageDone},
		{"/done +1", UsageDone},
		{"/done 1.5", UsageDone},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", tc.in, err)
		}
		if ce.Message != tc.want {
			t.Fatalf("parse %q message = %q, want %q", tc.in, ce.Message, tc.want)
		}
	}
}

func TestParseDoneIndex(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"/done 3", 3},
		{"/done 007", 7},
		{"/done 0", 0},
		{"/done 99999999999999999999999", 0},
		{"/done 2 please", 2},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Done.Index != tc.want {
			t.Fatalf("parse %q index = %d, want %d", tc.in, cmd.Done.Index, tc.want)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	for _, in := range []string{"/unknown do x", "hello there", "/", "/@bot"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
			t.Fatalf("parse %q: expected unknown command error, got %v", in, err)
		}
	}

	_, err := Parse("   ")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestBuildFromParts(t *testing.T) {
	cmd, err := Build("AddTask", []string{"Read", "notes"})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if cmd.Type != TypeAddTask || cmd.AddTask.Text != "Read notes" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/addtask write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		AddTask: func(a AddTaskArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected text: %q", a.Text)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, typ := range []Type{TypeStart, TypeAddTask, TypeTasks, TypeDone, TypeScore, TypeTerminate} {
		cmd, err := Build(string(typ), []string{"1"})
		if err != nil {
			t.Fatalf("build %s failed: %v", typ, err)
		}
		_, err = Execute(cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%s: expected missing handler error, got %v", typ, err)
		}
	}
}
