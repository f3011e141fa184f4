package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeStart     Type = "start"
	TypeAddTask   Type = "addtask"
	TypeTasks     Type = "tasks"
	TypeDone      Type = "done"
	TypeScore     Type = "score"
	TypeTerminate Type = "terminate"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

const (
	UsageAddTask = "Usage: /addtask <task>"
	UsageDone    = "Usage: /done <task_number>"
)

// CommandError is returned for input that does not form a valid command.
// For invalid_argument errors Message is the usage line shown to the user.
type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddTaskArgs struct {
	Text string
}

type DoneArgs struct {
	Index int
}

type Command struct {
	Type    Type
	AddTask *AddTaskArgs
	Done    *DoneArgs
}

// Split breaks a chat message into a command name and its arguments. Only
// messages starting with "/" are commands. A "/name@bot" command is kept only
// when bot matches botName, ignoring case; an empty botName accepts any suffix.
func Split(input, botName string) (string, []string, bool) {
	raw := strings.TrimSpace(input)
	if !strings.HasPrefix(raw, "/") {
		return "", nil, false
	}
	parts := strings.Fields(strings.TrimPrefix(raw, "/"))
	if len(parts) == 0 {
		return "", nil, false
	}
	head := parts[0]
	if at := strings.Index(head, "@"); at >= 0 {
		target := strings.TrimPrefix(botName, "@")
		if target != "" && !strings.EqualFold(head[at+1:], target) {
			return "", nil, false
		}
		head = head[:at]
	}
	if head == "" {
		return "", nil, false
	}
	return strings.ToLower(head), parts[1:], true
}

func Parse(input string) (Command, error) {
	if strings.TrimSpace(input) == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	name, args, ok := Split(input, "")
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: "not a command"}
	}
	return Build(name, args)
}

func Build(name string, args []string) (Command, error) {
	head := strings.ToLower(strings.TrimSpace(name))
	switch Type(head) {
	case TypeStart, TypeTasks, TypeScore, TypeTerminate:
		return Command{Type: Type(head)}, nil
	case TypeAddTask:
		return buildAddTask(args)
	case TypeDone:
		return buildDone(args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func buildAddTask(args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: UsageAddTask}
	}
	return Command{Type: TypeAddTask, AddTask: &AddTaskArgs{Text: text}}, nil
}

// buildDone accepts only a plain run of decimal digits. "0" and numbers too
// large for an int are valid input that can never match a task, so they map
// to index 0 and fail the range check later.
func buildDone(args []string) (Command, error) {
	if len(args) == 0 || !isDigits(args[0]) {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: UsageDone}
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		index = 0
	}
	return Command{Type: TypeDone, Done: &DoneArgs{Index: index}}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
