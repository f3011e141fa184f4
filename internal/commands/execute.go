package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Start     func() (Result, error)
	AddTask   func(AddTaskArgs) (Result, error)
	Tasks     func() (Result, error)
	Done      func(DoneArgs) (Result, error)
	Score     func() (Result, error)
	Terminate func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeStart:
		if handlers.Start == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Start()
	case TypeAddTask:
		if handlers.AddTask == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.AddTask(*cmd.AddTask)
	case TypeTasks:
		if handlers.Tasks == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Tasks()
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Done(*cmd.Done)
	case TypeScore:
		if handlers.Score == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Score()
	case TypeTerminate:
		if handlers.Terminate == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Terminate()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
