package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/sandeepkv93/studystreak/internal/commands"
	"github.com/sandeepkv93/studystreak/internal/ledger"
	"github.com/sandeepkv93/studystreak/internal/model"
	"github.com/sandeepkv93/studystreak/internal/storage"
)

// Sender identifies who issued a command.
type Sender struct {
	ID        string
	FirstName string
	Username  string
}

// DisplayName falls back from first name to username to "User".
func (s Sender) DisplayName() string {
	if name := strings.TrimSpace(s.FirstName); name != "" {
		return name
	}
	if name := strings.TrimSpace(s.Username); name != "" {
		return name
	}
	return "User"
}

type Request struct {
	Command string
	Args    []string
	Sender  Sender
}

// RequestFromText builds a Request from a raw chat message. ok is false for
// messages that are not slash commands and for commands addressed to a bot
// other than botName. An empty botName accepts every command.
func RequestFromText(text, botName string, sender Sender) (Request, bool) {
	name, args, ok := commands.Split(text, botName)
	if !ok {
		return Request{}, false
	}
	return Request{Command: name, Args: args, Sender: sender}, true
}

// Dispatcher runs one command per call. It keeps no state between calls; each
// mutating command loads the whole store, changes it and saves it back.
type Dispatcher struct {
	repo   storage.Repository
	ledger *ledger.Ledger
	logger *log.Logger
}

func NewDispatcher(repo storage.Repository, l *ledger.Ledger, logger *log.Logger) *Dispatcher {
	if l == nil {
		l = ledger.New(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Dispatcher{repo: repo, ledger: l, logger: logger}
}

// Handle returns the reply for req. ok is false when the command is unknown
// and nothing should be sent back.
func (d *Dispatcher) Handle(ctx context.Context, req Request) (string, bool) {
	reqID := uuid.NewString()[:8]
	d.logger.Printf("[%s] /%s from user %s", reqID, req.Command, req.Sender.ID)

	cmd, err := commands.Build(req.Command, req.Args)
	if err != nil {
		var ce *commands.CommandError
		if errors.As(err, &ce) && ce.Code == commands.ErrCodeInvalidArgument {
			return ce.Message, true
		}
		d.logger.Printf("[%s] ignored: %v", reqID, err)
		return "", false
	}

	h := &handler{d: d, ctx: ctx, reqID: reqID, sender: req.Sender}
	res, err := commands.Execute(cmd, commands.Handlers{
		Start:     h.start,
		AddTask:   h.addTask,
		Tasks:     h.tasks,
		Done:      h.done,
		Score:     h.score,
		Terminate: h.terminate,
	})
	if err != nil {
		d.logger.Printf("[%s] failed: %v", reqID, err)
		return "", false
	}
	return res.Message, true
}

type handler struct {
	d      *Dispatcher
	ctx    context.Context
	reqID  string
	sender Sender
}

func (h *handler) start() (commands.Result, error) {
	return commands.Result{Message: WelcomeText}, nil
}

func (h *handler) addTask(args commands.AddTaskArgs) (commands.Result, error) {
	store := h.load()
	task, err := h.d.ledger.AddTask(store, h.sender.ID, args.Text)
	if err != nil {
		return commands.Result{Message: commands.UsageAddTask}, nil
	}
	h.save(store)
	return commands.Result{Message: fmt.Sprintf("Task '%s' added!", task.Text)}, nil
}

func (h *handler) tasks() (commands.Result, error) {
	rec, _ := h.get()
	tasks := ledger.TasksForDay(rec, h.d.ledger.Today())
	return commands.Result{Message: FormatTasks(tasks)}, nil
}

// done marks the task and awards points in one load/save cycle. Marking a
// task that is already done awards the points again.
func (h *handler) done(args commands.DoneArgs) (commands.Result, error) {
	store := h.load()
	task, _, err := h.d.ledger.Complete(store, h.sender.ID, args.Index)
	if errors.Is(err, ledger.ErrInvalidIndex) {
		return commands.Result{Message: InvalidTaskNumberText}, nil
	}
	if err != nil {
		return commands.Result{}, err
	}
	h.save(store)
	return commands.Result{Message: fmt.Sprintf("Task '%s' marked as done! +%d points", task.Text, ledger.RewardPoints)}, nil
}

func (h *handler) score() (commands.Result, error) {
	points := 0
	if rec, ok := h.get(); ok {
		points = rec.Points
	}
	return commands.Result{Message: fmt.Sprintf("🏆 %s, your current score: %d points", h.sender.DisplayName(), points)}, nil
}

func (h *handler) terminate() (commands.Result, error) {
	existed, err := h.d.repo.Delete(h.ctx, h.sender.ID)
	if err != nil {
		h.d.logger.Printf("[%s] delete record: %v", h.reqID, err)
	}
	if !existed {
		return commands.Result{Message: NoDataText}, nil
	}
	return commands.Result{Message: ResetText}, nil
}

// load fails open: an unreadable store is logged and replaced by an empty one.
func (h *handler) load() model.Store {
	store, err := h.d.repo.Load(h.ctx)
	if err != nil {
		h.d.logger.Printf("[%s] load store: %v", h.reqID, err)
	}
	if store == nil {
		store = model.Store{}
	}
	return store
}

// save logs failures only. The user still gets the success reply even though
// the change was not persisted.
func (h *handler) save(store model.Store) {
	if err := h.d.repo.Save(h.ctx, store); err != nil {
		h.d.logger.Printf("[%s] save store: %v", h.reqID, err)
	}
}

func (h *handler) get() (*model.UserRecord, bool) {
	rec, ok, err := h.d.repo.Get(h.ctx, h.sender.ID)
	if err != nil {
		h.d.logger.Printf("[%s] get record: %v", h.reqID, err)
	}
	return rec, ok
}
