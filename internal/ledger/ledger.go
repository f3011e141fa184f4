package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/sandeepkv93/studystreak/internal/model"
)

var (
	ErrEmptyTask    = errors.New("ledger: task text is required")
	ErrInvalidIndex = errors.New("ledger: invalid task number")
)

// Ledger files tasks under the current local day. All operations work on an
// in-memory store; persisting it is the caller's job.
type Ledger struct {
	now func() time.Time
}

func New(now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{now: now}
}

func (l *Ledger) Today() string {
	return model.DateKey(l.now())
}

func (l *Ledger) AddTask(store model.Store, userID, text string) (model.Task, error) {
	if strings.TrimSpace(text) == "" {
		return model.Task{}, ErrEmptyTask
	}
	task := model.Task{Text: text}
	rec := store.Ensure(userID)
	today := l.Today()
	rec.Tasks[today] = append(rec.Tasks[today], task)
	return task, nil
}

func (l *Ledger) ListTasks(store model.Store, userID string) []model.Task {
	rec, ok := store.Lookup(userID)
	if !ok {
		return []model.Task{}
	}
	return TasksForDay(rec, l.Today())
}

// MarkDone flags the index-th (1-based) task of today as done. Marking an
// already done task succeeds again.
func (l *Ledger) MarkDone(store model.Store, userID string, index int) (model.Task, error) {
	rec, ok := store.Lookup(userID)
	if !ok {
		return model.Task{}, ErrInvalidIndex
	}
	tasks := rec.Day(l.Today())
	if index < 1 || index > len(tasks) {
		return model.Task{}, ErrInvalidIndex
	}
	tasks[index-1].Done = true
	return tasks[index-1], nil
}

func (l *Ledger) Complete(store model.Store, userID string, index int) (model.Task, int, error) {
	task, err := l.MarkDone(store, userID, index)
	if err != nil {
		return model.Task{}, GetScore(store, userID), err
	}
	rec, _ := store.Lookup(userID)
	AwardPoints(rec, RewardPoints)
	return task, rec.Points, nil
}

func TasksForDay(rec *model.UserRecord, day string) []model.Task {
	tasks := rec.Day(day)
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	return out
}
