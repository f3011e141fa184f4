package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDateKey = errors.New("model: invalid date key")
	ErrNegativePoints = errors.New("model: points must not be negative")
)

type Task struct {
	Text string `json:"task"`
	Done bool   `json:"done"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	return nil
}

// UserRecord is one user's tasks grouped by day plus cumulative points.
type UserRecord struct {
	Tasks  map[string][]Task `json:"tasks"`
	Points int               `json:"points"`
}

func NewUserRecord() *UserRecord {
	return &UserRecord{Tasks: make(map[string][]Task)}
}

func (r *UserRecord) Validate() error {
	if r.Points < 0 {
		return fmt.Errorf("%w: %d", ErrNegativePoints, r.Points)
	}
	for day, tasks := range r.Tasks {
		if _, err := time.Parse(DateLayout, day); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDateKey, day)
		}
		for i, task := range tasks {
			if err := task.Validate(); err != nil {
				return fmt.Errorf("%s #%d: %w", day, i+1, err)
			}
		}
	}
	return nil
}

// Day returns the tasks filed under day. The slice is shared with the record.
func (r *UserRecord) Day(day string) []Task {
	if r == nil || r.Tasks == nil {
		return nil
	}
	return r.Tasks[day]
}

type Store map[string]*UserRecord

func (s Store) Lookup(userID string) (*UserRecord, bool) {
	rec, ok := s[userID]
	if !ok || rec == nil {
		return nil, false
	}
	return rec, true
}

func (s Store) Ensure(userID string) *UserRecord {
	if rec, ok := s.Lookup(userID); ok {
		if rec.Tasks == nil {
			rec.Tasks = make(map[string][]Task)
		}
		return rec
	}
	rec := NewUserRecord()
	s[userID] = rec
	return rec
}

func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
