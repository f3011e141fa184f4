package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/studystreak/internal/model"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite allows one writer; a single connection avoids SQLITE_BUSY between Load and Save
	db.SetMaxOpenConns(1)
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := MigrateUp(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Load(ctx context.Context) (model.Store, error) {
	store := model.Store{}
	rows, err := r.db.QueryContext(ctx, `SELECT user_id, points FROM users`)
	if err != nil {
		return model.Store{}, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}
	for rows.Next() {
		var userID string
		rec := model.NewUserRecord()
		if scanErr := rows.Scan(&userID, &rec.Points); scanErr != nil {
			_ = rows.Close()
			return model.Store{}, fmt.Errorf("%w: %v", ErrDocumentUnreadable, scanErr)
		}
		store[userID] = rec
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return model.Store{}, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}
	_ = rows.Close()

	taskRows, err := r.db.QueryContext(ctx, `SELECT user_id, day, text, done FROM tasks ORDER BY user_id, day, position`)
	if err != nil {
		return model.Store{}, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}
	defer taskRows.Close()
	for taskRows.Next() {
		userID, day, task, scanErr := scanTask(taskRows)
		if scanErr != nil {
			return model.Store{}, fmt.Errorf("%w: %v", ErrDocumentUnreadable, scanErr)
		}
		rec := store.Ensure(userID)
		rec.Tasks[day] = append(rec.Tasks[day], task)
	}
	if err := taskRows.Err(); err != nil {
		return model.Store{}, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}
	return store, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, store model.Store) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	for userID, rec := range store {
		if rec == nil {
			continue
		}
		if err := insertRecord(ctx, tx, userID, rec); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) Get(ctx context.Context, userID string) (*model.UserRecord, bool, error) {
	rec := model.NewUserRecord()
	row := r.db.QueryRowContext(ctx, `SELECT points FROM users WHERE user_id = ?`, userID)
	if err := row.Scan(&rec.Points); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT user_id, day, text, done FROM tasks WHERE user_id = ? ORDER BY day, position`, userID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()
	for rows.Next() {
		_, day, task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, false, scanErr
		}
		rec.Tasks[day] = append(rec.Tasks[day], task)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, userID string, rec *model.UserRecord) error {
	if rec == nil {
		rec = model.NewUserRecord()
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put: %w", err)
	}
	defer tx.Rollback()

	if _, err := deleteRecord(ctx, tx, userID); err != nil {
		return err
	}
	if err := insertRecord(ctx, tx, userID, rec); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) Delete(ctx context.Context, userID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	existed, err := deleteRecord(ctx, tx, userID)
	if err != nil {
		return false, err
	}
	if !existed {
		return false, nil
	}
	return true, tx.Commit()
}

func deleteRecord(ctx context.Context, tx *sql.Tx, userID string) (bool, error) {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ?`, userID); err != nil {
		return false, fmt.Errorf("delete tasks of %s: %w", userID, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, userID)
	if err != nil {
		return false, fmt.Errorf("delete user %s: %w", userID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func insertRecord(ctx context.Context, tx *sql.Tx, userID string, rec *model.UserRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("record %s: %w", userID, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO users (user_id, points) VALUES (?, ?)`, userID, rec.Points); err != nil {
		return fmt.Errorf("insert user %s: %w", userID, err)
	}
	for day, tasks := range rec.Tasks {
		for i, task := range tasks {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO tasks (user_id, day, position, text, done)
				VALUES (?, ?, ?, ?, ?)`,
				userID, day, i+1, task.Text, boolInt(task.Done),
			)
			if err != nil {
				return fmt.Errorf("insert task %s/%s#%d: %w", userID, day, i+1, err)
			}
		}
	}
	return nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (string, string, model.Task, error) {
	var userID, day string
	var task model.Task
	var done int
	if err := s.Scan(&userID, &day, &task.Text, &done); err != nil {
		return "", "", model.Task{}, err
	}
	task.Done = done == 1
	return userID, day, task, nil
}
