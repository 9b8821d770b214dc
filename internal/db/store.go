package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"notesbot/internal/model"
)

var (
	ErrEmptyContent = errors.New("content cannot be empty")
	ErrNotFound     = errors.New("task not found")
)

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateNote(ctx context.Context, userID int64, content string) (model.Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Task{}, ErrEmptyContent
	}

	result, err := s.DB.ExecContext(ctx, "INSERT INTO notes (user_id, content) VALUES (?, ?)", userID, content)
	if err != nil {
		return model.Task{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Task{}, err
	}

	return model.Task{ID: id, UserID: userID, Content: content}, nil
}

func (s *Store) GetNote(ctx context.Context, userID, id int64) (model.Task, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT id, user_id, content, reminder_at FROM notes WHERE id = ? AND user_id = ?", id, userID)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, ErrNotFound
	}
	if err != nil {
		return model.Task{}, err
	}

	return task, nil
}

func (s *Store) ListNotes(ctx context.Context, userID int64) ([]model.Task, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT id, user_id, content, reminder_at FROM notes WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (s *Store) UpdateContent(ctx context.Context, userID, id int64, content string) (bool, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return false, ErrEmptyContent
	}

	result, err := s.DB.ExecContext(ctx, "UPDATE notes SET content = ? WHERE id = ? AND user_id = ?", content, id, userID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (s *Store) DeleteNote(ctx context.Context, id, userID int64) (bool, error) {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM notes WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (s *Store) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM notes WHERE user_id = ?", userID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (model.Task, error) {
	var task model.Task
	var reminderAt sql.NullTime

	if err := row.Scan(&task.ID, &task.UserID, &task.Content, &reminderAt); err != nil {
		return model.Task{}, err
	}

	if reminderAt.Valid {
		task.ReminderAt = &reminderAt.Time
	}

	return task, nil
}
