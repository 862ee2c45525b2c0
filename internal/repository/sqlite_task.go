package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tasknest/tasknest/internal/model"
)

const sqliteTaskColumns = `id, title, description, completed, user_id, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

// CreateTask inserts a task and fills in its generated id.
func (s *SQLite) CreateTask(ctx context.Context, task *model.Task) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO task (title, description, completed, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.Title,
		task.Description,
		task.Completed,
		task.UserID,
		toMillis(task.CreatedAt),
		toMillis(task.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read task id: %w", err)
	}
	task.ID = id

	return nil
}

// ListTasks returns the owner's tasks in id order, optionally filtered by completion.
func (s *SQLite) ListTasks(ctx context.Context, ownerID string, completed *bool) ([]*model.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteTaskColumns+`
		 FROM task
		 WHERE user_id = ? AND (? IS NULL OR completed = ?)
		 ORDER BY id`,
		ownerID, completed, completed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*model.Task, 0)
	for rows.Next() {
		task, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// GetTask retrieves one of the owner's tasks.
func (s *SQLite) GetTask(ctx context.Context, id int64, ownerID string) (*model.Task, error) {
	return s.queryTask(ctx, "get",
		`SELECT `+sqliteTaskColumns+` FROM task WHERE id = ? AND user_id = ?`,
		id, ownerID,
	)
}

// UpdateTask applies the supplied fields and refreshes updated_at.
func (s *SQLite) UpdateTask(ctx context.Context, id int64, ownerID string, changes model.TaskChanges) (*model.Task, error) {
	return s.queryTask(ctx, "update",
		`UPDATE task
		 SET title       = COALESCE(?, title),
		     description = CASE WHEN ? THEN NULL ELSE COALESCE(?, description) END,
		     completed   = COALESCE(?, completed),
		     updated_at  = ?
		 WHERE id = ? AND user_id = ?
		 RETURNING `+sqliteTaskColumns,
		changes.Title, changes.ClearDescription, changes.Description, changes.Completed,
		toMillis(time.Now()),
		id, ownerID,
	)
}

// DeleteTask removes one of the owner's tasks.
func (s *SQLite) DeleteTask(ctx context.Context, id int64, ownerID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM task WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// ToggleTask flips the completed flag in a single statement.
func (s *SQLite) ToggleTask(ctx context.Context, id int64, ownerID string) (*model.Task, error) {
	return s.queryTask(ctx, "toggle",
		`UPDATE task
		 SET completed = NOT completed, updated_at = ?
		 WHERE id = ? AND user_id = ?
		 RETURNING `+sqliteTaskColumns,
		toMillis(time.Now()), id, ownerID,
	)
}

func (s *SQLite) queryTask(ctx context.Context, op, query string, args ...any) (*model.Task, error) {
	task, err := scanSQLiteTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to %s task: %w", op, err)
	}
	return task, nil
}

func scanSQLiteTask(row scanner) (*model.Task, error) {
	var (
		task                 model.Task
		createdAt, updatedAt int64
	)
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.UserID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.CreatedAt = fromMillis(createdAt)
	task.UpdatedAt = fromMillis(updatedAt)
	return &task, nil
}
