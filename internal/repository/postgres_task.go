package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tasknest/tasknest/internal/model"
)

const pgTaskColumns = `id, title, description, completed, user_id, created_at, updated_at`

// CreateTask inserts a task and fills in its generated id.
func (p *Postgres) CreateTask(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO task (title, description, completed, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := p.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.Completed,
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// ListTasks returns the owner's tasks in id order, optionally filtered by completion.
func (p *Postgres) ListTasks(ctx context.Context, ownerID string, completed *bool) ([]*model.Task, error) {
	query := `
		SELECT ` + pgTaskColumns + `
		FROM task
		WHERE user_id = $1 AND ($2::boolean IS NULL OR completed = $2)
		ORDER BY id
	`

	rows, err := p.pool.Query(ctx, query, ownerID, completed)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*model.Task, 0)
	for rows.Next() {
		task, err := scanPgTask(rows)
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
func (p *Postgres) GetTask(ctx context.Context, id int64, ownerID string) (*model.Task, error) {
	query := `SELECT ` + pgTaskColumns + ` FROM task WHERE id = $1 AND user_id = $2`

	return p.queryTask(ctx, "get", query, id, ownerID)
}

// UpdateTask applies the supplied fields and refreshes updated_at.
func (p *Postgres) UpdateTask(ctx context.Context, id int64, ownerID string, changes model.TaskChanges) (*model.Task, error) {
	query := `
		UPDATE task
		SET title       = COALESCE($3::text, title),
		    description = CASE WHEN $4::boolean THEN NULL ELSE COALESCE($5::text, description) END,
		    completed   = COALESCE($6::boolean, completed),
		    updated_at  = $7
		WHERE id = $1 AND user_id = $2
		RETURNING ` + pgTaskColumns

	return p.queryTask(ctx, "update", query,
		id, ownerID,
		changes.Title, changes.ClearDescription, changes.Description, changes.Completed,
		time.Now().UTC(),
	)
}

// DeleteTask removes one of the owner's tasks.
func (p *Postgres) DeleteTask(ctx context.Context, id int64, ownerID string) error {
	query := `DELETE FROM task WHERE id = $1 AND user_id = $2`

	result, err := p.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// ToggleTask flips the completed flag in a single statement.
func (p *Postgres) ToggleTask(ctx context.Context, id int64, ownerID string) (*model.Task, error) {
	query := `
		UPDATE task
		SET completed = NOT completed, updated_at = $3
		WHERE id = $1 AND user_id = $2
		RETURNING ` + pgTaskColumns

	return p.queryTask(ctx, "toggle", query, id, ownerID, time.Now().UTC())
}

func (p *Postgres) queryTask(ctx context.Context, op, query string, args ...any) (*model.Task, error) {
	task, err := scanPgTask(p.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to %s task: %w", op, err)
	}
	return task, nil
}

func scanPgTask(row pgx.Row) (*model.Task, error) {
	var task model.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
