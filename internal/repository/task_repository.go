package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offloadr/connect-api/internal/domain"
)

// TaskRepository manages workspace checklist items.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository builds repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (workspace_id, label, completed, created_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		task.WorkspaceID,
		task.Label,
		task.Completed,
		task.CreatedBy,
	).Scan(&task.ID, &task.CreatedAt)
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
        SELECT id, workspace_id, label, completed, created_by, created_at
        FROM tasks WHERE id=$1`
	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.WorkspaceID,
		&task.Label,
		&task.Completed,
		&task.CreatedBy,
		&task.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.Task, error) {
	const query = `
        SELECT id, workspace_id, label, completed, created_by, created_at
        FROM tasks WHERE workspace_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.WorkspaceID,
			&task.Label,
			&task.Completed,
			&task.CreatedBy,
			&task.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}

func (r *taskRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	const query = `UPDATE tasks SET completed=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, completed, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
