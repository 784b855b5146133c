package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offloadr/connect-api/internal/domain"
)

// WorkspaceRepository defines persistence access for workspaces.
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *domain.Workspace) error
	GetByID(ctx context.Context, id string) (*domain.Workspace, error)
	Delete(ctx context.Context, id string) error
	// List returns every workspace, most recently created first. Staff
	// membership filtering happens in the service, not here.
	List(ctx context.Context) ([]domain.Workspace, error)
	// ListByClient pushes the clientId equality filter into the query.
	// No ordering is guaranteed on this path.
	ListByClient(ctx context.Context, clientID string) ([]domain.Workspace, error)
	UpdateProgress(ctx context.Context, id string, progress int) error
}

type workspaceRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository builds repository.
func NewWorkspaceRepository(pool *pgxpool.Pool) WorkspaceRepository {
	return &workspaceRepository{pool: pool}
}

const workspaceColumns = `id, name, description, progress, client_id, assigned_staff_ids, created_by, created_at`

func (r *workspaceRepository) Create(ctx context.Context, ws *domain.Workspace) error {
	const query = `
        INSERT INTO workspaces (name, description, progress, client_id, assigned_staff_ids, created_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		ws.Name,
		ws.Description,
		ws.Progress,
		ws.ClientID,
		ws.AssignedStaffIDs,
		ws.CreatedBy,
	).Scan(&ws.ID, &ws.CreatedAt)
}

func (r *workspaceRepository) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	const query = `SELECT ` + workspaceColumns + ` FROM workspaces WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *workspaceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM workspaces WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workspaceRepository) List(ctx context.Context) ([]domain.Workspace, error) {
	const query = `SELECT ` + workspaceColumns + ` FROM workspaces ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *workspaceRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Workspace, error) {
	const query = `SELECT ` + workspaceColumns + ` FROM workspaces WHERE client_id=$1`
	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *workspaceRepository) UpdateProgress(ctx context.Context, id string, progress int) error {
	const query = `UPDATE workspaces SET progress=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, progress, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workspaceRepository) scanOne(row pgx.Row) (*domain.Workspace, error) {
	var ws domain.Workspace
	if err := row.Scan(
		&ws.ID,
		&ws.Name,
		&ws.Description,
		&ws.Progress,
		&ws.ClientID,
		&ws.AssignedStaffIDs,
		&ws.CreatedBy,
		&ws.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *workspaceRepository) scanMany(rows pgx.Rows) ([]domain.Workspace, error) {
	var result []domain.Workspace
	for rows.Next() {
		ws, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ws)
	}
	return result, rows.Err()
}
