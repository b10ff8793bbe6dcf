package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/RMahshie/probegrid/internal/repository"
	"github.com/RMahshie/probegrid/pkg/models"
	"github.com/google/uuid"
)

// PostgresGridRunRepository implements GridRunRepository for PostgreSQL
type PostgresGridRunRepository struct {
	db *sql.DB
}

// NewPostgresGridRunRepository creates a new PostgreSQL grid run repository
func NewPostgresGridRunRepository(db *sql.DB) repository.GridRunRepository {
	return &PostgresGridRunRepository{db: db}
}

const selectGridRun = `
		SELECT id, status, progress, r_min, r_max, r_steps, z_min, z_max, z_steps,
		       object_key, line_count, error_message, created_at, updated_at, completed_at
		FROM grid_runs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGridRun(row rowScanner) (*models.GridRun, error) {
	var run models.GridRun
	var objectKey, errorMsg sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&run.ID,
		&run.Status,
		&run.Progress,
		&run.R.Min,
		&run.R.Max,
		&run.R.Steps,
		&run.Z.Min,
		&run.Z.Max,
		&run.Z.Steps,
		&objectKey,
		&run.LineCount,
		&errorMsg,
		&run.CreatedAt,
		&run.UpdatedAt,
		&completedAt)
	if err != nil {
		return nil, err
	}

	if objectKey.Valid {
		run.ObjectKey = &objectKey.String
	}
	if errorMsg.Valid {
		run.ErrorMsg = &errorMsg.String
	}
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}

	return &run, nil
}

// Create inserts a new grid run record
func (r *PostgresGridRunRepository) Create(ctx context.Context, run *models.GridRun) error {
	query := `
		INSERT INTO grid_runs (id, status, progress, r_min, r_max, r_steps, z_min, z_max, z_steps,
		                       line_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Status,
		run.Progress,
		run.R.Min,
		run.R.Max,
		run.R.Steps,
		run.Z.Min,
		run.Z.Max,
		run.Z.Steps,
		run.LineCount,
		run.CreatedAt,
		run.UpdatedAt)

	return err
}

// GetByID retrieves a grid run by ID
func (r *PostgresGridRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GridRun, error) {
	run, err := scanGridRun(r.db.QueryRowContext(ctx, selectGridRun+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List retrieves the most recent grid runs, newest first
func (r *PostgresGridRunRepository) List(ctx context.Context, limit int) ([]*models.GridRun, error) {
	rows, err := r.db.QueryContext(ctx, selectGridRun+` ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.GridRun
	for rows.Next() {
		run, err := scanGridRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// UpdateStatus updates the status and progress of a grid run
func (r *PostgresGridRunRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	query := `
		UPDATE grid_runs
		SET status = $1, progress = $2, updated_at = NOW()
		WHERE id = $3`

	return r.execOne(ctx, query, status, progress, id)
}

// MarkCompleted records the stored object and final line count of a grid run
func (r *PostgresGridRunRepository) MarkCompleted(ctx context.Context, id uuid.UUID, objectKey string, lineCount int64) error {
	query := `
		UPDATE grid_runs
		SET status = 'completed', progress = 100, object_key = $1, line_count = $2,
		    updated_at = NOW(), completed_at = NOW()
		WHERE id = $3`

	return r.execOne(ctx, query, objectKey, lineCount, id)
}

// UpdateError updates the error message for a grid run
func (r *PostgresGridRunRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	query := `
		UPDATE grid_runs
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2`

	return r.execOne(ctx, query, errorMsg, id)
}

// MarkDeleted records that the stored file of a completed grid run was removed
func (r *PostgresGridRunRepository) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE grid_runs
		SET status = 'deleted', object_key = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'completed'`

	return r.execOne(ctx, query, id)
}

func (r *PostgresGridRunRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}

	return nil
}
