package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/probegrid/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a grid run does not exist
var ErrNotFound = errors.New("grid run not found")

// GridRunRepository defines the interface for grid run data operations
type GridRunRepository interface {
	Create(ctx context.Context, run *models.GridRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.GridRun, error)
	List(ctx context.Context, limit int) ([]*models.GridRun, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error
	MarkCompleted(ctx context.Context, id uuid.UUID, objectKey string, lineCount int64) error
	UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error
	MarkDeleted(ctx context.Context, id uuid.UUID) error
}
