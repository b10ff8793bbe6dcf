package generation

import (
	"context"
	"fmt"
	"os"

	"github.com/RMahshie/probegrid/internal/grid"
	"github.com/RMahshie/probegrid/internal/repository"
	"github.com/RMahshie/probegrid/internal/storage"
	"github.com/RMahshie/probegrid/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type GenerationService interface {
	GenerateGrid(ctx context.Context, runID uuid.UUID) error
}

type generationService struct {
	storage    storage.Storage
	repository repository.GridRunRepository
	tempDir    string // Empty means os.TempDir()
}

func NewGenerationService(store storage.Storage, repo repository.GridRunRepository, tempDir string) GenerationService {
	return &generationService{
		storage:    store,
		repository: repo,
		tempDir:    tempDir,
	}
}

// ObjectKey returns the storage key of a run's grid file
func ObjectKey(runID uuid.UUID) string {
	return fmt.Sprintf("grids/%s.txt", runID)
}

// GenerateGrid writes, uploads and records the grid of a run.
// Any failure after the run is picked up leaves it in the failed state.
func (s *generationService) GenerateGrid(ctx context.Context, runID uuid.UUID) error {
	// Step 1: Update to writing status
	if err := s.repository.UpdateStatus(ctx, runID, models.StatusWriting, 10); err != nil {
		s.fail(ctx, runID, "Failed to start grid generation")
		return err
	}

	// Step 2: Get run details
	run, err := s.repository.GetByID(ctx, runID)
	if err != nil {
		s.fail(ctx, runID, "Failed to load grid run")
		return err
	}

	// Step 3: Write the grid to a temp file, only complete files get published
	tmp, err := os.CreateTemp(s.tempDir, "grid-*.txt")
	if err != nil {
		s.fail(ctx, runID, "Failed to write grid file")
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempFile := tmp.Name()
	if err := tmp.Close(); err != nil {
		log.Warn().Err(err).Str("runID", runID.String()).Str("path", tempFile).Msg("Failed to close temp file")
	}
	defer os.Remove(tempFile) // Always cleanup

	log.Info().Str("runID", runID.String()).Interface("r", run.R).Interface("z", run.Z).Msg("Writing grid file")
	if err := grid.WriteGrid(run.R, run.Z, tempFile); err != nil {
		s.fail(ctx, runID, "Failed to write grid file")
		return fmt.Errorf("failed to write grid: %w", err)
	}

	// Step 4: Upload
	if err := s.repository.UpdateStatus(ctx, runID, models.StatusWriting, 60); err != nil {
		s.fail(ctx, runID, "Failed to update grid progress")
		return err
	}

	key := ObjectKey(runID)
	if err := s.upload(ctx, key, tempFile); err != nil {
		s.fail(ctx, runID, "Failed to upload grid file")
		return err
	}

	// Step 5: Mark complete
	lines := grid.LineCount(run.R, run.Z)
	if err := s.repository.MarkCompleted(ctx, runID, key, lines); err != nil {
		// A failed run must not leave an orphaned object behind
		if delErr := s.storage.DeleteFile(ctx, key); delErr != nil {
			log.Error().Err(delErr).Str("runID", runID.String()).Str("objectKey", key).Msg("Failed to remove uploaded grid file")
		}
		s.fail(ctx, runID, "Failed to record grid completion")
		return err
	}

	log.Info().Str("runID", runID.String()).Str("objectKey", key).Int64("lines", lines).Msg("Grid generation completed")
	return nil
}

// fail moves the run to the failed state, logging if even that cannot be recorded
func (s *generationService) fail(ctx context.Context, runID uuid.UUID, msg string) {
	if err := s.repository.UpdateError(ctx, runID, msg); err != nil {
		log.Error().Err(err).Str("runID", runID.String()).Str("reason", msg).Msg("Failed to record grid failure")
	}
}

func (s *generationService) upload(ctx context.Context, key, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open grid file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat grid file: %w", err)
	}

	return s.storage.UploadFile(ctx, key, file, info.Size(), storage.GridContentType)
}
