package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/RMahshie/probegrid/internal/generation"
	"github.com/RMahshie/probegrid/internal/grid"
	"github.com/RMahshie/probegrid/internal/repository"
	"github.com/RMahshie/probegrid/internal/storage"
	"github.com/RMahshie/probegrid/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxGridLines caps the size of a grid generated through the API
const MaxGridLines = 10_000_000

// downloadURLExpiry matches the storage presign expiry
const downloadURLExpiry = 24 * time.Hour

// GridHandler handles grid-related HTTP requests
type GridHandler struct {
	repo          repository.GridRunRepository
	storage       storage.Storage
	generationSvc generation.GenerationService
	inflight      sync.WaitGroup
}

// NewGridHandler creates a new grid handler
func NewGridHandler(repo repository.GridRunRepository, store storage.Storage, generationSvc generation.GenerationService) *GridHandler {
	return &GridHandler{
		repo:          repo,
		storage:       store,
		generationSvc: generationSvc,
	}
}

// Wait blocks until every background generation started by CreateGrid has returned
func (h *GridHandler) Wait() {
	h.inflight.Wait()
}

// CreateGrid records a new grid run and starts generating it in the background
func (h *GridHandler) CreateGrid(ctx context.Context, req *models.CreateGridRequest) (*models.CreateGridResponse, error) {
	r, z := req.Body.R, req.Body.Z
	log.Info().Interface("r", r).Interface("z", z).Msg("Creating new grid run")

	if r.Steps < 1 || z.Steps < 1 {
		return nil, huma.Error400BadRequest("Both ranges need at least one step.", nil)
	}
	lines := grid.LineCount(r, z)
	if lines > MaxGridLines {
		return nil, huma.Error400BadRequest(fmt.Sprintf("Grid too large. At most %d points are supported.", MaxGridLines), nil)
	}

	runID := uuid.New()
	now := time.Now()
	run := &models.GridRun{
		ID:        runID.String(),
		Status:    models.StatusPending,
		Progress:  0,
		R:         r,
		Z:         z,
		LineCount: lines,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repo.Create(ctx, run); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create grid run", err)
	}
	log.Info().Str("runID", run.ID).Int64("lines", lines).Msg("Grid run record created successfully")

	// Generate in background (don't wait for completion)
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		if err := h.generationSvc.GenerateGrid(context.Background(), runID); err != nil {
			log.Error().Err(err).Str("runID", runID.String()).Msg("Grid generation failed")
		}
	}()

	return &models.CreateGridResponse{
		Body: models.CreateGridResponseBody{
			ID:        run.ID,
			Status:    run.Status,
			LineCount: lines,
		},
	}, nil
}

// GetGridStatus returns the current status of a grid run
func (h *GridHandler) GetGridStatus(ctx context.Context, req *models.GetGridStatusRequest) (*models.GetGridStatusResponse, error) {
	run, err := h.lookup(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	log.Info().Str("runID", run.ID).Str("status", run.Status).Int("progress", run.Progress).Msg("Returning grid status")
	return &models.GetGridStatusResponse{Body: h.statusBody(run)}, nil
}

// ListGrids returns the most recent grid runs
func (h *GridHandler) ListGrids(ctx context.Context, req *models.ListGridsRequest) (*models.ListGridsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}

	runs, err := h.repo.List(ctx, limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list grid runs", err)
	}

	resp := &models.ListGridsResponse{}
	resp.Body.Grids = make([]models.GridStatusBody, 0, len(runs))
	for _, run := range runs {
		resp.Body.Grids = append(resp.Body.Grids, h.statusBody(run))
	}
	return resp, nil
}

// GetGridDownload returns a pre-signed URL for a completed grid file
func (h *GridHandler) GetGridDownload(ctx context.Context, req *models.GetGridDownloadRequest) (*models.GetGridDownloadResponse, error) {
	run, err := h.lookup(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if run.Status == models.StatusDeleted {
		return nil, huma.Error410Gone("Grid file was deleted")
	}
	if run.Status != models.StatusCompleted || run.ObjectKey == nil {
		return nil, huma.Error409Conflict("Grid not yet completed",
			fmt.Errorf("grid run status is %s", run.Status))
	}

	url, err := h.storage.GenerateDownloadURL(ctx, *run.ObjectKey)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to prepare download", err)
	}

	resp := &models.GetGridDownloadResponse{}
	resp.Body.URL = url
	resp.Body.ExpiresIn = int(downloadURLExpiry.Seconds())
	return resp, nil
}

// DeleteGrid removes the stored grid file of a completed run and marks the run deleted
func (h *GridHandler) DeleteGrid(ctx context.Context, req *models.DeleteGridRequest) (*models.DeleteGridResponse, error) {
	run, err := h.lookup(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if run.Status == models.StatusDeleted {
		return nil, huma.Error410Gone("Grid file was already deleted")
	}
	if run.Status != models.StatusCompleted || run.ObjectKey == nil {
		return nil, huma.Error409Conflict("Grid has no stored file",
			fmt.Errorf("grid run status is %s", run.Status))
	}

	if err := h.storage.DeleteFile(ctx, *run.ObjectKey); err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete grid file", err)
	}
	if err := h.repo.MarkDeleted(ctx, uuid.MustParse(req.ID)); err != nil {
		return nil, huma.Error500InternalServerError("Failed to update grid run", err)
	}
	log.Info().Str("runID", run.ID).Str("objectKey", *run.ObjectKey).Msg("Grid file deleted")

	resp := &models.DeleteGridResponse{}
	resp.Body.Message = "Grid file deleted"
	return resp, nil
}

func (h *GridHandler) lookup(ctx context.Context, rawID string) (*models.GridRun, error) {
	runID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid grid ID", err)
	}

	run, err := h.repo.GetByID(ctx, runID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, huma.Error404NotFound("Grid not found", err)
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load grid run", err)
	}
	return run, nil
}

func (h *GridHandler) statusBody(run *models.GridRun) models.GridStatusBody {
	return models.GridStatusBody{
		ID:          run.ID,
		Status:      run.Status,
		Progress:    run.Progress,
		Message:     h.generateStatusMessage(run.Status, run.Progress),
		R:           run.R,
		Z:           run.Z,
		LineCount:   run.LineCount,
		Error:       run.ErrorMsg,
		CreatedAt:   run.CreatedAt,
		CompletedAt: run.CompletedAt,
	}
}

// generateStatusMessage creates a human-readable status message
func (h *GridHandler) generateStatusMessage(status string, progress int) string {
	switch status {
	case models.StatusPending:
		return "Grid queued for generation..."
	case models.StatusWriting:
		if progress < 60 {
			return "Writing grid points..."
		}
		return "Uploading grid file..."
	case models.StatusCompleted:
		return "Grid ready for download!"
	case models.StatusFailed:
		return "Grid generation failed. Please try again."
	case models.StatusDeleted:
		return "Grid file has been deleted."
	default:
		return "Unknown status"
	}
}
