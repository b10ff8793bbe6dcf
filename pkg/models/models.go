package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// CreateGridRequestBody is the body of a create grid request
type CreateGridRequestBody struct {
	R Range `json:"r" required:"true" doc:"R-dimension sampling range"`
	Z Range `json:"z" required:"true" doc:"Z-dimension sampling range"`
}

// CreateGridRequest represents a request to generate a new probe grid
type CreateGridRequest struct {
	Body CreateGridRequestBody
}

// CreateGridResponseBody is the body of the create grid response
type CreateGridResponseBody struct {
	ID        string `json:"id" doc:"Grid run unique identifier"`
	Status    string `json:"status" enum:"pending,writing,completed,failed,deleted" doc:"Grid run status"`
	LineCount int64  `json:"line_count" doc:"Number of lines the grid file will contain"`
}

// CreateGridResponse represents the response from creating a grid run
type CreateGridResponse struct {
	Body CreateGridResponseBody
}

// GetGridStatusRequest represents a request to get grid run status
type GetGridStatusRequest struct {
	ID string `path:"id" doc:"Grid run ID"`
}

// GridStatusBody describes the current state of a grid run
type GridStatusBody struct {
	ID          string     `json:"id" doc:"Grid run ID"`
	Status      string     `json:"status" enum:"pending,writing,completed,failed,deleted" doc:"Grid run status"`
	Progress    int        `json:"progress" minimum:"0" maximum:"100" doc:"Generation progress percentage"`
	Message     string     `json:"message,omitempty" doc:"Human-readable status message"`
	R           Range      `json:"r" doc:"R-dimension sampling range"`
	Z           Range      `json:"z" doc:"Z-dimension sampling range"`
	LineCount   int64      `json:"line_count" doc:"Number of lines in the grid file"`
	Error       *string    `json:"error,omitempty" doc:"Failure reason"`
	CreatedAt   time.Time  `json:"created_at" doc:"Grid run creation timestamp"`
	CompletedAt *time.Time `json:"completed_at,omitempty" doc:"Grid run completion timestamp"`
}

// GetGridStatusResponse represents the current status of a grid run
type GetGridStatusResponse struct {
	Body GridStatusBody
}

// ListGridsRequest represents a request to list recent grid runs
type ListGridsRequest struct {
	Limit int `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum number of runs to return"`
}

// ListGridsResponse represents a list of grid runs, newest first
type ListGridsResponse struct {
	Body struct {
		Grids []GridStatusBody `json:"grids" doc:"Grid runs"`
	}
}

// GetGridDownloadRequest represents a request for a grid file download URL
type GetGridDownloadRequest struct {
	ID string `path:"id" doc:"Grid run ID"`
}

// GetGridDownloadResponse represents a pre-signed download URL for a grid file
type GetGridDownloadResponse struct {
	Body struct {
		URL       string `json:"url" doc:"Pre-signed URL for the grid file"`
		ExpiresIn int    `json:"expires_in" doc:"URL expiration time in seconds"`
	}
}

// DeleteGridRequest represents a request to delete a stored grid file
type DeleteGridRequest struct {
	ID string `path:"id" doc:"Grid run ID"`
}

// DeleteGridResponse represents the response from deleting a grid file
type DeleteGridResponse struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation message"`
	}
}
