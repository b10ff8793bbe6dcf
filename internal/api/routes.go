package api

import (
	"net/http"

	"github.com/RMahshie/probegrid/internal/api/handlers"
	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, gridHandler *handlers.GridHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "createGrid",
		Method:        http.MethodPost,
		Path:          "/api/grids",
		Summary:       "Create a new probe grid",
		Description:   "Records a grid run and starts writing the grid file in the background",
		Tags:          []string{"Grids"},
		DefaultStatus: http.StatusAccepted,
	}, gridHandler.CreateGrid)

	huma.Register(api, huma.Operation{
		OperationID: "listGrids",
		Method:      http.MethodGet,
		Path:        "/api/grids",
		Summary:     "List grid runs",
		Description: "Returns the most recent grid runs, newest first",
		Tags:        []string{"Grids"},
	}, gridHandler.ListGrids)

	huma.Register(api, huma.Operation{
		OperationID: "getGridStatus",
		Method:      http.MethodGet,
		Path:        "/api/grids/{id}",
		Summary:     "Get grid status",
		Description: "Returns the current status and progress of a grid run",
		Tags:        []string{"Grids"},
	}, gridHandler.GetGridStatus)

	huma.Register(api, huma.Operation{
		OperationID: "getGridDownload",
		Method:      http.MethodGet,
		Path:        "/api/grids/{id}/download",
		Summary:     "Get grid download URL",
		Description: "Returns a pre-signed URL for a completed grid file",
		Tags:        []string{"Grids"},
	}, gridHandler.GetGridDownload)

	huma.Register(api, huma.Operation{
		OperationID: "deleteGrid",
		Method:      http.MethodDelete,
		Path:        "/api/grids/{id}",
		Summary:     "Delete grid file",
		Description: "Removes the stored grid file of a run",
		Tags:        []string{"Grids"},
	}, gridHandler.DeleteGrid)
}
