package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dev16mehta/ToolBelt-AI/internal/api/response"
	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

// Estimator defines the service surface the text-estimate handler needs.
type Estimator interface {
	EstimateFromText(ctx context.Context, description string) (*models.Estimate, error)
}

// NewEstimateHandler returns an http.HandlerFunc for POST /api/v1/estimate.
// The request carries a free-text job description; features are extracted
// by the configured LLM provider before prediction.
func NewEstimateHandler(svc Estimator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JobDescription string `json:"job_description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "job_description is required", nil)
			return
		}

		est, err := svc.EstimateFromText(r.Context(), req.JobDescription)
		if err != nil {
			writePredictionError(w, err)
			return
		}

		response.JSON(w, est)
	}
}
