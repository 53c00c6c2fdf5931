package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dev16mehta/ToolBelt-AI/internal/api/response"
	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

// Predictor defines the service surface the raw-record handler needs.
type Predictor interface {
	Predict(ctx context.Context, record models.JobRecord) (*models.Estimate, error)
}

// NewPredictHandler returns an http.HandlerFunc for POST /api/v1/predict.
// The request body is a feature record; the LLM extractor is bypassed
// entirely.
func NewPredictHandler(svc Predictor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record models.JobRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		est, err := svc.Predict(r.Context(), record)
		if err != nil {
			writePredictionError(w, err)
			return
		}

		response.JSON(w, est)
	}
}
