package handler

import (
	"errors"
	"net/http"

	"github.com/dev16mehta/ToolBelt-AI/internal/api/response"
	"github.com/dev16mehta/ToolBelt-AI/internal/encode"
	"github.com/dev16mehta/ToolBelt-AI/internal/estimate"
	"github.com/dev16mehta/ToolBelt-AI/internal/extract"
	"github.com/dev16mehta/ToolBelt-AI/internal/schema"
)

// writePredictionError maps pipeline failures onto HTTP statuses. Caller
// mistakes (unknown features, bad values) are 400s with detail; upstream
// extraction trouble maps to gateway statuses; anything else stays a
// generic 500 so internals never leak.
func writePredictionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, estimate.ErrEmptyDescription):
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
			"job_description is required", nil)
	case errors.Is(err, schema.ErrUnknownFeature):
		response.Error(w, http.StatusBadRequest, "UNKNOWN_FEATURE",
			"Record references a feature the model does not know", err.Error())
	case errors.Is(err, encode.ErrEncoding):
		response.Error(w, http.StatusBadRequest, "ENCODING_ERROR",
			"Record could not be encoded", err.Error())
	case errors.Is(err, extract.ErrExtractionTimeout):
		response.Error(w, http.StatusGatewayTimeout, "EXTRACTION_TIMEOUT",
			"Feature extraction took too long and was cancelled", nil)
	case errors.Is(err, extract.ErrProviderUnavailable),
		errors.Is(err, extract.ErrInvalidResponse),
		errors.Is(err, extract.ErrExtractionFailed):
		response.Error(w, http.StatusBadGateway, "EXTRACTION_FAILED",
			"Could not extract job features from the description", nil)
	default:
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}
