package handler

import (
	"net/http"

	"github.com/dev16mehta/ToolBelt-AI/internal/api/response"
)

// ModelInfo describes the loaded inference artifacts.
type ModelInfo interface {
	Version() string
	Width() int
	FeatureNames() []string
	Provider() string
}

// NewModelInfoHandler returns an http.HandlerFunc for GET /api/v1/model.
func NewModelInfoHandler(info ModelInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, map[string]any{
			"version":   info.Version(),
			"columns":   info.Width(),
			"features":  info.FeatureNames(),
			"extractor": info.Provider(),
		})
	}
}
