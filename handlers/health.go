package handlers

import (
	"net/http"
	"time"

	"ott-manager.app/api/internal/version"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Records   int       `json:"records"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   version.Version,
		Records:   s.Catalog.Len(),
		Timestamp: time.Now().UTC(),
	})
}
