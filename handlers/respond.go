package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		writeInternalError(w, r, fmt.Errorf("failed to encode response: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeInternalError reports err to Sentry through the request hub when
// one is attached and hides the details from the client.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	loggerFrom(r.Context()).Error("Internal error", map[string]interface{}{
		"error": err.Error(),
		"path":  r.URL.Path,
	})
	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}
	writeErrorResponse(w, http.StatusInternalServerError, "internal server error")
}
