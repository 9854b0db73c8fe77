package api

import (
	"fmt"
	"net/http"
	"time"
)

// RootHandler handles GET /. Returns the server banner and a timestamp;
// a pure liveness check with no business logic.
func RootHandler(port int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"message":   fmt.Sprintf("Email server is running on port %d", port),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// HealthzHandler handles GET /healthz. Always returns 200 {"status":"ok"}.
func HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
