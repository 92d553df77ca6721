// Package handler holds the HTTP endpoints. Handlers decode and authorize,
// then delegate to the application services.
package handler

import "net/http"

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
