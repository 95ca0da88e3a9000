package handler

import "net/http"

// healthResponse is the static body returned by the liveness probe.
type healthResponse struct {
	Status string `json:"status"`
}

// GetHealth handles GET /api/health.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
// The probe never touches the store.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
