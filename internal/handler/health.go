package handler

import "net/http"

// HealthResponse is the body of both health endpoints.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// health handles GET /health.
// Returns HTTP 200 with {"status":"healthy"} whenever the process is up.
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

// healthDB handles GET /health/db. It pings the database and reports 503
// when the pool is unreachable or not configured.
func (s *Server) healthDB(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Database: "not configured"})
		return
	}
	if err := s.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Database: "unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Database: "connected"})
}

// openAPIDocument serves the embedded OpenAPI document.
func (s *Server) openAPIDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.openapi)
}
