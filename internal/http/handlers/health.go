package handlers

import (
	"net/http"
	"time"

	"quent-tech-backend/internal/http/response"
)

// Version is stamped at build time with -ldflags "-X quent-tech-backend/internal/http/handlers.Version=..."
var Version = "dev"

// HealthCheck handles basic health check
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "contact-api",
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// LivenessCheck handles liveness probe
func LivenessCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status": "alive",
	})
}
