package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/response"
)

// HealthCheck checks one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	checks []HealthCheck
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	healthy := true
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			status[check.Name] = "down"
			healthy = false
			continue
		}
		status[check.Name] = "up"
	}

	if !healthy {
		response.JSON(w, http.StatusServiceUnavailable, response.Response{Success: false, Message: "Service unavailable", Data: status})
		return
	}
	response.Success(w, http.StatusOK, "OK", status)
}
