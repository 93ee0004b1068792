package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dabstractor/midnightexpress/internal/scheduling/store"
	httputil "github.com/dabstractor/midnightexpress/pkg/http"
	"github.com/dabstractor/midnightexpress/pkg/logger"
)

// OpsHandler serves liveness, readiness, and metrics. Readiness checks the
// reservation store, since every booking operation depends on it.
type OpsHandler struct {
	store   store.ReservationStore
	version string
	log     *logger.Logger
}

func NewOpsHandler(st store.ReservationStore, version string, log *logger.Logger) *OpsHandler {
	return &OpsHandler{
		store:   st,
		version: version,
		log:     log,
	}
}

func (h *OpsHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())
}

func (h *OpsHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	}); err != nil {
		h.log.Error("failed to write health response", "error", err)
	}
}

func (h *OpsHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("readiness check failed", "error", err)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "reservation store unreachable",
		}); writeErr != nil {
			h.log.Error("failed to write readiness response", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	}); err != nil {
		h.log.Error("failed to write readiness response", "error", err)
	}
}
