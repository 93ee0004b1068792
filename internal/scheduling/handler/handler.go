package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	scherrors "github.com/dabstractor/midnightexpress/internal/scheduling/errors"
	"github.com/dabstractor/midnightexpress/internal/scheduling/service"
	apperrors "github.com/dabstractor/midnightexpress/pkg/errors"
	httputil "github.com/dabstractor/midnightexpress/pkg/http"
	"github.com/dabstractor/midnightexpress/pkg/logger"
	"github.com/dabstractor/midnightexpress/pkg/model"
)

type SchedulingHandler struct {
	service       service.SchedulingService
	businessPhone string
	log           *logger.Logger
}

func NewSchedulingHandler(svc service.SchedulingService, businessPhone string, log *logger.Logger) *SchedulingHandler {
	return &SchedulingHandler{
		service:       svc,
		businessPhone: businessPhone,
		log:           log,
	}
}

func (h *SchedulingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability", h.Availability)
	router.GET("/api/v1/quote", h.Quote)
	router.POST("/api/v1/bookings/evaluate", h.Evaluate)
	router.POST("/api/v1/bookings", h.Submit)
}

func (h *SchedulingHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("date query parameter is required (YYYY-MM-DD)")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	view, err := h.service.Availability(r.Context(), date)
	if err != nil {
		if writeErr := httputil.WriteError(w, h.translate(err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SchedulingHandler) Quote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	destination := query.Get("destination")
	if destination == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("destination query parameter is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Quote", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	passengers := 1
	if passengersStr := query.Get("passengers"); passengersStr != "" {
		var err error
		passengers, err = strconv.Atoi(passengersStr)
		if err != nil || passengers < 1 {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid passengers parameter: %s", passengersStr))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Quote", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	if err := httputil.WriteSuccess(w, h.service.Quote(destination, passengers)); err != nil {
		h.log.Error("failed to write success response", "handler", "Quote", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SchedulingHandler) Evaluate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var candidate model.BookingCandidate
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Evaluate", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	verdict, err := h.service.Evaluate(r.Context(), &candidate)
	if err != nil {
		if writeErr := httputil.WriteError(w, h.translate(err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Evaluate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, verdict); err != nil {
		h.log.Error("failed to write success response", "handler", "Evaluate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SchedulingHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var candidate model.BookingCandidate
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Submit", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.Submit(r.Context(), &candidate)
	if err != nil {
		if writeErr := httputil.WriteError(w, h.translate(err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if !result.Accepted {
		policyErr := apperrors.PolicyViolation(
			fmt.Sprintf("Booking request cannot be accepted. For edge cases, call us at %s.", h.businessPhone),
			map[string]any{"reasons": result.Verdict.Reasons},
		)
		if writeErr := httputil.WriteError(w, policyErr); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, result); err != nil {
		h.log.Error("failed to write created response", "handler", "Submit", "operation", "WriteCreated", "error", err)
	}
}

// translate maps service failures onto the error taxonomy, keeping rider
// messages actionable. Submission failures never fabricate success and
// always carry the phone fallback.
func (h *SchedulingHandler) translate(err error) error {
	switch {
	case errors.Is(err, scherrors.ErrPartialWrite):
		return apperrors.Wrap(err, apperrors.CodeConflict,
			fmt.Sprintf("Your outbound ride was booked but the return ride failed. Please call us at %s to finish the round trip.", h.businessPhone),
			http.StatusInternalServerError)
	case errors.Is(err, scherrors.ErrStoreWriteFailed):
		return apperrors.Wrap(err, apperrors.CodeUnavailable,
			fmt.Sprintf("We couldn't save your booking. Please try again, or call us at %s.", h.businessPhone),
			http.StatusServiceUnavailable)
	case errors.Is(err, scherrors.ErrStoreUnavailable):
		return apperrors.Unavailable("The reservation system")
	default:
		return apperrors.InvalidInput(err.Error())
	}
}
