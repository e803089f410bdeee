package sendevent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/marketing/internal/service/models/order"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type service interface {
	SendPurchaseEvent(ctx context.Context, incrementID string) (string, error)
	SendPurchaseEvents(ctx context.Context, incrementIDs []string) ([]string, error)
}

type sendEventResponse struct {
	EventID string `json:"eventId"`
}

type sendEventsRequest struct {
	IncrementIDs []string `json:"incrementIds" validate:"required,min=1,max=100,dive,required"`
}

// Validate validates the batch request.
func (r *sendEventsRequest) Validate() error {
	return validator.New().Struct(r)
}

type sendEventsResponse struct {
	EventIDs []string `json:"eventIds"`
}

// SendPurchaseEvent queues a purchase event for the order named in the path.
func SendPurchaseEvent(w http.ResponseWriter, r *http.Request, service service) {
	incrementID := chi.URLParam(r, "incrementId")

	id, err := service.SendPurchaseEvent(r.Context(), incrementID)
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	writeAccepted(w, r, sendEventResponse{EventID: id})
}

// SendPurchaseEvents queues purchase events for every order in the body.
func SendPurchaseEvents(w http.ResponseWriter, r *http.Request, service service) {
	req := sendEventsRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.ErrorContext(r.Context(), "Error decoding request body for purchase events", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.ErrorContext(r.Context(), "Error validating request body for purchase events", "error", err)

		return
	}

	ids, err := service.SendPurchaseEvents(r.Context(), req.IncrementIDs)
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	writeAccepted(w, r, sendEventsResponse{EventIDs: ids})
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, order.ErrOrderNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)

		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
	slog.ErrorContext(r.Context(), "Error sending purchase event", "error", err)
}

func writeAccepted(w http.ResponseWriter, r *http.Request, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(r.Context(), "Error sending response", "error", err)
	}
}
