package listpayloads

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/marketing/internal/service/models/event"
	"github.com/corray333/backend-labs/marketing/internal/service/models/order"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type service interface {
	BuildPayload(ctx context.Context, incrementID string) (event.OrderEventPayload, error)
}

type listPayloadsRequest struct {
	IncrementIDs []string `schema:"incrementIds" validate:"required,min=1,max=50,dive,required"`
}

func (q *listPayloadsRequest) Validate() error {
	return validator.New().Struct(q)
}

type listPayloadsResponse struct {
	Payloads []event.OrderEventPayload `json:"payloads"`
}

// ListPayloads renders the payloads of several orders given as repeated
// incrementIds query parameters.
func ListPayloads(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	query := &listPayloadsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.ErrorContext(r.Context(), "Error decoding request", "error", err)

		return
	}

	if err := query.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	resp := listPayloadsResponse{Payloads: make([]event.OrderEventPayload, 0, len(query.IncrementIDs))}
	for _, id := range query.IncrementIDs {
		payload, err := service.BuildPayload(r.Context(), id)
		if err != nil {
			if errors.Is(err, order.ErrOrderNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)

				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			slog.ErrorContext(r.Context(), "Error building payload", "increment_id", id, "error", err)

			return
		}
		resp.Payloads = append(resp.Payloads, payload)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.ErrorContext(r.Context(), "Error sending response", "error", err)
	}
}
