package getpayload

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/marketing/internal/service/models/event"
	"github.com/corray333/backend-labs/marketing/internal/service/models/order"
	"github.com/go-chi/chi/v5"
)

type service interface {
	BuildPayload(ctx context.Context, incrementID string) (event.OrderEventPayload, error)
}

// GetPayload renders the purchase payload of the order named in the path.
func GetPayload(w http.ResponseWriter, r *http.Request, service service) {
	incrementID := chi.URLParam(r, "incrementId")

	payload, err := service.BuildPayload(r.Context(), incrementID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)

			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.ErrorContext(r.Context(), "Error building payload", "increment_id", incrementID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.ErrorContext(r.Context(), "Error sending payload response", "error", err)
	}
}
