package validatesettings

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

type service interface {
	ValidateSettings(ctx context.Context) (bool, string)
}

type validateSettingsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ValidateSettings reports whether the platform accepts the configured credentials.
func ValidateSettings(w http.ResponseWriter, r *http.Request, service service) {
	ok, msg := service.ValidateSettings(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(validateSettingsResponse{Success: ok, Message: msg}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.ErrorContext(r.Context(), "Error sending response", "error", err)
	}
}
