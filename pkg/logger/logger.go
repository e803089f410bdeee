package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5/middleware"
)

// Handler is a JSON slog handler that attaches the chi request ID found in
// the record context.
type Handler struct {
	slog.Handler
}

// NewHandler creates a Handler writing to stdout. A nil opts logs at info level.
func NewHandler(opts *slog.HandlerOptions) *Handler {
	return &Handler{Handler: slog.NewJSONHandler(os.Stdout, opts)}
}

// Handle adds request_id when present and delegates to the JSON handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		r.AddAttrs(slog.String("request_id", reqID))
	}

	return h.Handler.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name)}
}
