package dashboard

//go:generate mockgen -source=handler.go -destination=dashboard_mocks_test.go -package=dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fittrackhq/fittrack/internal/middleware"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"
	log "github.com/sirupsen/logrus"
)

type summaryStore interface {
	Summary(ctx context.Context, userID int, now time.Time) (*Summary, error)
}

type Handler struct {
	store summaryStore
}

func NewHandler(store summaryStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.summary")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	summary, err := h.store.Summary(ctx, userID, time.Now())
	if err != nil {
		log.Errorf("dashboard summary for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("marshal dashboard summary: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
