package records

//go:generate mockgen -source=handler.go -destination=handler_mocks_test.go -package=records_test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fittrackhq/fittrack/internal/middleware"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"
	log "github.com/sirupsen/logrus"
)

type recordsLister interface {
	ListBest(ctx context.Context, userID int) ([]PersonalRecord, error)
}

type Handler struct {
	store recordsLister
}

func NewHandler(store recordsLister) *Handler {
	return &Handler{store: store}
}

type listResponse struct {
	Records []PersonalRecord `json:"records"`
	Total   int              `json:"total"`
}

// HandleList returns the user's current personal bests, one entry per
// exercise and record type.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "recordsHandler.list")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	recs, err := h.store.ListBest(ctx, userID)
	if err != nil {
		log.Errorf("list records for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []PersonalRecord{}
	}

	respBytes, err := json.Marshal(listResponse{Records: recs, Total: len(recs)})
	if err != nil {
		log.Errorf("marshal records response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
