package streak

//go:generate mockgen -source=handler.go -destination=streak_mocks_test.go -package=streak_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fittrackhq/fittrack/internal/middleware"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"
	log "github.com/sirupsen/logrus"
)

type streakStore interface {
	Get(ctx context.Context, userID int) (*Streak, error)
}

type Handler struct {
	store streakStore
}

func NewHandler(store streakStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "streakHandler.get")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	s, err := h.store.Get(ctx, userID)
	if errors.Is(err, ErrStreakNotFound) {
		// never trained yet, still a valid state
		s = &Streak{UserID: userID}
	} else if err != nil {
		log.Errorf("get streak for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(s)
	if err != nil {
		log.Errorf("marshal streak response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
