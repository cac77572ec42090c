package recommendations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fittrackhq/fittrack/internal/middleware"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type recommendationsStore interface {
	List(ctx context.Context, userID int, status Status, now time.Time) ([]Recommendation, error)
	UpdateStatus(ctx context.Context, userID, recID int, status Status) error
}

type generator interface {
	Generate(ctx context.Context, userID int) ([]Recommendation, error)
}

type Handler struct {
	store  recommendationsStore
	engine generator
}

func NewHandler(store recommendationsStore, engine generator) *Handler {
	return &Handler{
		store:  store,
		engine: engine,
	}
}

// HandleGenerate runs a fresh analysis for the user. Partial storage
// failures still return the recommendations that made it.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "recommendationsHandler.generate")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	recs, err := h.engine.Generate(ctx, userID)
	if err != nil {
		if len(recs) == 0 {
			log.Errorf("generate recommendations for user %d: %s", userID, err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		log.Warnf("generate recommendations for user %d, partial failure: %s", userID, err)
	}

	respBytes, err := json.Marshal(recs)
	if err != nil {
		log.Errorf("marshal recommendations response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

// HandleList returns stored, unexpired recommendations. The status
// query param filters, empty means all statuses.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "recommendationsHandler.list")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	status := Status(r.URL.Query().Get("status"))
	switch status {
	case "", StatusPending, StatusAccepted, StatusDismissed:
	default:
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	recs, err := h.store.List(ctx, userID, status, time.Now())
	if err != nil {
		log.Errorf("list recommendations for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []Recommendation{}
	}

	respBytes, err := json.Marshal(recs)
	if err != nil {
		log.Errorf("marshal recommendations response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

type updateStatusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "recommendationsHandler.updateStatus")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	recID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid recommendation id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warnf("update recommendation status, decode json: %s", err)
		http.Error(w, "update status failed", http.StatusBadRequest)
		return
	}
	switch req.Status {
	case StatusAccepted, StatusDismissed:
	default:
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	err = h.store.UpdateStatus(ctx, userID, recID, req.Status)
	if errors.Is(err, ErrRecommendationNotFound) {
		http.Error(w, "recommendation not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("update recommendation %d status for user %d: %s", recID, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "updated:"+strconv.Itoa(recID))
}
