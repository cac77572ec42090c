package measurements

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fittrackhq/fittrack/internal/middleware"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"
	log "github.com/sirupsen/logrus"
)

const defaultListLimit = 50

type measurementsRepo interface {
	Add(ctx context.Context, m BodyMeasurement) (*BodyMeasurement, error)
	ListLatest(ctx context.Context, userID, limit int) ([]BodyMeasurement, error)
}

type Handler struct {
	repo measurementsRepo
}

func NewHandler(repo measurementsRepo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "measurementsHandler.add")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	var m BodyMeasurement
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		log.Warnf("add measurement, decode json: %s", err)
		http.Error(w, "add measurement failed", http.StatusBadRequest)
		return
	}

	m.UserID = userID
	m.CreatedAt = time.Now()
	if m.Date.IsZero() {
		m.Date = m.CreatedAt
	}
	if err := m.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := h.repo.Add(ctx, m)
	if err != nil {
		log.Errorf("add measurement for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal measurement response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "measurementsHandler.list")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil || limit <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	list, err := h.repo.ListLatest(ctx, userID, limit)
	if err != nil {
		log.Errorf("list measurements for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []BodyMeasurement{}
	}

	respBytes, err := json.Marshal(list)
	if err != nil {
		log.Errorf("marshal measurements response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
