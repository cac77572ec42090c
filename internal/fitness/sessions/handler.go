package sessions

//go:generate mockgen -source=handler.go -destination=sessions_mocks_test.go -package=sessions_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fittrackhq/fittrack/internal/fitness/records"
	"github.com/fittrackhq/fittrack/internal/fitness/streak"
	"github.com/fittrackhq/fittrack/internal/middleware"
	"github.com/fittrackhq/fittrack/internal/telemetry/metrics"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type sessionsRepo interface {
	Add(ctx context.Context, session TrainingSession) (*TrainingSession, error)
	Get(ctx context.Context, userID, sessionID int) (*TrainingSession, error)
	ListSince(ctx context.Context, userID int, since time.Time, limit int) ([]TrainingSession, error)
	Delete(ctx context.Context, userID, sessionID int) error
}

type activityTracker interface {
	RecordActivity(ctx context.Context, userID int, activityDate time.Time) (*streak.Streak, error)
}

type recordDetector interface {
	EvaluateSession(ctx context.Context, userID int, performances []records.ExercisePerformance) ([]records.PersonalRecord, error)
}

type Handler struct {
	repo     sessionsRepo
	tracker  activityTracker
	detector recordDetector
	metrics  *metrics.Manager
}

func NewHandler(
	repo sessionsRepo,
	tracker activityTracker,
	detector recordDetector,
	metrics *metrics.Manager,
) *Handler {
	return &Handler{
		repo:     repo,
		tracker:  tracker,
		detector: detector,
		metrics:  metrics,
	}
}

type addResponse struct {
	Session    *TrainingSession         `json:"session"`
	NewRecords []records.PersonalRecord `json:"newRecords"`
	Streak     *streak.Streak           `json:"streak,omitempty"`
}

// HandleAdd stores a finished workout and runs the analytics that hang
// off it. The session save is the only hard requirement, a failure in
// streak or record processing is logged and the save still succeeds.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "sessionsHandler.add")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	var session TrainingSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Warnf("add session, decode json: %s", err)
		http.Error(w, "add session failed", http.StatusBadRequest)
		return
	}

	session.UserID = userID
	if session.Date.IsZero() {
		session.Date = time.Now()
	}
	if err := session.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session.TotalVolume = TotalVolume(session.Logs)

	added, err := h.repo.Add(ctx, session)
	if err != nil {
		log.Errorf("add session for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.metrics.CounterSessionsLogged.Inc()

	resp := addResponse{
		Session:    added,
		NewRecords: []records.PersonalRecord{},
	}

	if streakState, err := h.tracker.RecordActivity(ctx, userID, added.Date); err != nil {
		log.Errorf("record activity for user %d: %s", userID, err)
	} else {
		resp.Streak = streakState
	}

	newRecords, err := h.detector.EvaluateSession(ctx, userID, added.Performances())
	if err != nil {
		log.Errorf("evaluate records for user %d: %s", userID, err)
	}
	if len(newRecords) > 0 {
		resp.NewRecords = newRecords
		h.metrics.CounterPersonalRecords.Add(float64(len(newRecords)))
	}

	respBytes, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal session response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "sessionsHandler.get")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	sessionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	session, err := h.repo.Get(ctx, userID, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get session %d for user %d: %s", sessionID, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(session)
	if err != nil {
		log.Errorf("marshal session response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

// HandleList returns the session history, newest first. Query params:
// days (default 30) and limit (default 50).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "sessionsHandler.list")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	days := queryInt(r, "days", 30)
	limit := queryInt(r, "limit", 50)
	if days <= 0 || limit <= 0 {
		http.Error(w, "days and limit must be positive", http.StatusBadRequest)
		return
	}

	since := time.Now().AddDate(0, 0, -days)
	sessions, err := h.repo.ListSince(ctx, userID, since, limit)
	if err != nil {
		log.Errorf("list sessions for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []TrainingSession{}
	}

	respBytes, err := json.Marshal(sessions)
	if err != nil {
		log.Errorf("marshal sessions response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "sessionsHandler.delete")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	sessionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	err = h.repo.Delete(ctx, userID, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete session %d for user %d: %s", sessionID, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted:"+strconv.Itoa(sessionID))
}

func queryInt(r *http.Request, name string, defaultVal int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return val
}
