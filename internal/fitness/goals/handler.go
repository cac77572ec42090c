package goals

//go:generate mockgen -source=handler.go -destination=goals_mocks_test.go -package=goals_test

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

type goalsRepo interface {
	Add(ctx context.Context, g Goal) (*Goal, error)
	Get(ctx context.Context, userID, goalID int) (*Goal, error)
	List(ctx context.Context, userID int) ([]Goal, error)
	Update(ctx context.Context, g Goal) error
	Delete(ctx context.Context, userID, goalID int) error
}

type Handler struct {
	repo goalsRepo
	now  func() time.Time
}

func NewHandler(repo goalsRepo) *Handler {
	return &Handler{
		repo: repo,
		now:  time.Now,
	}
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "goalsHandler.add")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	var goal Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Warnf("add goal, decode json: %s", err)
		http.Error(w, "add goal failed", http.StatusBadRequest)
		return
	}

	goal.UserID = userID
	goal.Achieved = false
	goal.CreatedAt = h.now()
	if goal.Priority == "" {
		goal.Priority = PriorityMedium
	}
	if err := validateGoal(goal); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := h.repo.Add(ctx, goal)
	if err != nil {
		log.Errorf("add goal for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal goal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "goalsHandler.list")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	goals, err := h.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("list goals for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if goals == nil {
		goals = []Goal{}
	}

	respBytes, err := json.Marshal(goals)
	if err != nil {
		log.Errorf("marshal goals response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

// HandleProgress returns every goal together with its derived progress
// and status, evaluated at request time.
func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "goalsHandler.progress")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	goals, err := h.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("list goals for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	progress := EvaluateProgress(goals, h.now())

	respBytes, err := json.Marshal(progress)
	if err != nil {
		log.Errorf("marshal goal progress response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "goalsHandler.update")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	goalID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid goal id", http.StatusBadRequest)
		return
	}

	existing, err := h.repo.Get(ctx, userID, goalID)
	if errors.Is(err, ErrGoalNotFound) {
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get goal %d for user %d: %s", goalID, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var updated Goal
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		log.Warnf("update goal, decode json: %s", err)
		http.Error(w, "update goal failed", http.StatusBadRequest)
		return
	}

	updated.ID = existing.ID
	updated.UserID = userID
	updated.CreatedAt = existing.CreatedAt
	if updated.Priority == "" {
		updated.Priority = existing.Priority
	}
	if err := validateGoal(updated); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.repo.Update(ctx, updated); err != nil {
		log.Errorf("update goal %d for user %d: %s", goalID, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(updated)
	if err != nil {
		log.Errorf("marshal goal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "goalsHandler.delete")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	goalID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid goal id", http.StatusBadRequest)
		return
	}

	err = h.repo.Delete(ctx, userID, goalID)
	if errors.Is(err, ErrGoalNotFound) {
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete goal %d for user %d: %s", goalID, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted:"+strconv.Itoa(goalID))
}

func validateGoal(g Goal) error {
	switch g.Type {
	case GoalTypeLoseWeight, GoalTypeGainMuscle, GoalTypeImproveCardio, GoalTypeIncreaseLifts, GoalTypeGeneral:
	default:
		return errors.New("unknown goal type")
	}
	switch g.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return errors.New("unknown priority")
	}
	if !pkg.IsFiniteNumber(g.TargetValue) || g.TargetValue <= 0 {
		return errors.New("target value must be a positive number")
	}
	if !pkg.IsFiniteNumber(g.CurrentValue) || g.CurrentValue < 0 {
		return errors.New("current value must be a non-negative number")
	}
	return nil
}
