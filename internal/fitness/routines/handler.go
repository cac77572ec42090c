package routines

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

type routinesRepo interface {
	Add(ctx context.Context, rt Routine) (*Routine, error)
	Get(ctx context.Context, userID, routineID int) (*Routine, error)
	List(ctx context.Context, userID int) ([]Routine, error)
	Update(ctx context.Context, rt Routine) error
	ReplaceExercises(ctx context.Context, userID, routineID int, exercises []RoutineExercise) error
	AddExercise(ctx context.Context, userID, routineID int, e RoutineExercise) error
	RemoveExercise(ctx context.Context, userID, routineID, exerciseID int) error
	Delete(ctx context.Context, userID, routineID int) error
}

type Handler struct {
	repo routinesRepo
	now  func() time.Time
}

func NewHandler(repo routinesRepo) *Handler {
	return &Handler{
		repo: repo,
		now:  time.Now,
	}
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "routinesHandler.add")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	var routine Routine
	if err := json.NewDecoder(r.Body).Decode(&routine); err != nil {
		log.Warnf("add routine, decode json: %s", err)
		http.Error(w, "add routine failed", http.StatusBadRequest)
		return
	}
	if routine.Name == "" {
		http.Error(w, "routine name is required", http.StatusBadRequest)
		return
	}

	routine.UserID = userID
	routine.CreatedAt = h.now()
	if routine.Exercises == nil {
		routine.Exercises = []RoutineExercise{}
	}

	added, err := h.repo.Add(ctx, routine)
	if err != nil {
		log.Errorf("add routine for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(added.Exercises) > 0 {
		if err := h.repo.ReplaceExercises(ctx, userID, added.ID, added.Exercises); err != nil {
			log.Errorf("set exercises for new routine %d: %s", added.ID, err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	respBytes, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal routine response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "routinesHandler.list")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	routines, err := h.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("list routines for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if routines == nil {
		routines = []Routine{}
	}

	respBytes, err := json.Marshal(routines)
	if err != nil {
		log.Errorf("marshal routines response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

// routineUpdate carries a partial update, absent fields keep their
// stored value. A non-nil exercise list replaces the whole ordering.
type routineUpdate struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Difficulty  *string            `json:"difficulty"`
	IsFavorite  *bool              `json:"isFavorite"`
	Exercises   *[]RoutineExercise `json:"exercises"`
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "routinesHandler.update")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	routineID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid routine id", http.StatusBadRequest)
		return
	}

	existing, err := h.repo.Get(ctx, userID, routineID)
	if errors.Is(err, ErrRoutineNotFound) {
		http.Error(w, "routine not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get routine %d for user %d: %s", routineID, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var update routineUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Warnf("update routine, decode json: %s", err)
		http.Error(w, "update routine failed", http.StatusBadRequest)
		return
	}

	if update.Name != nil {
		if *update.Name == "" {
			http.Error(w, "routine name is required", http.StatusBadRequest)
			return
		}
		existing.Name = *update.Name
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.Difficulty != nil {
		existing.Difficulty = *update.Difficulty
	}
	if update.IsFavorite != nil {
		existing.IsFavorite = *update.IsFavorite
	}

	if err := h.repo.Update(ctx, *existing); err != nil {
		log.Errorf("update routine %d for user %d: %s", routineID, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if update.Exercises != nil {
		if err := h.repo.ReplaceExercises(ctx, userID, routineID, *update.Exercises); err != nil {
			log.Errorf("reorder routine %d for user %d: %s", routineID, userID, err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		existing.Exercises = *update.Exercises
	}

	respBytes, err := json.Marshal(existing)
	if err != nil {
		log.Errorf("marshal routine response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (h *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "routinesHandler.addExercise")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	routineID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid routine id", http.StatusBadRequest)
		return
	}

	var exercise RoutineExercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Warnf("add routine exercise, decode json: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}
	if exercise.ExerciseID <= 0 {
		http.Error(w, "exercise id is required", http.StatusBadRequest)
		return
	}

	err = h.repo.AddExercise(ctx, userID, routineID, exercise)
	if errors.Is(err, ErrRoutineNotFound) {
		http.Error(w, "routine not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("add exercise to routine %d for user %d: %s", routineID, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("marshal routine exercise response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

func (h *Handler) HandleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "routinesHandler.removeExercise")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	routineID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid routine id", http.StatusBadRequest)
		return
	}
	exerciseID, err := strconv.Atoi(vars["exerciseId"])
	if err != nil {
		http.Error(w, "invalid exercise id", http.StatusBadRequest)
		return
	}

	err = h.repo.RemoveExercise(ctx, userID, routineID, exerciseID)
	if errors.Is(err, ErrRoutineNotFound) {
		http.Error(w, "routine not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("remove exercise %d from routine %d for user %d: %s", exerciseID, routineID, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "removed:"+strconv.Itoa(exerciseID))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "routinesHandler.delete")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	routineID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid routine id", http.StatusBadRequest)
		return
	}

	err = h.repo.Delete(ctx, userID, routineID)
	if errors.Is(err, ErrRoutineNotFound) {
		http.Error(w, "routine not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete routine %d for user %d: %s", routineID, userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted:"+strconv.Itoa(routineID))
}
