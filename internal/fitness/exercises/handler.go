package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/coocood/freecache"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// catalog list cache
var listCacheKey = []byte("exercises-all")

const listCacheTTLSeconds = 300

type exercisesRepo interface {
	Add(ctx context.Context, e Exercise) (*Exercise, error)
	Get(ctx context.Context, exerciseID int) (*Exercise, error)
	List(ctx context.Context) ([]Exercise, error)
	Update(ctx context.Context, e Exercise) error
}

type Handler struct {
	repo  exercisesRepo
	cache *freecache.Cache
}

func NewHandler(repo exercisesRepo, cacheSizeBytes int) *Handler {
	return &Handler{
		repo:  repo,
		cache: freecache.NewCache(cacheSizeBytes),
	}
}

// HandleList serves the exercise catalog. The catalog changes rarely
// and is requested on every client start, so the marshaled list is
// cached for a few minutes.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exercisesHandler.list")
	defer span.End()

	if cached, err := h.cache.Get(listCacheKey); err == nil {
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	list, err := h.repo.List(ctx)
	if err != nil {
		log.Errorf("list exercises: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []Exercise{}
	}

	respBytes, err := json.Marshal(list)
	if err != nil {
		log.Errorf("marshal exercises response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.cache.Set(listCacheKey, respBytes, listCacheTTLSeconds); err != nil {
		log.Warnf("cache exercises list: %s", err)
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exercisesHandler.get")
	defer span.End()

	exerciseID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid exercise id", http.StatusBadRequest)
		return
	}

	e, err := h.repo.Get(ctx, exerciseID)
	if errors.Is(err, ErrExerciseNotFound) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get exercise %d: %s", exerciseID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(e)
	if err != nil {
		log.Errorf("marshal exercise response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exercisesHandler.add")
	defer span.End()

	var e Exercise
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		log.Warnf("add exercise, decode json: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}
	if err := e.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := h.repo.Add(ctx, e)
	if err != nil {
		log.Errorf("add exercise: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.cache.Del(listCacheKey)

	respBytes, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal exercise response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exercisesHandler.update")
	defer span.End()

	exerciseID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid exercise id", http.StatusBadRequest)
		return
	}

	var e Exercise
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		log.Warnf("update exercise, decode json: %s", err)
		http.Error(w, "update exercise failed", http.StatusBadRequest)
		return
	}
	e.ID = exerciseID
	if err := e.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.repo.Update(ctx, e)
	if errors.Is(err, ErrExerciseNotFound) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("update exercise %d: %s", exerciseID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.cache.Del(listCacheKey)

	respBytes, err := json.Marshal(e)
	if err != nil {
		log.Errorf("marshal exercise response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
