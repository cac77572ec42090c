package progress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fittrackhq/fittrack/internal/middleware"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"
	log "github.com/sirupsen/logrus"
)

type progressRepo interface {
	Upsert(ctx context.Context, entry DailyProgress) (*DailyProgress, error)
	ListRange(ctx context.Context, userID int, from, to time.Time) ([]DailyProgress, error)
	Delete(ctx context.Context, userID int, date time.Time) error
}

type Handler struct {
	repo progressRepo
}

func NewHandler(repo progressRepo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "progressHandler.upsert")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	var entry DailyProgress
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Warnf("upsert progress, decode json: %s", err)
		http.Error(w, "upsert progress failed", http.StatusBadRequest)
		return
	}

	entry.UserID = userID
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	if err := entry.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.repo.Upsert(ctx, entry)
	if err != nil {
		log.Errorf("upsert progress for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(saved)
	if err != nil {
		log.Errorf("marshal progress response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

// HandleList returns entries for a date range. Query params from and
// to in YYYY-MM-DD, defaulting to the last 30 days.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "progressHandler.list")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now
	var err error
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = time.Parse("2006-01-02", raw); err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = time.Parse("2006-01-02", raw); err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
	}
	if to.Before(from) {
		http.Error(w, "to must not be before from", http.StatusBadRequest)
		return
	}

	entries, err := h.repo.ListRange(ctx, userID, from, to)
	if err != nil {
		log.Errorf("list progress for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []DailyProgress{}
	}

	respBytes, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("marshal progress response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "progressHandler.delete")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	err = h.repo.Delete(ctx, userID, date)
	if errors.Is(err, ErrEntryNotFound) {
		http.Error(w, "progress entry not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete progress for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}
