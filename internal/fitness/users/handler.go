package users

//go:generate mockgen -source=handler.go -destination=users_mocks_test.go -package=users_test

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

type usersRepo interface {
	Create(ctx context.Context, u User, passwordHash string) (*User, error)
	Get(ctx context.Context, userID int) (*User, error)
	UpdateProfile(ctx context.Context, u User) error
}

type Handler struct {
	repo usersRepo
}

func NewHandler(repo usersRepo) *Handler {
	return &Handler{repo: repo}
}

type registerRequest struct {
	User
	Password string `json:"password"`
}

const minPasswordLen = 8

// HandleRegister creates an account. This is one of the few routes
// open without a session token.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.register")
	defer span.End()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warnf("register user, decode json: %s", err)
		http.Error(w, "register failed", http.StatusBadRequest)
		return
	}

	req.User.CreatedAt = time.Now()
	if err := req.User.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Password) < minPasswordLen {
		http.Error(w, "password too short", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		log.Errorf("register user, hash password: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	created, err := h.repo.Create(ctx, req.User, passwordHash)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
		log.Errorf("register user: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	log.Debugf("new user %d registered", created.ID)

	respBytes, err := json.Marshal(created)
	if err != nil {
		log.Errorf("marshal user response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.getProfile")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	u, err := h.repo.Get(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(u)
	if err != nil {
		log.Errorf("marshal user response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.updateProfile")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	existing, err := h.repo.Get(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var updated User
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		log.Warnf("update profile, decode json: %s", err)
		http.Error(w, "update profile failed", http.StatusBadRequest)
		return
	}

	// email is immutable, account identity does not change via profile edits
	updated.ID = userID
	updated.Email = existing.Email
	updated.CreatedAt = existing.CreatedAt
	if err := updated.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.repo.UpdateProfile(ctx, updated); err != nil {
		log.Errorf("update profile for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(updated)
	if err != nil {
		log.Errorf("marshal user response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
