package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Warnf("login, decode json: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		http.Error(w, "email and password required", http.StatusBadRequest)
		return
	}

	token, err := h.service.Login(ctx, creds, time.Now())
	if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrWrongPassword) {
		// same response either way, no account enumeration
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("login: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(loginResponse{Token: token})
	if err != nil {
		log.Errorf("marshal login response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	token := r.Header.Get("X-FITTRACK-TOKEN")
	if token == "" {
		http.Error(w, "no token", http.StatusBadRequest)
		return
	}

	if err := h.service.Logout(ctx, token); err != nil {
		log.Warnf("logout: %s", err)
		http.Error(w, "logout failed", http.StatusBadRequest)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
