package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lzhang-md/drivetidy/internal/httputil"
	"github.com/lzhang-md/drivetidy/internal/models"
	"github.com/lzhang-md/drivetidy/internal/repository"
)

type Handler struct {
	users    *repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewHandler(users *repository.UserRepository, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{users: users, secret: secret, tokenTTL: tokenTTL}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	return r
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "MISSING_FIELDS", "username and password are required")
		return
	}
	if len(req.Password) < 8 {
		httputil.WriteError(w, http.StatusBadRequest, "WEAK_PASSWORD", "password must be at least 8 characters")
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to hash password")
		return
	}

	// First account gets admin.
	count, err := h.users.Count()
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to check users")
		return
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
		IsAdmin:      count == 0,
	}
	if err := h.users.Create(user); err != nil {
		httputil.WriteError(w, http.StatusConflict, "USERNAME_EXISTS", "username already registered")
		return
	}

	token, err := IssueToken(h.secret, user.ID.String(), user.IsAdmin, h.tokenTTL)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to issue token")
		return
	}
	h.setSessionCookie(w, token)

	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"user_id":  user.ID,
		"is_admin": user.IsAdmin,
		"token":    token,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	user, err := h.users.GetByUsername(req.Username)
	if err != nil || !CheckPassword(user.PasswordHash, req.Password) {
		httputil.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
		return
	}

	token, err := IssueToken(h.secret, user.ID.String(), user.IsAdmin, h.tokenTTL)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to issue token")
		return
	}
	h.setSessionCookie(w, token)

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":  user.ID,
		"is_admin": user.IsAdmin,
		"token":    token,
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"logged_out": true})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.tokenTTL / time.Second),
	})
}
