package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hacktron/hacktron-backend/internal/auth"
	"github.com/hacktron/hacktron-backend/internal/config"
	"github.com/hacktron/hacktron-backend/internal/http/respond"
	"github.com/hacktron/hacktron-backend/internal/models"
	"github.com/hacktron/hacktron-backend/internal/models/dto"
	"github.com/hacktron/hacktron-backend/internal/storage"
)

// UserHandler owns the account endpoints: registration, login, session
// status, profile retrieval/update, and password change. Identity is carried
// by a signed session cookie; no server-side session state exists.
type UserHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
	cfg    *config.Config
}

// NewUserHandler constructs the handler.
func NewUserHandler(store storage.UserStore, tokens *auth.TokenManager, cfg *config.Config) *UserHandler {
	return &UserHandler{store: store, tokens: tokens, cfg: cfg}
}

// Register attaches account routes to the mux.
func (h *UserHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/users/register", h.handleRegister)
	mux.HandleFunc("/api/users/login", h.handleLogin)
	mux.HandleFunc("/api/users/logout", h.handleLogout)
	mux.HandleFunc("/api/users/getuser", h.handleGetUser)
	mux.HandleFunc("/api/users/getusers", h.handleListUsers)
	mux.HandleFunc("/api/users/loggedin", h.handleLoginStatus)
	mux.HandleFunc("/api/users/updateuser", h.handleUpdateProfile)
	mux.HandleFunc("/api/users/changepassword", h.handleChangePassword)
}

func (h *UserHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || email == "" || req.Password == "" || phone == "" {
		respond.Error(w, http.StatusBadRequest, "Please fill in all required fields")
		return
	}
	if len(req.Password) < 6 {
		respond.Error(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
	}
	created, err := h.store.CreateUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusBadRequest, "Email has already been registered")
		default:
			log.Printf("create user error: %v", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	token, err := h.tokens.Issue(created.ID)
	if err != nil {
		log.Printf("issue token error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	h.setSessionCookie(w, token)

	respond.JSON(w, http.StatusCreated, dto.AuthResponse{
		ID:    created.ID.String(),
		Name:  created.Name,
		Email: created.Email,
		Phone: created.Phone,
		Token: token,
	})
}

func (h *UserHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Please add email and password")
		return
	}

	user, err := h.store.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusBadRequest, "User not found, please signup")
			return
		}
		log.Printf("login: fetch user %s: %v", email, err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	// The token is minted and the cookie set only after the password checks out.
	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		respond.Error(w, http.StatusBadRequest, "Invalid email or password")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Printf("issue token error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	h.setSessionCookie(w, token)

	respond.JSON(w, http.StatusOK, dto.AuthResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Token: token,
	})
}

func (h *UserHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.clearSessionCookie(w)
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "Successfully Logged Out"})
}

func (h *UserHandler) handleLoginStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	cookie, err := r.Cookie(h.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		respond.JSON(w, http.StatusOK, false)
		return
	}
	// Any verification failure means "not logged in", never an error.
	if _, err := h.tokens.Verify(cookie.Value); err != nil {
		respond.JSON(w, http.StatusOK, false)
		return
	}
	respond.JSON(w, http.StatusOK, true)
}

func (h *UserHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   h.cfg.CookieSecure,
		Expires:  time.Now().Add(h.tokens.TTL()),
	})
}

func (h *UserHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   h.cfg.CookieSecure,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
