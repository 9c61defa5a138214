package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/hacktron/hacktron-backend/internal/auth"
	"github.com/hacktron/hacktron-backend/internal/http/respond"
	"github.com/hacktron/hacktron-backend/internal/models"
	"github.com/hacktron/hacktron-backend/internal/models/dto"
	"github.com/hacktron/hacktron-backend/internal/storage"
)

func (h *UserHandler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, dto.UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
	})
}

func (h *UserHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.cfg.OpenUserListing {
		if _, ok := h.currentUser(w, r); !ok {
			return
		}
	}
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		log.Printf("list users error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	summaries := make([]dto.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, dto.UserSummary{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
		})
	}
	respond.JSON(w, http.StatusOK, summaries)
}

func (h *UserHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	// Omitted fields keep their current values; email is never changed here.
	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		user.Phone = phone
	}

	updated, err := h.store.UpdateUser(r.Context(), user)
	if err != nil {
		log.Printf("update user %s: %v", user.ID, err)
		respond.Error(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	respond.JSON(w, http.StatusOK, dto.UserResponse{
		ID:    updated.ID.String(),
		Name:  updated.Name,
		Email: updated.Email,
		Phone: updated.Phone,
	})
}

func (h *UserHandler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		respond.Error(w, http.StatusBadRequest, "Please add old and new password")
		return
	}
	if !auth.VerifyPassword(req.OldPassword, user.PasswordHash) {
		respond.Error(w, http.StatusBadRequest, "Old password is incorrect")
		return
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	user.PasswordHash = passwordHash
	if _, err := h.store.UpdateUser(r.Context(), user); err != nil {
		log.Printf("change password for %s: %v", user.ID, err)
		respond.Error(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "Password change successful"})
}

// currentUser resolves the session cookie to a stored user. On failure it
// writes the error response and returns ok=false. Token failure detail is
// logged but never sent to the client.
func (h *UserHandler) currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	cookie, err := r.Cookie(h.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
		return models.User{}, false
	}
	userID, err := h.tokens.Verify(cookie.Value)
	if err != nil {
		log.Printf("token verification failed: %v", err)
		respond.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
		return models.User{}, false
	}
	user, err := h.store.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "User not found")
		} else {
			log.Printf("fetch user %s: %v", userID, err)
			respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		}
		return models.User{}, false
	}
	return user, true
}
