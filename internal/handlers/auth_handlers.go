// File: internal/handlers/auth_handlers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/2witstudios/pagespace.team/internal/auth"
	"github.com/2witstudios/pagespace.team/internal/middleware"
	"github.com/2witstudios/pagespace.team/internal/repository/user"
	"github.com/2witstudios/pagespace.team/internal/services"
)

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	users  user.UserRepository
	secret []byte
	logger services.Logger
}

func NewAuthHandler(users user.UserRepository, secret []byte, logger services.Logger) *AuthHandler {
	return &AuthHandler{users: users, secret: secret, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	account, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			writeError(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.Error("login lookup failed", "error", err)
		writeError(w, "Could not sign in", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateJWT(account.ID, h.secret)
	if err != nil {
		h.logger.Error("token generation failed", "error", err)
		writeError(w, "Could not sign in", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"id":    account.ID,
		"name":  account.Name,
		"email": account.Email,
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}
