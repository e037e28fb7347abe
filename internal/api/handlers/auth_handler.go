package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/cinesky/cinesky-be/internal/auth"
	"github.com/cinesky/cinesky-be/internal/services"
)

// AuthHandler handles signup, login, logout and account deletion.
type AuthHandler struct {
	users     services.UserServiceProvider
	favorites services.FavoriteServiceProvider
	sessions  *auth.Sessions
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, favorites services.FavoriteServiceProvider, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{users: users, favorites: favorites, sessions: sessions}
}

// SignupPayload defines the structure for signup requests.
type SignupPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new user registration. No session is issued; the user logs
// in separately afterwards.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	user, err := h.users.CreateUser(payload.Name, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			respondMessage(w, http.StatusBadRequest, "Email already registered")
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to create user")
		respondMessage(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "User created successfully",
		"userId":  user.ID,
	})
}

// Login handles authentication. On success the session token is delivered in
// an HTTP-only cookie and the public user summary is returned.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	user, err := h.users.AuthenticateUser(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// Same message for unknown email and wrong password.
			respondMessage(w, http.StatusUnauthorized, "User not found")
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to log in user")
		respondMessage(w, http.StatusInternalServerError, "Failed to log in user")
		return
	}

	token, err := h.sessions.GenerateToken(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate session token")
		respondMessage(w, http.StatusInternalServerError, "Failed to log in user")
		return
	}

	h.sessions.SetCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "User logged in successfully",
		"userId":  user.ID,
		"name":    user.Name,
	})
}

// Logout clears the session cookie. Always succeeds, even without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	respondMessage(w, http.StatusOK, "User logged out successfully")
}

// DeleteAccount removes the authenticated user and all their favorites, then
// clears the session cookie. Favorites go first so none outlive the account.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondMessage(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	if err := h.favorites.RemoveAllForUser(claims.UserID); err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to delete favorites during account deletion")
		respondMessage(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}
	if err := h.users.DeleteUser(claims.UserID); err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to delete user")
		respondMessage(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	h.sessions.ClearCookie(w)
	respondMessage(w, http.StatusOK, "Account deleted successfully")
}
