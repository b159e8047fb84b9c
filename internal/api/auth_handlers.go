package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/example/ecofinds/internal/auth"
	"github.com/example/ecofinds/internal/domain/session"
)

// AuthHandlers handles authentication-related HTTP requests.
type AuthHandlers struct {
	sessions   *session.Store
	jwtService *auth.JWTService
}

// NewAuthHandlers creates a new AuthHandlers instance
func NewAuthHandlers(sessions *session.Store, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{
		sessions:   sessions,
		jwtService: jwtService,
	}
}

// SignUpRequest represents the signup request body
type SignUpRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	User    *session.User `json:"user"`
	Message string        `json:"message,omitempty"`
}

// SignUp handles account creation. A mismatched confirmation password aborts
// the operation with no state change.
func (h *AuthHandlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Password != req.ConfirmPassword {
		respondJSONError(w, "Passwords do not match", http.StatusBadRequest)
		return
	}

	newUser, err := h.sessions.SignUp(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, session.ErrInvalidUsername) &&
			!errors.Is(err, session.ErrInvalidEmail) &&
			!errors.Is(err, auth.ErrPasswordTooShort) {
			status = http.StatusInternalServerError
		}
		respondJSONError(w, err.Error(), status)
		return
	}

	h.setAuthCookies(w, newUser)
	respondJSON(w, http.StatusCreated, AuthResponse{User: newUser, Message: "Sign up successful"})
}

// Login handles session start. The email must match a known principal; the
// password must be present but is not compared.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, session.ErrNotReady):
		respondJSONError(w, "Identity store is still loading", http.StatusServiceUnavailable)
		return
	case errors.Is(err, session.ErrInvalidCredentials):
		respondJSONError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	case err != nil:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.setAuthCookies(w, user)
	respondJSON(w, http.StatusOK, AuthResponse{User: user, Message: "Login successful"})
}

// Logout ends the session and expires the auth cookies.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(r.Context())
	h.clearAuthCookies(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me reports the session state for the routing guard. Before the initial
// load completes the state is "unknown", not "logged out".
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Ready() {
		respondJSON(w, http.StatusOK, map[string]any{"ready": false})
		return
	}

	user, _ := h.sessions.Current()
	respondJSON(w, http.StatusOK, map[string]any{"ready": true, "user": user})
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		respondJSONError(w, "Missing refresh token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(cookie.Value)
	if err != nil {
		respondJSONError(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}

	user, ok := h.sessions.GetByID(userID)
	if !ok {
		respondJSONError(w, "Unknown principal", http.StatusUnauthorized)
		return
	}

	h.setAuthCookies(w, user)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Token refreshed"})
}

func (h *AuthHandlers) setAuthCookies(w http.ResponseWriter, user *session.User) {
	accessToken, accessExpiry, err := h.jwtService.GenerateAccessToken(user.ID, user.Email, user.Username)
	if err != nil {
		return
	}
	refreshToken, refreshExpiry, err := h.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		Expires:  accessExpiry,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/auth",
		Expires:  refreshExpiry,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("X-Access-Token", accessToken)
}

func (h *AuthHandlers) clearAuthCookies(w http.ResponseWriter) {
	expired := time.Unix(0, 0)
	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "", Path: "/", Expires: expired, HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "", Path: "/auth", Expires: expired, HttpOnly: true})
}
