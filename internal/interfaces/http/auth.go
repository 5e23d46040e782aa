package http

import (
	"context"
	"net/http"

	"finman/internal/domain/user"
	"finman/internal/shared/middleware"
)

// UserService is the part of user.Service the auth routes need.
type UserService interface {
	Register(ctx context.Context, params user.RegisterParams) (*user.User, error)
	Login(ctx context.Context, email, password string) (*user.Session, error)
	GetProfile(ctx context.Context, userID string) (*user.User, error)
}

type AuthHandler struct {
	users UserService
}

func NewAuthHandler(users UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// HandleRegister creates an account. Duplicate emails are rejected with 409.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "failed to register user")
		return
	}

	if _, err := h.users.Register(r.Context(), user.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		writeError(w, r, err, "failed to register user")
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{Message: "User registered successfully"})
}

// HandleLogin exchanges credentials for a bearer token, also set as an
// HttpOnly cookie for browser clients.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "failed to log in")
		return
	}

	session, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, "failed to log in")
		return
	}

	expiresIn := int64(session.ExpiresIn.Seconds())
	setAuthCookie(w, r, session.Token, int(expiresIn))

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken: session.Token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	})
}

// HandleLogout clears the auth cookie
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	setAuthCookie(w, r, "", -1)
	w.WriteHeader(http.StatusNoContent)
}

// HandleProfile returns the authenticated user. The password hash is never
// serialized.
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	u, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func setAuthCookie(w http.ResponseWriter, r *http.Request, token string, maxAge int) {
	// Only set Secure flag when actually using HTTPS
	secure := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
