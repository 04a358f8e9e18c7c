package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/services"
)

// AuthHandler handles authentication requests.
type AuthHandler struct {
	authService services.AuthServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService services.AuthServicer) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login payload. Identifier takes either a
// username or an email; the email field is kept for older clients.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email" binding:"omitempty,email"`
	Password   string `json:"password" binding:"required"`
}

func (r LoginRequest) effectiveIdentifier() string {
	if strings.TrimSpace(r.Identifier) != "" {
		return r.Identifier
	}
	return r.Email
}

// TokenRequest represents a payload carrying a raw token.
type TokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// Login authenticates a user and issues a signed token.
// @Summary     Log in
// @Description Authenticate with a username or email plus password and receive a bearer token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Credentials"
// @Success     200 {object} services.Session "Session with token"
// @Failure     400 {object} ErrorResponse "Missing identifier"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     403 {object} ErrorResponse "Account locked or role missing"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	session, err := h.authService.Authenticate(req.effectiveIdentifier(), req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Introspect reports whether a token is currently accepted.
// @Summary     Introspect a token
// @Description Check signature, expiry, and denylist status of a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body TokenRequest true "Token to check"
// @Success     200 {object} map[string]bool "Validity flag"
// @Failure     400 {object} ErrorResponse "Missing token"
// @Router      /auth/introspect [post]
func (h *AuthHandler) Introspect(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": h.authService.Introspect(req.Token)})
}

// Logout denylists a token so it can no longer be used or refreshed.
// @Summary     Log out
// @Description Invalidate a token; succeeds regardless of the token's state
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body TokenRequest true "Token to invalidate"
// @Success     200 {object} map[string]string "Acknowledgement"
// @Failure     400 {object} ErrorResponse "Missing token"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.authService.Logout(req.Token); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Refresh exchanges a still-refreshable token for a fresh one.
// @Summary     Refresh a token
// @Description Issue a new token from an existing one within its refresh window; the old token is invalidated
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body TokenRequest true "Token to refresh"
// @Success     200 {object} services.Session "Session with new token"
// @Failure     400 {object} ErrorResponse "Missing token"
// @Failure     401 {object} ErrorResponse "Token not refreshable"
// @Router      /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	session, err := h.authService.Refresh(req.Token)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Me returns the authenticated caller's session snapshot.
// @Summary     Current session
// @Description Return the profile and roles behind the presented token
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Session "Current session"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	session, err := h.authService.Me(identity.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}
