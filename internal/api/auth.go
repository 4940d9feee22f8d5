package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peptitrace/backend/internal/middleware"
	"github.com/peptitrace/backend/internal/service"
	"github.com/peptitrace/backend/internal/types"
)

type AuthHandler struct {
	auth         *service.AuthService
	authenticate gin.HandlerFunc
}

func NewAuthHandler(auth *service.AuthService, authenticate gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{auth: auth, authenticate: authenticate}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.GET("/validate", h.authenticate, middleware.RequireAuth(), h.Validate)
	}
}

// Register creates a pending account. No tokens are issued until a
// moderator approves the registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, service.Plaintext(req.Password))
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			respondError(c, http.StatusBadRequest, "User already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "Error registering user")
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"message": "Registration successful. Your account is pending approval.",
		"data":    gin.H{"user": user},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, service.Plaintext(req.Password))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	respond(c, http.StatusOK, gin.H{"data": result})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req types.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Refresh token is required")
		return
	}

	access, refresh, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountPending):
			respondError(c, http.StatusUnauthorized, "Account pending approval")
		case errors.Is(err, service.ErrAccountInactive):
			respondError(c, http.StatusUnauthorized, "Account not active")
		default:
			respondError(c, http.StatusUnauthorized, "Invalid refresh token")
		}
		return
	}

	respond(c, http.StatusOK, gin.H{
		"data": gin.H{"accessToken": access, "refreshToken": refresh},
	})
}

// Validate only runs after the auth middleware; reaching it means the
// token was accepted.
func (h *AuthHandler) Validate(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"message": "Token is valid"})
}
