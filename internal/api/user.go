package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/middleware"
	"github.com/peptitrace/backend/internal/service"
	"github.com/peptitrace/backend/internal/types"
)

type UserHandler struct {
	db           *gorm.DB
	users        *service.UserService
	authenticate gin.HandlerFunc
}

func NewUserHandler(db *gorm.DB, users *service.UserService, authenticate gin.HandlerFunc) *UserHandler {
	return &UserHandler{db: db, users: users, authenticate: authenticate}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users", h.authenticate)
	{
		users.GET("/me", middleware.RequirePermission(h.db, middleware.OpRead, middleware.ResourceUser), h.Me)
		users.PUT("/me", middleware.RequirePermission(h.db, middleware.OpUpdate, middleware.ResourceUser), h.UpdateMe)
		users.GET("/pending", middleware.RequirePermission(h.db, middleware.OpModerate, middleware.ResourceUser), h.Pending)
		users.GET("/analytics/overview", middleware.RequirePermission(h.db, middleware.OpRead, middleware.ResourceAnalytics), h.Analytics)
		users.POST("/:id/approve", middleware.RequirePermission(h.db, middleware.OpModerate, middleware.ResourceUser), h.Approve)
		users.POST("/:id/reject", middleware.RequirePermission(h.db, middleware.OpModerate, middleware.ResourceUser), h.Reject)
		users.GET("/:id", middleware.RequirePermission(h.db, middleware.OpRead, middleware.ResourceUser), h.Get)
		users.PUT("/:id", middleware.RequirePermission(h.db, middleware.OpUpdate, middleware.ResourceUser), h.Update)
		users.DELETE("/:id", middleware.RequirePermission(h.db, middleware.OpDelete, middleware.ResourceUser), h.Delete)
	}
}

func (h *UserHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.users.Update(c.Request.Context(), user.ID.String(), req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}
	respond(c, http.StatusOK, gin.H{"user": updated})
}

func (h *UserHandler) Pending(c *gin.Context) {
	users, err := h.users.PendingUsers(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch pending users")
		return
	}
	respond(c, http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) Approve(c *gin.Context) {
	user, err := h.users.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to approve user")
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Reject(c *gin.Context) {
	var req types.RejectUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Reject(c.Request.Context(), c.Param("id"), req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to reject user")
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Update(c *gin.Context) {
	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *UserHandler) Analytics(c *gin.Context) {
	analytics, err := h.users.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch user analytics")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": analytics})
}
