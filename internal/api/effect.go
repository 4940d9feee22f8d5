package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peptitrace/backend/internal/service"
)

type EffectHandler struct {
	effects *service.EffectService
}

func NewEffectHandler(effects *service.EffectService) *EffectHandler {
	return &EffectHandler{effects: effects}
}

func (h *EffectHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/effects", h.List)
}

func (h *EffectHandler) List(c *gin.Context) {
	filters := service.EffectFilters{
		Type:     c.Query("type"),
		Category: c.Query("category"),
	}
	effects, err := h.effects.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch effects")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": gin.H{"effects": effects}})
}
