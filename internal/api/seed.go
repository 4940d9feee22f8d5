package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peptitrace/backend/internal/service"
)

// SeedHandler exposes the reference data loaders. The routes are open by
// design; they only exist in development and demo deployments.
type SeedHandler struct {
	seeds *service.SeedService
}

func NewSeedHandler(seeds *service.SeedService) *SeedHandler {
	return &SeedHandler{seeds: seeds}
}

func (h *SeedHandler) RegisterRoutes(router *gin.RouterGroup) {
	seed := router.Group("/seed")
	{
		seed.POST("/peptides", h.SeedPeptides)
		seed.DELETE("/peptides", h.ClearPeptides)
		seed.POST("/effects", h.SeedEffects)
		seed.DELETE("/effects", h.ClearEffects)
	}
}

func (h *SeedHandler) SeedPeptides(c *gin.Context) {
	result, err := h.seeds.SeedPeptides(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to seed peptides")
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message": "Peptides seeded successfully",
		"data":    result,
	})
}

func (h *SeedHandler) ClearPeptides(c *gin.Context) {
	result, err := h.seeds.ClearPeptides(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to clear peptides")
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message": "Peptides cleared successfully",
		"data":    result,
	})
}

func (h *SeedHandler) SeedEffects(c *gin.Context) {
	result, err := h.seeds.SeedEffects(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to seed effects")
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message": "Effects seeded successfully",
		"data":    result,
	})
}

func (h *SeedHandler) ClearEffects(c *gin.Context) {
	result, err := h.seeds.ClearEffects(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to clear effects")
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message": "Effects cleared successfully",
		"data":    result,
	})
}
