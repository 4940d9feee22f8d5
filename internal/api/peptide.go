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

type PeptideHandler struct {
	db           *gorm.DB
	peptides     *service.PeptideService
	analytics    *service.AnalyticsService
	authenticate gin.HandlerFunc
}

func NewPeptideHandler(db *gorm.DB, peptides *service.PeptideService, analytics *service.AnalyticsService, authenticate gin.HandlerFunc) *PeptideHandler {
	return &PeptideHandler{
		db:           db,
		peptides:     peptides,
		analytics:    analytics,
		authenticate: authenticate,
	}
}

func (h *PeptideHandler) RegisterRoutes(router *gin.RouterGroup) {
	peptides := router.Group("/peptides")
	{
		peptides.GET("", h.List)
		peptides.GET("/public", h.PublicList)
		peptides.GET("/:id", h.Get)

		peptides.POST("", h.authenticate, middleware.RequirePermission(h.db, middleware.OpCreate, middleware.ResourcePeptide), h.Create)
		peptides.PUT("/:id", h.authenticate, middleware.RequirePermission(h.db, middleware.OpUpdate, middleware.ResourcePeptide), h.Update)
		peptides.DELETE("/:id", h.authenticate, middleware.RequirePermission(h.db, middleware.OpDelete, middleware.ResourcePeptide), h.Delete)
		peptides.GET("/search/:query", h.authenticate, middleware.RequirePermission(h.db, middleware.OpRead, middleware.ResourcePeptide), h.Search)

		peptides.GET("/analytics/popular", h.authenticate, middleware.RequirePermission(h.db, middleware.OpRead, middleware.ResourceAnalytics), h.Popular)
		peptides.GET("/analytics/trending", h.authenticate, middleware.RequirePermission(h.db, middleware.OpRead, middleware.ResourceAnalytics), h.Trending)
	}
}

func (h *PeptideHandler) List(c *gin.Context) {
	peptides, err := h.peptides.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch peptides")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": gin.H{"peptides": peptides}})
}

// publicPeptide is the reduced catalog view served to anonymous visitors.
type publicPeptide struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Description      string  `json:"description"`
	TotalExperiences int     `json:"totalExperiences"`
	AverageRating    float64 `json:"averageRating"`
}

// PublicList serves the six most popular catalog entries, reduced to
// fields safe for anonymous visitors.
func (h *PeptideHandler) PublicList(c *gin.Context) {
	peptides, err := h.peptides.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch peptides")
		return
	}
	if len(peptides) > 6 {
		peptides = peptides[:6]
	}

	out := make([]publicPeptide, 0, len(peptides))
	for _, p := range peptides {
		out = append(out, publicPeptide{
			ID:               p.ID.String(),
			Name:             p.Name,
			Category:         p.Category,
			Description:      p.Description,
			TotalExperiences: p.TotalExperiences,
			AverageRating:    p.AverageRating,
		})
	}
	respond(c, http.StatusOK, gin.H{"data": gin.H{"peptides": out}})
}

func (h *PeptideHandler) Get(c *gin.Context) {
	peptide, err := h.peptides.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Peptide not found")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": peptide})
}

func (h *PeptideHandler) Create(c *gin.Context) {
	var req types.PeptideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	peptide, err := h.peptides.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSequence):
			respondError(c, http.StatusBadRequest, "Invalid peptide sequence")
		case errors.Is(err, service.ErrInvalidCategory):
			respondError(c, http.StatusBadRequest, "Invalid peptide category")
		case errors.Is(err, service.ErrPeptideExists):
			respondError(c, http.StatusBadRequest, "Peptide already exists")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to create peptide")
		}
		return
	}
	respond(c, http.StatusCreated, gin.H{"data": peptide})
}

func (h *PeptideHandler) Update(c *gin.Context) {
	var req types.PeptideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	peptide, err := h.peptides.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPeptideNotFound):
			respondError(c, http.StatusNotFound, "Peptide not found")
		case errors.Is(err, service.ErrInvalidSequence):
			respondError(c, http.StatusBadRequest, "Invalid peptide sequence")
		case errors.Is(err, service.ErrInvalidCategory):
			respondError(c, http.StatusBadRequest, "Invalid peptide category")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update peptide")
		}
		return
	}
	respond(c, http.StatusOK, gin.H{"data": peptide})
}

func (h *PeptideHandler) Delete(c *gin.Context) {
	if err := h.peptides.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPeptideNotFound) {
			respondError(c, http.StatusNotFound, "Peptide not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete peptide")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Peptide deleted successfully"})
}

func (h *PeptideHandler) Search(c *gin.Context) {
	peptides, err := h.peptides.Search(c.Request.Context(), c.Param("query"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to search peptides")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": gin.H{"peptides": peptides}})
}

// Popular serves the catalog ranked by popularity score, capped at ten.
func (h *PeptideHandler) Popular(c *gin.Context) {
	peptides, err := h.peptides.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch popular peptides")
		return
	}
	if len(peptides) > 10 {
		peptides = peptides[:10]
	}
	respond(c, http.StatusOK, gin.H{"data": gin.H{"popularPeptides": peptides}})
}

// Trending serves the fastest growing peptides from the monthly trend
// report.
func (h *PeptideHandler) Trending(c *gin.Context) {
	report, err := h.analytics.PeptideTrends(c.Request.Context(), "monthly", 12)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch trending peptides")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": gin.H{"trendingPeptides": report.FastestGrowing}})
}
