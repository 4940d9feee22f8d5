package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/middleware"
	"github.com/peptitrace/backend/internal/service"
)

type AnalyticsHandler struct {
	db           *gorm.DB
	analytics    *service.AnalyticsService
	exports      *service.ExportService
	authenticate gin.HandlerFunc
}

func NewAnalyticsHandler(db *gorm.DB, analytics *service.AnalyticsService, exports *service.ExportService, authenticate gin.HandlerFunc) *AnalyticsHandler {
	return &AnalyticsHandler{
		db:           db,
		analytics:    analytics,
		exports:      exports,
		authenticate: authenticate,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	analytics := router.Group("/analytics")
	{
		analytics.GET("/public", h.Public)

		readAnalytics := middleware.RequirePermission(h.db, middleware.OpRead, middleware.ResourceAnalytics)
		analytics.GET("", h.authenticate, readAnalytics, h.Overview)
		analytics.GET("/peptide-effectiveness", h.authenticate, readAnalytics, h.Effectiveness)
		analytics.GET("/peptide-trends", h.authenticate, readAnalytics, h.PeptideTrends)
		analytics.GET("/peptide-comparison", h.authenticate, readAnalytics, h.Comparison)
		analytics.GET("/trends", h.authenticate, readAnalytics, h.Trends)
		analytics.GET("/dashboard", h.authenticate, readAnalytics, h.Dashboard)
		analytics.GET("/export", h.authenticate,
			middleware.RequirePermission(h.db, middleware.OpExport, middleware.ResourceAnalytics), h.Export)
	}
}

// Overview merges the usage summary with the per-peptide effectiveness
// profiles.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	usage, err := h.analytics.Usage(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}
	effectiveness, err := h.analytics.Effectiveness(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}

	respond(c, http.StatusOK, gin.H{"data": gin.H{
		"totalExperiences":  usage.TotalExperiences,
		"totalPeptides":     usage.TotalPeptides,
		"averageRating":     usage.AverageRating,
		"topPeptidesCount":  usage.TopPeptidesCount,
		"activeUsersCount":  usage.ActiveUsersCount,
		"effectivenessData": effectiveness,
	}})
}

func (h *AnalyticsHandler) Effectiveness(c *gin.Context) {
	data, err := h.analytics.Effectiveness(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch peptide effectiveness")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": data})
}

func (h *AnalyticsHandler) PeptideTrends(c *gin.Context) {
	period := c.DefaultQuery("period", "monthly")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	report, err := h.analytics.PeptideTrends(c.Request.Context(), period, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch peptide trends")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": report})
}

func (h *AnalyticsHandler) Comparison(c *gin.Context) {
	raw := c.Query("peptideIds")
	if raw == "" {
		respondError(c, http.StatusBadRequest, "Peptide IDs are required")
		return
	}

	ids := strings.Split(raw, ",")
	for i := range ids {
		ids[i] = strings.TrimSpace(ids[i])
	}

	data, err := h.analytics.Comparison(c.Request.Context(), ids)
	if err != nil {
		if errors.Is(err, service.ErrPeptideNotFound) {
			respondError(c, http.StatusNotFound, "No peptides found with the provided IDs")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to compare peptides")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": data})
}

func (h *AnalyticsHandler) Trends(c *gin.Context) {
	trends, err := h.analytics.Trends(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch trends")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": trends})
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.analytics.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch dashboard")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": dashboard})
}

// Export snapshots the analytics views to object storage and returns a
// presigned download link.
func (h *AnalyticsHandler) Export(c *gin.Context) {
	result, err := h.exports.ExportAnalytics(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrExportUnavailable) {
			respondError(c, http.StatusServiceUnavailable, "Export storage is not configured")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to export analytics")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": result})
}

func (h *AnalyticsHandler) Public(c *gin.Context) {
	stats, err := h.analytics.Public(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch public analytics")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": stats})
}
