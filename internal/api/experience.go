package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/middleware"
	"github.com/peptitrace/backend/internal/models"
	"github.com/peptitrace/backend/internal/service"
	"github.com/peptitrace/backend/internal/types"
)

type ExperienceHandler struct {
	db           *gorm.DB
	experiences  *service.ExperienceService
	votes        *service.VoteService
	authenticate gin.HandlerFunc
}

func NewExperienceHandler(db *gorm.DB, experiences *service.ExperienceService, votes *service.VoteService, authenticate gin.HandlerFunc) *ExperienceHandler {
	return &ExperienceHandler{
		db:           db,
		experiences:  experiences,
		votes:        votes,
		authenticate: authenticate,
	}
}

func (h *ExperienceHandler) RegisterRoutes(router *gin.RouterGroup) {
	experiences := router.Group("/experiences", h.authenticate)
	{
		experiences.GET("/home/public", h.HomePublic)
		experiences.GET("/peptide/:peptideId", h.ListByPeptide)

		experiences.GET("", middleware.RequirePermission(h.db, middleware.OpRead, middleware.ResourceExperience), h.List)
		experiences.GET("/tracking/:trackingId", middleware.RequirePermission(h.db, middleware.OpRead, middleware.ResourceExperience), h.GetByTrackingID)
		experiences.GET("/user/:userId", middleware.RequirePermission(h.db, middleware.OpRead, middleware.ResourceExperience), h.ListByUser)
		experiences.GET("/:id", middleware.RequirePermission(h.db, middleware.OpRead, middleware.ResourceExperience), h.Get)
		experiences.POST("",
			middleware.RequirePermission(h.db, middleware.OpCreate, middleware.ResourceExperience),
			middleware.RateLimitExperienceSubmission(h.db),
			h.Create)
		experiences.PUT("/:id", middleware.RequirePermission(h.db, middleware.OpUpdate, middleware.ResourceExperience), h.Update)
		experiences.DELETE("/:id", middleware.RequirePermission(h.db, middleware.OpDelete, middleware.ResourceExperience), h.Delete)

		experiences.GET("/:id/votes", h.VoteSummary)
		experiences.POST("/:id/votes", middleware.RequireAuth(), h.SubmitVote)
		experiences.GET("/:id/votes/user", middleware.RequireAuth(), h.UserVote)
		experiences.DELETE("/:id/votes", middleware.RequireAuth(), h.DeleteVote)
	}
}

// publicExperience is the reduced view served to anonymous visitors.
type publicExperience struct {
	ID          string                  `json:"id"`
	PeptideName string                  `json:"peptideName"`
	CreatedAt   string                  `json:"createdAt"`
	Story       string                  `json:"story"`
	Dosage      string                  `json:"dosage"`
	Outcomes    models.JSONBFloatMap    `json:"outcomes"`
}

// HomePublic serves the three most recent experiences, reduced to fields
// safe for anonymous visitors.
func (h *ExperienceHandler) HomePublic(c *gin.Context) {
	result, err := h.experiences.List(c.Request.Context(), service.ListFilters{Limit: 3})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch experiences")
		return
	}

	out := make([]publicExperience, 0, len(result.Experiences))
	for _, exp := range result.Experiences {
		out = append(out, publicExperience{
			ID:          exp.ID.String(),
			PeptideName: exp.PeptideName,
			CreatedAt:   exp.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Story:       exp.Story,
			Dosage:      exp.Dosage,
			Outcomes:    exp.Outcomes,
		})
	}
	respond(c, http.StatusOK, gin.H{"data": gin.H{"experiences": out}})
}

func (h *ExperienceHandler) ListByPeptide(c *gin.Context) {
	result, err := h.experiences.ListByPeptide(c.Request.Context(), c.Param("peptideId"), listFilters(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch experiences")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": result})
}

func (h *ExperienceHandler) List(c *gin.Context) {
	result, err := h.experiences.List(c.Request.Context(), listFilters(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch experiences")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": result})
}

func (h *ExperienceHandler) GetByTrackingID(c *gin.Context) {
	experience, err := h.experiences.GetByTrackingID(c.Request.Context(), c.Param("trackingId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Experience not found")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": experience})
}

func (h *ExperienceHandler) ListByUser(c *gin.Context) {
	experiences, err := h.experiences.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch experiences")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": gin.H{"experiences": experiences}})
}

func (h *ExperienceHandler) Get(c *gin.Context) {
	experience, err := h.experiences.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Experience not found")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": experience})
}

func (h *ExperienceHandler) Create(c *gin.Context) {
	var req types.CreateExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Honeypot field: real clients never fill it.
	if req.Website != "" {
		respondError(c, http.StatusBadRequest, "Invalid submission")
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	experience, err := h.experiences.Create(c.Request.Context(), &user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPeptideNotFound):
			respondError(c, http.StatusBadRequest, "Peptide not found")
		case errors.Is(err, service.ErrEmptyOutcomes),
			errors.Is(err, service.ErrInvalidFrequency),
			errors.Is(err, service.ErrInvalidRoute),
			errors.Is(err, service.ErrInvalidTimeline):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "Failed to submit experience")
		}
		return
	}
	respond(c, http.StatusCreated, gin.H{"data": experience})
}

func (h *ExperienceHandler) Update(c *gin.Context) {
	var req types.UpdateExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	experience, err := h.experiences.Update(c.Request.Context(), c.Param("id"), user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExperienceNotFound):
			respondError(c, http.StatusNotFound, "Experience not found")
		case errors.Is(err, service.ErrNotOwner):
			respondError(c, http.StatusForbidden, "You can only modify your own data")
		case errors.Is(err, service.ErrEmptyOutcomes):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update experience")
		}
		return
	}
	respond(c, http.StatusOK, gin.H{"data": experience})
}

func (h *ExperienceHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	err := h.experiences.Delete(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExperienceNotFound):
			respondError(c, http.StatusNotFound, "Experience not found")
		case errors.Is(err, service.ErrNotOwner):
			respondError(c, http.StatusForbidden, "You can only modify your own data")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to delete experience")
		}
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Experience deleted successfully"})
}

func (h *ExperienceHandler) VoteSummary(c *gin.Context) {
	summary, err := h.votes.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrExperienceNotFound) {
			respondError(c, http.StatusNotFound, "Experience not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch votes")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": summary})
}

func (h *ExperienceHandler) SubmitVote(c *gin.Context) {
	var req types.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Vote type is required")
		return
	}

	user := middleware.CurrentUser(c)
	vote, err := h.votes.Submit(c.Request.Context(), user.ID, c.Param("id"), req.Type)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidVoteKind):
			respondError(c, http.StatusBadRequest, "Invalid vote type")
		case errors.Is(err, service.ErrExperienceNotFound):
			respondError(c, http.StatusNotFound, "Experience not found")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to submit vote")
		}
		return
	}
	respond(c, http.StatusOK, gin.H{"data": vote})
}

func (h *ExperienceHandler) UserVote(c *gin.Context) {
	user := middleware.CurrentUser(c)
	vote, err := h.votes.UserVote(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Vote not found")
		return
	}
	respond(c, http.StatusOK, gin.H{"data": vote})
}

func (h *ExperienceHandler) DeleteVote(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.votes.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		respondError(c, http.StatusNotFound, "Vote not found")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Vote removed"})
}

func listFilters(c *gin.Context) service.ListFilters {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return service.ListFilters{Limit: limit, Offset: offset}
}
