package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/app/services"
	"github.com/yigit/scholarmatch/internal/middleware"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/validation"
)

// ProfileController handles the profile and match JSON API
type ProfileController struct {
	profileService services.ProfileService
	matchService   services.MatchService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService, matchService services.MatchService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		matchService:   matchService,
	}
}

// parseProfileID reads the :id path parameter. Anything that is not a
// positive integer cannot name a profile.
func parseProfileID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CreateProfile handles POST /api/profiles
func (c *ProfileController) CreateProfile(ctx *gin.Context) {
	var req dto.CreateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, validation.FromDecodeError(err))
		return
	}

	profile, err := c.profileService.CreateProfile(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, profile)
}

// GetProfile handles GET /api/profiles/:id
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	id, ok := parseProfileID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrProfileNotFound)
		return
	}

	profile, err := c.profileService.GetProfile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// ListMatches handles GET /api/profiles/:id/matches. Unknown profiles have
// an empty list.
func (c *ProfileController) ListMatches(ctx *gin.Context) {
	id, ok := parseProfileID(ctx)
	if !ok {
		ctx.JSON(http.StatusOK, []*models.ScholarshipMatch{})
		return
	}

	matches, err := c.matchService.ListMatches(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, matches)
}

// GenerateMatches handles POST /api/profiles/:id/generate-matches
func (c *ProfileController) GenerateMatches(ctx *gin.Context) {
	id, ok := parseProfileID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrProfileNotFound)
		return
	}

	profile, err := c.profileService.GetProfile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	matches, err := c.matchService.GenerateMatches(ctx.Request.Context(), profile)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, matches)
}
