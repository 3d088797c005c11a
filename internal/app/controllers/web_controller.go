package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/app/services"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
	"github.com/yigit/scholarmatch/internal/web"
)

const (
	generationFailedNotice = "We couldn't generate matches right now. Please try again."
	saveFailedNotice       = "We couldn't save your profile. Please try again."
)

// WebController serves the server-rendered pages
type WebController struct {
	profileService services.ProfileService
	matchService   services.MatchService
}

// NewWebController creates a new WebController
func NewWebController(profileService services.ProfileService, matchService services.MatchService) *WebController {
	return &WebController{
		profileService: profileService,
		matchService:   matchService,
	}
}

// Home renders the landing page
func (c *WebController) Home(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "home.html", web.Page{Title: "Find Scholarships", Active: "home"})
}

// HowItWorks renders the explainer page
func (c *WebController) HowItWorks(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "how_it_works.html", web.Page{Title: "How It Works", Active: "how-it-works"})
}

// EligibilityForm renders an empty eligibility form
func (c *WebController) EligibilityForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "eligibility.html", web.NewEligibilityPage(web.DefaultForm()))
}

// SubmitEligibility stores the submitted profile and redirects to its results.
// Invalid input re-renders the form with the first offending field marked.
func (c *WebController) SubmitEligibility(ctx *gin.Context) {
	var req dto.CreateProfileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		page := web.NewEligibilityPage(web.FormFromRequest(&req))
		page.Error = "Some of the submitted values could not be read. Please check the form."
		ctx.HTML(http.StatusBadRequest, "eligibility.html", page)
		return
	}

	profile, err := c.profileService.CreateProfile(ctx.Request.Context(), &req)
	if err != nil {
		page := web.NewEligibilityPage(web.FormFromRequest(&req))
		if vErr, ok := apperrors.AsValidation(err); ok {
			page.ErrorField = vErr.Field
			page.Error = vErr.Message
			ctx.HTML(http.StatusBadRequest, "eligibility.html", page)
			return
		}
		logger.FromContext(ctx.Request.Context()).Error().Err(err).Msg("Saving profile from form failed")
		page.Error = saveFailedNotice
		ctx.HTML(http.StatusInternalServerError, "eligibility.html", page)
		return
	}

	ctx.Redirect(http.StatusSeeOther, resultsPath(profile.ID))
}

// Results renders a profile's matches, generating them first when the
// profile has none yet.
func (c *WebController) Results(ctx *gin.Context) {
	page, ok := c.loadResults(ctx)
	if !ok {
		return
	}

	if page.Total == 0 {
		matches, err := c.matchService.GenerateMatches(ctx.Request.Context(), page.Profile)
		if err != nil {
			logger.FromContext(ctx.Request.Context()).Warn().Err(err).Int64("profileID", page.Profile.ID).Msg("Generating matches for results page failed")
			page.Error = generationFailedNotice
		} else {
			page = web.NewResultsPage(page.Profile, matches, page.Filters)
		}
	}

	ctx.HTML(http.StatusOK, "results.html", page)
}

// GenerateFromResults is the retry action of the results page.
func (c *WebController) GenerateFromResults(ctx *gin.Context) {
	page, ok := c.loadResults(ctx)
	if !ok {
		return
	}

	if _, err := c.matchService.GenerateMatches(ctx.Request.Context(), page.Profile); err != nil {
		logger.FromContext(ctx.Request.Context()).Warn().Err(err).Int64("profileID", page.Profile.ID).Msg("Retrying match generation failed")
		page.Error = generationFailedNotice
		ctx.HTML(http.StatusInternalServerError, "results.html", page)
		return
	}

	ctx.Redirect(http.StatusSeeOther, resultsPath(page.Profile.ID))
}

// NotFound renders the not-found page for unknown page routes
func (c *WebController) NotFound(ctx *gin.Context) {
	page := web.ProfileNotFoundPage()
	page.Title = "Page Not Found"
	page.Heading = "Page Not Found"
	page.Message = "The page you are looking for does not exist."
	ctx.HTML(http.StatusNotFound, "message.html", page)
}

// loadResults resolves the profile and its stored matches. When ok is false
// a response has already been written.
func (c *WebController) loadResults(ctx *gin.Context) (web.ResultsPage, bool) {
	id, ok := parseProfileID(ctx)
	if !ok {
		ctx.HTML(http.StatusNotFound, "message.html", web.ProfileNotFoundPage())
		return web.ResultsPage{}, false
	}

	reqCtx := ctx.Request.Context()
	profile, err := c.profileService.GetProfile(reqCtx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			ctx.HTML(http.StatusNotFound, "message.html", web.ProfileNotFoundPage())
		} else {
			logger.FromContext(reqCtx).Error().Err(err).Int64("profileID", id).Msg("Loading profile for results failed")
			ctx.HTML(http.StatusInternalServerError, "message.html", web.ErrorPage())
		}
		return web.ResultsPage{}, false
	}

	matches, err := c.matchService.ListMatches(reqCtx, id)
	if err != nil {
		logger.FromContext(reqCtx).Error().Err(err).Int64("profileID", id).Msg("Loading matches for results failed")
		ctx.HTML(http.StatusInternalServerError, "message.html", web.ErrorPage())
		return web.ResultsPage{}, false
	}

	filters := web.Filters{
		GovernmentOnly: ctx.Query("gov") == "1",
		HighMatchOnly:  ctx.Query("high") == "1",
	}
	return web.NewResultsPage(profile, matches, filters), true
}

func resultsPath(id int64) string {
	return "/results/" + strconv.FormatInt(id, 10)
}
