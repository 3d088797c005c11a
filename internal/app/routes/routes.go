package routes

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/scholarmatch/internal/app/controllers"
	"github.com/yigit/scholarmatch/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	profileController *controllers.ProfileController,
	webController *controllers.WebController,
	healthController *controllers.HealthController,
) {
	router.GET("/ping", healthController.Ping)
	router.GET("/healthz", healthController.Healthz)

	// --- JSON API ---
	api := router.Group("/api")
	{
		profiles := api.Group("/profiles")
		{
			profiles.POST("", profileController.CreateProfile)
			profiles.GET("/:id", profileController.GetProfile)
			profiles.GET("/:id/matches", profileController.ListMatches)
			profiles.POST("/:id/generate-matches", profileController.GenerateMatches)
		}
	}

	// --- Pages ---
	router.GET("/", webController.Home)
	router.GET("/how-it-works", webController.HowItWorks)
	router.GET("/eligibility", webController.EligibilityForm)
	router.POST("/eligibility", webController.SubmitEligibility)
	router.GET("/results/:id", webController.Results)
	router.POST("/results/:id/generate", webController.GenerateFromResults)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			middleware.NotFound()(c)
			return
		}
		webController.NotFound(c)
	})
}
