package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emrekoch/skillbridge/internal/app/controllers"
	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	profileController *controllers.ProfileController,
	matchController *controllers.MatchController,
	discoveryController *controllers.DiscoveryController,
	requestController *controllers.RequestController,
	reviewController *controllers.ReviewController,
	challengeController *controllers.ChallengeController,
	sessionController *controllers.SessionController,
	reportController *controllers.ReportController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Every route requires an authenticated principal; identity itself is
	// issued by an external provider.
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	profiles := authenticated.Group("/profiles")
	{
		profiles.GET("/:id", profileController.GetProfile)
		// Static "me" segments live in the PUT/POST/DELETE trees only, so
		// they never collide with the :id wildcard above.
		profiles.PUT("/me", profileController.UpdateMyProfile)
		profiles.POST("/me/skills", profileController.DeclareSkill)
		profiles.DELETE("/me/skills/:skillId", profileController.RemoveSkill)
	}

	discover := authenticated.Group("/discover")
	{
		discover.GET("", discoveryController.Discover)
	}

	requests := authenticated.Group("/requests")
	{
		requests.POST("", requestController.CreateRequest)
		requests.GET("", requestController.ListMyRequests)
		requests.GET("/:id", requestController.GetRequest)
		requests.POST("/:id/close", requestController.CloseRequest)
		requests.POST("/:id/find-matches", discoveryController.FindMatches)
	}

	matches := authenticated.Group("/matches")
	{
		matches.POST("", matchController.ProposeMatch)
		matches.GET("", matchController.ListMatches)
		matches.GET("/:id", matchController.GetMatch)
		matches.PATCH("/:id", matchController.TransitionMatch)
		matches.POST("/:id/reviews", reviewController.CreateReview)
		matches.POST("/:id/sessions", sessionController.ProposeSession)
		matches.GET("/:id/sessions", sessionController.ListSessions)
		matches.POST("/:id/messages", sessionController.SendMessage)
		matches.GET("/:id/messages", sessionController.ListMessages)
	}

	reviews := authenticated.Group("/reviews")
	{
		reviews.GET("/:id", reviewController.GetReview)
		reviews.PUT("/:id", reviewController.UpdateReview)
	}

	sessions := authenticated.Group("/sessions")
	{
		sessions.PATCH("/:id", sessionController.RespondToSession)
	}

	challenges := authenticated.Group("/challenges")
	{
		challenges.GET("", challengeController.ListChallenges)
		challenges.GET("/:id", challengeController.GetChallenge)
		challenges.POST("/:id/join", challengeController.JoinChallenge)
		challenges.POST("/:id/progress", challengeController.RecordProgress)
		challenges.GET("/:id/leaderboard", challengeController.Leaderboard)
	}

	reports := authenticated.Group("/reports")
	{
		reports.POST("", reportController.CreateReport)
	}

	admin := authenticated.Group("/admin")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/reports", reportController.ListReports)
		admin.PATCH("/reports/:id", reportController.ResolveReport)
	}
}
