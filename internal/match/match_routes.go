package match

import (
	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/crease/internal/middleware"
	"github.com/DhavalSuthar-24/crease/pkg/validator"
)

// MatchRoutes sets up all match-related routes.
func MatchRoutes(router *gin.RouterGroup, matchController *MatchController, tokenSecret string, claimLimiter *mw.RateLimiter) {
	if err := validator.RegisterBindings(); err != nil {
		panic(err)
	}

	matches := router.Group("/matches")
	{
		// Open to any caller
		matches.POST("", matchController.CreateMatch)
		matches.GET("", matchController.GetMatches)
		matches.GET("/:id", matchController.GetMatchByID)
		matches.GET("/:id/summary", matchController.GetSummary)
		matches.GET("/:id/mvp", matchController.GetMVP)
		matches.GET("/:id/dls/resources", matchController.GetDLSResources)
		matches.GET("/:id/live", matchController.Live)

		// Handoff
		matches.POST("/transfer/claim", claimLimiter.Handler(), matchController.ClaimTransfer)
	}

	// Scorer routes: the caller's token must be pinned to the match
	scorer := matches.Group("/:id")
	scorer.Use(mw.ScorerAuth(tokenSecret))
	{
		scorer.POST("/balls", matchController.AddBall)
		scorer.POST("/striker", matchController.SetStriker)
		scorer.POST("/non-striker", matchController.SetNonStriker)
		scorer.POST("/new-batter", matchController.NewBatter)
		scorer.POST("/bowler", matchController.SetBowler)
		scorer.POST("/change-bowler", matchController.ChangeBowler)
		scorer.POST("/swap", matchController.SwapStriker)
		scorer.POST("/replacement", matchController.Replacement)
		scorer.POST("/undo", matchController.Undo)
		scorer.POST("/next-innings", matchController.StartNextInnings)
		scorer.GET("/bowlers", matchController.GetAvailableBowlers)
		scorer.POST("/dls", matchController.ApplyDLS)
		scorer.POST("/finish", matchController.FinishMatch)
		scorer.POST("/abandon", matchController.AbandonMatch)
		scorer.POST("/transfer", matchController.CreateTransferCode)
	}
}
