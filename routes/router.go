package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/internal/metrics"
	mw "github.com/DhavalSuthar-24/crease/internal/middleware"
)

// Dependencies are the handlers and settings the engine is built from.
type Dependencies struct {
	FrontendURL     string
	TokenSecret     string
	MatchController *match.MatchController
	ClaimLimiter    *mw.RateLimiter
}

func SetupRoutes(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), metrics.Instrument())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if deps.FrontendURL == "" || deps.FrontendURL == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = []string{deps.FrontendURL}
	}
	r.Use(cors.New(corsCfg))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "crease", "docs": "/swagger/index.html"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API routes
	api := r.Group("/api")
	match.MatchRoutes(api, deps.MatchController, deps.TokenSecret, deps.ClaimLimiter)

	return r
}
