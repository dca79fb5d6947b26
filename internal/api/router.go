// Package api wires the HTTP surface together.
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hardhat-ai/hardhat/internal/api/middleware"
	"github.com/hardhat-ai/hardhat/internal/api/tools"
	"github.com/hardhat-ai/hardhat/internal/service"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	AllowOrigins []string
}

// SetupRouter sets up the Gin router.
func SetupRouter(
	scribe *service.ScribeService,
	query *service.QueryService,
	risk *service.RiskService,
	submittal *service.SubmittalService,
	lookahead *service.LookaheadService,
	logger *zap.Logger,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hard Hat AI Pack API",
			"version": "0.1.0",
			"status":  "running",
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	toolsHandler := tools.NewHandler(scribe, query, risk, submittal, lookahead, logger)
	toolsGroup := r.Group("/api")
	toolsHandler.RegisterRoutes(toolsGroup)

	return r
}
