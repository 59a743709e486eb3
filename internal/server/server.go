package server

import (
	"net/http"
	"time"

	"gin-event-calendar/config"
	"gin-event-calendar/internal/handler"
	"gin-event-calendar/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// NewRouter 組出 gin engine：recovery、request log、CORS、/ping 以及 API 路由
func NewRouter(cfg *config.ServerConfig, eventHandler *handler.EventHandler) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), CORS(cfg.AllowedOrigins))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	eventHandler.RegisterRoutes(router)

	return router
}

// RequestLogger 以 zap 記錄每個請求
func RequestLogger() gin.HandlerFunc {
	log := logger.WithComponent("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// CORS 把 rs/cors 包成 gin middleware；preflight 直接回應不進路由
func CORS(allowedOrigins []string) gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return func(ctx *gin.Context) {
		if ctx.Request.Method == http.MethodOptions && ctx.GetHeader("Access-Control-Request-Method") != "" {
			c.HandlerFunc(ctx.Writer, ctx.Request)
			ctx.Abort()
			return
		}
		c.HandlerFunc(ctx.Writer, ctx.Request)
		ctx.Next()
	}
}
