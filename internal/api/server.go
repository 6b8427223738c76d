package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/martijn/secondchance/internal/api/docs"
	"github.com/martijn/secondchance/internal/api/handler"
	"github.com/martijn/secondchance/internal/api/middleware"
	"github.com/martijn/secondchance/internal/core/service"
	"github.com/martijn/secondchance/pkg/config"
)

const imagesRoute = "/images"

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	logger *slog.Logger
}

// NewServer creates a new API server. imageDir is served under /images when
// uploads are kept on local disk; pass "" otherwise.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	accountService *service.AccountService,
	itemService *service.ItemService,
	imageDir string,
) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandlerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(accountService, logger, cfg.IsProduction())
	itemHandler := handler.NewItemHandler(itemService, logger)

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.PUT("/update", authHandler.Update)
	}

	// Item writes are open unless the deployment asks for a token.
	var writeGuard gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.RequireAuthForItemWrites {
		writeGuard = middleware.AuthMiddleware(accountService)
	}

	items := router.Group("/api/secondchance/items")
	{
		items.GET("", itemHandler.ListItems)
		items.GET("/:id", itemHandler.GetItem)
		items.POST("", writeGuard, itemHandler.CreateItem)
		items.PUT("/:id", writeGuard, itemHandler.UpdateItem)
		items.DELETE("/:id", writeGuard, itemHandler.DeleteItem)
	}

	if imageDir != "" {
		router.Static(imagesRoute, imageDir)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	server := &Server{
		router: router,
		config: cfg,
		logger: logger,
	}

	return server
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
		ErrorLog:       slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		s.logger.Info("starting HTTPS server", "addr", addr)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.logger.Info("starting HTTP server", "addr", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
