package ui

import (
	"net/http"

	"statcalc/app"
	"statcalc/internal"
	"statcalc/internal/config"
	"statcalc/internal/profiling"
	"statcalc/ui/middleware"

	"github.com/gin-gonic/gin"
)

// Server exposes the calculator over HTTP
type Server struct {
	router     *gin.Engine
	calculator *app.CalculatorService
	profiler   *profiling.DataProfiler
	config     *config.Config
	logger     *internal.Logger
}

// NewServer creates a server with its middleware and routes in place
func NewServer(cfg *config.Config, calculator *app.CalculatorService, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:     gin.New(),
		calculator: calculator,
		profiler:   profiling.NewDataProfiler(),
		config:     cfg,
		logger:     logger.WithComponent("Server"),
	}
	s.router.MaxMultipartMemory = cfg.MaxUploadBytes()
	s.setupMiddleware(logger)
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware(logger *internal.Logger) {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.RequestLogger(logger))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/help", s.handleHelp)

	api := s.router.Group("/api")
	api.POST("/interval", s.handleInterval)
	api.POST("/test", s.handleTest)
	api.POST("/columns", s.handleColumns)
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting statcalc API on http://%s", addr)
	return s.router.Run(addr)
}
