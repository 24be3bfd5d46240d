package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planhotel/internal/config"
	"planhotel/internal/server/handlers"
	"planhotel/internal/store"
)

// Server serveur HTTP de l'application
type Server struct {
	router *gin.Engine
	store  *store.SessionStore
	api    *handlers.Handlers
}

// NewServer crée le serveur et sa session
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	sessionStore := store.NewSessionStore()
	api := handlers.NewHandlers(sessionStore, cfg.Business.ForecastHorizonDays)

	s := &Server{
		router: gin.Default(),
		store:  sessionStore,
		api:    api,
	}

	s.setupRoutes()
	return s
}

// setupRoutes installe middleware et routes
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.api.RegisterRoutes(api)
	}

	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "planhotel",
			"api":     "/api",
		})
	})
}

// Run démarre le serveur
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Store session courante (tests)
func (s *Server) Store() *store.SessionStore {
	return s.store
}

// Router moteur HTTP (tests)
func (s *Server) Router() http.Handler {
	return s.router
}
