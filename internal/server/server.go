// Package server is the JSON API behind the browser UI.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xaenox/mudhumeni/internal/advisor"
	"github.com/xaenox/mudhumeni/internal/profile"
	"github.com/xaenox/mudhumeni/internal/recommend"
	"github.com/xaenox/mudhumeni/internal/weather"
)

const shutdownTimeout = 10 * time.Second

// Pinger checks the completion API is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
	Model() string
}

type Deps struct {
	Advisor        *advisor.Advisor
	Session        *advisor.Session
	Recommender    *recommend.Service
	Weather        weather.Provider
	WeatherAdvisor *weather.Advisor
	Profiles       *profile.Service
	Status         Pinger
}

type Server struct {
	http   *http.Server
	logger *zap.Logger
}

type handler struct {
	deps   Deps
	logger *zap.Logger
}

// NewRouter builds the gin engine with all /api routes.
func NewRouter(deps Deps, allowedOrigins []string, logger *zap.Logger) *gin.Engine {
	h := &handler{deps: deps, logger: logger}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	if len(allowedOrigins) > 0 {
		router.Use(corsMiddleware(allowedOrigins))
	}

	api := router.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/status", h.status)
		api.GET("/season", h.season)

		api.POST("/chat", h.chat)
		api.GET("/chat/messages", h.messages)
		api.POST("/chat/messages/:id/rating", h.rate)

		api.POST("/recommendations", h.recommendations)

		api.GET("/weather", h.weather)
		api.POST("/weather/advice", h.weatherAdvice)

		api.GET("/profile", h.currentProfile)
		api.PATCH("/profile", h.updateProfile)
		api.DELETE("/profile", h.logout)
		api.POST("/profile/login", h.login)
		api.POST("/profile/register", h.register)
	}

	return router
}

func New(addr string, router *gin.Engine, logger *zap.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.http.Addr))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("HTTP shutdown incomplete", zap.Error(err))
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
