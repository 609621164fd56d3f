// Package mockserver runs an in-memory accommodation backend that speaks the
// same REST contract as the real one. It backs local development and tests.
package mockserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/hostelportal/internal/app/controllers"
	appRepos "github.com/yigit/hostelportal/internal/app/repositories"
	appRoutes "github.com/yigit/hostelportal/internal/app/routes"
	appServices "github.com/yigit/hostelportal/internal/app/services"
	"github.com/yigit/hostelportal/internal/config"
	appMiddleware "github.com/yigit/hostelportal/internal/middleware"
	pkgAuth "github.com/yigit/hostelportal/internal/pkg/auth"
	"github.com/yigit/hostelportal/internal/seed"
)

// Server holds the state for the mock HTTP server.
type Server struct {
	config  *config.Config
	router  *gin.Engine
	logger  zerolog.Logger
	http    *http.Server
}

// New builds the repositories, services and routes of a fresh backend
func New(cfg *config.Config, lgr zerolog.Logger) *Server {
	secret := cfg.MockServer.JWTSecret
	if secret == "" {
		secret = uuid.New().String()
		lgr.Warn().Msg("No mock server JWT secret configured, using a random one; tokens will not survive a restart")
	}

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      secret,
		AccessTokenExp: cfg.MockServer.TokenExpiration,
		TokenIssuer:    cfg.MockServer.Issuer,
	})

	repos := appRepos.NewRepositories()
	if cfg.MockServer.SeedDemo {
		if err := seed.CreateDemoStudents(context.Background(), repos, lgr); err != nil {
			lgr.Warn().Err(err).Msg("Some demo students could not be created")
		}
	}
	service := appServices.NewAccommodationService(repos, jwtService, lgr)

	return &Server{
		config:  cfg,
		router:  setupRouter(cfg, service, jwtService, lgr),
		logger:  lgr,
	}
}

// setupRouter configures the Gin engine with middleware and routes.
func setupRouter(cfg *config.Config, service appServices.AccommodationService, jwtService *pkgAuth.JWTService, lgr zerolog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		if strings.ToLower(cfg.MockServer.Mode) == "production" {
			gin.SetMode(gin.ReleaseMode)
		} else {
			gin.SetMode(gin.DebugMode)
		}
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router,
		appControllers.NewAuthController(service, lgr),
		appControllers.NewStudentController(service, lgr),
		appControllers.NewHostelController(service),
		appMiddleware.NewAuthMiddleware(jwtService),
	)

	return router
}

// Handler exposes the router, e.g. for httptest.NewServer
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until ctx is done, an OS signal
// arrives or the listener fails. It then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:         ":" + s.config.MockServer.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	listener, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("error starting server: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", listener.Addr().String()).Msg("Mock backend listening")
		serverErrors <- s.http.Serve(listener)
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(osSignals)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error serving: %w", err)
		}
		return nil
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	case <-ctx.Done():
		s.logger.Info().Msg("Context cancelled, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	s.logger.Info().Msg("Shutting down mock backend...")
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("HTTP server shutdown error")
		return fmt.Errorf("server shutdown completed with errors: %w", err)
	}
	s.logger.Info().Msg("Mock backend stopped.")
	return nil
}
