// Package bootstrap loads configuration and wires the portal's dependencies.
package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/hostelportal/internal/app/client"
	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/services"
	"github.com/yigit/hostelportal/internal/app/session"
	"github.com/yigit/hostelportal/internal/config"
	"github.com/yigit/hostelportal/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Config             *config.Config
	Logger             zerolog.Logger
	Store              session.Store
	Client             *client.Client
	AuthService        *services.AuthService
	EligibilityService services.EligibilityService
	SelectionService   *services.SelectionService
	PaymentService     *services.PaymentService
	HostelService      *services.HostelService
	DashboardService   *services.DashboardService
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// An empty configPath means the per-user default location. debug forces
// debug level regardless of configuration.
func LoadConfigAndSetupLogger(configPath string, debug bool) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level, logger.WarnLevel)
	if debug {
		logLevel = logger.DebugLevel
	}
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		Output: os.Stderr,
	})
	lgr.Debug().Str("logLevel", string(logLevel)).Str("config", configPath).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies initializes the session store, API client and services.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg, Logger: lgr}

	store := session.NewFileStore(cfg.Session.Path, lgr)
	deps.Store = store

	apiClient, err := client.New(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  session.TokenSource{Store: store},
		OnUnauthorized: func() {
			lgr.Info().Msg("Backend rejected the session, clearing it")
			if err := store.Clear(); err != nil {
				lgr.Warn().Err(err).Msg("Failed to clear session")
			}
		},
		Logger: lgr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	deps.Client = apiClient

	fees := models.FeeSummary{
		AccommodationFee: cfg.Payment.AccommodationFee,
		ServiceFee:       cfg.Payment.ServiceFee,
	}

	deps.AuthService = services.NewAuthService(apiClient, store, lgr)
	deps.EligibilityService = services.NewEligibilityService(apiClient, lgr)
	deps.SelectionService = services.NewSelectionService(deps.EligibilityService, apiClient, apiClient, lgr)
	deps.PaymentService = services.NewPaymentService(apiClient, fees, cfg.Payment.MaxReceiptBytes, lgr)
	deps.HostelService = services.NewHostelService(apiClient)
	deps.DashboardService = services.NewDashboardService(apiClient, fees, lgr)

	return deps, nil
}
