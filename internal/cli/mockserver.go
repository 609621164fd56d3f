package cli

import (
	"github.com/spf13/cobra"

	"github.com/yigit/hostelportal/internal/mockserver"
	"github.com/yigit/hostelportal/internal/pkg/logger"
)

func mockServerCommand(a *app) *cobra.Command {
	var (
		port     string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run a local accommodation backend for development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.deps.Config
			if port != "" {
				cfg.MockServer.Port = port
			}

			level := logger.ParseLevel(logLevel, logger.InfoLevel)
			if a.debug {
				level = logger.DebugLevel
			}
			lgr := logger.Configure(logger.Config{
				Level:  level,
				Pretty: cfg.Logging.Format == "text",
				Output: cmd.ErrOrStderr(),
			})

			return mockserver.New(cfg, lgr).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (default from config)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "server log level")
	return cmd
}
