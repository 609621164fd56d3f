// Package cli implements the portal command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yigit/hostelportal/internal/app/session"
	"github.com/yigit/hostelportal/internal/bootstrap"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
)

const programName = "portal"

// app is the state shared by every command of one invocation
type app struct {
	configFile string
	debug      bool
	apiURL     string

	deps *bootstrap.Dependencies
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Student accommodation portal",
		Long:          "Register, pay for accommodation, choose your hostels and follow your room allocation.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "override the backend base URL")

	rootCmd.AddCommand(registerCommand(a))
	rootCmd.AddCommand(loginCommand(a))
	rootCmd.AddCommand(logoutCommand(a))
	rootCmd.AddCommand(whoamiCommand(a))
	rootCmd.AddCommand(hostelsCommand(a))
	rootCmd.AddCommand(eligibilityCommand(a))
	rootCmd.AddCommand(selectCommand(a))
	rootCmd.AddCommand(payCommand(a))
	rootCmd.AddCommand(verifyPaymentCommand(a))
	rootCmd.AddCommand(statusCommand(a))
	rootCmd.AddCommand(roomCommand(a))
	rootCmd.AddCommand(dashboardCommand(a))
	rootCmd.AddCommand(mockServerCommand(a))

	return rootCmd
}

func (a *app) setup() error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(a.configFile, a.debug)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.API.BaseURL = a.apiURL
	}

	deps, err := bootstrap.BuildDependencies(cfg, lgr)
	if err != nil {
		return err
	}
	a.deps = deps
	return nil
}

// session returns the logged-in student's session
func (a *app) session() (session.Session, error) {
	return a.deps.AuthService.Current()
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		renderError(stderr, err)
		return 1
	}
	return 0
}

// renderError explains a failure in terms the student can act on
func renderError(w io.Writer, err error) {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintln(w, "Please fix the following:")
		for _, f := range verr.Fields {
			fmt.Fprintf(w, "  - %s\n", f.Message)
		}
	case errors.Is(err, apperrors.ErrUnauthenticated):
		fmt.Fprintf(w, "You are not logged in or your session has expired. Run `%s login` to continue.\n", programName)
	case errors.Is(err, apperrors.ErrServiceUnavailable):
		fmt.Fprintf(w, "Could not reach the accommodation service: %v\nPlease try again.\n", err)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}
