package cli

import (
	"fmt"
	"os"

	"github.com/learnhub/backend/internal/cli/api"
	"github.com/learnhub/backend/internal/cli/cliconfig"
	"github.com/spf13/cobra"
)

var (
	flagJSON      bool
	flagServerURL string

	cfg       *cliconfig.Config
	apiClient *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "learnhub",
	Short: "LearnHub CLI for browsing and taking courses from the terminal",
	Long: `LearnHub CLI lets you browse the course catalog, enroll, track
progress, and check your dashboards without leaving the terminal.

Get started:
  learnhub login                 Authenticate with email and password
  learnhub courses               Browse the catalog
  learnhub courses --search go   Search courses
  learnhub enroll <course-id>    Enroll in a course`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = cliconfig.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagServerURL != "" {
			cfg.ServerURL = flagServerURL
		}
		apiClient = api.NewClient(cfg.ServerURL, cfg.Token)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "Override server URL (default: from config or http://localhost:8080)")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func requireAuth() error {
	if cfg == nil || !cfg.HasToken() {
		return fmt.Errorf("not authenticated, run \"learnhub login\" first")
	}
	return nil
}
