package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"companycrm/internal/config"
	"companycrm/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "companyctl",
		Short:         "Search and browse companies from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.backendURL != "" && opts.timeout > 0 {
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.backendURL == "" {
				opts.backendURL = cfg.SearchBackendURL
			}
			if opts.timeout <= 0 {
				opts.timeout = cfg.SearchTimeout
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.backendURL, "backend", "", "Search backend base URL (default $SEARCH_BACKEND_URL)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Request timeout (default $SEARCH_TIMEOUT or 30s)")
	rootCmd.PersistentFlags().BoolVar(&opts.demo, "demo", false, "Show a placeholder price series for companies without price history")
	rootCmd.PersistentFlags().BoolVar(&opts.asTable, "table", false, "Render results as a table instead of cards")

	rootCmd.AddCommand(
		newSearchCmd(opts),
		newAdvancedCmd(opts),
		newShowCmd(opts),
		newInteractiveCmd(opts),
	)

	return rootCmd
}
