package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adctl",
	Short: "Admin console for the RealEstateAd marketing platform",
	Long: `adctl is the terminal admin console for the RealEstateAd marketing
platform. Organization admins manage agents, contacts, email templates,
audiences, and campaigns; system admins manage organizations and their
administrators.

The console is a thin client: all state lives in the backend API. Log in
first, then use the feature commands or the interactive shell:

  adctl login --email you@example.com
  adctl agents list
  adctl ui`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "backend API base URL (overrides config and ADCTL_API_URL)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}
