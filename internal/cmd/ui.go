package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/realestatead/adctl/internal/authz"
	"github.com/realestatead/adctl/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive console shell",
	Long: `Open the interactive shell: a guarded, navigable console with the
same screens as the feature commands.

The shell starts in the organization area; pass --admin to start in the
system-admin area. A session with the wrong role for the chosen area is
redirected to its own dashboard.

Examples:
  adctl ui
  adctl ui --admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}

		area := authz.AreaTenant
		if asAdmin, _ := cmd.Flags().GetBool("admin"); asAdmin {
			area = authz.AreaSystem
		}

		model := tui.NewModel(area, app.gateway, app.console, app.cache)
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("shell failed: %w", err)
		}
		return nil
	},
}

func init() {
	uiCmd.Flags().Bool("admin", false, "start in the system-admin area")
	rootCmd.AddCommand(uiCmd)
}
