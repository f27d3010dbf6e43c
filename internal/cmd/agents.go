package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/realestatead/adctl/internal/authz"
	"github.com/realestatead/adctl/internal/console"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Manage the organization's agents (org admins only)",
}

var agentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		user, err := app.requireArea(cmd, authz.AreaTenant)
		if err != nil {
			return err
		}
		if err := app.requireRole(user, "/app/agents"); err != nil {
			return err
		}

		agents, err := app.console.Agents(cmd.Context())
		if err != nil {
			return err
		}
		if len(agents) == 0 {
			fmt.Println("No agents yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tROLE")
		for _, a := range agents {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.FullName, a.Email, a.Phone, a.Role)
		}
		return w.Flush()
	},
}

var agentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an agent",
	Long: `Create an agent in your organization. Missing fields are collected
interactively.

Examples:
  adctl agents create --name "Jane Doe" --email jane@acme.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		user, err := app.requireArea(cmd, authz.AreaTenant)
		if err != nil {
			return err
		}
		if err := app.requireRole(user, "/app/agents"); err != nil {
			return err
		}

		input := console.CreateAgentInput{}
		input.FullName, _ = cmd.Flags().GetString("name")
		input.Email, _ = cmd.Flags().GetString("email")
		input.Password, _ = cmd.Flags().GetString("password")
		input.Phone, _ = cmd.Flags().GetString("phone")

		if err := promptAgentInput(&input); err != nil {
			return err
		}

		created, err := app.console.CreateAgent(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Printf("Created agent %s (%s)\n", created.FullName, created.Email)
		return nil
	},
}

var agentsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit an agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		user, err := app.requireArea(cmd, authz.AreaTenant)
		if err != nil {
			return err
		}
		if err := app.requireRole(user, "/app/agents"); err != nil {
			return err
		}

		input := console.UpdateAgentInput{}
		input.FullName, _ = cmd.Flags().GetString("name")
		input.Email, _ = cmd.Flags().GetString("email")
		input.Phone, _ = cmd.Flags().GetString("phone")
		if input.FullName == "" && input.Email == "" && input.Phone == "" {
			return fmt.Errorf("nothing to update; pass --name, --email, or --phone")
		}

		updated, err := app.console.UpdateAgent(cmd.Context(), args[0], input)
		if err != nil {
			return err
		}
		fmt.Printf("Updated agent %s\n", updated.FullName)
		return nil
	},
}

var agentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		user, err := app.requireArea(cmd, authz.AreaTenant)
		if err != nil {
			return err
		}
		if err := app.requireRole(user, "/app/agents"); err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		ok, err := confirmDestructive(fmt.Sprintf("Delete agent %s?", args[0]), yes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}

		if err := app.console.DeleteAgent(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Agent deleted.")
		return nil
	},
}

// promptAgentInput collects any missing create fields interactively.
func promptAgentInput(input *console.CreateAgentInput) error {
	var fields []huh.Field
	if input.FullName == "" {
		fields = append(fields, huh.NewInput().Title("Full name").Value(&input.FullName))
	}
	if input.Email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&input.Email))
	}
	if input.Password == "" {
		fields = append(fields, huh.NewInput().Title("Initial password").
			EchoMode(huh.EchoModePassword).Value(&input.Password))
	}
	if len(fields) == 0 {
		return nil
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return fmt.Errorf("cancelled: %w", err)
	}
	return nil
}

// confirmDestructive asks before a destructive request is sent. The yes flag
// skips the prompt for scripted use.
func confirmDestructive(message string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	confirmed := false
	confirm := huh.NewConfirm().Title(message).Value(&confirmed)
	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return false, fmt.Errorf("cancelled: %w", err)
	}
	return confirmed, nil
}

func init() {
	agentsCreateCmd.Flags().String("name", "", "full name")
	agentsCreateCmd.Flags().String("email", "", "email address")
	agentsCreateCmd.Flags().String("password", "", "initial password (prompted when omitted)")
	agentsCreateCmd.Flags().String("phone", "", "phone number")

	agentsUpdateCmd.Flags().String("name", "", "full name")
	agentsUpdateCmd.Flags().String("email", "", "email address")
	agentsUpdateCmd.Flags().String("phone", "", "phone number")

	agentsDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	agentsCmd.AddCommand(agentsListCmd)
	agentsCmd.AddCommand(agentsCreateCmd)
	agentsCmd.AddCommand(agentsUpdateCmd)
	agentsCmd.AddCommand(agentsDeleteCmd)
	rootCmd.AddCommand(agentsCmd)
}
