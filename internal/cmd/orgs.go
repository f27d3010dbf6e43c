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

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "Manage tenant organizations (system admins only)",
}

var orgsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organizations",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaSystem); err != nil {
			return err
		}

		orgs, err := app.console.Organizations(cmd.Context())
		if err != nil {
			return err
		}
		if len(orgs) == 0 {
			fmt.Println("No organizations yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tCREATED")
		for _, o := range orgs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", o.ID, o.Name, o.Description, o.CreatedAt)
		}
		return w.Flush()
	},
}

var orgsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an organization and its first admin",
	Long: `Create a tenant organization together with its first administrator.
Missing fields are collected interactively.

Examples:
  adctl orgs create --name "Acme Realty" --admin-name "Jane Doe" --admin-email jane@acme.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaSystem); err != nil {
			return err
		}

		var input console.CreateOrganizationInput
		input.Organization.Name, _ = cmd.Flags().GetString("name")
		input.Organization.Description, _ = cmd.Flags().GetString("description")
		input.User.FullName, _ = cmd.Flags().GetString("admin-name")
		input.User.Email, _ = cmd.Flags().GetString("admin-email")
		input.User.Phone, _ = cmd.Flags().GetString("admin-phone")

		var fields []huh.Field
		if input.Organization.Name == "" {
			fields = append(fields, huh.NewInput().Title("Organization name").Value(&input.Organization.Name))
		}
		if input.User.FullName == "" {
			fields = append(fields, huh.NewInput().Title("Admin full name").Value(&input.User.FullName))
		}
		if input.User.Email == "" {
			fields = append(fields, huh.NewInput().Title("Admin email").Value(&input.User.Email))
		}
		if len(fields) > 0 {
			if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
				return fmt.Errorf("cancelled: %w", err)
			}
		}

		created, err := app.console.CreateOrganization(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Printf("Created organization %q (id %d)\n", created.Name, created.ID)
		return nil
	},
}

var orgsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit an organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaSystem); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var input console.UpdateOrganizationInput
		input.Name, _ = cmd.Flags().GetString("name")
		input.Description, _ = cmd.Flags().GetString("description")
		if input.Name == "" && input.Description == "" {
			return fmt.Errorf("nothing to update; pass --name or --description")
		}

		updated, err := app.console.UpdateOrganization(cmd.Context(), id, input)
		if err != nil {
			return err
		}
		fmt.Printf("Updated organization %q\n", updated.Name)
		return nil
	},
}

var orgAdminsCmd = &cobra.Command{
	Use:   "org-admins",
	Short: "Manage organization administrators (system admins only)",
}

var orgAdminsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organization administrators",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaSystem); err != nil {
			return err
		}

		admins, err := app.console.OrgAdmins(cmd.Context())
		if err != nil {
			return err
		}
		if len(admins) == 0 {
			fmt.Println("No organization administrators yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tORG\tSTATUS")
		for _, a := range admins {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
				a.ID, a.FullName, a.Email, a.Phone, a.OrganizationID, a.Status)
		}
		return w.Flush()
	},
}

var orgAdminsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an organization administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaSystem); err != nil {
			return err
		}

		var input console.CreateOrgAdminInput
		input.User.OrganizationID, _ = cmd.Flags().GetInt64("org")
		input.User.FullName, _ = cmd.Flags().GetString("name")
		input.User.Email, _ = cmd.Flags().GetString("email")
		input.User.Password, _ = cmd.Flags().GetString("password")
		input.User.Phone, _ = cmd.Flags().GetString("phone")

		if input.User.OrganizationID == 0 {
			return fmt.Errorf("--org is required")
		}

		var fields []huh.Field
		if input.User.FullName == "" {
			fields = append(fields, huh.NewInput().Title("Full name").Value(&input.User.FullName))
		}
		if input.User.Email == "" {
			fields = append(fields, huh.NewInput().Title("Email").Value(&input.User.Email))
		}
		if input.User.Password == "" {
			fields = append(fields, huh.NewInput().Title("Initial password").
				EchoMode(huh.EchoModePassword).Value(&input.User.Password))
		}
		if len(fields) > 0 {
			if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
				return fmt.Errorf("cancelled: %w", err)
			}
		}

		created, err := app.console.CreateOrgAdmin(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Printf("Created org admin %s (%s)\n", created.FullName, created.Email)
		return nil
	},
}

var orgAdminsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit an organization administrator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaSystem); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var input console.UpdateOrgAdminInput
		input.User.FullName, _ = cmd.Flags().GetString("name")
		input.User.Phone, _ = cmd.Flags().GetString("phone")
		if input.User.FullName == "" && input.User.Phone == "" {
			return fmt.Errorf("nothing to update; pass --name or --phone")
		}

		updated, err := app.console.UpdateOrgAdmin(cmd.Context(), id, input)
		if err != nil {
			return err
		}
		fmt.Printf("Updated org admin %s\n", updated.FullName)
		return nil
	},
}

func init() {
	orgsCreateCmd.Flags().String("name", "", "organization name")
	orgsCreateCmd.Flags().String("description", "", "organization description")
	orgsCreateCmd.Flags().String("admin-name", "", "first admin's full name")
	orgsCreateCmd.Flags().String("admin-email", "", "first admin's email")
	orgsCreateCmd.Flags().String("admin-phone", "", "first admin's phone")

	orgsUpdateCmd.Flags().String("name", "", "organization name")
	orgsUpdateCmd.Flags().String("description", "", "organization description")

	orgAdminsCreateCmd.Flags().Int64("org", 0, "organization id")
	orgAdminsCreateCmd.Flags().String("name", "", "full name")
	orgAdminsCreateCmd.Flags().String("email", "", "email address")
	orgAdminsCreateCmd.Flags().String("password", "", "initial password (prompted when omitted)")
	orgAdminsCreateCmd.Flags().String("phone", "", "phone number")

	orgAdminsUpdateCmd.Flags().String("name", "", "full name")
	orgAdminsUpdateCmd.Flags().String("phone", "", "phone number")

	orgsCmd.AddCommand(orgsListCmd)
	orgsCmd.AddCommand(orgsCreateCmd)
	orgsCmd.AddCommand(orgsUpdateCmd)

	orgAdminsCmd.AddCommand(orgAdminsListCmd)
	orgAdminsCmd.AddCommand(orgAdminsCreateCmd)
	orgAdminsCmd.AddCommand(orgAdminsUpdateCmd)

	rootCmd.AddCommand(orgsCmd)
	rootCmd.AddCommand(orgAdminsCmd)
}
