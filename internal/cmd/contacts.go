package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/realestatead/adctl/internal/authz"
	"github.com/realestatead/adctl/internal/console"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Manage the organization's contacts",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Long: `List contacts. Without flags the full collection is shown; --page
switches to the paginated listing.

Examples:
  adctl contacts list
  adctl contacts list --page 2 --per-page 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaTenant); err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		perPage, _ := cmd.Flags().GetInt("per-page")

		var contacts []console.Contact
		var pagination *console.Pagination
		if page > 0 {
			result, err := app.console.ContactsPage(cmd.Context(), page, perPage)
			if err != nil {
				return err
			}
			contacts = result.Contacts
			pagination = &result.Pagination
		} else {
			contacts, err = app.console.Contacts(cmd.Context())
			if err != nil {
				return err
			}
		}

		if len(contacts) == 0 {
			fmt.Println("No contacts yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tPREFS")
		for _, c := range contacts {
			fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%d\n",
				c.ID, c.FirstName, c.LastName, c.Email, c.Phone, len(c.Preferences))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if pagination != nil {
			fmt.Printf("Page %d of %d (%d contacts total)\n",
				pagination.CurrentPage, pagination.TotalPages, pagination.TotalCount)
		}
		return nil
	},
}

var contactsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a contact",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaTenant); err != nil {
			return err
		}

		var input console.CreateContactInput
		input.Contact.FirstName, _ = cmd.Flags().GetString("first-name")
		input.Contact.LastName, _ = cmd.Flags().GetString("last-name")
		input.Contact.Email, _ = cmd.Flags().GetString("email")
		input.Contact.Phone, _ = cmd.Flags().GetString("phone")

		var fields []huh.Field
		if input.Contact.FirstName == "" {
			fields = append(fields, huh.NewInput().Title("First name").Value(&input.Contact.FirstName))
		}
		if input.Contact.LastName == "" {
			fields = append(fields, huh.NewInput().Title("Last name").Value(&input.Contact.LastName))
		}
		if input.Contact.Email == "" {
			fields = append(fields, huh.NewInput().Title("Email").Value(&input.Contact.Email))
		}
		if input.Contact.Phone == "" {
			fields = append(fields, huh.NewInput().Title("Phone").Value(&input.Contact.Phone))
		}
		if len(fields) > 0 {
			if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
				return fmt.Errorf("cancelled: %w", err)
			}
		}

		created, err := app.console.CreateContact(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Printf("Created contact %s %s\n", created.FirstName, created.LastName)
		return nil
	},
}

var contactsImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import contacts from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaTenant); err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()

		result, err := app.console.ImportContactsCSV(cmd.Context(), filepath.Base(args[0]), file)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		if result.ImportID != "" {
			fmt.Printf("Import ID: %s\n", result.ImportID)
		}
		return nil
	},
}

var contactsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaTenant); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		ok, err := confirmDestructive(fmt.Sprintf("Delete contact %d?", id), yes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}

		if err := app.console.DeleteContact(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Contact deleted.")
		return nil
	},
}

func init() {
	contactsListCmd.Flags().Int("page", 0, "page number (enables paginated listing)")
	contactsListCmd.Flags().Int("per-page", 5, "page size for paginated listing")

	contactsCreateCmd.Flags().String("first-name", "", "first name")
	contactsCreateCmd.Flags().String("last-name", "", "last name")
	contactsCreateCmd.Flags().String("email", "", "email address")
	contactsCreateCmd.Flags().String("phone", "", "phone number")

	contactsDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsCreateCmd)
	contactsCmd.AddCommand(contactsImportCmd)
	contactsCmd.AddCommand(contactsDeleteCmd)
	rootCmd.AddCommand(contactsCmd)
}
