package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/realestatead/adctl/internal/authz"
	"github.com/realestatead/adctl/internal/console"
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Manage email templates, email types, and campaign sends",
}

var templatesListCmd = &cobra.Command{
	Use:   "templates",
	Short: "List email templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaTenant); err != nil {
			return err
		}

		templates, err := app.console.Templates(cmd.Context())
		if err != nil {
			return err
		}
		if len(templates) == 0 {
			fmt.Println("No templates yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSUBJECT\tFROM\tTYPE")
		for _, t := range templates {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", t.ID, t.Name, t.Subject, t.FromEmail, t.EmailTypeID)
		}
		return w.Flush()
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "template <id>",
	Short: "Show one email template",
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
		t, err := app.console.Template(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Name:      %s\n", t.Name)
		fmt.Printf("Subject:   %s\n", t.Subject)
		if t.Preheader != "" {
			fmt.Printf("Preheader: %s\n", t.Preheader)
		}
		fmt.Printf("From:      %s <%s>\n", t.FromName, t.FromEmail)
		if t.ReplyTo != "" {
			fmt.Printf("Reply-To:  %s\n", t.ReplyTo)
		}
		if t.TextBody != "" {
			fmt.Printf("\n%s\n", t.TextBody)
		}
		return nil
	},
}

var templateCreateCmd = &cobra.Command{
	Use:   "create-template",
	Short: "Create an email template",
	Long: `Create an email template. The body may be read from files.

Examples:
  adctl campaigns create-template --name "Open House" --subject "You're invited" \
    --from no-reply@acme.com --type 2 --html-file invite.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaTenant); err != nil {
			return err
		}

		var input console.CreateTemplateInput
		input.Name, _ = cmd.Flags().GetString("name")
		input.Subject, _ = cmd.Flags().GetString("subject")
		input.Preheader, _ = cmd.Flags().GetString("preheader")
		input.FromName, _ = cmd.Flags().GetString("from-name")
		input.FromEmail, _ = cmd.Flags().GetString("from")
		input.ReplyTo, _ = cmd.Flags().GetString("reply-to")
		input.EmailTypeID, _ = cmd.Flags().GetInt64("type")

		if input.Name == "" || input.Subject == "" || input.FromEmail == "" || input.EmailTypeID == 0 {
			return fmt.Errorf("--name, --subject, --from, and --type are required")
		}

		if path, _ := cmd.Flags().GetString("html-file"); path != "" {
			body, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read HTML body: %w", err)
			}
			input.HTMLBody = string(body)
		}
		if path, _ := cmd.Flags().GetString("text-file"); path != "" {
			body, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read text body: %w", err)
			}
			input.TextBody = string(body)
		}

		if err := app.console.CreateTemplate(cmd.Context(), input); err != nil {
			return err
		}
		fmt.Printf("Created template %q\n", input.Name)
		return nil
	},
}

var emailTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List email types",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaTenant); err != nil {
			return err
		}

		types, err := app.console.EmailTypes(cmd.Context())
		if err != nil {
			return err
		}
		if len(types) == 0 {
			fmt.Println("No email types yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKEY\tDESCRIPTION")
		for _, t := range types {
			fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.Key, t.Description)
		}
		return w.Flush()
	},
}

var emailTypeCreateCmd = &cobra.Command{
	Use:   "create-type <key>",
	Short: "Create an email type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaTenant); err != nil {
			return err
		}

		description, _ := cmd.Flags().GetString("description")
		created, err := app.console.CreateEmailType(cmd.Context(), args[0], description)
		if err != nil {
			return err
		}
		fmt.Printf("Created email type %q (id %d)\n", created.Key, created.ID)
		return nil
	},
}

var campaignSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a template to recipients right away",
	Long: `Send an instant campaign: one template, an explicit recipient list.

Examples:
  adctl campaigns send --template 3 --to a@x.com --to b@y.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaTenant); err != nil {
			return err
		}

		templateID, _ := cmd.Flags().GetInt64("template")
		recipients, _ := cmd.Flags().GetStringArray("to")
		if templateID == 0 || len(recipients) == 0 {
			return fmt.Errorf("--template and at least one --to are required")
		}

		msg, err := app.console.SendInstantCampaign(cmd.Context(), console.InstantCampaignInput{
			Emails:          recipients,
			EmailTemplateID: templateID,
		})
		if err != nil {
			return err
		}
		if msg == "" {
			msg = fmt.Sprintf("Campaign sent to %d recipient(s).", len(recipients))
		}
		fmt.Println(msg)
		return nil
	},
}

func init() {
	templateCreateCmd.Flags().String("name", "", "template name")
	templateCreateCmd.Flags().String("subject", "", "email subject")
	templateCreateCmd.Flags().String("preheader", "", "preview text")
	templateCreateCmd.Flags().String("from-name", "", "sender display name")
	templateCreateCmd.Flags().String("from", "", "sender email address")
	templateCreateCmd.Flags().String("reply-to", "", "reply-to address")
	templateCreateCmd.Flags().Int64("type", 0, "email type id")
	templateCreateCmd.Flags().String("html-file", "", "file with the HTML body")
	templateCreateCmd.Flags().String("text-file", "", "file with the plain-text body")

	emailTypeCreateCmd.Flags().String("description", "", "email type description")

	campaignSendCmd.Flags().Int64("template", 0, "email template id")
	campaignSendCmd.Flags().StringArray("to", nil, "recipient email (repeatable)")

	campaignsCmd.AddCommand(templatesListCmd)
	campaignsCmd.AddCommand(templateShowCmd)
	campaignsCmd.AddCommand(templateCreateCmd)
	campaignsCmd.AddCommand(emailTypesCmd)
	campaignsCmd.AddCommand(emailTypeCreateCmd)
	campaignsCmd.AddCommand(campaignSendCmd)
	rootCmd.AddCommand(campaignsCmd)
}
