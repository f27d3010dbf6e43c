package cmd

import (
	"fmt"
	"net/mail"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/realestatead/adctl/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the platform",
	Long: `Log in to the RealEstateAd platform with your email and password.

Organization users and admins authenticate against the tenant endpoint;
pass --admin to authenticate as a system administrator instead. On success
the session is stored locally and every subsequent command uses it.

Examples:
  adctl login --email jane@acme.com
  adctl login --admin --email root@realestatead.io`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		asAdmin, _ := cmd.Flags().GetBool("admin")

		creds, err := collectCredentials(email, password)
		if err != nil {
			return err
		}

		sess, err := app.gateway.Login(cmd.Context(), creds, asAdmin)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Printf("Logged in as %s (%s)\n", sess.User.Name, sess.User.Email)
		fmt.Printf("Role: %s\n", sess.User.Role)
		if sess.User.OrganizationName != "" {
			fmt.Printf("Organization: %s\n", sess.User.OrganizationName)
		}
		return nil
	},
}

// collectCredentials fills in whatever the flags did not provide with an
// interactive form. Email syntax is validated here, before submission, per
// the login form's responsibility.
func collectCredentials(email, password string) (auth.Credentials, error) {
	validateEmail := func(s string) error {
		if _, err := mail.ParseAddress(s); err != nil {
			return fmt.Errorf("enter a valid email address")
		}
		return nil
	}

	if email != "" && password != "" {
		if err := validateEmail(email); err != nil {
			return auth.Credentials{}, err
		}
		return auth.Credentials{Email: email, Password: password}, nil
	}

	var fields []huh.Field
	if email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Validate(validateEmail).
			Value(&email))
	} else if err := validateEmail(email); err != nil {
		return auth.Credentials{}, err
	}
	if password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("password is required")
				}
				return nil
			}).
			Value(&password))
	}

	if len(fields) > 0 {
		form := huh.NewForm(huh.NewGroup(fields...))
		if err := form.Run(); err != nil {
			return auth.Credentials{}, fmt.Errorf("login cancelled: %w", err)
		}
	}

	return auth.Credentials{Email: email, Password: password}, nil
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prompted when omitted)")
	loginCmd.Flags().Bool("admin", false, "log in as a system administrator")

	rootCmd.AddCommand(loginCmd)
}
