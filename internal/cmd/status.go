package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/realestatead/adctl/internal/auth"
	"github.com/realestatead/adctl/internal/authz"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long: `Show who is logged in, their role, and where their session points.

Examples:
  adctl status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}

		sess, err := app.sessions.Read()
		if err != nil {
			return err
		}
		if sess == nil {
			fmt.Println("Not logged in.")
			fmt.Println("Use 'adctl login' to authenticate.")
			return nil
		}

		fmt.Println("Logged in")
		fmt.Printf("Name:   %s\n", sess.User.Name)
		fmt.Printf("Email:  %s\n", sess.User.Email)
		fmt.Printf("Role:   %s\n", sess.User.Role)
		if sess.User.OrganizationName != "" {
			fmt.Printf("Org:    %s (%s)\n", sess.User.OrganizationName, sess.User.OrgID)
		} else {
			fmt.Printf("Org:    %s\n", sess.User.OrgID)
		}

		area := authz.HomeArea(sess.User.Role)
		fmt.Printf("Area:   %s (%s)\n", area, area.DashboardRoute())

		if exp, ok := auth.TokenExpiry(sess.Token); ok {
			if time.Now().After(exp) {
				fmt.Printf("Token:  expired %s\n", exp.Format(time.RFC3339))
			} else {
				fmt.Printf("Token:  expires %s\n", exp.Format(time.RFC3339))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
