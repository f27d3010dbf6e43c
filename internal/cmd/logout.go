package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove the stored session",
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
			return nil
		}

		if err := app.gateway.Logout(cmd.Context()); err != nil {
			return err
		}

		fmt.Printf("Logged out %s.\n", sess.User.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
