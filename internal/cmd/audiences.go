package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/realestatead/adctl/internal/authz"
	"github.com/realestatead/adctl/internal/console"
)

var audiencesCmd = &cobra.Command{
	Use:   "audiences",
	Short: "Manage saved audience segments",
}

var audiencesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audiences",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaTenant); err != nil {
			return err
		}

		audiences, err := app.console.Audiences(cmd.Context())
		if err != nil {
			return err
		}
		if len(audiences) == 0 {
			fmt.Println("No audiences yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tFILTERS")
		for _, a := range audiences {
			fmt.Fprintf(w, "%d\t%s\t%d\n", a.ID, a.Name, countFilters(a))
		}
		return w.Flush()
	},
}

var audiencesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an audience",
	Long: `Create an audience segment. Filter flags are optional; an omitted
filter matches any value.

Examples:
  adctl audiences create "Downtown 2BHK" --bhk-type 2 --location 14`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if _, err := app.requireArea(cmd, authz.AreaTenant); err != nil {
			return err
		}

		input := console.AudienceInput{Name: args[0]}
		fillAudienceFilters(cmd, &input)

		created, err := app.console.CreateAudience(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Printf("Created audience %q (id %d)\n", created.Name, created.ID)
		return nil
	},
}

var audiencesUpdateCmd = &cobra.Command{
	Use:   "update <id> <name>",
	Short: "Edit an audience",
	Args:  cobra.ExactArgs(2),
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

		input := console.AudienceInput{Name: args[1]}
		fillAudienceFilters(cmd, &input)

		updated, err := app.console.UpdateAudience(cmd.Context(), id, input)
		if err != nil {
			return err
		}
		fmt.Printf("Updated audience %q\n", updated.Name)
		return nil
	},
}

func fillAudienceFilters(cmd *cobra.Command, input *console.AudienceInput) {
	setFilter := func(flag string, target **int64) {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetInt64(flag)
			*target = &v
		}
	}
	setFilter("bhk-type", &input.BHKTypeID)
	setFilter("furnishing-type", &input.FurnishingTypeID)
	setFilter("location", &input.LocationID)
	setFilter("property-type", &input.PropertyTypeID)
	setFilter("power-backup", &input.PowerBackupTypeID)
}

func countFilters(a console.Audience) int {
	count := 0
	for _, id := range []*int64{a.BHKTypeID, a.FurnishingTypeID, a.LocationID, a.PropertyTypeID, a.PowerBackupTypeID} {
		if id != nil {
			count++
		}
	}
	return count
}

func addAudienceFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("bhk-type", 0, "BHK type id filter")
	cmd.Flags().Int64("furnishing-type", 0, "furnishing type id filter")
	cmd.Flags().Int64("location", 0, "location id filter")
	cmd.Flags().Int64("property-type", 0, "property type id filter")
	cmd.Flags().Int64("power-backup", 0, "power backup type id filter")
}

func init() {
	addAudienceFilterFlags(audiencesCreateCmd)
	addAudienceFilterFlags(audiencesUpdateCmd)

	audiencesCmd.AddCommand(audiencesListCmd)
	audiencesCmd.AddCommand(audiencesCreateCmd)
	audiencesCmd.AddCommand(audiencesUpdateCmd)
	rootCmd.AddCommand(audiencesCmd)
}
