package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/oncall-scheduler/pkg/core/services"
)

// PublishScheduleCmd creates the publishSchedule command
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishSchedule [run_id]",
		Short: "Append a stored schedule to the shared spreadsheet (defaults to latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runID string
			if len(args) > 0 {
				runID = args[0]
			}

			database, err := app.RequireDatabase()
			if err != nil {
				return err
			}
			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.PublishSchedule(app.Ctx, database, client, app.Cfg, app.Logger, runID)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s Schedule published\n\n", statusMark(true))
			fmt.Printf("Run ID:    %s\n", result.RunID)
			fmt.Printf("Worksheet: %s\n", result.Worksheet)
			fmt.Printf("Row:       %d\n\n", result.Row)
			return nil
		},
	}
}

// ShowScheduleCmd creates the showSchedule command
func ShowScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "showSchedule [run_id]",
		Short: "Print a stored schedule (defaults to latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runID string
			if len(args) > 0 {
				runID = args[0]
			}

			database, err := app.RequireDatabase()
			if err != nil {
				return err
			}

			stored, err := services.LoadStoredSchedule(app.Ctx, database, app.Logger, runID)
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Println(renderSchedule(stored.Schedule))
			fmt.Println(renderTallies(stored.Schedule.Tallies))
			fmt.Printf("Run %s, seed %d, %d gaps\n\n", stored.Run.ID, stored.Run.Seed, stored.Run.GapCount)
			return nil
		},
	}
}
