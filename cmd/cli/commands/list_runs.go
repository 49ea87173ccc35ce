package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/oncall-scheduler/pkg/core/services"
	"github.com/jakechorley/oncall-scheduler/pkg/db"
)

// ListRunsCmd creates the listRuns command
func ListRunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRuns",
		Short: "List stored scheduling runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.RequireDatabase()
			if err != nil {
				return err
			}

			runs, err := services.ListRuns(app.Ctx, database, app.Logger)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No runs stored yet.")
				return nil
			}

			fmt.Println()
			fmt.Print(renderTable([]string{"Run ID", "Period", "Created", "Seed", "Gaps", "OK"}, runRows(runs)))
			fmt.Println()
			return nil
		},
	}
}

func runRows(runs []db.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			fmt.Sprintf("%s %d", time.Month(r.Month), r.Year),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			strconv.FormatUint(r.Seed, 10),
			strconv.Itoa(r.GapCount),
			statusMark(r.Success),
		})
	}
	return rows
}
