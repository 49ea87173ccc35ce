package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-scheduler/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule",
		Short: "Allocate the on-call schedule for the month in the constraints file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := cmd.Flags().GetInt("year")
			month, _ := cmd.Flags().GetInt("month")
			days, _ := cmd.Flags().GetInt("days")
			seedStr, _ := cmd.Flags().GetString("seed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			opts := services.GenerateOptions{
				Year:     year,
				Month:    month,
				DayLimit: days,
				DryRun:   dryRun,
			}
			if seedStr != "" {
				seed, err := strconv.ParseUint(seedStr, 10, 64)
				if err != nil {
					return fmt.Errorf("seed must be a non-negative integer: %w", err)
				}
				opts.Seed = &seed
			}

			app.Logger.Debug("generateSchedule command",
				zap.Int("year", year),
				zap.Int("month", month),
				zap.Int("days", days),
				zap.String("seed", seedStr),
				zap.Bool("dry_run", dryRun))

			deps, err := generateDeps(app, dryRun)
			if err != nil {
				return err
			}

			result, err := services.GenerateSchedule(app.Ctx, app.Constraints, deps, app.Cfg, app.Logger, opts)
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Println(renderSchedule(result.Schedule))
			fmt.Println(renderTallies(result.Schedule.Tallies))

			outcome := result.Outcome
			if outcome.Success {
				fmt.Printf("%s All %d slots filled\n", statusMark(true), len(outcome.State.Slots))
			} else {
				fmt.Printf("%s %d of %d slots unfilled\n", statusMark(false), len(outcome.Gaps), len(outcome.State.Slots))
				for _, gap := range outcome.Gaps {
					fmt.Printf("    %s (%s)\n", gap.Label(), gap.Category)
				}
				for _, verr := range outcome.ValidationErrors {
					fmt.Printf("    %s: %s\n", verr.CriterionName, verr.Description)
				}
			}

			fmt.Printf("\nSeed:      %d\n", result.Seed)
			fmt.Printf("Quotas:    night %d, special %d\n", outcome.State.Quotas.Night, outcome.State.Quotas.Special)
			fmt.Printf("Files:     %s, %s, %s\n", result.Files.Schedule, result.Files.Summary, result.Files.Workbook)

			if dryRun {
				fmt.Println(styleWarn.Render("\nDry run: nothing stored, published or sent"))
				return nil
			}

			if result.Stored {
				fmt.Printf("Run ID:    %s\n", result.RunID)
			}
			if result.Published {
				fmt.Printf("Published: row %d\n", result.PublishedRow)
			}
			if result.Notified {
				fmt.Println("Summary email sent")
			}
			for _, w := range result.Warnings {
				fmt.Println(styleWarn.Render("⚠ " + w))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("year", 0, "Override the year from the constraints file")
	cmd.Flags().Int("month", 0, "Override the month from the constraints file (1-12)")
	cmd.Flags().Int("days", 0, "Only schedule the first N days of the month")
	cmd.Flags().String("seed", "", "Seed for the roster shuffle and tie-breaks")
	cmd.Flags().Bool("dry-run", false, "Write local files only")

	return cmd
}

// generateDeps wires the optional collaborators that the config enables
func generateDeps(app *AppContext, dryRun bool) (services.GenerateDeps, error) {
	var deps services.GenerateDeps
	if dryRun {
		return deps, nil
	}

	if app.Database != nil {
		deps.Store = app.Database
	}
	if app.Cfg.Sheets.Enabled {
		client, err := app.SheetsClient()
		if err != nil {
			return deps, err
		}
		deps.Publisher = client
	}
	if app.Cfg.Notify.Enabled {
		client, err := app.GmailClient()
		if err != nil {
			return deps, err
		}
		deps.Notifier = client
	}
	return deps, nil
}
