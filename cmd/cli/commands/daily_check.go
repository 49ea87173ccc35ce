package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-scheduler/pkg/core/services"
)

// DailyCheckCmd creates the dailyCheck command, meant to be run once a day from cron
func DailyCheckCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dailyCheck",
		Short: "Run today's step of the constraints collection window (reset, remind or generate)",
		Long: `Run today's step of the monthly constraints collection window.

The day before the window opens the constraints document moves to next month.
While the window is open the team is reminded by email. On the second-to-last
day of the month a final reminder is sent, the schedule is generated and
published, admins get the run report and the team is told it is ready.

Schedule it daily with cron, e.g. "30 10 * * * oncall dailyCheck".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dateStr, _ := cmd.Flags().GetString("date")
			planOnly, _ := cmd.Flags().GetBool("plan")

			now, err := checkDate(dateStr, time.Now())
			if err != nil {
				return err
			}

			app.Logger.Debug("dailyCheck command",
				zap.Time("date", now),
				zap.Bool("plan", planOnly))

			if planOnly {
				action := services.PlanDailyAction(now, app.Cfg.ReminderDays)
				fmt.Printf("\n%s\n\n", describeAction(action))
				return nil
			}

			genDeps, err := generateDeps(app, false)
			if err != nil {
				return err
			}
			deps := services.DailyDeps{
				Constraints: app.Constraints,
				Generate:    genDeps,
				Notifier:    genDeps.Notifier,
			}

			result, err := services.RunDailyCheck(app.Ctx, now, deps, app.Cfg, app.Logger)
			if result != nil {
				fmt.Printf("\n%s\n", describeAction(result.Action))
				if result.Reset != nil {
					fmt.Printf("%s Constraints reset for %s %d\n", statusMark(true), time.Month(result.Reset.Month), result.Reset.Year)
				}
				if result.Generated != nil {
					outcome := result.Generated.Outcome
					fmt.Printf("%s Run %s: %d of %d slots filled\n", statusMark(outcome.Success),
						result.Generated.RunID, len(outcome.State.Slots)-len(outcome.Gaps), len(outcome.State.Slots))
				}
				for _, subject := range result.Sent {
					fmt.Printf("%s Sent %q\n", statusMark(true), subject)
				}
				for _, w := range result.Warnings {
					fmt.Println(styleWarn.Render("⚠ " + w))
				}
				fmt.Println()
			}
			return err
		},
	}

	cmd.Flags().String("date", "", "Run as if today were this date (YYYY-MM-DD)")
	cmd.Flags().Bool("plan", false, "Print today's action without doing it")

	return cmd
}

// checkDate parses the --date flag in the local zone, defaulting to now
func checkDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}

// describeAction renders the plan as one line
func describeAction(action services.DailyAction) string {
	target := action.Target.Format("January 2006")
	left := fmt.Sprintf("%d day(s) left in month", action.DaysLeft)

	switch action.Kind {
	case services.DailyReset:
		return fmt.Sprintf("%s: reset constraints for %s", left, target)
	case services.DailyRemind:
		return fmt.Sprintf("%s: window open, reminding the team about %s", left, target)
	case services.DailyGenerate:
		return fmt.Sprintf("%s: last day of the window, generating %s", left, target)
	default:
		return fmt.Sprintf("%s: outside the reminder window, nothing to do", left)
	}
}
