package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/oncall-scheduler/internal/config"
	"github.com/jakechorley/oncall-scheduler/pkg/core/model"
)

// DailyActionKind is what the daily check does on a given date
type DailyActionKind string

const (
	DailyNone     DailyActionKind = "none"
	DailyReset    DailyActionKind = "reset"
	DailyRemind   DailyActionKind = "remind"
	DailyGenerate DailyActionKind = "generate"
)

// DailyAction is the plan for one day of the constraints collection window
type DailyAction struct {
	Kind DailyActionKind

	// DaysLeft counts days until month end (0 on the last day)
	DaysLeft int

	// Target is the first day of the month being collected for
	Target time.Time
}

// WindowOpen reports whether developers should be submitting constraints today
func (a DailyAction) WindowOpen() bool {
	return a.Kind == DailyRemind || a.Kind == DailyGenerate
}

// PlanDailyAction decides what the daily check does on now's date.
//
// The window opens reminderDays-1 days before month end. The day before it opens the
// constraints move to next month. Every open day sends a reminder, and the
// second-to-last day of the month sends a final reminder and generates the schedule.
func PlanDailyAction(now time.Time, reminderDays int) DailyAction {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastDay := first.AddDate(0, 1, -1).Day()

	action := DailyAction{
		Kind:     DailyNone,
		DaysLeft: lastDay - now.Day(),
		Target:   first.AddDate(0, 1, 0),
	}

	switch {
	case action.DaysLeft == reminderDays+1:
		action.Kind = DailyReset
	case action.DaysLeft >= reminderDays:
		// window not open yet
	case action.DaysLeft == 1:
		action.Kind = DailyGenerate
	case action.DaysLeft > 1:
		action.Kind = DailyRemind
	}
	return action
}

// DailyConstraints is the constraints store as used by the daily check
type DailyConstraints interface {
	ConstraintsSource
	ConstraintsAdvancer
}

// DailyDeps are the collaborators of the daily check. A nil Notifier skips every email.
type DailyDeps struct {
	Constraints DailyConstraints
	Generate    GenerateDeps
	Notifier    Notifier
}

// DailyResult describes what the daily check did
type DailyResult struct {
	Action DailyAction

	// Reset is the document after a reset
	Reset *model.Constraints

	// Generated is the run on generation day
	Generated *GenerateResult

	// Sent lists the subjects of delivered emails
	Sent []string

	// Warnings collects email failures
	Warnings []string
}

// RunDailyCheck performs the planned action for now.
// The team gets reminders and the ready announcement; admins get the run report or the failure.
// A failed generation is reported to admins and then returned.
func RunDailyCheck(ctx context.Context, now time.Time, deps DailyDeps, cfg *config.Config, logger *zap.Logger) (*DailyResult, error) {
	reminderDays := cfg.ReminderDays
	if reminderDays == 0 {
		reminderDays = config.DefaultReminderDays
	}

	action := PlanDailyAction(now, reminderDays)
	result := &DailyResult{Action: action}
	logger.Info("Daily check",
		zap.String("action", string(action.Kind)),
		zap.Int("days_left", action.DaysLeft),
		zap.String("target", action.Target.Format("2006-01")))

	team := cfg.Notify.Recipients
	admins := cfg.AdminAddresses()
	send := func(to []string, subject, body string) {
		if deps.Notifier == nil || !cfg.Notify.Enabled || len(to) == 0 {
			logger.Debug("Email skipped", zap.String("subject", subject))
			return
		}
		if err := deps.Notifier.SendEmail(ctx, to, subject, body); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("email %q failed: %v", subject, err))
			logger.Warn("Failed to send email", zap.String("subject", subject), zap.Error(err))
			return
		}
		result.Sent = append(result.Sent, subject)
		logger.Info("Email sent", zap.String("subject", subject), zap.Strings("recipients", to))
	}

	switch action.Kind {
	case DailyReset:
		doc, err := ResetConstraints(deps.Constraints, logger)
		if err != nil {
			return result, err
		}
		result.Reset = doc

	case DailyRemind:
		subject, body := ReminderEmail(action, cfg.AppURL)
		send(team, subject, body)

	case DailyGenerate:
		subject, body := LastChanceEmail(action, cfg.AppURL)
		send(team, subject, body)

		// The team gets its own announcement, so the run's summary goes to admins instead
		genDeps := deps.Generate
		genDeps.Notifier = nil

		generated, err := GenerateSchedule(ctx, deps.Constraints, genDeps, cfg, logger, GenerateOptions{})
		if err != nil {
			subject, body = GenerationFailedEmail(action, err)
			send(admins, subject, body)
			return result, fmt.Errorf("scheduled generation failed: %w", err)
		}
		result.Generated = generated

		subject, body = BuildSummaryEmail(generated)
		if len(generated.Warnings) > 0 {
			body += "\nWarnings:\n  - " + strings.Join(generated.Warnings, "\n  - ") + "\n"
		}
		send(admins, subject, body)

		subject, body = ScheduleReadyEmail(action)
		send(team, subject, body)
	}

	return result, nil
}

// ReminderEmail asks the team to submit constraints while the window is open
func ReminderEmail(action DailyAction, appURL string) (string, string) {
	month := action.Target.Month()
	subject := fmt.Sprintf("On-call constraints: %d %s left", action.DaysLeft, plural(action.DaysLeft, "day"))

	var b strings.Builder
	fmt.Fprintf(&b, "Please log in and mark your unavailable shifts for %s.\n", month)
	fmt.Fprintf(&b, "%s\n\n", appURL)
	fmt.Fprintf(&b, "The %s schedule is generated on %s.\n", month, generationDate(action).Format("Monday 2 January"))
	return subject, b.String()
}

// LastChanceEmail is the final reminder sent on generation day
func LastChanceEmail(action DailyAction, appURL string) (string, string) {
	month := action.Target.Month()
	subject := fmt.Sprintf("Last chance to submit on-call constraints for %s", month)
	body := fmt.Sprintf("The schedule is generated today. Make sure you have marked your unavailable shifts for %s.\n%s\n", month, appURL)
	return subject, body
}

// ScheduleReadyEmail tells the team the new month has been published
func ScheduleReadyEmail(action DailyAction) (string, string) {
	month := action.Target.Month()
	subject := fmt.Sprintf("The on-call schedule for %s is ready", month)
	body := "Check the shared spreadsheet, the new month has been added.\n\nSee you next month.\n"
	return subject, body
}

// GenerationFailedEmail reports a failed scheduled run to admins
func GenerationFailedEmail(action DailyAction, err error) (string, string) {
	subject := fmt.Sprintf("On-call schedule generation FAILED for %s %d", action.Target.Month(), action.Target.Year())
	body := fmt.Sprintf("Please check the logs and run generateSchedule manually.\n\n%v\n", err)
	return subject, body
}

// generationDate is the second-to-last day of the month before the target
func generationDate(action DailyAction) time.Time {
	return action.Target.AddDate(0, 0, -2)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
