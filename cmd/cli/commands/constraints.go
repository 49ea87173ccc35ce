package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/oncall-scheduler/pkg/core/services"
)

// ViewConstraintsCmd creates the viewConstraints command
func ViewConstraintsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewConstraints",
		Short: "Show the constraints document and flag malformed entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := services.ViewConstraints(app.Constraints, app.Logger)
			if err != nil {
				return err
			}

			doc := view.Document
			fmt.Printf("\n%s\n", styleHeader.Render(fmt.Sprintf("Constraints for %s %d", time.Month(doc.Month), doc.Year)))
			if !doc.LastUpdated.IsZero() {
				fmt.Println(styleDim.Render("Last updated " + doc.LastUpdated.Local().Format("2006-01-02 15:04")))
			}
			fmt.Println()

			rows := make([][]string, 0, len(view.Developers))
			for _, dev := range view.Developers {
				restrictions := strings.Join(doc.Developers[dev.Name].Restrictions, ", ")
				if restrictions == "" {
					restrictions = styleDim.Render("none")
				}
				rows = append(rows, []string{
					dev.Name,
					dev.Email,
					strconv.Itoa(dev.RestrictionCount),
					restrictions,
				})
			}
			fmt.Print(renderTable([]string{"Developer", "Email", "Count", "Restrictions"}, rows))

			if len(view.Problems) > 0 {
				fmt.Printf("\n%s\n", styleBad.Render("Malformed entries:"))
				for _, dev := range view.Developers {
					for _, problem := range view.Problems[dev.Name] {
						fmt.Printf("  %s: %s\n", dev.Name, problem)
					}
				}
			}
			fmt.Println()
			return nil
		},
	}
}

// ResetConstraintsCmd creates the resetConstraints command
func ResetConstraintsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resetConstraints",
		Short: "Advance the constraints document to the next month and clear all restrictions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !confirm("This clears every developer's restrictions. Continue?") {
				fmt.Println("Cancelled.")
				return nil
			}

			doc, err := services.ResetConstraints(app.Constraints, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s Constraints reset for %s %d\n\n", statusMark(true), time.Month(doc.Month), doc.Year)
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// InitConstraintsCmd creates the initConstraints command
func InitConstraintsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "initConstraints",
		Short: "Create the constraints document for next month from developerEmails",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(app.Cfg.DeveloperEmails) == 0 {
				return fmt.Errorf("developerEmails is empty in config")
			}

			created, err := app.Constraints.Init(app.Cfg.DeveloperEmails, time.Now())
			if err != nil {
				return err
			}
			if !created {
				fmt.Printf("Constraints file already exists at %s\n", app.Constraints.Path())
				return nil
			}

			fmt.Printf("\n%s Created %s with %d developers\n\n", statusMark(true), app.Constraints.Path(), len(app.Cfg.DeveloperEmails))
			return nil
		},
	}
}

// AddRestrictionCmd creates the addRestriction command
func AddRestrictionCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addRestriction <developer> <DD/MM> <Day|Night>",
		Short: "Mark a slot a developer cannot take",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			developer := args[0]
			entry := strings.Join(args[1:], " ")

			restrictions, err := app.Constraints.AddRestriction(developer, entry)
			if err != nil {
				return err
			}

			fmt.Printf("%s %s: %s\n", statusMark(true), developer, strings.Join(restrictions, ", "))
			return nil
		},
	}
}

// RemoveRestrictionCmd creates the removeRestriction command
func RemoveRestrictionCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removeRestriction <developer> <index>",
		Short: "Remove a developer's restriction by its position (from 0)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}

			restrictions, err := app.Constraints.RemoveRestriction(args[0], index)
			if err != nil {
				return err
			}

			remaining := strings.Join(restrictions, ", ")
			if remaining == "" {
				remaining = "none"
			}
			fmt.Printf("%s %s: %s\n", statusMark(true), args[0], remaining)
			return nil
		},
	}
}

// SetMonthCmd creates the setMonth command
func SetMonthCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setMonth <month> [year]",
		Short: "Change the month (and optionally year) the constraints document targets",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("month must be a number: %w", err)
			}
			var year int
			if len(args) > 1 {
				if year, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("year must be a number: %w", err)
				}
			}

			doc, err := app.Constraints.SetPeriod(month, year)
			if err != nil {
				return err
			}

			fmt.Printf("%s Targeting %s %d\n", statusMark(true), time.Month(doc.Month), doc.Year)
			return nil
		},
	}
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
