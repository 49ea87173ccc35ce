package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-scheduler/cmd/cli/commands"
	"github.com/jakechorley/oncall-scheduler/internal/config"
	"github.com/jakechorley/oncall-scheduler/pkg/constraints"
	"github.com/jakechorley/oncall-scheduler/pkg/utils/logging"
)

var (
	env      string
	verbose  bool
	app      = &commands.AppContext{}
	closeLog func() error
)

func main() {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "oncall",
		Short: "On-call scheduler - allocate Day and Night shifts for a month",
		Long: `A CLI tool for collecting developer constraints and allocating the monthly
on-call schedule fairly across day, night and special shifts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[commands.AnnotationNoConfig] == "true" {
				return nil
			}
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
			if closeLog != nil {
				closeLog()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (selects oncall_config.<env>.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(commands.GenerateScheduleCmd(app))
	rootCmd.AddCommand(commands.PublishScheduleCmd(app))
	rootCmd.AddCommand(commands.ShowScheduleCmd(app))
	rootCmd.AddCommand(commands.ListRunsCmd(app))
	rootCmd.AddCommand(commands.ViewConstraintsCmd(app))
	rootCmd.AddCommand(commands.InitConstraintsCmd(app))
	rootCmd.AddCommand(commands.ResetConstraintsCmd(app))
	rootCmd.AddCommand(commands.AddRestrictionCmd(app))
	rootCmd.AddCommand(commands.RemoveRestrictionCmd(app))
	rootCmd.AddCommand(commands.SetMonthCmd(app))
	rootCmd.AddCommand(commands.DailyCheckCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.HashPasswordCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, constraints store and database
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, closeLog, err = logging.InitLogger(logging.Options{Env: env, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("constraints_file", app.Cfg.ConstraintsFile),
		zap.String("storage", app.Cfg.Storage.Driver))

	app.Constraints = constraints.NewStore(app.Cfg.ConstraintsFile)

	app.Database, err = commands.OpenRunStore(app.Ctx, app.Cfg, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}

	return nil
}
