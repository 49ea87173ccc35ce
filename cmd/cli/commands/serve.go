package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-scheduler/internal/config"
	"github.com/jakechorley/oncall-scheduler/pkg/core/model"
	"github.com/jakechorley/oncall-scheduler/pkg/server"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the constraints API so developers can enter their restrictions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				return fmt.Errorf("JWT_SECRET must be set")
			}

			reviewMode := app.Cfg.Server.ReviewMode
			if cmd.Flags().Changed("review") {
				reviewMode, _ = cmd.Flags().GetBool("review")
			}
			addr := app.Cfg.Server.Addr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}

			users := serverUsers(app.Cfg.Server.Users)
			if len(users) == 0 {
				app.Logger.Warn("No users configured, nobody can log in")
			}

			engine := server.New(app.Constraints, server.Options{
				Users:      users,
				Secret:     []byte(secret),
				ReviewMode: reviewMode,
			}, app.Logger)

			srv := &http.Server{
				Addr:              addr,
				Handler:           engine,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("Constraints API listening",
					zap.String("addr", addr),
					zap.Bool("review_mode", reviewMode),
					zap.String("constraints_file", app.Constraints.Path()),
					zap.Int("users", len(users)))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			app.Logger.Info("Shutting down constraints API")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().String("addr", config.DefaultServerAddr, "Listen address")
	cmd.Flags().Bool("review", false, "Reject all changes to constraints")

	return cmd
}

// HashPasswordCmd creates the hashPassword command
func HashPasswordCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:         "hashPassword <password>",
		Short:       "Print a bcrypt hash for a server.users entry",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{AnnotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := server.HashPassword(args[0])
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			fmt.Println(hash)
			return nil
		},
	}
}

func serverUsers(cfgUsers []config.UserConfig) []model.User {
	users := make([]model.User, 0, len(cfgUsers))
	for _, u := range cfgUsers {
		users = append(users, model.User{
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Developer:    u.Developer,
			Role:         model.Role(u.Role),
		})
	}
	return users
}
