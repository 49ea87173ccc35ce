package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jakechorley/oncall-scheduler/internal/config"
	"github.com/jakechorley/oncall-scheduler/pkg/clients/gmailclient"
	"github.com/jakechorley/oncall-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/oncall-scheduler/pkg/constraints"
	"github.com/jakechorley/oncall-scheduler/pkg/db"
	"github.com/jakechorley/oncall-scheduler/pkg/postgres"
	"github.com/jakechorley/oncall-scheduler/pkg/sqlite"
)

// AnnotationNoConfig marks commands that run without loading config
const AnnotationNoConfig = "no-config"

// ErrStorageDisabled is returned by commands that need run history when storage.driver is none
var ErrStorageDisabled = errors.New("run history storage is disabled (storage.driver: none)")

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg         *config.Config
	Constraints *constraints.Store
	Database    db.RunStore
	Logger      *zap.Logger
	Ctx         context.Context

	serviceAccount *config.ServiceAccount
	sheetsClient   *sheetsclient.Client
	gmailClient    *gmailclient.Client
}

// OpenRunStore connects to the configured run history backend.
// Returns nil when storage is disabled.
func OpenRunStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (db.RunStore, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		dsn := cfg.Storage.DSN
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		if dsn == "" {
			return nil, fmt.Errorf("storage.dsn or DATABASE_URL is required for postgres")
		}
		logger.Info("Connecting to PostgreSQL")
		pg, err := postgres.NewDB(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case "sqlite":
		logger.Info("Opening SQLite database", zap.String("path", cfg.Storage.DSN))
		lite, err := sqlite.Open(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		return lite, nil
	default:
		logger.Debug("Run history storage disabled")
		return nil, nil
	}
}

// RequireDatabase returns the run store or ErrStorageDisabled
func (a *AppContext) RequireDatabase() (db.RunStore, error) {
	if a.Database == nil {
		return nil, ErrStorageDisabled
	}
	return a.Database, nil
}

// SheetsClient builds the Sheets client on first use
func (a *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if a.sheetsClient != nil {
		return a.sheetsClient, nil
	}

	sa, err := a.loadServiceAccount()
	if err != nil {
		return nil, err
	}

	a.Logger.Info("Initializing sheets client")
	a.sheetsClient, err = sheetsclient.NewClient(a.Ctx, sa)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return a.sheetsClient, nil
}

// GmailClient builds the Gmail client on first use
func (a *AppContext) GmailClient() (*gmailclient.Client, error) {
	if a.gmailClient != nil {
		return a.gmailClient, nil
	}

	sa, err := a.loadServiceAccount()
	if err != nil {
		return nil, err
	}

	a.Logger.Info("Initializing gmail client", zap.String("sender", a.Cfg.Notify.GmailSender))
	a.gmailClient, err = gmailclient.NewClient(a.Ctx, sa, a.Cfg.Notify.GmailSender)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	return a.gmailClient, nil
}

// Close releases the database connection
func (a *AppContext) Close() {
	if a.Database != nil {
		a.Database.Close()
	}
}

func (a *AppContext) loadServiceAccount() (*config.ServiceAccount, error) {
	if a.serviceAccount != nil {
		return a.serviceAccount, nil
	}
	if a.Cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("credentialsFile is not configured")
	}

	a.Logger.Debug("Loading service account", zap.String("path", a.Cfg.CredentialsFile))
	sa, err := config.LoadServiceAccount(a.Cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	a.serviceAccount = sa
	return sa, nil
}
