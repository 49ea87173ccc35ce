package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oncall_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{ConstraintsFile: "constraints.json"}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingConstraintsFile(t *testing.T) {
	cfg := &Config{OutputDir: "output"}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := &Config{
		ConstraintsFile: "constraints.json",
		SpecialRules: []SpecialRule{
			{RRule: "FREQ=MONTHLY;BYDAY=-1FR"},
			{RRule: "INVALID_RRULE_SYNTAX"},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule in specialRules[1]")
}

func TestValidate_EmptyRRule(t *testing.T) {
	cfg := &Config{
		ConstraintsFile: "constraints.json",
		SpecialRules:    []SpecialRule{{Shifts: []string{"Day"}}},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRuleShift(t *testing.T) {
	cfg := &Config{
		ConstraintsFile: "constraints.json",
		SpecialRules:    []SpecialRule{{RRule: "FREQ=WEEKLY;BYDAY=MO", Shifts: []string{"Evening"}}},
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestValidate_InvalidHoliday(t *testing.T) {
	cfg := &Config{
		ConstraintsFile: "constraints.json",
		Holidays:        map[int][]string{2026: {"01/01 Day", "32/01 Night"}},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "holidays[2026]")
}

func TestValidate_InvalidWeekendDay(t *testing.T) {
	cfg := &Config{
		ConstraintsFile: "constraints.json",
		WeekendDays:     []string{"Friday", "Funday"},
	}

	assert.Error(t, Validate(cfg))
}

func TestValidate_InvalidColor(t *testing.T) {
	cfg := &Config{
		ConstraintsFile: "constraints.json",
		DeveloperColors: map[string]string{"Alice": "red"},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "developerColors[Alice]")
}

func TestValidate_SheetsNeedSpreadsheetAndCredentials(t *testing.T) {
	cfg := &Config{
		ConstraintsFile: "constraints.json",
		Sheets:          SheetsConfig{Enabled: true},
	}
	assert.ErrorContains(t, Validate(cfg), "spreadsheetID")

	cfg.Sheets.SpreadsheetID = "sheet123"
	assert.ErrorContains(t, Validate(cfg), "credentialsFile")

	cfg.CredentialsFile = "service_account.json"
	assert.NoError(t, Validate(cfg))
}

func TestValidate_NotifyNeedsRecipients(t *testing.T) {
	cfg := &Config{
		ConstraintsFile: "constraints.json",
		CredentialsFile: "service_account.json",
		Notify:          NotifyConfig{Enabled: true, GmailSender: "oncall@example.com"},
	}
	assert.ErrorContains(t, Validate(cfg), "notify.recipients")

	cfg.Notify.Recipients = []string{"team@example.com"}
	assert.NoError(t, Validate(cfg))

	cfg.Notify.Recipients = []string{"not-an-email"}
	assert.ErrorContains(t, Validate(cfg), "validation failed")
}

func TestValidate_Storage(t *testing.T) {
	cfg := &Config{ConstraintsFile: "c.json", Storage: StorageConfig{Driver: "mysql"}}
	assert.Error(t, Validate(cfg))

	cfg.Storage.Driver = "sqlite"
	assert.ErrorContains(t, Validate(cfg), "storage.dsn")

	cfg.Storage.DSN = "runs.db"
	assert.NoError(t, Validate(cfg))
}

func TestValidate_ServerUsers(t *testing.T) {
	cfg := &Config{
		ConstraintsFile: "c.json",
		Server: ServerConfig{Users: []UserConfig{
			{Email: "admin@example.com", PasswordHash: "$2a$10$hash", Role: "Admin"},
			{Email: "dev@example.com", PasswordHash: "$2a$10$hash", Role: "Owner"},
		}},
	}
	assert.Error(t, Validate(cfg))

	cfg.Server.Users[1].Role = "Developer"
	assert.NoError(t, Validate(cfg))
}

func TestLoadFromPath_FullConfig(t *testing.T) {
	path := writeConfig(t, `
constraintsFile: "constraints.json"
outputDir: "out"
seed: 42
holidays:
  2026:
    - "01/01 Day"
    - "01/01 Night"
specialRules:
  - rrule: "FREQ=MONTHLY;BYDAY=-1FR"
    shifts: ["Day"]
weekendDays: ["Saturday", "Sunday"]
developerColors:
  Alice: "#FFB3BA"
developerEmails:
  Alice: "alice@example.com"
sheets:
  enabled: true
  spreadsheetID: "sheet123"
notify:
  enabled: true
  gmailSender: "oncall@example.com"
  recipients: ["team@example.com"]
  adminRecipients: ["lead@example.com"]
storage:
  driver: sqlite
  dsn: "runs.db"
server:
  addr: ":8080"
  reviewMode: true
  users:
    - email: "admin@example.com"
      passwordHash: "$2a$10$abc"
      role: Admin
credentialsFile: "service_account.json"
reminderDays: 7
appURL: "https://oncall.example.com"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "constraints.json", cfg.ConstraintsFile)
	assert.Equal(t, "out", cfg.OutputDir)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.Equal(t, []string{"01/01 Day", "01/01 Night"}, cfg.HolidaysFor(2026))
	assert.Empty(t, cfg.HolidaysFor(2027))
	require.Len(t, cfg.SpecialRules, 1)
	assert.Equal(t, []string{"Day"}, cfg.SpecialRules[0].Shifts)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, cfg.SpecialWeekdays())
	assert.Equal(t, "#FFB3BA", cfg.DeveloperColors["Alice"])
	assert.Equal(t, DefaultWorksheetPrefix, cfg.Sheets.WorksheetPrefix)
	assert.True(t, cfg.StorageEnabled())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Server.ReviewMode)
	require.Len(t, cfg.Server.Users, 1)
	assert.Equal(t, 7, cfg.ReminderDays)
	assert.Equal(t, "https://oncall.example.com", cfg.AppURL)
	assert.Equal(t, []string{"lead@example.com"}, cfg.AdminAddresses())
}

func TestLoadFromPath_Defaults(t *testing.T) {
	path := writeConfig(t, `constraintsFile: "constraints.json"`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultWorksheetPrefix, cfg.Sheets.WorksheetPrefix)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, "none", cfg.Storage.Driver)
	assert.False(t, cfg.StorageEnabled())
	assert.Nil(t, cfg.Seed)
	assert.Nil(t, cfg.SpecialWeekdays())
	assert.Equal(t, DefaultReminderDays, cfg.ReminderDays)
	assert.Equal(t, "http://localhost:3001", cfg.AppURL)
	assert.Nil(t, cfg.AdminAddresses())
}

func TestValidate_ReminderWindow(t *testing.T) {
	for _, tc := range []struct {
		days    int
		wantErr bool
	}{
		{days: 0},
		{days: 2},
		{days: 26},
		{days: 1, wantErr: true},
		{days: 27, wantErr: true},
	} {
		cfg := &Config{ConstraintsFile: "constraints.json", ReminderDays: tc.days}
		err := Validate(cfg)
		if tc.wantErr {
			assert.Error(t, err, "reminderDays %d", tc.days)
		} else {
			assert.NoError(t, err, "reminderDays %d", tc.days)
		}
	}

	cfg := &Config{ConstraintsFile: "constraints.json", AppURL: "not a url"}
	assert.Error(t, Validate(cfg))
}

func TestAdminAddresses_FallsBackToSender(t *testing.T) {
	cfg := &Config{Notify: NotifyConfig{GmailSender: "oncall@example.com"}}
	assert.Equal(t, []string{"oncall@example.com"}, cfg.AdminAddresses())
}

func TestLocalURL(t *testing.T) {
	assert.Equal(t, "http://localhost:3001", localURL(":3001"))
	assert.Equal(t, "http://0.0.0.0:8080", localURL("0.0.0.0:8080"))
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `
constraintsFile: "constraints.json"
  invalid indentation
outputDir: "out"
`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("oncall_config.test.yaml", []byte(`constraintsFile: "c.json"`), 0644))

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "c.json", cfg.ConstraintsFile)
}

func TestLoadWithEnv_NotFound(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := LoadWithEnv("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "oncall_config.missing.yaml")
}
