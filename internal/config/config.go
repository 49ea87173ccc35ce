package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
)

const (
	DefaultOutputDir       = "output"
	DefaultWorksheetPrefix = "On call schedule"
	DefaultServerAddr      = ":3001"
	DefaultReminderDays    = 5
)

// SpecialRule marks recurring dates as special, e.g. the last Friday of every quarter
type SpecialRule struct {
	RRule  string   `yaml:"rrule" validate:"required"`
	Shifts []string `yaml:"shifts,omitempty" validate:"dive,oneof=Day Night"`
}

// SheetsConfig controls publishing to a Google spreadsheet
type SheetsConfig struct {
	Enabled         bool   `yaml:"enabled"`
	SpreadsheetID   string `yaml:"spreadsheetID"`
	WorksheetPrefix string `yaml:"worksheetPrefix,omitempty"`
}

// NotifyConfig controls the summary email
type NotifyConfig struct {
	Enabled     bool     `yaml:"enabled"`
	GmailSender string   `yaml:"gmailSender" validate:"omitempty,email"`
	Recipients  []string `yaml:"recipients,omitempty" validate:"dive,email"`

	// AdminRecipients get the daily check's run reports (defaults to gmailSender)
	AdminRecipients []string `yaml:"adminRecipients,omitempty" validate:"dive,email"`
}

// StorageConfig selects where run history is kept
type StorageConfig struct {
	Driver string `yaml:"driver" validate:"omitempty,oneof=postgres sqlite none"`
	DSN    string `yaml:"dsn,omitempty"`
}

// UserConfig is a login for the constraints API
type UserConfig struct {
	Email        string `yaml:"email" validate:"required,email"`
	PasswordHash string `yaml:"passwordHash" validate:"required"`
	Developer    string `yaml:"developer,omitempty"`
	Role         string `yaml:"role" validate:"required,oneof=Admin Developer"`
}

// ServerConfig configures the constraints API
type ServerConfig struct {
	Addr       string       `yaml:"addr,omitempty"`
	ReviewMode bool         `yaml:"reviewMode"`
	Users      []UserConfig `yaml:"users,omitempty" validate:"dive"`
}

// Config represents the application configuration
type Config struct {
	ConstraintsFile string            `yaml:"constraintsFile" validate:"required"`
	OutputDir       string            `yaml:"outputDir,omitempty"`
	Holidays        map[int][]string  `yaml:"holidays,omitempty"`
	SpecialRules    []SpecialRule     `yaml:"specialRules,omitempty" validate:"dive"`
	WeekendDays     []string          `yaml:"weekendDays,omitempty" validate:"dive,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	DeveloperColors map[string]string `yaml:"developerColors,omitempty"`
	DeveloperEmails map[string]string `yaml:"developerEmails,omitempty" validate:"dive,email"`
	Seed            *uint64           `yaml:"seed,omitempty"`
	Sheets          SheetsConfig      `yaml:"sheets"`
	Notify          NotifyConfig      `yaml:"notify"`
	Storage         StorageConfig     `yaml:"storage"`
	Server          ServerConfig      `yaml:"server"`
	CredentialsFile string            `yaml:"credentialsFile,omitempty"`

	// ReminderDays is how many days before month end the constraints window opens
	ReminderDays int `yaml:"reminderDays,omitempty" validate:"omitempty,min=2,max=26"`

	// AppURL is linked from reminder emails
	AppURL string `yaml:"appURL,omitempty" validate:"omitempty,url"`
}

var validate *validator.Validate

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from oncall_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment.
// For example, env="test" will look for "oncall_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Sheets.WorksheetPrefix == "" {
		c.Sheets.WorksheetPrefix = DefaultWorksheetPrefix
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "none"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.ReminderDays == 0 {
		c.ReminderDays = DefaultReminderDays
	}
	if c.AppURL == "" {
		c.AppURL = localURL(c.Server.Addr)
	}
}

// localURL turns a listen address such as ":3001" into a browsable URL
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// AdminAddresses returns who receives run reports
func (c *Config) AdminAddresses() []string {
	if len(c.Notify.AdminRecipients) > 0 {
		return c.Notify.AdminRecipients
	}
	if c.Notify.GmailSender != "" {
		return []string{c.Notify.GmailSender}
	}
	return nil
}

// Validate validates the configuration struct, holiday entries and rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for year, entries := range cfg.Holidays {
		for _, entry := range entries {
			if _, err := allocator.ParseSlotKey(entry); err != nil {
				return fmt.Errorf("invalid holiday in holidays[%d]: %w", year, err)
			}
		}
	}

	for i, rule := range cfg.SpecialRules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in specialRules[%d]: %w", i, err)
		}
	}

	for name, color := range cfg.DeveloperColors {
		if !colorPattern.MatchString(color) {
			return fmt.Errorf("developerColors[%s] must be #RRGGBB, got %q", name, color)
		}
	}

	if cfg.Sheets.Enabled && cfg.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("config validation failed: sheets.spreadsheetID is required when sheets are enabled")
	}
	if cfg.Notify.Enabled && (cfg.Notify.GmailSender == "" || len(cfg.Notify.Recipients) == 0) {
		return fmt.Errorf("config validation failed: notify.gmailSender and notify.recipients are required when notify is enabled")
	}
	if (cfg.Sheets.Enabled || cfg.Notify.Enabled) && cfg.CredentialsFile == "" {
		return fmt.Errorf("config validation failed: credentialsFile is required for sheets or notify")
	}
	if cfg.Storage.Driver == "sqlite" && cfg.Storage.DSN == "" {
		return fmt.Errorf("config validation failed: storage.dsn is required for sqlite")
	}

	return nil
}

// SpecialWeekdays converts weekendDays into weekdays (nil when unset)
func (c *Config) SpecialWeekdays() []time.Weekday {
	if len(c.WeekendDays) == 0 {
		return nil
	}
	days := make([]time.Weekday, 0, len(c.WeekendDays))
	for _, name := range c.WeekendDays {
		for d := time.Sunday; d <= time.Saturday; d++ {
			if d.String() == name {
				days = append(days, d)
			}
		}
	}
	return days
}

// HolidaysFor returns the holiday entries configured for a year
func (c *Config) HolidaysFor(year int) []string {
	return c.Holidays[year]
}

// StorageEnabled reports whether runs should be persisted
func (c *Config) StorageEnabled() bool {
	return c.Storage.Driver != "none"
}

// findConfigFile searches for oncall_config.yaml in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "oncall_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "oncall_config.yaml"
	if env != "" {
		configFileName = "oncall_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
