package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/ChefStevePopp/ChefLife-sub003/pkg/core/deltaengine"
)

// ThresholdsConfig holds the event-detection thresholds in minutes. Zero
// or omitted fields fall back to the engine defaults.
type ThresholdsConfig struct {
	TardinessMinorMin int `yaml:"tardinessMinorMin,omitempty" validate:"min=0"`
	TardinessMajorMin int `yaml:"tardinessMajorMin,omitempty" validate:"min=0"`
	EarlyDepartureMin int `yaml:"earlyDepartureMin,omitempty" validate:"min=0"`
	StayedLateMin     int `yaml:"stayedLateMin,omitempty" validate:"min=0"`
	ArrivedEarlyMin   int `yaml:"arrivedEarlyMin,omitempty" validate:"min=0"`
	MatchWindowMin    int `yaml:"matchWindowMin,omitempty" validate:"min=0"`
}

// TrackingConfig holds the tracking rules. Nil slices fall back to the
// engine defaults; explicit empty lists are respected.
type TrackingConfig struct {
	ExemptSecurityLevels    []int `yaml:"exemptSecurityLevels"`
	TrackUnscheduledShifts  *bool `yaml:"trackUnscheduledShifts,omitempty"`
	UnscheduledExemptLevels []int `yaml:"unscheduledExemptLevels"`
}

// ExcludedDateRule marks recurring dates (holidays, closed days) as exempt
// from attendance tracking
type ExcludedDateRule struct {
	RRule string `yaml:"rrule" validate:"required"`
	Label string `yaml:"label,omitempty"`
}

// SheetsConfig points at the Google Sheet tabs holding the vendor exports
type SheetsConfig struct {
	SpreadsheetID string `yaml:"spreadsheetID" validate:"required"`
	ScheduledTab  string `yaml:"scheduledTab" validate:"required"`
	WorkedTab     string `yaml:"workedTab" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	Thresholds        ThresholdsConfig   `yaml:"thresholds,omitempty"`
	Tracking          TrackingConfig     `yaml:"tracking,omitempty"`
	ExcludedDateRules []ExcludedDateRule `yaml:"excludedDateRules,omitempty" validate:"dive"`
	// SecurityLevels maps employee id -> access level for tracking
	// exemptions
	SecurityLevels map[string]int `yaml:"securityLevels,omitempty"`
	// DatabaseURL is the Postgres connection string for event staging;
	// only required by the stageEvents command
	DatabaseURL string        `yaml:"databaseURL,omitempty"`
	Sheets      *SheetsConfig `yaml:"sheets,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration for the given environment.
// It looks for cheflife_config.<env>.yaml (or cheflife_config.yaml when env
// is empty) in the current directory first, then in the home directory.
func Load(env string) (*Config, error) {
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

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.ExcludedDateRules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in excludedDateRules[%d]: %w", i, err)
		}
	}

	return nil
}

// EngineThresholds merges the configured thresholds over the engine
// defaults. A zero/omitted field keeps the default.
func (c *Config) EngineThresholds() deltaengine.Thresholds {
	thresholds := deltaengine.DefaultThresholds()
	if c.Thresholds.TardinessMinorMin > 0 {
		thresholds.TardinessMinorMin = c.Thresholds.TardinessMinorMin
	}
	if c.Thresholds.TardinessMajorMin > 0 {
		thresholds.TardinessMajorMin = c.Thresholds.TardinessMajorMin
	}
	if c.Thresholds.EarlyDepartureMin > 0 {
		thresholds.EarlyDepartureMin = c.Thresholds.EarlyDepartureMin
	}
	if c.Thresholds.StayedLateMin > 0 {
		thresholds.StayedLateMin = c.Thresholds.StayedLateMin
	}
	if c.Thresholds.ArrivedEarlyMin > 0 {
		thresholds.ArrivedEarlyMin = c.Thresholds.ArrivedEarlyMin
	}
	if c.Thresholds.MatchWindowMin > 0 {
		thresholds.MatchWindowMin = c.Thresholds.MatchWindowMin
	}
	return thresholds
}

// EngineTracking merges the configured tracking rules over the engine
// defaults. Nil slices keep the defaults; explicit empty lists disable the
// corresponding exemption.
func (c *Config) EngineTracking() deltaengine.TrackingRules {
	tracking := deltaengine.DefaultTrackingRules()
	if c.Tracking.ExemptSecurityLevels != nil {
		tracking.ExemptSecurityLevels = c.Tracking.ExemptSecurityLevels
	}
	if c.Tracking.UnscheduledExemptLevels != nil {
		tracking.UnscheduledExemptLevels = c.Tracking.UnscheduledExemptLevels
	}
	if c.Tracking.TrackUnscheduledShifts != nil {
		tracking.TrackUnscheduledShifts = *c.Tracking.TrackUnscheduledShifts
	}
	return tracking
}

// ExpandExcludedDates evaluates the excluded-date rules over the inclusive
// date range and returns the matching YYYY-MM-DD dates
func (c *Config) ExpandExcludedDates(dateRange deltaengine.DateRange) (map[string]bool, error) {
	if len(c.ExcludedDateRules) == 0 || dateRange.Start == "" {
		return nil, nil
	}

	start, err := time.Parse("2006-01-02", dateRange.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid range start: %w", err)
	}
	end, err := time.Parse("2006-01-02", dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("invalid range end: %w", err)
	}

	excluded := make(map[string]bool)
	for i, rule := range c.ExcludedDateRules {
		parsed, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in excludedDateRules[%d]: %w", i, err)
		}
		// Rules without an explicit DTSTART default to "now"; anchor
		// them at the range start so historical ranges expand too
		parsed.DTStart(start)
		for _, occurrence := range parsed.Between(start, end, true) {
			excluded[occurrence.Format("2006-01-02")] = true
		}
	}

	return excluded, nil
}

// findConfigFile searches for the config file in the current directory and
// home directory, with an optional environment suffix
func findConfigFile(env string) (string, error) {
	configFileName := "cheflife_config.yaml"
	if env != "" {
		configFileName = "cheflife_config." + env + ".yaml"
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

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
