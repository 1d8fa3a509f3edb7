// internal/config/config.go
//
// This package handles configuration and the .tripsurvey directory structure.
// Every directory the survey is run from gets a .tripsurvey/ folder holding
// the config file and the journey log.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// SurveyDir is the name of the directory we create in each working directory
	SurveyDir = ".tripsurvey"

	defaultTripIDPrefix = "TRP"
	defaultMaxTravelers = 20
	defaultLogLines     = 6
	maxAllowedTravelers = 99
)

const defaultConfigYAML = `# tripsurvey configuration
version: 1

survey:
  # Trip identifiers look like TRP482913-0001.
  trip_id_prefix: TRP
  # Upper bound the trip form accepts for the number of travelers.
  max_travelers: 20
  travel_modes:
    - Bus
    - Train
    - Car
    - Two-wheeler
    - Auto-rickshaw
    - Bicycle
    - Walk
    - Ferry
    - Other
  age_groups:
    - Under 18
    - 18-24
    - 25-34
    - 35-44
    - 45-59
    - 60+
  genders:
    - Female
    - Male
    - Other
  relations:
    - Family
    - Friend
    - Colleague
    - Other

ui:
  show_log_panel: true
  log_lines: 6
`

var (
	defaultTravelModes = []string{"Bus", "Train", "Car", "Two-wheeler", "Auto-rickshaw", "Bicycle", "Walk", "Ferry", "Other"}
	defaultAgeGroups   = []string{"Under 18", "18-24", "25-34", "35-44", "45-59", "60+"}
	defaultGenders     = []string{"Female", "Male", "Other"}
	defaultRelations   = []string{"Family", "Friend", "Colleague", "Other"}
)

// SurveySettings controls what the intake forms offer.
type SurveySettings struct {
	TripIDPrefix string   `yaml:"trip_id_prefix"`
	MaxTravelers int      `yaml:"max_travelers"`
	TravelModes  []string `yaml:"travel_modes"`
	AgeGroups    []string `yaml:"age_groups"`
	Genders      []string `yaml:"genders"`
	Relations    []string `yaml:"relations"`
}

// UISettings controls optional panels in the terminal UI.
type UISettings struct {
	ShowLogPanel *bool `yaml:"show_log_panel,omitempty"`
	LogLines     int   `yaml:"log_lines,omitempty"`
}

// FileConfig models .tripsurvey/config.yaml.
type FileConfig struct {
	Version int            `yaml:"version"`
	Survey  SurveySettings `yaml:"survey"`
	UI      UISettings     `yaml:"ui"`
}

// Config holds the runtime configuration for the survey.
type Config struct {
	// WorkDir is the directory the survey was started from
	WorkDir string

	// SurveyDir is WorkDir/.tripsurvey
	SurveyDir string

	File FileConfig
}

// InitDir creates the .tripsurvey directory structure in the given directory.
//
// Structure created:
// .tripsurvey/
// ├── config.yaml
// └── logs/       <- journey.log
func InitDir(workDir string) error {
	dir := filepath.Join(workDir, SurveyDir)
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure %s: %w", dir, err)
	}
	return ensureConfigFile(filepath.Join(dir, "config.yaml"))
}

// NewConfig creates a Config populated from .tripsurvey/config.yaml, falling
// back to defaults when the file does not exist.
func NewConfig(workDir string) (*Config, error) {
	cfg := &Config{
		WorkDir:   workDir,
		SurveyDir: filepath.Join(workDir, SurveyDir),
		File:      defaultFileConfig(),
	}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a config that is not backed by any file.
func Default() *Config {
	return &Config{File: defaultFileConfig()}
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.SurveyDir, "logs")
}

// JourneyLogPath returns the path of the journey log file
func (c *Config) JourneyLogPath() string {
	return filepath.Join(c.LogsDir(), "journey.log")
}

// ConfigPath returns the on-disk location for the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.SurveyDir, "config.yaml")
}

// TripIDPrefix returns the prefix for minted trip identifiers.
func (c *Config) TripIDPrefix() string {
	return c.File.Survey.TripIDPrefix
}

// MaxTravelers returns the largest traveler count the trip form accepts.
func (c *Config) MaxTravelers() int {
	return c.File.Survey.MaxTravelers
}

// TravelModes returns the selectable travel modes.
func (c *Config) TravelModes() []string {
	return cloneStrings(c.File.Survey.TravelModes)
}

// AgeGroups returns the selectable age groups.
func (c *Config) AgeGroups() []string {
	return cloneStrings(c.File.Survey.AgeGroups)
}

// Genders returns the selectable genders.
func (c *Config) Genders() []string {
	return cloneStrings(c.File.Survey.Genders)
}

// Relations returns the selectable relations to the primary traveler.
func (c *Config) Relations() []string {
	return cloneStrings(c.File.Survey.Relations)
}

// ShowLogPanel reports whether the journey log tail is rendered.
func (c *Config) ShowLogPanel() bool {
	if c.File.UI.ShowLogPanel == nil {
		return true
	}
	return *c.File.UI.ShowLogPanel
}

// LogLines returns how many journey log lines the panel shows.
func (c *Config) LogLines() int {
	return c.File.UI.LogLines
}

// SetTripIDPrefix updates the trip id prefix and persists the value back to
// .tripsurvey/config.yaml.
func (c *Config) SetTripIDPrefix(prefix string) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return fmt.Errorf("config: trip id prefix is required")
	}
	prev := c.File
	c.File.Survey.TripIDPrefix = prefix
	if err := c.save(); err != nil {
		c.File = prev
		return err
	}
	return nil
}

// OverrideTripIDPrefix changes the prefix for this process only.
func (c *Config) OverrideTripIDPrefix(prefix string) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil
	}
	next := c.File
	next.Survey.TripIDPrefix = prefix
	next.normalize()
	if err := next.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.File = next
	return nil
}

// Validate reports whether the loaded configuration is usable.
func (c *Config) Validate() error {
	if err := c.File.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c.File)
	if err != nil {
		return nil, fmt.Errorf("config: encode config: %w", err)
	}
	return data, nil
}

func (c *Config) load() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.File = parsed
	return nil
}

func defaultFileConfig() FileConfig {
	fc := FileConfig{}
	fc.applyDefaults()
	return fc
}

func (fc *FileConfig) applyDefaults() {
	if fc.Version == 0 {
		fc.Version = 1
	}
	s := &fc.Survey
	if strings.TrimSpace(s.TripIDPrefix) == "" {
		s.TripIDPrefix = defaultTripIDPrefix
	}
	if s.MaxTravelers == 0 {
		s.MaxTravelers = defaultMaxTravelers
	}
	if len(s.TravelModes) == 0 {
		s.TravelModes = cloneStrings(defaultTravelModes)
	}
	if len(s.AgeGroups) == 0 {
		s.AgeGroups = cloneStrings(defaultAgeGroups)
	}
	if len(s.Genders) == 0 {
		s.Genders = cloneStrings(defaultGenders)
	}
	if len(s.Relations) == 0 {
		s.Relations = cloneStrings(defaultRelations)
	}
	if fc.UI.LogLines == 0 {
		fc.UI.LogLines = defaultLogLines
	}
}

func (fc *FileConfig) normalize() {
	s := &fc.Survey
	s.TripIDPrefix = strings.ToUpper(strings.TrimSpace(s.TripIDPrefix))
	s.TravelModes = dedupe(s.TravelModes)
	s.AgeGroups = dedupe(s.AgeGroups)
	s.Genders = dedupe(s.Genders)
	s.Relations = dedupe(s.Relations)
}

func (fc *FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	s := fc.Survey
	if s.TripIDPrefix == "" {
		return fmt.Errorf("survey.trip_id_prefix is required")
	}
	if strings.ContainsAny(s.TripIDPrefix, " \t-") {
		return fmt.Errorf("survey.trip_id_prefix must not contain spaces or dashes")
	}
	if s.MaxTravelers < 1 || s.MaxTravelers > maxAllowedTravelers {
		return fmt.Errorf("survey.max_travelers must be between 1 and %d", maxAllowedTravelers)
	}
	lists := []struct {
		name   string
		values []string
	}{
		{"survey.travel_modes", s.TravelModes},
		{"survey.age_groups", s.AgeGroups},
		{"survey.genders", s.Genders},
		{"survey.relations", s.Relations},
	}
	for _, list := range lists {
		if len(list.values) == 0 {
			return fmt.Errorf("%s must list at least one option", list.name)
		}
	}
	if fc.UI.LogLines < 0 {
		return fmt.Errorf("ui.log_lines must be >= 0")
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

func (c *Config) save() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.File.applyDefaults()
	c.File.normalize()
	if err := c.File.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.SurveyDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure survey dir: %w", err)
	}
	data, err := yaml.Marshal(c.File)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write config: %w", err)
	}
	return nil
}

func dedupe(values []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
