package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, workDir, body string) {
	t.Helper()
	dir := filepath.Join(workDir, SurveyDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(strings.TrimSpace(body)), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.File.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", cfg.File.Version)
	}
	if cfg.TripIDPrefix() != defaultTripIDPrefix {
		t.Fatalf("expected prefix %q, got %q", defaultTripIDPrefix, cfg.TripIDPrefix())
	}
	if cfg.MaxTravelers() != defaultMaxTravelers {
		t.Fatalf("expected max travelers %d, got %d", defaultMaxTravelers, cfg.MaxTravelers())
	}
	if len(cfg.TravelModes()) == 0 || cfg.TravelModes()[0] != "Bus" {
		t.Fatalf("unexpected travel modes: %v", cfg.TravelModes())
	}
	if !cfg.ShowLogPanel() || cfg.LogLines() != defaultLogLines {
		t.Fatalf("unexpected ui defaults: %+v", cfg.File.UI)
	}
}

func TestInitDirWritesLoadableConfig(t *testing.T) {
	workDir := t.TempDir()
	if err := InitDir(workDir); err != nil {
		t.Fatalf("InitDir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(workDir, SurveyDir, "logs")); err != nil {
		t.Fatalf("logs dir missing: %v", err)
	}
	cfg, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if got := strings.Join(cfg.Relations(), ","); got != strings.Join(defaultRelations, ",") {
		t.Fatalf("relations = %s", got)
	}
	if cfg.JourneyLogPath() != filepath.Join(workDir, SurveyDir, "logs", "journey.log") {
		t.Fatalf("unexpected journey log path %s", cfg.JourneyLogPath())
	}

	// A second init must not clobber edits.
	writeConfig(t, workDir, "version: 1\nsurvey:\n  trip_id_prefix: nat\n")
	if err := InitDir(workDir); err != nil {
		t.Fatalf("second InitDir: %v", err)
	}
	cfg, err = NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig after edit: %v", err)
	}
	if cfg.TripIDPrefix() != "NAT" {
		t.Fatalf("prefix = %q, want NAT", cfg.TripIDPrefix())
	}
}

func TestNewConfigParsesYaml(t *testing.T) {
	workDir := t.TempDir()
	writeConfig(t, workDir, `
version: 1
survey:
  trip_id_prefix: kl
  max_travelers: 8
  travel_modes:
    - Ferry
    - ferry
    - "  Metro  "
  genders: [Woman, Man]
ui:
  show_log_panel: false
  log_lines: 3
`)
	cfg, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.TripIDPrefix() != "KL" {
		t.Fatalf("prefix = %q, want KL", cfg.TripIDPrefix())
	}
	if cfg.MaxTravelers() != 8 {
		t.Fatalf("max travelers = %d, want 8", cfg.MaxTravelers())
	}
	if got := strings.Join(cfg.TravelModes(), "|"); got != "Ferry|Metro" {
		t.Fatalf("travel modes = %s", got)
	}
	if got := strings.Join(cfg.Genders(), "|"); got != "Woman|Man" {
		t.Fatalf("genders = %s", got)
	}
	if len(cfg.AgeGroups()) != len(defaultAgeGroups) {
		t.Fatalf("age groups should fall back to defaults, got %v", cfg.AgeGroups())
	}
	if cfg.ShowLogPanel() || cfg.LogLines() != 3 {
		t.Fatalf("unexpected ui settings: %+v", cfg.File.UI)
	}
}

func TestNewConfigValidation(t *testing.T) {
	cases := map[string]string{
		"bad version":      "version: -1\n",
		"too many":         "version: 1\nsurvey:\n  max_travelers: 500\n",
		"dashed prefix":    "version: 1\nsurvey:\n  trip_id_prefix: TR-P\n",
		"blank modes only": "version: 1\nsurvey:\n  travel_modes: [' ', '']\n",
		"not yaml":         "survey: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			workDir := t.TempDir()
			writeConfig(t, workDir, body)
			if _, err := NewConfig(workDir); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestSetTripIDPrefixPersists(t *testing.T) {
	workDir := t.TempDir()
	if err := InitDir(workDir); err != nil {
		t.Fatalf("InitDir: %v", err)
	}
	cfg, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if err := cfg.SetTripIDPrefix("  "); err == nil {
		t.Fatalf("expected error for blank prefix")
	}
	if err := cfg.SetTripIDPrefix("surv"); err != nil {
		t.Fatalf("SetTripIDPrefix: %v", err)
	}
	reloaded, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.TripIDPrefix() != "SURV" {
		t.Fatalf("prefix = %q, want SURV", reloaded.TripIDPrefix())
	}
}

func TestSetTripIDPrefixKeepsOldValueOnError(t *testing.T) {
	workDir := t.TempDir()
	cfg, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if err := cfg.SetTripIDPrefix("TR P"); err == nil {
		t.Fatalf("expected error for prefix with a space")
	}
	if cfg.TripIDPrefix() != "TRP" {
		t.Fatalf("prefix = %q, want TRP", cfg.TripIDPrefix())
	}
	if _, err := os.Stat(cfg.ConfigPath()); !os.IsNotExist(err) {
		t.Fatalf("rejected prefix must not write config (stat err: %v)", err)
	}
}

func TestOverrideTripIDPrefixDoesNotPersist(t *testing.T) {
	workDir := t.TempDir()
	if err := InitDir(workDir); err != nil {
		t.Fatalf("InitDir: %v", err)
	}
	cfg, _ := NewConfig(workDir)
	if err := cfg.OverrideTripIDPrefix("tmp"); err != nil {
		t.Fatalf("override: %v", err)
	}
	if cfg.TripIDPrefix() != "TMP" {
		t.Fatalf("prefix = %q, want TMP", cfg.TripIDPrefix())
	}
	if err := cfg.OverrideTripIDPrefix("a b"); err == nil {
		t.Fatalf("expected validation error for spaced prefix")
	}
	if cfg.TripIDPrefix() != "TMP" {
		t.Fatalf("failed override must not change prefix, got %q", cfg.TripIDPrefix())
	}
	reloaded, _ := NewConfig(workDir)
	if reloaded.TripIDPrefix() != defaultTripIDPrefix {
		t.Fatalf("override leaked to disk: %q", reloaded.TripIDPrefix())
	}
}

func TestMarshalRoundTripsThroughLoader(t *testing.T) {
	cfg := Default()
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	workDir := t.TempDir()
	writeConfig(t, workDir, string(data))
	if _, err := NewConfig(workDir); err != nil {
		t.Fatalf("marshalled config does not load: %v", err)
	}
}
