// Package config loads the run's tunables: which diagnostic keys are
// enabled, the severity threshold for a non-zero exit code, the macro
// expansion depth cap, the log path, and the active game variant. It
// follows the teacher's shape-first, defaults-filled-in loader: an
// optional YAML file overlays a DefaultConfig, never the other way round.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/gamevariant"
	"github.com/hallowmark/scriptguard/internal/validate"
)

const (
	DefaultConfigDir = ".scriptguard"
	DefaultConfigFile = "scriptguard.yaml"
	DefaultLogFile   = "run.jsonl"
)

// Config is the run's full set of tunables.
type Config struct {
	// GameVariant selects which of the three supported titles is active:
	// "dynasty", "imperium", or "commonwealth".
	GameVariant string `yaml:"game_variant"`
	// FailThreshold is the minimum severity that triggers a non-zero exit
	// code, by name ("fatal", "error", "warning", "untidy", "advice").
	FailThreshold string `yaml:"fail_threshold"`
	// DisabledKeys lists diagnostic Keys to suppress entirely.
	DisabledKeys []string `yaml:"disabled_keys"`
	// MaxMacroDepth caps scripted trigger/effect/script-value expansion.
	MaxMacroDepth int `yaml:"max_macro_depth"`
	// OnlyBornAfter, if set (YYYY.M.D), skips history entries that predate
	// it — the config-controlled cutoff carried from original_source's
	// config_only_born mechanism.
	OnlyBornAfter string `yaml:"only_born_after"`
	// LogPath is where the run-summary log is written.
	LogPath string `yaml:"log_path"`
	// ConfigDir is not itself loaded from YAML; Load fills it in from the
	// resolved config file's directory.
	ConfigDir string `yaml:"-"`
}

// DefaultConfig returns the run configuration used when no YAML file is
// present, or as the base a present file's fields overlay onto.
func DefaultConfig() Config {
	return Config{
		GameVariant:   "dynasty",
		FailThreshold: "error",
		MaxMacroDepth: validate.DefaultMaxMacroDepth,
		LogPath:       DefaultLogFile,
	}
}

// Load reads path (if non-empty and present) as a YAML overlay on
// DefaultConfig. An empty path tries ~/.scriptguard/scriptguard.yaml and
// falls back to the defaults if that file is absent. A missing file at an
// explicit path also yields the defaults, not an error; other read errors
// and YAML errors are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			candidate := filepath.Join(homeDir, DefaultConfigDir, DefaultConfigFile)
			if _, statErr := os.Stat(candidate); statErr == nil {
				path = candidate
			}
		}
	}

	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.ConfigDir = filepath.Dir(path)
	return &cfg, nil
}

// Variant resolves GameVariant to a gamevariant.Variant, defaulting to
// Dynasty on an unrecognized or empty value.
func (c Config) Variant() gamevariant.Variant {
	v, ok := gamevariant.ParseVariant(c.GameVariant)
	if !ok {
		return gamevariant.Dynasty
	}
	return v
}

// KeyDisabled reports whether key (by its diag.Key string form) is in
// DisabledKeys.
func (c Config) KeyDisabled(key string) bool {
	for _, k := range c.DisabledKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Threshold resolves FailThreshold to a diag.Severity, defaulting to
// diag.Error on an unrecognized or empty value.
func (c Config) Threshold() diag.Severity {
	switch c.FailThreshold {
	case "fatal":
		return diag.Fatal
	case "error":
		return diag.Error
	case "warning":
		return diag.Warning
	case "untidy":
		return diag.Untidy
	case "advice":
		return diag.Advice
	default:
		return diag.Error
	}
}

// FilteredSink wraps an underlying Sink, dropping diagnostics whose Key is
// in Disabled and tracking the worst severity seen among the rest so the
// driver can decide the run's exit code against Threshold.
type FilteredSink struct {
	Sink     diag.Sink
	Disabled map[string]bool
	worst    diag.Severity
	any      bool
}

// NewFilteredSink builds a FilteredSink from a Config's DisabledKeys.
func NewFilteredSink(sink diag.Sink, cfg Config) *FilteredSink {
	disabled := make(map[string]bool, len(cfg.DisabledKeys))
	for _, k := range cfg.DisabledKeys {
		disabled[k] = true
	}
	return &FilteredSink{Sink: sink, Disabled: disabled, worst: diag.Advice}
}

func (f *FilteredSink) Report(d diag.Diagnostic) {
	if f.Disabled[string(d.Key)] {
		return
	}
	if !f.any || d.Severity.AtLeast(f.worst) {
		f.worst = d.Severity
		f.any = true
	}
	if f.Sink != nil {
		f.Sink.Report(d)
	}
}

// ExitNonZero reports whether any non-suppressed diagnostic met or
// exceeded threshold — the "non-zero exit code iff any diagnostic at or
// above a configurable threshold was emitted" rule from spec §7.
func (f *FilteredSink) ExitNonZero(threshold diag.Severity) bool {
	return f.any && f.worst.AtLeast(threshold)
}
