// Package config provides configuration types, defaults and loading for vimdoc.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/search"
	"github.com/Mulraeng/Vim-doc-editor/internal/log"
	"github.com/Mulraeng/Vim-doc-editor/internal/tracing"
)

// Config holds all configuration options for vimdoc.
type Config struct {
	Editor  EditorConfig  `mapstructure:"editor"`
	UI      UIConfig      `mapstructure:"ui"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// EditorConfig holds the settings passed to the editing engine.
type EditorConfig struct {
	// KeyTimeout bounds the wait between the keys of one command.
	// Default: 1s
	KeyTimeout time.Duration `mapstructure:"key_timeout"`

	// Modes lists the enabled modes by name. Empty enables all of them.
	Modes []string `mapstructure:"modes"`

	// HistoryLimit caps the undo log. 0 keeps everything.
	HistoryLimit int `mapstructure:"history_limit"`

	// UndoPerKeystroke makes every Insert-mode key its own undo step.
	UndoPerKeystroke bool `mapstructure:"undo_per_keystroke"`

	// InsertEscape is an optional two-key sequence, e.g. "jk", leaving Insert.
	InsertEscape string `mapstructure:"insert_escape"`

	Search search.Options `mapstructure:"search"`

	// Clipboard mirrors yanks and deletes to the system clipboard.
	Clipboard bool `mapstructure:"clipboard"`

	// UndoFile keeps the undo log of each file across sessions in UndoDir.
	UndoFile bool   `mapstructure:"undo_file"`
	UndoDir  string `mapstructure:"undo_dir"`

	// WatchFile reports changes made to the open file by other programs.
	WatchFile bool `mapstructure:"watch_file"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	ShowHelp      bool   `mapstructure:"show_help"`
	LineNumbers   bool   `mapstructure:"line_numbers"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// TracingConfig holds OpenTelemetry tracing configuration.
type TracingConfig = tracing.Config

const (
	// MinKeyTimeout and MaxKeyTimeout bound editor.key_timeout.
	MinKeyTimeout = 50 * time.Millisecond
	MaxKeyTimeout = 10 * time.Second

	// LocalPath is the project config file, relative to the working directory.
	LocalPath = ".vimdoc/config.yaml"
)

// UserDir returns ~/.config/vimdoc, or an empty string if the home directory
// is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vimdoc")
}

// DefaultTracesFilePath returns ~/.config/vimdoc/traces/traces.jsonl.
func DefaultTracesFilePath() string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// DefaultUndoDir returns ~/.config/vimdoc/undo.
func DefaultUndoDir() string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "undo")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			KeyTimeout: engine.DefaultKeyBufferTimeout,
			Search: search.Options{
				SmartCase: true,
			},
			UndoDir:   DefaultUndoDir(),
			WatchFile: true,
		},
		UI: UIConfig{
			ShowStatusBar: true,
			ShowHelp:      true,
			MarkdownStyle: "dark",
		},
		Tracing: TracingConfig{
			Exporter:     "file",
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// SetDefaults registers every default with v so that keys missing from the
// file still unmarshal to their default values.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("editor.key_timeout", d.Editor.KeyTimeout)
	v.SetDefault("editor.modes", d.Editor.Modes)
	v.SetDefault("editor.history_limit", d.Editor.HistoryLimit)
	v.SetDefault("editor.undo_per_keystroke", d.Editor.UndoPerKeystroke)
	v.SetDefault("editor.insert_escape", d.Editor.InsertEscape)
	v.SetDefault("editor.search.literal", d.Editor.Search.Literal)
	v.SetDefault("editor.search.ignore_case", d.Editor.Search.IgnoreCase)
	v.SetDefault("editor.search.smart_case", d.Editor.Search.SmartCase)
	v.SetDefault("editor.search.no_cache", d.Editor.Search.NoCache)
	v.SetDefault("editor.clipboard", d.Editor.Clipboard)
	v.SetDefault("editor.undo_file", d.Editor.UndoFile)
	v.SetDefault("editor.undo_dir", d.Editor.UndoDir)
	v.SetDefault("editor.watch_file", d.Editor.WatchFile)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("ui.show_help", d.UI.ShowHelp)
	v.SetDefault("ui.line_numbers", d.UI.LineNumbers)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// Load reads the configuration into v. An explicit path wins; otherwise
// .vimdoc/config.yaml and then ~/.config/vimdoc/config.yaml are tried. When
// neither exists a default file is written to .vimdoc/config.yaml. Load
// returns the file it used, which is empty if none could be read or created.
func Load(v *viper.Viper, path string) (Config, string, error) {
	SetDefaults(v)
	v.SetEnvPrefix("VIMDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case path != "":
		v.SetConfigFile(path)
	case fileExists(LocalPath):
		v.SetConfigFile(LocalPath)
	default:
		if dir := UserDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("reading config: %w", err)
		}
		if werr := WriteDefaultConfig(LocalPath); werr == nil {
			v.SetConfigFile(LocalPath)
			_ = v.ReadInConfig()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	log.Debug(log.CatConfig, "config loaded", "path", v.ConfigFileUsed())
	return cfg, v.ConfigFileUsed(), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateEditor checks editor configuration for errors.
func ValidateEditor(e EditorConfig) error {
	if e.KeyTimeout < MinKeyTimeout || e.KeyTimeout > MaxKeyTimeout {
		return fmt.Errorf("editor.key_timeout must be between %s and %s, got %s", MinKeyTimeout, MaxKeyTimeout, e.KeyTimeout)
	}
	if _, err := parseModes(e.Modes); err != nil {
		return fmt.Errorf("editor.modes: %w", err)
	}
	if e.HistoryLimit < 0 {
		return fmt.Errorf("editor.history_limit must not be negative, got %d", e.HistoryLimit)
	}
	if e.InsertEscape != "" {
		keys, err := engine.ParseKeys(e.InsertEscape)
		if err != nil || len(keys) != 2 || !keys[0].IsPrintable() || !keys[1].IsPrintable() {
			return fmt.Errorf("editor.insert_escape must be two printable characters, got %q", e.InsertEscape)
		}
	}
	if e.UndoFile && e.UndoDir == "" {
		return errors.New("editor.undo_dir is required when undo_file is enabled")
	}
	return nil
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
		return nil
	}
	return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc TracingConfig) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if tc.Exporter != "" && !slices.Contains(tracing.Exporters(), tc.Exporter) {
		return fmt.Errorf("tracing.exporter must be one of %s, got %q",
			strings.Join(tracing.Exporters(), ", "), tc.Exporter)
	}

	// Only validate path requirements when tracing is enabled
	if tc.Enabled {
		if tc.Exporter == "file" && tc.FilePath == "" {
			return errors.New("tracing.file_path is required when exporter is \"file\"")
		}
		if tc.Exporter == "otlp" && tc.OTLPEndpoint == "" {
			return errors.New("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

func parseModes(names []string) ([]mode.Mode, error) {
	modes := make([]mode.Mode, 0, len(names))
	for _, name := range names {
		m, err := mode.Parse(name)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// EngineConfig converts the editor settings into an engine configuration
// for a document holding text. The caller supplies the tracer.
func (e EditorConfig) EngineConfig(text string) (engine.Config, error) {
	modes, err := parseModes(e.Modes)
	if err != nil {
		return engine.Config{}, fmt.Errorf("editor.modes: %w", err)
	}
	cfg := engine.Config{
		InitialText:      text,
		KeyBufferTimeout: e.KeyTimeout,
		EnabledModes:     modes,
		HistoryLimit:     e.HistoryLimit,
		UndoPerKeystroke: e.UndoPerKeystroke,
		InsertEscape:     e.InsertEscape,
		Search:           e.Search,
	}
	if e.Clipboard {
		if engine.ClipboardAvailable() {
			cfg.Clipboard = engine.SystemClipboard()
		} else {
			log.Warn(log.CatConfig, "clipboard requested but unavailable")
		}
	}
	return cfg, nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# vimdoc configuration

editor:
  key_timeout: 1s          # Wait between the keys of a command such as "gg" or "d2w"
  # modes: [normal, insert, visual, visual-line, replace]  # Enabled modes (default: all)
  history_limit: 0         # Undo steps kept; 0 keeps everything
  undo_per_keystroke: false  # true: every key typed in Insert mode is its own undo step
  # insert_escape: jk      # Two keys that leave Insert mode like <esc>
  search:
    literal: false         # Match patterns as plain text instead of regular expressions
    ignore_case: false
    smart_case: true       # With ignore_case, an upper-case letter makes the search exact
  clipboard: false         # Copy yanks and deletes to the system clipboard
  undo_file: false         # Keep undo history across sessions
  # undo_dir: ~/.config/vimdoc/undo
  watch_file: true         # Notice when the open file changes on disk

ui:
  show_status_bar: true
  show_help: true          # Key hints below the status bar
  line_numbers: false
  markdown_style: dark     # "vimdoc keys" rendering style: "dark" or "light"

# Tracing records one span per key
# tracing:
#   enabled: true
#   exporter: file         # "none", "file", "stdout", or "otlp"
#   file_path: ~/.config/vimdoc/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
