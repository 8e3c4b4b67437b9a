package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Mulraeng/Vim-doc-editor/internal/config"
	"github.com/Mulraeng/Vim-doc-editor/internal/infrastructure/sqlite"
	"github.com/Mulraeng/Vim-doc-editor/internal/keys"
	"github.com/Mulraeng/Vim-doc-editor/internal/log"
	"github.com/Mulraeng/Vim-doc-editor/internal/tracing"
	"github.com/Mulraeng/Vim-doc-editor/internal/ui/editor"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, so the
	// OSC 11 reply cannot leak into the editor as typed keys.
	_ = lipgloss.HasDarkBackground()
}

// undoRetention is how long an untouched undo log is kept.
const undoRetention = 30 * 24 * time.Hour

// envLogPath overrides the debug log location.
const envLogPath = "VIMDOC_LOG"

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	cfg        config.Config
	cfgPath    string
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "vimdoc [file]",
	Short: "A modal terminal document editor",
	Long: `vimdoc edits a document with vim-style modal keys: Normal, Insert,
Visual, Visual-line and Replace modes, operators with motions and text
objects, counts, search, and undo.

ctrl+s saves, ctrl+q quits, f1 shows help and f2 the debug log line.`,
	Version:            version,
	Args:               cobra.MaximumNArgs(1),
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: closeLog,
	RunE:               runEditor,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .vimdoc/config.yaml, then ~/.config/vimdoc/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (also enabled by "+log.EnvDebug+")")
}

func initLogging(_ *cobra.Command, _ []string) error {
	if !debugFlag && !log.Enabled() {
		return nil
	}
	logPath := os.Getenv(envLogPath)
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup
	log.Info(log.CatConfig, "vimdoc starting", "version", version, "log", logPath)
	return nil
}

func closeLog(_ *cobra.Command, _ []string) error {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	return nil
}

func setup(cmd *cobra.Command, args []string) error {
	if err := initLogging(cmd, args); err != nil {
		return err
	}
	return loadConfig()
}

// loadConfig reads and validates the configuration into cfg.
func loadConfig() error {
	loaded, path, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg, cfgPath = loaded, path
	return nil
}

func newTracer() (*tracing.Provider, error) {
	provider, err := tracing.NewProvider(cfg.Tracing, version)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	return provider, nil
}

func shutdownTracer(p *tracing.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
	}
}

// openUndoStore opens the undo database and drops logs nobody touched for
// undoRetention. It returns nil when undo files are disabled.
func openUndoStore(ctx context.Context) (*sqlite.DB, error) {
	if !cfg.Editor.UndoFile {
		return nil, nil
	}
	db, err := sqlite.Open(cfg.Editor.UndoDir)
	if err != nil {
		return nil, fmt.Errorf("opening undo store: %w", err)
	}
	n, err := db.UndoLogs().Prune(ctx, time.Now().Add(-undoRetention))
	if err != nil {
		log.ErrorErr(log.CatStore, "pruning undo logs failed", err)
	} else if n > 0 {
		log.Info(log.CatStore, "pruned undo logs", "count", n)
	}
	return db, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var path, text string
	if len(args) == 1 {
		path = args[0]
		var err error
		if text, err = editor.ReadDocument(path); err != nil {
			return err
		}
	}

	engCfg, err := cfg.Editor.EngineConfig(text)
	if err != nil {
		return err
	}
	provider, err := newTracer()
	if err != nil {
		return err
	}
	defer shutdownTracer(provider)
	engCfg.Tracer = provider.Tracer()

	opts := editor.Options{
		Path:   path,
		Text:   text,
		Engine: engCfg,
		UI:     cfg.UI,
		Watch:  cfg.Editor.WatchFile,
		Keys:   keys.Editor,
	}
	if path != "" {
		db, err := openUndoStore(ctx)
		if err != nil {
			return err
		}
		if db != nil {
			defer func() { _ = db.Close() }()
			opts.Store = db.UndoLogs()
		}
	}

	model, err := editor.New(ctx, opts)
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
