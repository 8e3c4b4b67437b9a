package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine"
	"github.com/Mulraeng/Vim-doc-editor/internal/presentation"
	"github.com/Mulraeng/Vim-doc-editor/internal/ui/editor"
)

var (
	replayFile   string
	replayKeys   string
	replayScript string
	replayJSON   bool
	replayWrite  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Run a key script against a document without a terminal",
	Long: `Feed a key script to the editing engine and print the resulting document.

Keys use vim notation: printable characters stand for themselves and named
keys are written in angle brackets, such as <esc>, <cr>, <bs>, <c-r> and <lt>.
A script file may spread keys over several lines; line breaks are not keys
and lines starting with # are skipped. A command still pending at the end of
the script resolves as if the key timeout had passed.

Examples:
  # Delete the first word of a file and print the result
  vimdoc replay --file notes.md --keys dw

  # Run a script and write the result back
  vimdoc replay -f notes.md -s fix-headings.keys --write

  # Inspect the final cursor and mode
  vimdoc replay --keys 'ihello<esc>b' --json | jq .cursor`,
	Args: cobra.NoArgs,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayFile, "file", "f", "", "document to edit (default: empty document)")
	replayCmd.Flags().StringVarP(&replayKeys, "keys", "k", "", "keys to run, after any --script")
	replayCmd.Flags().StringVarP(&replayScript, "script", "s", "", "file holding a key script")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "print the final state as JSON")
	replayCmd.Flags().BoolVarP(&replayWrite, "write", "w", false, "write the result back to --file")
	rootCmd.AddCommand(replayCmd)
}

// scriptKeys joins the lines of a key script, dropping comment lines.
func scriptKeys(data string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

func runReplay(cmd *cobra.Command, _ []string) error {
	if replayKeys == "" && replayScript == "" {
		return errors.New("one of --keys or --script is required")
	}
	if replayWrite && replayFile == "" {
		return errors.New("--write needs --file")
	}

	script := replayKeys
	if replayScript != "" {
		data, err := os.ReadFile(replayScript)
		if err != nil {
			return fmt.Errorf("reading script: %w", err)
		}
		script = scriptKeys(string(data)) + script
	}
	keys, err := engine.ParseKeys(script)
	if err != nil {
		return fmt.Errorf("parsing keys: %w", err)
	}

	var text string
	if replayFile != "" {
		if text, err = editor.ReadDocument(replayFile); err != nil {
			return err
		}
	}

	engCfg, err := cfg.Editor.EngineConfig(text)
	if err != nil {
		return err
	}
	engCfg.Clipboard = nil
	provider, err := newTracer()
	if err != nil {
		return err
	}
	defer shutdownTracer(provider)
	engCfg.Tracer = provider.Tracer()

	eng, err := engine.New(engCfg)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer eng.Close()

	out := eng.HandleKeys(keys...)
	if o, ok := eng.Tick(time.Now().Add(eng.KeyBufferTimeout())); ok {
		out = o
	}

	if replayWrite {
		if err := editor.WriteDocument(replayFile, eng.Text()); err != nil {
			return err
		}
	}

	f := presentation.NewFormatter(cmd.OutOrStdout())
	if replayJSON {
		return f.FormatReplay(presentation.FromSnapshot(eng.Snapshot(), out, len(keys), eng.HistoryDepth()))
	}
	return f.FormatText(eng.Text())
}
