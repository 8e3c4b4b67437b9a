package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine"
	"github.com/Mulraeng/Vim-doc-editor/internal/presentation"
	"github.com/Mulraeng/Vim-doc-editor/internal/ui/markdown"
)

var (
	keysJSON  bool
	keysRaw   bool
	keysWidth int
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the key reference",
	Long: `Print every key binding of the editing engine, grouped by kind.

The reference is rendered as styled markdown using ui.markdown_style. Use
--raw for plain markdown or --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runKeys,
}

func init() {
	keysCmd.Flags().BoolVar(&keysJSON, "json", false, "print the bindings as JSON")
	keysCmd.Flags().BoolVar(&keysRaw, "raw", false, "print markdown without styling")
	keysCmd.Flags().IntVar(&keysWidth, "width", 100, "wrap width of the rendered reference")
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, _ []string) error {
	eng, err := engine.New(engine.Config{})
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer eng.Close()

	commands := presentation.FromCommands(eng.Commands())
	if keysJSON {
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatCommands(commands)
	}

	md := presentation.KeysMarkdown(commands)
	if keysRaw {
		_, err := fmt.Fprint(cmd.OutOrStdout(), md)
		return err
	}

	r, err := markdown.New(keysWidth, cfg.UI.MarkdownStyle)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering key reference: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
	return err
}
