package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mulraeng/Vim-doc-editor/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	// Subcommands load the file themselves, if at all.
	PersistentPreRunE: initLogging,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configTarget()
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return err
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		out, err := config.Render(cfg)
		if err != nil {
			return err
		}
		if cfgPath != "" {
			out = "# " + cfgPath + "\n" + out
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting, keeping comments",
	Long: `Change one setting in the configuration file. Keys are dotted paths such as
editor.key_timeout or ui.line_numbers; values are read as YAML.

Examples:
  vimdoc config set editor.key_timeout 500ms
  vimdoc config set editor.modes '[insert, visual]'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configTarget()
		if err := config.SetValue(path, args[0], args[1]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], path)
		return err
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every setting name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, k := range config.Keys() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), k); err != nil {
				return err
			}
		}
		return nil
	},
}

// configTarget is the file init and set write to.
func configTarget() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.LocalPath
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd, configSetCmd, configKeysCmd)
	rootCmd.AddCommand(configCmd)
}
