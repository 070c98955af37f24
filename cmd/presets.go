package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tayloree/fabric-chat/internal/chat"
	"github.com/tayloree/fabric-chat/internal/display"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Show the quick-suggestion questions",
	Example: `  fabricbot presets
  fabricbot presets --json`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, _ []string) error {
	env, err := loadAppEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.close()

	presets := chat.Presets(env.cfg.Chat.Presets)
	if flagJSON {
		return display.PrintPresetsJSON(cmd.OutOrStdout(), presets)
	}
	display.PrintPresets(cmd.OutOrStdout(), presets)
	return nil
}
