package cli

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	logPath    string
	variant    string
)

var rootCmd = &cobra.Command{
	Use:   "scriptguard",
	Short: "scriptguard - static analyzer for grand-strategy mod scripts",
	Long: `scriptguard parses a game's trigger/effect/script-value scripting
dialect and cross-checks every reference a mod makes against the base game
and the mod's own content, catching broken references, scope mistakes, and
other authoring errors before they reach a running game.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config YAML file (default: ~/.scriptguard/scriptguard.yaml)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Path to run-summary log file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&variant, "variant", "", "Game variant: dynasty, imperium, or commonwealth (overrides config)")
}

func Execute() error {
	return rootCmd.Execute()
}
