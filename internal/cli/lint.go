package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hallowmark/scriptguard/internal/config"
	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/driver"
	"github.com/hallowmark/scriptguard/internal/logger"
)

var modRoots []string

var lintCmd = &cobra.Command{
	Use:   "lint <game-root>",
	Short: "Validate a mod's scripts against a game installation",
	Long: `Lint parses the trigger/effect/script-value scripting dialect found
under <game-root>, applies any --mod overlays in the order given, and
reports every broken reference, scope mismatch, or other authoring
mistake it finds.

Example:
  scriptguard lint /path/to/game --mod ./my-mod --mod ./another-mod`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringArrayVar(&modRoots, "mod", nil, "Mod overlay root, in load order (repeatable)")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	gameRoot := args[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logPath != "" {
		cfg.LogPath = logPath
	}
	if variant != "" {
		cfg.GameVariant = variant
	}

	runLogger, err := logger.New(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to initialize run logger: %w", err)
	}
	defer runLogger.Close()

	collecting := &diag.Collecting{}
	sink := config.NewFilteredSink(collecting, *cfg)

	start := time.Now()
	res, err := driver.Run(driver.Options{
		VanillaRoot:   gameRoot,
		ModRoots:      modRoots,
		Variant:       cfg.Variant(),
		Sink:          sink,
		Logger:        runLogger,
		MaxMacroDepth: cfg.MaxMacroDepth,
		OnlyBornAfter: cfg.OnlyBornAfter,
	})
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	bySeverity := map[string]int{}
	for _, d := range collecting.Diagnostics {
		printDiagnostic(d)
		bySeverity[d.Severity.String()]++
	}

	exitNonZero := sink.ExitNonZero(cfg.Threshold())
	if err := runLogger.LogRun(logger.RunEvent{
		Timestamp:             time.Now().UTC().Format(time.RFC3339),
		GameVariant:           cfg.Variant().String(),
		FilesProcessed:        res.FilesProcessed,
		DiagnosticsBySeverity: bySeverity,
		ElapsedMS:             time.Since(start).Milliseconds(),
		ExitNonZero:           exitNonZero,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write run log: %v\n", err)
	}

	fmt.Printf("%d file(s) processed, %d diagnostic(s)\n", res.FilesProcessed, len(collecting.Diagnostics))

	if exitNonZero {
		os.Exit(1)
	}
	return nil
}

func printDiagnostic(d diag.Diagnostic) {
	fmt.Printf("%s: %s [%s] %s\n", d.Loc.String(), d.Severity.String(), d.Key, d.Message)
	if d.Secondary != nil {
		fmt.Printf("  %s: %s\n", d.Secondary.Loc.String(), d.Secondary.Message)
	}
}
