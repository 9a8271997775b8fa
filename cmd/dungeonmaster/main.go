// Package main is the dungeonmaster CLI entrypoint: a single-player,
// free-form-text front end over internal/world (spec §6 "CLI
// (single-player mode)"). Grounded on theRebelliousNerd-codenerd's
// cmd/nerd/main.go, which wires one cobra root command with persistent
// flags and a RunE that boots the engine before handing off to its
// interactive loop.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kirkdiggler/dungeonmaster/internal/config"
	"github.com/kirkdiggler/dungeonmaster/internal/enginelog"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
	"github.com/kirkdiggler/dungeonmaster/internal/world"
)

var (
	saveName    string
	saveDirFlag string
	envPath     string
	debug       bool
	playerName  string
	regionCount int
)

var rootCmd = &cobra.Command{
	Use:   "dungeonmaster",
	Short: "dungeonmaster - a persistent, procedurally generated text dungeon",
	Long: `dungeonmaster is a single-player text-adventure engine over a
procedurally generated, persistent dungeon. Type free-form commands
("go north", "attack the goblin", "look"); type help for the verb list,
quit to exit.`,
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&saveName, "save", "default", "save name (arbitrary string; \"default\" is the reserved default save)")
	rootCmd.PersistentFlags().StringVar(&saveDirFlag, "save-dir", "", "overrides SAVE_DIR / save-dir config key")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "", "path to a .env config file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "v", false, "verbose (development) logging")
	rootCmd.PersistentFlags().StringVar(&playerName, "player", "Adventurer", "player name, used only when starting a new save")
	rootCmd.PersistentFlags().IntVar(&regionCount, "regions", 4, "number of top-level regions to generate for a brand new world")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(envPath)
	if err != nil {
		return fmt.Errorf("dungeonmaster: load config: %w", err)
	}
	if saveDirFlag != "" {
		cfg.SaveDir = saveDirFlag
	}

	log, err := enginelog.New(debug)
	if err != nil {
		return fmt.Errorf("dungeonmaster: build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	saveDir := filepath.Join(cfg.SaveDir, saveName)
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return fmt.Errorf("dungeonmaster: create save directory: %w", err)
	}
	cfg.SaveDir = saveDir

	db, err := repo.Open(ctx, filepath.Join(saveDir, "world.db"))
	if err != nil {
		return fmt.Errorf("dungeonmaster: open world database: %w", err)
	}
	defer db.Close()

	w, err := world.New(ctx, cfg, db, log)
	if err != nil {
		return fmt.Errorf("dungeonmaster: build engine: %w", err)
	}

	playerID, err := loadOrBootstrap(ctx, w, cfg)
	if err != nil {
		return fmt.Errorf("dungeonmaster: start save %q: %w", saveName, err)
	}

	stopAutosave := w.StartAutosave(ctx)
	defer stopAutosave()

	runREPL(ctx, w, playerID)

	if report, err := w.Persist.Snapshot(ctx); err != nil {
		log.Warn("dungeonmaster: final save failed")
	} else if !report.Clean() {
		fmt.Printf("warning: final save had %d partial failures\n", len(report.Failures))
	}
	return nil
}
