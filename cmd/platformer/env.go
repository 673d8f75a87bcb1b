package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// env holds what interactive commands share: logger, store and audio.
type env struct {
	logger  *log.Logger
	store   *storage.Store
	sound   *audio.Player
	logFile *os.File
}

// newEnv sets up logging, storage and audio. Storage and audio failures
// are reported and the game runs without them.
func newEnv(withSound bool) *env {
	e := &env{}
	e.logger, e.logFile = openLogger(flagLogFile, flagDebug)
	platformer.SetLogger(e.logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		e.logger.Warn("no score storage", "err", err)
	} else {
		e.store = store
	}

	if withSound {
		e.sound = openAudio(e.logger)
	}
	return e
}

func (e *env) Close() {
	if e.sound != nil {
		e.sound.Close()
	}
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// openLogger logs to a file because the terminal belongs to the game.
func openLogger(path string, debug bool) (*log.Logger, *os.File) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	if path == "" {
		return log.New(io.Discard), nil
	}

	path = config.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), nil
	}

	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
		Level:           level,
	}), f
}

func openAudio(logger *log.Logger) *audio.Player {
	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		logger.Warn("using default audio config", "err", err)
	}
	if !cfg.Audio.Enabled {
		return nil
	}

	player, err := audio.NewPlayer(cfg.Audio)
	if err != nil {
		logger.Warn("some sound files could not be loaded", "err", err)
	}
	if err := player.Initialize(); err != nil {
		logger.Warn("sound disabled", "err", err)
		return nil
	}
	return player
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// levelLoader returns the loader for --levels or the built-in levels.
func levelLoader() *levels.Loader {
	if flagLevelsDir != "" {
		return levels.NewDirLoader(flagLevelsDir)
	}
	return levels.Embedded()
}

// levelInfos lists the playable levels for menus.
func levelInfos(logger *log.Logger) []levels.Info {
	infos, err := levelLoader().List()
	if err != nil {
		logger.Warn("cannot list levels", "err", err)
		return nil
	}
	return infos
}
