package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/audiocontroller/assets"
	"github.com/milk9111/audiocontroller/config"
	"github.com/milk9111/audiocontroller/output"
	"github.com/milk9111/audiocontroller/prefabs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	assetPath := flag.String("assets", cfg.AssetPath, "audio asset directory")
	manifest := flag.String("manifest", cfg.Manifest, "manifest written by acmanifest (scan the asset directory when empty)")
	watch := flag.Bool("watch", cfg.Watch, "reload assets and channel presets when they change")
	logLevel := flag.String("log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	slog.SetDefault(config.NewLogger(*logLevel))

	lib, err := openLibrary(*assetPath, *manifest, cfg)
	if err != nil {
		slog.Error("open audio library", "dir", *assetPath, "error", err)
		os.Exit(1)
	}
	slog.Info("audio library ready", "dir", lib.Dir(), "tracks", lib.Manifest().Len())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := lib.Loader().LoadAll(ctx, cfg.LoadConcurrency); err != nil {
			slog.Warn("audio preload incomplete", "error", err)
		}
	}()

	game, err := NewGame(lib, output.NewFactory(cfg.SampleRate))
	if err != nil {
		slog.Error("start game", "error", err)
		os.Exit(1)
	}

	if *watch {
		go func() {
			if err := lib.Watch(ctx); err != nil && ctx.Err() == nil {
				slog.Warn("asset watcher stopped", "error", err)
			}
		}()
		go func() {
			if err := prefabs.WatchChannelSpecs(ctx, game.QueuePresets); err != nil && ctx.Err() == nil {
				slog.Warn("preset watcher stopped", "error", err)
			}
		}()
	}

	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("audiocontroller")

	if err := ebiten.RunGame(game); err != nil {
		slog.Error("run game", "error", err)
		os.Exit(1)
	}
}

func openLibrary(dir, manifest string, cfg *config.Config) (*assets.Library, error) {
	opts := assets.ScanOptions{Formats: cfg.Formats, DefaultDuration: cfg.DefaultDuration}
	if manifest == "" {
		return assets.OpenLibrary(dir, opts)
	}
	m, err := assets.LoadManifest(manifest)
	if err != nil {
		return nil, err
	}
	return assets.NewLibrary(dir, opts, m), nil
}
