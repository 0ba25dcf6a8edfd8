package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/gridview/assets"
	"github.com/olivierh59500/gridview/internal/config"
	"github.com/olivierh59500/gridview/internal/display"
	"github.com/olivierh59500/gridview/internal/imagecache"
	"github.com/olivierh59500/gridview/internal/logger"
	"github.com/olivierh59500/gridview/internal/loop"
	"github.com/olivierh59500/gridview/internal/render"
	"github.com/olivierh59500/gridview/internal/sandbox"
)

func main() {
	configPath := flag.String("config", "gridview.json", "configuration file")
	scenario := flag.String("scenario", "", "scenario id loaded by the Start button")
	assetsDir := flag.String("assets", "", "directory with images (default: embedded)")
	scenariosDir := flag.String("scenarios", "", "directory with scenario files (default: embedded)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	showStats := flag.Bool("stats", false, "show the stats overlay at startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *scenario != "" {
		cfg.Scenario = *scenario
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}
	if *scenariosDir != "" {
		cfg.ScenariosDir = *scenariosDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	cfg.ShowStats = cfg.ShowStats || *showStats

	lg, err := logger.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	lg = lg.With("session", uuid.NewString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var images fs.FS = assets.FS
	if cfg.AssetsDir != "" {
		images = os.DirFS(cfg.AssetsDir)
	}
	worldOpts := []sandbox.Option{sandbox.WithLogger(lg)}
	if cfg.ScenariosDir != "" {
		worldOpts = append(worldOpts, sandbox.WithScenarios(os.DirFS(cfg.ScenariosDir)))
	}

	// One display session: the cache lives and dies with the game.
	cache := imagecache.New(imagecache.FSLoader{FS: images},
		imagecache.WithUpload(display.Upload),
		imagecache.WithLogger(lg))
	l := loop.New(sandbox.New(worldOpts...), render.NewRenderer(cache),
		loop.WithInterval(cfg.IntervalTicks()),
		loop.WithPreloader(cache),
		loop.WithLogger(lg))
	game := display.NewGame(l, cache, cfg.Scenario,
		display.WithLogger(lg),
		display.WithContext(ctx),
		display.WithStats(display.StartStats(ctx, 2*time.Second, lg), cfg.ShowStats))

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	lg.Info("viewer starting", "scenario", cfg.Scenario, "interval", cfg.TickInterval, "tps", cfg.TPS)
	if err := ebiten.RunGame(game); err != nil {
		lg.Fatal("game loop", "err", err)
	}
	lg.Info("viewer closed")
}
