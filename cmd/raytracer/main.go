package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gpu-raytracer/app"
	"gpu-raytracer/config"
	"gpu-raytracer/core"
	"gpu-raytracer/internal/cli"
	"gpu-raytracer/renderer"
)

type rootOptions struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("raytracer failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "raytracer",
		Short:         "Interactive GPU raytracer for text scene files",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd.Context(), opts.cfg)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to the TOML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	cmd.AddCommand(cli.NewValidateCmd(), cli.NewImportGLTFCmd(), cli.NewImportOBJCmd())
	return cmd
}

func (o *rootOptions) setup() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	o.cfg = cfg
	return nil
}

func runViewer(ctx context.Context, cfg config.Config) error {
	wc := core.DefaultWindowConfig()
	wc.Width, wc.Height = cfg.Window.Width, cfg.Window.Height
	wc.Title = cfg.Window.Title
	wc.VSync = cfg.Window.VSync

	window, err := core.NewWindow(wc)
	if err != nil {
		return err
	}
	defer window.Destroy()

	engine, err := renderer.NewRenderEngine(window, renderer.ShaderFiles{
		Vertex:   cfg.Shaders.Vertex,
		Fragment: cfg.Shaders.Fragment,
	})
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer engine.Destroy()

	viewer := app.New(window, engine, engine.Layout(), app.Options{
		Scenes:    cfg.Scenes,
		Camera:    cfg.CameraParams(),
		HotReload: cfg.HotReload,
	})
	defer viewer.Close()

	window.SetKeyCallback(viewer.HandleKey)

	slog.Info("viewer running", "scenes", len(cfg.Scenes), "hot_reload", cfg.HotReload)
	err = viewer.Run(ctx)
	if errors.Is(err, context.Canceled) {
		slog.Info("interrupted, shutting down")
		return nil
	}
	return err
}
