package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marcus/devsetup/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON HTTP API",
	Long: `Serves the catalog, command generation, history, favorites and the mock
session over HTTP under /v1. The address comes from --addr, then
DEVSETUP_LISTEN_ADDR, then 127.0.0.1:8787.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := api.LoadConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ListenAddr = addr
		}

		debug, _ := cmd.Flags().GetBool("debug")
		opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
		if debug {
			opts.Level = slog.LevelDebug
		}
		var handler slog.Handler
		if cfg.LogFormat == "json" {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		} else {
			handler = slog.NewTextHandler(os.Stderr, opts)
		}
		slog.SetDefault(slog.New(handler))

		a, err := openApp()
		if err != nil {
			slog.Error("open store", "err", err)
			return err
		}
		defer a.Close()

		srv, err := api.NewServer(cfg, api.Deps{
			KV:        a.db,
			Session:   a.session,
			Generator: a.gen,
			Stars:     a.starsClient(),
		})
		if err != nil {
			slog.Error("create server", "err", err)
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.Start(); err != nil {
			slog.Error("start server", "err", err)
			return err
		}
		slog.Info("server started", "addr", srv.Addr(), "data_dir", a.dir)

		<-ctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown", "err", err)
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides DEVSETUP_LISTEN_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
