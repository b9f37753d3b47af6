package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/banshee-data/holdmap/internal/api"
	"github.com/banshee-data/holdmap/internal/db"
	"github.com/banshee-data/holdmap/internal/monitor"
	"github.com/banshee-data/holdmap/internal/monitoring"
	"github.com/banshee-data/holdmap/internal/voice"
	"github.com/banshee-data/holdmap/web"
)

var (
	listenAddr string
	staticDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lookup page and API",
	Long: `Serve the browser lookup page, the JSON API and the debug pages.

The hold store is seeded from the configured CSV tables (or the bundled
sample) the first time it is opened; use "holdmap import" to replace it.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (overrides the settings file)")
	serveCmd.Flags().StringVar(&staticDir, "dev", "", "serve the web page from this directory instead of the binary")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := monitoring.L()

	database, err := db.NewDB(cfg.GetDBPath())
	if err != nil {
		return err
	}
	defer database.Close()

	session, err := newSession(fsys, cfg, database)
	if err != nil {
		return err
	}
	if _, err := session.Show(cfg.GetDefaultHold()); err != nil {
		log.Warn("default hold not shown", zap.String("hold", cfg.GetDefaultHold()), zap.Error(err))
	}

	var announcer *voice.Announcer
	if cfg.GetVoiceEnabled() {
		command, cmdArgs := cfg.GetVoiceCommand()
		announcer = voice.NewAnnouncer(voice.CommandSpeaker{Command: command, Args: cmdArgs}, voice.Options{
			Fields: cfg.GetVoiceFields(),
			Gap:    cfg.GetVoiceGap(),
		})
		defer announcer.Close()
	}

	mux := api.NewServer(session, database, announcer, api.Settings{
		Presentation: string(cfg.GetPresentation()),
		DefaultHold:  cfg.GetDefaultHold(),
		VoiceEnabled: cfg.GetVoiceEnabled(),
		VoiceFields:  cfg.GetVoiceFields(),
	}).ServeMux()
	if err := database.AttachAdminRoutes(mux); err != nil {
		return err
	}
	monitor.AttachDebugRoutes(mux, session)
	mux.Handle("/", web.Handler(staticDir))

	addr := cfg.GetListen()
	if listenAddr != "" {
		addr = listenAddr
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("listening", zap.String("addr", addr), zap.Int("holds", session.Dataset().Len()))
	return listenUntilDone(ctx, server)
}

// listenUntilDone serves until ctx is done, then shuts server down. A
// listener failure is returned; a normal shutdown is not an error.
func listenUntilDone(ctx context.Context, server *http.Server) error {
	log := monitoring.L()

	errc := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
		if err := server.Close(); err != nil {
			log.Warn("HTTP server force close error", zap.Error(err))
		}
	}
	log.Info("graceful shutdown complete")
	return nil
}
