package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/chaos-io/matting/server"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve open-image / matting-image / save-matting-image-path over local HTTP for a UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8765)")
	serveCmd.Flags().String("save-dir", "", "Default directory for results when a request has none")
	serveCmd.Flags().String("credit-check", "", "Cron schedule for logging remaining credits, e.g. @hourly")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)

	remover := newRemoveBG()
	srv := server.New(newPicker(), remover, server.Options{
		APIKey:         cfg.RemoveBG.APIKey,
		SaveDir:        cfg.RemoveBG.SaveDir,
		ThumbnailSize:  cfg.Server.ThumbnailSize,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	if cfg.Server.CreditCheck != "" && cfg.RemoveBG.APIKey != "" {
		monitor, err := server.NewCreditMonitor(remover, cfg.RemoveBG.APIKey, cfg.Server.CreditCheck)
		if err != nil {
			return err
		}
		monitor.Start()
		defer monitor.Stop()
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
