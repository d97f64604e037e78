package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mr-LMN/CircuitsAPP/api"
	"github.com/Mr-LMN/CircuitsAPP/config"
	"github.com/Mr-LMN/CircuitsAPP/live"
	"github.com/Mr-LMN/CircuitsAPP/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fsStore, err := store.New(ctx, cfg.ProjectID, cfg.EmulatorHost)
	if err != nil {
		return err
	}
	defer fsStore.Close()
	logger.Info("Successfully connected to Firestore.",
		zap.String("project", cfg.ProjectID),
		zap.Bool("emulator", cfg.EmulatorHost != ""))

	categories := api.NewCategoryVocabulary(cfg.Categories, cfg.DefaultCategory)
	a := api.NewAPI(fsStore, live.NewHub(logger), categories, logger)

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: a.Router(api.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			RequestTimeout: time.Duration(cfg.RequestTimeout),
		}),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("ListenAndServe error: %w", err)
		}
		return nil
	case <-quit:
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout))
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server exiting")
	return nil
}
