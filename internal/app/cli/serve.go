package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"trading_journal/internal/app/di"
	"trading_journal/internal/app/router"
	chartshandler "trading_journal/internal/feature/charts/transport/handler"
	chartsusecase "trading_journal/internal/feature/charts/usecase"
	uploadshandler "trading_journal/internal/feature/uploads/transport/handler"
	uploadsusecase "trading_journal/internal/feature/uploads/usecase"
	"trading_journal/internal/platform/config"
	"trading_journal/internal/platform/http/handler"
	"trading_journal/internal/platform/logger"
)

func newServeCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	gin.SetMode(cfg.Server.GinMode)

	store, err := di.NewStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error("failed to close store", logger.ErrorField(err))
		}
	}()

	files, err := di.NewFileHosts(ctx, cfg)
	if err != nil {
		return fmt.Errorf("file host: %w", err)
	}

	checks := map[string]handler.Check{"store": store.Ping}
	rdb := di.OpenRedis(ctx, cfg.Redis, log)
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error("failed to close Redis client", logger.ErrorField(err))
			}
		}()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	ledger := di.NewOrphanLedger(rdb, cfg.Redis.Namespace, log)

	chartsUC := chartsusecase.NewChartUsecase(store.Charts, files.Files, ledger, log)

	// Direct uploads need a presigning host; other providers answer 501.
	var presignUC uploadshandler.PresignUsecase
	if files.S3 != nil {
		presignUC = uploadsusecase.NewPresignUsecase(files.S3)
	}

	engine := router.NewRouter(log, router.Handlers{
		Health:  handler.NewHealthHandler(checks),
		Charts:  chartshandler.NewChartHandler(chartsUC, log),
		Uploads: uploadshandler.NewPresignHandler(presignUC, log),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return runServer(ctx, srv, cfg.Server.ShutdownTimeout, log)
}

// runServer serves until ctx is canceled, then drains in-flight requests.
func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log *logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.StringField("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
