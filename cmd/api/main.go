package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mothroom/D-D-Lite/internal/api"
	"github.com/Mothroom/D-D-Lite/internal/catalog"
	"github.com/Mothroom/D-D-Lite/internal/infra/logging"
	"github.com/Mothroom/D-D-Lite/internal/infra/pgutils"
	pgledger "github.com/Mothroom/D-D-Lite/internal/repos/ledger/postgres"
	"github.com/Mothroom/D-D-Lite/internal/services/pricing"
	"github.com/Mothroom/D-D-Lite/internal/services/shop"
	"github.com/Mothroom/D-D-Lite/pkg/envconf"
	"github.com/Mothroom/D-D-Lite/pkg/shutdownqueue"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	err := godotenv.Load()
	if err != nil {
		slog.Warn(".env file not found, relying on environment")
	}

	cfg := new(apiConfig)

	err = envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	dbConns, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.Add(func(context.Context) error {
		slog.Info("Close database")

		cerr := dbConns.Close()
		if cerr != nil {
			return fmt.Errorf("close db: %w", cerr)
		}

		return nil
	})

	// --- Wiring ---
	store := pgledger.New(dbConns)
	shopSrv := shop.New(store, pricing.NewFlat())
	catalogCli := catalog.New(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, shopSrv, catalogCli)

	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		serr := srv.Shutdown(c)
		if serr != nil {
			return fmt.Errorf("shutdown srv: %w", serr)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port)

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
