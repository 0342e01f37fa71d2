// Package clientcontractmanager собирает приложение: хранилище, миграции,
// кеш, сервисы клиентов и договоров, HTTP-сервер с маршрутами.
package clientcontractmanager

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/client-contract-manager/internal/cache"
	"github.com/magabrotheeeer/client-contract-manager/internal/config"
	"github.com/magabrotheeeer/client-contract-manager/internal/lib/clock"
	"github.com/magabrotheeeer/client-contract-manager/internal/migrations"
	clientservice "github.com/magabrotheeeer/client-contract-manager/internal/services/client"
	contractservice "github.com/magabrotheeeer/client-contract-manager/internal/services/contract"
	"github.com/magabrotheeeer/client-contract-manager/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	clk := clock.SystemClock{}

	clientService := clientservice.New(db, cacheRedis, clk, logger)
	contractService := contractservice.New(db, clientService, clk, logger)
	// Взаимная зависимость: деактивация клиента каскадно закрывает договоры.
	clientService.SetContractCloser(contractService)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, clientService, contractService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
