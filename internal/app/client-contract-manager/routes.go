// Package clientcontractmanager предоставляет маршруты для основного приложения.
package clientcontractmanager

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/client-contract-manager/internal/http/handlers/client/create"
	"github.com/magabrotheeeer/client-contract-manager/internal/http/handlers/client/deactivate"
	"github.com/magabrotheeeer/client-contract-manager/internal/http/handlers/client/read"
	"github.com/magabrotheeeer/client-contract-manager/internal/http/handlers/client/update"
	"github.com/magabrotheeeer/client-contract-manager/internal/http/handlers/contract/contractcreate"
	"github.com/magabrotheeeer/client-contract-manager/internal/http/handlers/contract/contractlist"
	"github.com/magabrotheeeer/client-contract-manager/internal/http/handlers/contract/contractsumcost"
	"github.com/magabrotheeeer/client-contract-manager/internal/http/handlers/contract/contractupdatecost"
	"github.com/magabrotheeeer/client-contract-manager/internal/http/handlers/health"
	"github.com/magabrotheeeer/client-contract-manager/internal/http/middlewarectx"
	clientservice "github.com/magabrotheeeer/client-contract-manager/internal/services/client"
	contractservice "github.com/magabrotheeeer/client-contract-manager/internal/services/contract"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, clientService *clientservice.Service, contractService *contractservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Post("/clients", create.New(logger, clientService).ServeHTTP)
		r.Get("/clients/{id}", read.New(logger, clientService).ServeHTTP)
		r.Put("/clients/{id}", update.New(logger, clientService).ServeHTTP)
		r.Delete("/clients/{id}", deactivate.New(logger, clientService).ServeHTTP)

		r.Post("/contracts/{clientId}", contractcreate.New(logger, contractService).ServeHTTP)
		r.Get("/contracts/{clientId}", contractlist.New(logger, contractService).ServeHTTP)
		r.Get("/contracts/{clientId}/sumcost", contractsumcost.New(logger, contractService).ServeHTTP)
		r.Put("/contracts/{id}/cost", contractupdatecost.New(logger, contractService).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
