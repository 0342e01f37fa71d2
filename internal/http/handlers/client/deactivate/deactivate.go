// Package deactivate реализует HTTP-обработчик деактивации клиента.
//
// Handler извлекает ID из URL-параметров и вызывает бизнес-логику,
// которая в одной транзакции закрывает все активные договоры клиента
// и помечает его неактивным. Запись клиента не удаляется.
package deactivate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/client-contract-manager/internal/http/response"
	"github.com/magabrotheeeer/client-contract-manager/internal/lib/sl"
	"github.com/magabrotheeeer/client-contract-manager/internal/models"
)

// Handler управляет HTTP-запросами на деактивацию клиентов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для деактивации клиентов
}

// Service описывает интерфейс бизнес-логики деактивации клиента.
type Service interface {
	DeactivateClient(ctx context.Context, id int64) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Деактивировать клиента
// @Description Закрывает все активные договоры клиента и помечает его неактивным. Операция необратима.
// @Tags Clients
// @Produce  json
// @Param id path int true "ID клиента"
// @Success 200 {object} response.Response "Клиент деактивирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден или уже неактивен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /clients/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.deactivate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	if err := h.service.DeactivateClient(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrClientNotFound) {
			log.Info("active client not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("client not found"))
			return
		}
		log.Error("failed to deactivate client", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not deactivate client"))
		return
	}

	log.Info("success to deactivate client", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deactivated_id": id,
	}))
}
