// Package read реализует HTTP-обработчик для получения активного клиента по ID.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику поиска
// активного клиента и возвращает его данные в JSON-формате. Деактивированный
// или несуществующий клиент отдаётся как 404.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	clientsvc "github.com/magabrotheeeer/client-contract-manager/internal/services/client"

	"github.com/magabrotheeeer/client-contract-manager/internal/http/response"
	"github.com/magabrotheeeer/client-contract-manager/internal/lib/sl"
	"github.com/magabrotheeeer/client-contract-manager/internal/models"
)

// Handler обрабатывает запросы на получение клиента по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для поиска клиента по ID
}

// Service описывает интерфейс бизнес-логики поиска активного клиента.
type Service interface {
	FindActiveClient(ctx context.Context, id int64) (*models.Client, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить активного клиента
// @Description Возвращает клиента по ID, только если он активен.
// @Tags Clients
// @Produce  json
// @Param id path int true "ID клиента"
// @Success 200 {object} response.Response "Данные клиента"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден или неактивен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /clients/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.read"

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

	entity, err := h.service.FindActiveClient(r.Context(), id)
	if err != nil {
		log.Error("failed to read client", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read client"))
		return
	}
	if entity == nil {
		log.Info("active client not found", slog.Int64("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("client not found"))
		return
	}

	res, err := clientsvc.ToResponse(entity)
	if err != nil {
		log.Error("failed to build response", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read client"))
		return
	}

	log.Info("success to read client", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"client": res,
	}))
}
