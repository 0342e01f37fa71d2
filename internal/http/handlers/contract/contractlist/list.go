// Package contractlist реализует HTTP-обработчик для получения активных
// договоров клиента.
//
// Handler извлекает ID клиента из URL-параметров и необязательные границы
// фильтра по дате изменения из query-параметров, вызывает бизнес-логику
// и возвращает список договоров, активных на сегодняшнюю дату.
package contractlist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	contractsvc "github.com/magabrotheeeer/client-contract-manager/internal/services/contract"

	"github.com/magabrotheeeer/client-contract-manager/internal/http/response"
	"github.com/magabrotheeeer/client-contract-manager/internal/lib/sl"
	"github.com/magabrotheeeer/client-contract-manager/internal/models"
)

// Handler обрабатывает запросы на получение активных договоров клиента.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для выборки договоров
	validate *validator.Validate // Валидатор границ фильтра
}

// Service описывает интерфейс бизнес-логики выборки активных договоров.
type Service interface {
	FindActiveContractsForClient(ctx context.Context, clientID int64, filter models.DummyContractFilter) ([]*models.Contract, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Получить активные договоры клиента
// @Description Возвращает договоры клиента, активные на сегодняшнюю дату, с необязательным фильтром по дате последнего изменения.
// @Tags Contracts
// @Produce  json
// @Param clientId path int true "ID клиента"
// @Param updated_after query string false "Нижняя граница даты изменения (2006-01-02, включительно)"
// @Param updated_before query string false "Верхняя граница даты изменения (2006-01-02, включительно)"
// @Success 200 {object} response.Response "Список договоров"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден или неактивен"
// @Failure 422 {object} response.ErrorResponse "Некорректные границы фильтра"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contracts/{clientId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	clientID, err := strconv.ParseInt(chi.URLParam(r, "clientId"), 10, 64)
	if err != nil {
		log.Error("failed to decode client id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode client id from url"))
		return
	}

	filter := models.DummyContractFilter{
		UpdatedAfter:  r.URL.Query().Get("updated_after"),
		UpdatedBefore: r.URL.Query().Get("updated_before"),
	}
	if err := h.validate.Struct(filter); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	entities, err := h.service.FindActiveContractsForClient(r.Context(), clientID, filter)
	if err != nil {
		if errors.Is(err, models.ErrClientNotFound) {
			log.Info("active client not found", slog.Int64("client_id", clientID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("client not found"))
			return
		}
		log.Error("failed to list contracts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list contracts"))
		return
	}

	log.Info("success to list contracts", slog.Int64("client_id", clientID),
		slog.Int("count", len(entities)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contracts": contractsvc.ToResponseList(entities),
	}))
}
