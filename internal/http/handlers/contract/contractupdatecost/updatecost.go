// Package contractupdatecost реализует HTTP-обработчик обновления стоимости
// договора.
//
// Handler принимает JSON-запрос с новой стоимостью, валидирует его и вызывает
// бизнес-логику. Обновить можно только договор, активный на сегодняшнюю дату;
// дата изменения проставляется автоматически.
package contractupdatecost

import (
	"context"
	"encoding/json"
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

// Handler управляет HTTP-запросами на обновление стоимости договоров.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для обновления стоимости
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики обновления стоимости договора.
type Service interface {
	UpdateContractCost(ctx context.Context, id int64, req models.DummyContractCost) (*models.Contract, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить стоимость договора
// @Description Обновляет стоимость договора, активного на сегодняшнюю дату, и проставляет дату изменения.
// @Tags Contracts
// @Accept  json
// @Produce  json
// @Param id path int true "ID договора"
// @Param request body models.DummyContractCost true "Новая стоимость"
// @Success 200 {object} response.Response "Обновлённый договор"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Договор не найден или уже закрыт"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contracts/{id}/cost [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.updatecost"
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

	var req models.DummyContractCost
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	entity, err := h.service.UpdateContractCost(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, models.ErrContractNotFound) {
			log.Info("active contract not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("contract not found"))
			return
		}
		log.Error("failed to update contract cost", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update contract cost"))
		return
	}

	log.Info("success to update contract cost", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contract": contractsvc.ToResponse(entity),
	}))
}
