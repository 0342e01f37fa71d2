// Package contractcreate реализует HTTP-обработчик для создания договора клиента.
//
// Handler принимает JSON-запрос с данными договора, валидирует их, вызывает
// бизнес-логику создания договора для активного клиента и возвращает созданный
// договор в JSON-формате.
package contractcreate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

// Handler управляет HTTP-запросами на создание договоров.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания договоров
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания договора.
type Service interface {
	CreateContractForClient(ctx context.Context, clientID int64, req models.DummyContract) (*models.Contract, error)
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
// @Summary Создать договор для клиента
// @Description Создает новый договор для активного клиента. Пустая дата начала заменяется сегодняшней, пустая дата окончания означает бессрочный договор.
// @Tags Contracts
// @Accept  json
// @Produce  json
// @Param clientId path int true "ID клиента"
// @Param request body models.DummyContract true "Данные нового договора"
// @Success 201 {object} response.Response "Созданный договор"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дата начала позже даты окончания"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден или неактивен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contracts/{clientId} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.create"
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

	var req models.DummyContract
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

	entity, err := h.service.CreateContractForClient(r.Context(), clientID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrClientNotFound):
			log.Info("active client not found", slog.Int64("client_id", clientID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("client not found"))
		case errors.Is(err, models.ErrInvalidDateRange):
			log.Error("invalid date range", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("start date must not be after end date"))
		default:
			log.Error("failed to create contract", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create contract"))
		}
		return
	}

	log.Info("success to create contract", slog.Int64("id", entity.ID),
		slog.Int64("client_id", clientID))
	w.Header().Set("Location", fmt.Sprintf("/api/v1/contracts/%d", entity.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contract": contractsvc.ToResponse(entity),
	}))
}
