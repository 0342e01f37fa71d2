// Package create реализует HTTP-обработчик для создания новых клиентов.
//
// Handler принимает JSON-запрос с данными клиента одного из двух вариантов
// (лицо или компания), валидирует их, вызывает бизнес-логику создания
// через сервис и возвращает созданного клиента в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	clientsvc "github.com/magabrotheeeer/client-contract-manager/internal/services/client"

	"github.com/magabrotheeeer/client-contract-manager/internal/http/response"
	"github.com/magabrotheeeer/client-contract-manager/internal/lib/sl"
	"github.com/magabrotheeeer/client-contract-manager/internal/models"
)

// Handler управляет HTTP-запросами на создание новых клиентов.
//
// Использует логгер для записи операций и ошибок,
// сервис бизнес-логики для создания клиента,
// а также валидатор для проверки структуры входных данных.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания клиентов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания клиента.
type Service interface {
	CreateClient(ctx context.Context, req models.DummyClient) (*models.Client, error)
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
// @Summary Создать нового клиента
// @Description Создает нового клиента варианта person или company. Возвращает созданного клиента.
// @Tags Clients
// @Accept  json
// @Produce  json
// @Param request body models.DummyClient true "Данные нового клиента"
// @Success 201 {object} response.Response "Успешное создание клиента"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или нарушение бизнес-правила"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании клиента"
// @Router /clients [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyClient
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
	if req.Type == string(models.ClientTypeCompany) && req.CompanyIdentifier == "" {
		log.Error("company identifier is missing")
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("field CompanyIdentifier is a required field"))
		return
	}
	if req.Type == string(models.ClientTypePerson) && req.Birthdate == "" {
		log.Error("birthdate is missing")
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("field Birthdate is a required field"))
		return
	}
	log.Info("all fields are validated")

	entity, err := h.service.CreateClient(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrCompanyIdentifierTaken):
			log.Error("company identifier already taken", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("company identifier already taken"))
		case errors.Is(err, models.ErrBirthdateInFuture):
			log.Error("birthdate is in the future", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("birthdate must not be in the future"))
		default:
			log.Error("failed to create client", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create client"))
		}
		return
	}

	res, err := clientsvc.ToResponse(entity)
	if err != nil {
		log.Error("failed to build response", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create client"))
		return
	}

	log.Info("success to create client", slog.Int64("id", entity.ID))
	w.Header().Set("Location", fmt.Sprintf("/api/v1/clients/%d", entity.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"client": res,
	}))
}
