// Package update реализует HTTP-обработчик для обновления общих полей клиента.
//
// Handler принимает JSON-запрос того же вида, что и при создании, валидирует
// его, проверяет совпадение варианта клиента и обновляет имя, телефон и почту.
// Поле варианта (дата рождения или идентификатор компании) не изменяется.
package update

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

	clientsvc "github.com/magabrotheeeer/client-contract-manager/internal/services/client"

	"github.com/magabrotheeeer/client-contract-manager/internal/http/response"
	"github.com/magabrotheeeer/client-contract-manager/internal/lib/sl"
	"github.com/magabrotheeeer/client-contract-manager/internal/models"
)

// Handler управляет HTTP-запросами на обновление клиентов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для обновления клиентов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики обновления клиента.
type Service interface {
	UpdateActiveClient(ctx context.Context, id int64, req models.DummyClient) (*models.Client, error)
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
// @Summary Обновить активного клиента
// @Description Обновляет имя, телефон и почту активного клиента. Вариант клиента изменить нельзя.
// @Tags Clients
// @Accept  json
// @Produce  json
// @Param id path int true "ID клиента"
// @Param request body models.DummyClient true "Новые данные клиента"
// @Success 200 {object} response.Response "Обновлённый клиент"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или несовпадение варианта"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден или неактивен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /clients/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.update"
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
	log.Info("all fields are validated")

	entity, err := h.service.UpdateActiveClient(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrClientNotFound):
			log.Info("active client not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("client not found"))
		case errors.Is(err, models.ErrClientTypeMismatch):
			log.Error("client type mismatch", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("client type cannot be changed"))
		default:
			log.Error("failed to update client", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update client"))
		}
		return
	}

	res, err := clientsvc.ToResponse(entity)
	if err != nil {
		log.Error("failed to build response", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update client"))
		return
	}

	log.Info("success to update client", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"client": res,
	}))
}
