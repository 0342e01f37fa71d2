// Package contractsumcost реализует HTTP-обработчик подсчёта суммарной
// стоимости активных договоров клиента.
package contractsumcost

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

// Handler обрабатывает запросы на подсчёт суммарной стоимости договоров.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для подсчёта стоимости
}

// Service описывает интерфейс бизнес-логики подсчёта стоимости.
type Service interface {
	SumActiveContractsCost(ctx context.Context, clientID int64) (float64, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Суммарная стоимость активных договоров клиента
// @Description Возвращает сумму стоимостей договоров клиента, активных на сегодняшнюю дату. Без активных договоров возвращает ноль.
// @Tags Contracts
// @Produce  json
// @Param clientId path int true "ID клиента"
// @Success 200 {object} response.Response "Суммарная стоимость"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден или неактивен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contracts/{clientId}/sumcost [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.sumcost"
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

	total, err := h.service.SumActiveContractsCost(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, models.ErrClientNotFound) {
			log.Info("active client not found", slog.Int64("client_id", clientID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("client not found"))
			return
		}
		log.Error("failed to sum contracts cost", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not sum contracts cost"))
		return
	}

	log.Info("success to sum contracts cost", slog.Int64("client_id", clientID),
		slog.Float64("sum_cost", total))
	render.JSON(w, r, response.StatusOKWithData(models.ContractSumCost{
		ClientID: clientID,
		SumCost:  total,
	}))
}
