// Package contract содержит бизнес-логику договоров: создание договора
// для активного клиента, выборку и суммирование активных на дату договоров,
// обновление стоимости и каскадное закрытие при деактивации клиента.
package contract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/client-contract-manager/internal/lib/clock"
	"github.com/magabrotheeeer/client-contract-manager/internal/models"
)

// ContractRepository определяет методы для работы с договорами в хранилище.
type ContractRepository interface {
	// CreateContract добавляет новый договор и возвращает его ID.
	CreateContract(ctx context.Context, contract models.Contract) (int64, error)
	// GetActiveContractByID возвращает договор, активный на дату asOf, или nil.
	GetActiveContractByID(ctx context.Context, id int64, asOf time.Time) (*models.Contract, error)
	// ListActiveContractsForClient возвращает договоры клиента, активные на дату asOf.
	ListActiveContractsForClient(ctx context.Context, clientID int64, asOf time.Time) ([]*models.Contract, error)
	// ListActiveContractsForClientInUpdateWindow дополнительно фильтрует по дате изменения.
	ListActiveContractsForClientInUpdateWindow(ctx context.Context, clientID int64, asOf time.Time, after, before *time.Time) ([]*models.Contract, error)
	// SumActiveContractsCost подсчитывает суммарную стоимость активных договоров клиента.
	SumActiveContractsCost(ctx context.Context, clientID int64, asOf time.Time) (float64, error)
	// UpdateContractCost обновляет стоимость договора и дату изменения.
	UpdateContractCost(ctx context.Context, id int64, costAmount float64, updateDate time.Time) (int, error)
	// CloseActiveContractsForClient закрывает все активные договоры клиента датой today.
	CloseActiveContractsForClient(ctx context.Context, clientID int64, today time.Time) (int, error)
}

// ActiveClientFinder ищет активного клиента. Узкий интерфейс к сервису
// клиентов: сервису договоров нужна только проверка существования.
type ActiveClientFinder interface {
	FindActiveClient(ctx context.Context, id int64) (*models.Client, error)
}

// Service реализует бизнес-логику работы с договорами.
type Service struct {
	repo    ContractRepository
	clients ActiveClientFinder
	clk     clock.Clock
	log     *slog.Logger
}

// New создает новый Service.
func New(repo ContractRepository, clients ActiveClientFinder, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		clients: clients,
		clk:     clk,
		log:     log,
	}
}

// CreateContractForClient создает новый договор для активного клиента.
// Пустая дата начала заменяется сегодняшней, пустая дата окончания означает
// бессрочный договор. Дата начала не может быть позже даты окончания.
func (s *Service) CreateContractForClient(ctx context.Context, clientID int64, req models.DummyContract) (*models.Contract, error) {
	owner, err := s.clients.FindActiveClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("client %d: %w", clientID, models.ErrClientNotFound)
	}

	today := s.clk.Today()
	entity := models.Contract{
		ClientID:   clientID,
		StartDate:  today,
		CostAmount: req.CostAmount,
		UpdateDate: today,
	}
	if req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
		entity.StartDate = startDate
	}
	if req.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
		if entity.StartDate.After(endDate) {
			return nil, fmt.Errorf("start %s after end %s: %w",
				entity.StartDate.Format("2006-01-02"), req.EndDate, models.ErrInvalidDateRange)
		}
		entity.EndDate = &endDate
	}

	id, err := s.repo.CreateContract(ctx, entity)
	if err != nil {
		return nil, err
	}
	entity.ID = id

	s.log.Info("created new contract", slog.Int64("id", id), slog.Int64("client_id", clientID))
	return &entity, nil
}

// FindActiveContractsForClient возвращает договоры клиента, активные на
// сегодняшнюю дату, с необязательным фильтром по дате последнего изменения.
// Клиент должен существовать и быть активным.
func (s *Service) FindActiveContractsForClient(ctx context.Context, clientID int64, filter models.DummyContractFilter) ([]*models.Contract, error) {
	owner, err := s.clients.FindActiveClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("client %d: %w", clientID, models.ErrClientNotFound)
	}

	today := s.clk.Today()
	if filter.UpdatedAfter == "" && filter.UpdatedBefore == "" {
		return s.repo.ListActiveContractsForClient(ctx, clientID, today)
	}

	var after, before *time.Time
	if filter.UpdatedAfter != "" {
		parsed, err := time.Parse("2006-01-02", filter.UpdatedAfter)
		if err != nil {
			return nil, fmt.Errorf("invalid updated_after: %w", err)
		}
		after = &parsed
	}
	if filter.UpdatedBefore != "" {
		parsed, err := time.Parse("2006-01-02", filter.UpdatedBefore)
		if err != nil {
			return nil, fmt.Errorf("invalid updated_before: %w", err)
		}
		before = &parsed
	}
	return s.repo.ListActiveContractsForClientInUpdateWindow(ctx, clientID, today, after, before)
}

// SumActiveContractsCost подсчитывает суммарную стоимость договоров клиента,
// активных на сегодняшнюю дату. Без активных договоров возвращает ноль.
// Клиент должен существовать и быть активным.
func (s *Service) SumActiveContractsCost(ctx context.Context, clientID int64) (float64, error) {
	owner, err := s.clients.FindActiveClient(ctx, clientID)
	if err != nil {
		return 0, err
	}
	if owner == nil {
		return 0, fmt.Errorf("client %d: %w", clientID, models.ErrClientNotFound)
	}
	return s.repo.SumActiveContractsCost(ctx, clientID, s.clk.Today())
}

// UpdateContractCost обновляет стоимость договора, активного на сегодняшнюю
// дату, и ставит дату изменения. Закрытый договор обновить нельзя.
func (s *Service) UpdateContractCost(ctx context.Context, id int64, req models.DummyContractCost) (*models.Contract, error) {
	today := s.clk.Today()
	entity, err := s.repo.GetActiveContractByID(ctx, id, today)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, fmt.Errorf("contract %d: %w", id, models.ErrContractNotFound)
	}

	if _, err := s.repo.UpdateContractCost(ctx, id, req.CostAmount, today); err != nil {
		return nil, err
	}
	entity.CostAmount = req.CostAmount
	entity.UpdateDate = today

	s.log.Info("updated contract cost", slog.Int64("id", id))
	return entity, nil
}

// CloseAllActiveContractsForClient закрывает все активные договоры клиента
// сегодняшней датой. Вызывается сервисом клиентов при деактивации внутри
// общей транзакции; существование клиента здесь повторно не проверяется.
func (s *Service) CloseAllActiveContractsForClient(ctx context.Context, clientID int64) error {
	closed, err := s.repo.CloseActiveContractsForClient(ctx, clientID, s.clk.Today())
	if err != nil {
		return err
	}
	s.log.Info("closed active contracts", slog.Int64("client_id", clientID),
		slog.Int("count", closed))
	return nil
}

// ToResponse преобразует договор в форму ответа.
func ToResponse(entity *models.Contract) models.ContractResponse {
	resp := models.ContractResponse{
		ID:         entity.ID,
		ClientID:   entity.ClientID,
		StartDate:  entity.StartDate.Format("2006-01-02"),
		CostAmount: entity.CostAmount,
	}
	if entity.EndDate != nil {
		endDate := entity.EndDate.Format("2006-01-02")
		resp.EndDate = &endDate
	}
	return resp
}

// ToResponseList преобразует список договоров в форму ответа.
func ToResponseList(entities []*models.Contract) []models.ContractResponse {
	result := make([]models.ContractResponse, 0, len(entities))
	for _, entity := range entities {
		result = append(result, ToResponse(entity))
	}
	return result
}
