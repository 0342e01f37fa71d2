// Package client содержит бизнес-логику жизненного цикла клиентов:
// создание двух вариантов клиента, обновление общих полей, деактивацию
// с каскадным закрытием договоров и преобразование в форму ответа.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/client-contract-manager/internal/lib/clock"
	"github.com/magabrotheeeer/client-contract-manager/internal/models"
)

// ClientRepository определяет методы для работы с клиентами в хранилище.
type ClientRepository interface {
	// CreateClient добавляет нового клиента и возвращает его ID.
	CreateClient(ctx context.Context, client models.Client) (int64, error)
	// GetActiveClientByID возвращает активного клиента или nil.
	GetActiveClientByID(ctx context.Context, id int64) (*models.Client, error)
	// ExistsActiveCompanyIdentifier проверяет занятость идентификатора среди активных компаний.
	ExistsActiveCompanyIdentifier(ctx context.Context, identifier string) (bool, error)
	// UpdateClientCommonFields обновляет имя, телефон и почту активного клиента.
	UpdateClientCommonFields(ctx context.Context, client models.Client) (int, error)
	// SetClientInactive помечает клиента неактивным.
	SetClientInactive(ctx context.Context, id int64) (int, error)
	// WithinTx выполняет fn в одной транзакции хранилища.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ContractCloser закрывает все активные договоры клиента. Узкий интерфейс
// к сервису договоров: взаимная зависимость сервисов разорвана через
// внедрение после конструирования (SetContractCloser).
type ContractCloser interface {
	CloseAllActiveContractsForClient(ctx context.Context, clientID int64) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с клиентами, включая кеширование.
type Service struct {
	repo      ClientRepository
	contracts ContractCloser
	cache     Cache
	clk       clock.Clock
	log       *slog.Logger
}

// New создает новый Service. Сервис договоров подключается отдельно
// через SetContractCloser, когда оба сервиса построены.
func New(repo ClientRepository, cache Cache, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		clk:   clk,
		log:   log,
	}
}

// SetContractCloser подключает сервис договоров для каскадного закрытия.
func (s *Service) SetContractCloser(contracts ContractCloser) {
	s.contracts = contracts
}

// CreateClient создает нового клиента варианта, указанного в запросе.
// Для компании идентификатор не должен быть занят активной компанией,
// для лица дата рождения не должна быть в будущем. Клиент создаётся активным.
func (s *Service) CreateClient(ctx context.Context, req models.DummyClient) (*models.Client, error) {
	entity := models.Client{
		Type:   models.ClientType(req.Type),
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Active: true,
	}

	switch entity.Type {
	case models.ClientTypeCompany:
		exists, err := s.repo.ExistsActiveCompanyIdentifier(ctx, req.CompanyIdentifier)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("company identifier %q: %w",
				req.CompanyIdentifier, models.ErrCompanyIdentifierTaken)
		}
		identifier := req.CompanyIdentifier
		entity.CompanyIdentifier = &identifier
	case models.ClientTypePerson:
		birthdate, err := time.Parse("2006-01-02", req.Birthdate)
		if err != nil {
			return nil, fmt.Errorf("invalid birthdate: %w", err)
		}
		if birthdate.After(s.clk.Today()) {
			return nil, models.ErrBirthdateInFuture
		}
		entity.Birthdate = &birthdate
	default:
		// Недостижимо, пока валидатор ограничивает type множеством person/company.
		return nil, fmt.Errorf("client type %q: %w", req.Type, models.ErrUnsupportedClientType)
	}

	id, err := s.repo.CreateClient(ctx, entity)
	if err != nil {
		return nil, err
	}
	entity.ID = id

	s.log.Info("created new client", slog.Int64("id", id), slog.String("type", req.Type))

	cacheKey := fmt.Sprintf("client:%d", id)
	if err := s.cache.Set(cacheKey, entity, time.Hour); err != nil {
		s.log.Warn("failed to cache client", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return &entity, nil
}

// FindActiveClient возвращает клиента по ID, только если он активен,
// используя кеш или репозиторий. Отсутствие активного клиента не является
// ошибкой: возвращается nil.
func (s *Service) FindActiveClient(ctx context.Context, id int64) (*models.Client, error) {
	var result *models.Client
	cacheKey := fmt.Sprintf("client:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found && result != nil && result.Active {
		return result, nil
	}
	result, err = s.repo.GetActiveClientByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey),
				slog.Any("err", err))
		}
	}
	return result, nil
}

// UpdateActiveClient обновляет общие поля активного клиента.
// Вариант запроса должен совпадать с вариантом сохранённого клиента;
// поле варианта (дата рождения / идентификатор компании) не изменяется,
// даже если пришло в запросе.
func (s *Service) UpdateActiveClient(ctx context.Context, id int64, req models.DummyClient) (*models.Client, error) {
	entity, err := s.FindActiveClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, fmt.Errorf("client %d: %w", id, models.ErrClientNotFound)
	}
	if entity.Type != models.ClientType(req.Type) {
		return nil, fmt.Errorf("stored %s, request %s: %w",
			entity.Type, req.Type, models.ErrClientTypeMismatch)
	}

	entity.Name = req.Name
	entity.Phone = req.Phone
	entity.Email = req.Email

	if _, err := s.repo.UpdateClientCommonFields(ctx, *entity); err != nil {
		return nil, err
	}
	s.log.Info("updated client in storage", slog.Int64("id", id))

	cacheKey := fmt.Sprintf("client:%d", id)
	if err := s.cache.Set(cacheKey, entity, time.Hour); err != nil {
		s.log.Warn("failed to cache client", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return entity, nil
}

// DeactivateClient деактивирует клиента. Сначала каскадно закрываются все
// его активные договоры, затем снимается флаг active; обе записи выполняются
// в одной транзакции, поэтому частичная деактивация невозможна.
func (s *Service) DeactivateClient(ctx context.Context, id int64) error {
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		entity, err := s.repo.GetActiveClientByID(ctx, id)
		if err != nil {
			return err
		}
		if entity == nil {
			return fmt.Errorf("client %d: %w", id, models.ErrClientNotFound)
		}
		if err := s.contracts.CloseAllActiveContractsForClient(ctx, id); err != nil {
			return err
		}
		_, err = s.repo.SetClientInactive(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	s.log.Info("deactivated client", slog.Int64("id", id))

	cacheKey := fmt.Sprintf("client:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}

// ToResponse преобразует клиента в форму ответа: общие поля плюс
// поле своего варианта.
func ToResponse(entity *models.Client) (models.ClientResponse, error) {
	resp := models.ClientResponse{
		ID:     entity.ID,
		Type:   string(entity.Type),
		Name:   entity.Name,
		Phone:  entity.Phone,
		Email:  entity.Email,
		Active: entity.Active,
	}
	switch entity.Type {
	case models.ClientTypePerson:
		if entity.Birthdate != nil {
			birthdate := entity.Birthdate.Format("2006-01-02")
			resp.Birthdate = &birthdate
		}
	case models.ClientTypeCompany:
		resp.CompanyIdentifier = entity.CompanyIdentifier
	default:
		// Недостижимо, пока множество вариантов закрыто.
		return models.ClientResponse{}, fmt.Errorf("client type %q: %w",
			entity.Type, models.ErrUnsupportedClientType)
	}
	return resp, nil
}
