package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/client-contract-manager/internal/models"
)

// CreateClient вставляет нового клиента и возвращает его ID.
func (s *Storage) CreateClient(ctx context.Context, client models.Client) (int64, error) {
	const op = "storage.CreateClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO client (client_type, name, phone, email, active,
			      birthdate, company_identifier)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int64
	err := s.querier(ctx).QueryRowContext(ctx, query,
		client.Type, client.Name, client.Phone, client.Email, client.Active,
		client.Birthdate, client.CompanyIdentifier).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetActiveClientByID возвращает клиента по ID, только если он активен.
// Отсутствие активного клиента не является ошибкой: возвращается nil.
func (s *Storage) GetActiveClientByID(ctx context.Context, id int64) (*models.Client, error) {
	const op = "storage.GetActiveClientByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, client_type, name, phone, email, active,
			      birthdate, company_identifier
			  FROM client
			  WHERE id = $1
			    AND active = true`
	row := s.querier(ctx).QueryRowContext(ctx, query, id)

	var result models.Client
	var birthdate sql.NullTime
	var companyIdentifier sql.NullString
	if err := row.Scan(&result.ID, &result.Type, &result.Name, &result.Phone,
		&result.Email, &result.Active, &birthdate, &companyIdentifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if birthdate.Valid {
		result.Birthdate = &birthdate.Time
	}
	if companyIdentifier.Valid {
		result.CompanyIdentifier = &companyIdentifier.String
	}
	return &result, nil
}

// ExistsActiveCompanyIdentifier проверяет, занят ли идентификатор компании
// среди активных компаний. Идентификаторы деактивированных компаний свободны.
func (s *Storage) ExistsActiveCompanyIdentifier(ctx context.Context, identifier string) (bool, error) {
	const op = "storage.ExistsActiveCompanyIdentifier"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
			      SELECT 1
			      FROM client
			      WHERE client_type = $1
			        AND company_identifier = $2
			        AND active = true)`
	var exists bool
	err := s.querier(ctx).QueryRowContext(ctx, query,
		models.ClientTypeCompany, identifier).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UpdateClientCommonFields обновляет общие поля активного клиента и возвращает
// количество изменённых строк. Поле варианта (birthdate / company_identifier)
// намеренно не затрагивается.
func (s *Storage) UpdateClientCommonFields(ctx context.Context, client models.Client) (int, error) {
	const op = "storage.UpdateClientCommonFields"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE client
			  SET name = $1, phone = $2, email = $3
			  WHERE id = $4
			    AND active = true`
	result, err := s.querier(ctx).ExecContext(ctx, query,
		client.Name, client.Phone, client.Email, client.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SetClientInactive помечает клиента неактивным и возвращает количество
// изменённых строк. Обратного перехода нет.
func (s *Storage) SetClientInactive(ctx context.Context, id int64) (int, error) {
	const op = "storage.SetClientInactive"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE client
			  SET active = false
			  WHERE id = $1
			    AND active = true`
	result, err := s.querier(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
