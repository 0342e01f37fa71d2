package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/client-contract-manager/internal/models"
)

// CreateContract вставляет новый договор и возвращает его ID.
func (s *Storage) CreateContract(ctx context.Context, contract models.Contract) (int64, error) {
	const op = "storage.CreateContract"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO contract (client_id, start_date, end_date, cost_amount, update_date)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.querier(ctx).QueryRowContext(ctx, query,
		contract.ClientID, contract.StartDate, contract.EndDate,
		contract.CostAmount, contract.UpdateDate).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetActiveContractByID возвращает договор по ID, только если он активен
// на дату asOf: end_date пуст или строго позже asOf. Отсутствие активного
// договора не является ошибкой: возвращается nil.
func (s *Storage) GetActiveContractByID(ctx context.Context, id int64, asOf time.Time) (*models.Contract, error) {
	const op = "storage.GetActiveContractByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, client_id, start_date, end_date, cost_amount, update_date
			  FROM contract
			  WHERE id = $1
			    AND (end_date IS NULL OR $2 < end_date)`
	row := s.querier(ctx).QueryRowContext(ctx, query, id, asOf)

	result, err := scanContract(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListActiveContractsForClient возвращает договоры клиента, активные на дату asOf.
func (s *Storage) ListActiveContractsForClient(ctx context.Context, clientID int64, asOf time.Time) ([]*models.Contract, error) {
	const op = "storage.ListActiveContractsForClient"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, client_id, start_date, end_date, cost_amount, update_date
			  FROM contract
			  WHERE client_id = $1
			    AND (end_date IS NULL OR $2 < end_date)
			  ORDER BY id`
	rows, err := s.querier(ctx).QueryContext(ctx, query, clientID, asOf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collectContracts(op, rows)
}

// ListActiveContractsForClientInUpdateWindow возвращает договоры клиента,
// активные на дату asOf, с датой изменения в границах [after, before].
// Каждая граница независима и включительна; nil не ограничивает результат
// с соответствующей стороны.
func (s *Storage) ListActiveContractsForClientInUpdateWindow(ctx context.Context, clientID int64, asOf time.Time, after, before *time.Time) ([]*models.Contract, error) {
	const op = "storage.ListActiveContractsForClientInUpdateWindow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, client_id, start_date, end_date, cost_amount, update_date
			  FROM contract
			  WHERE client_id = $1
			    AND (end_date IS NULL OR $2 < end_date)
			    AND ($3::date IS NULL OR update_date >= $3)
			    AND ($4::date IS NULL OR update_date <= $4)
			  ORDER BY id`
	rows, err := s.querier(ctx).QueryContext(ctx, query, clientID, asOf, after, before)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collectContracts(op, rows)
}

// SumActiveContractsCost подсчитывает суммарную стоимость договоров клиента,
// активных на дату asOf. Без активных договоров возвращает ноль.
func (s *Storage) SumActiveContractsCost(ctx context.Context, clientID int64, asOf time.Time) (float64, error) {
	const op = "storage.SumActiveContractsCost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(cost_amount), 0)
			  FROM contract
			  WHERE client_id = $1
			    AND (end_date IS NULL OR $2 < end_date)`
	var total float64
	err := s.querier(ctx).QueryRowContext(ctx, query, clientID, asOf).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// UpdateContractCost обновляет стоимость договора, ставит дату изменения
// и возвращает количество изменённых строк.
func (s *Storage) UpdateContractCost(ctx context.Context, id int64, costAmount float64, updateDate time.Time) (int, error) {
	const op = "storage.UpdateContractCost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE contract
			  SET cost_amount = $1, update_date = $2
			  WHERE id = $3`
	result, err := s.querier(ctx).ExecContext(ctx, query, costAmount, updateDate, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CloseActiveContractsForClient закрывает все договоры клиента, активные
// на дату today: end_date и update_date получают значение today одним
// запросом, поэтому пакет закрывается атомарно. Возвращает количество
// закрытых договоров. Уже закрытые договоры не затрагиваются.
func (s *Storage) CloseActiveContractsForClient(ctx context.Context, clientID int64, today time.Time) (int, error) {
	const op = "storage.CloseActiveContractsForClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE contract
			  SET end_date = $2, update_date = $2
			  WHERE client_id = $1
			    AND (end_date IS NULL OR $2 < end_date)`
	result, err := s.querier(ctx).ExecContext(ctx, query, clientID, today)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*models.Contract, error) {
	var item models.Contract
	var endDate sql.NullTime
	if err := row.Scan(&item.ID, &item.ClientID, &item.StartDate, &endDate,
		&item.CostAmount, &item.UpdateDate); err != nil {
		return nil, err
	}
	if endDate.Valid {
		item.EndDate = &endDate.Time
	}
	return &item, nil
}

func collectContracts(op string, rows *sql.Rows) ([]*models.Contract, error) {
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Contract
	for rows.Next() {
		item, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
