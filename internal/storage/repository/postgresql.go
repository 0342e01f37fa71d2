// Package repository реализует хранилище данных на основе PostgreSQL
// для управления клиентами и договорами. Предоставляет методы
// создания, чтения, обновления и агрегирования записей, а также
// выполнение группы операций в одной транзакции.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DBTX объединяет *sql.DB и *sql.Tx: методы хранилища работают
// одинаково и с пулом соединений, и внутри транзакции.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с клиентами и договорами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

type txContextKey struct{}

// WithinTx выполняет fn в одной транзакции. Транзакция кладётся в контекст,
// поэтому все методы хранилища, вызванные внутри fn с этим контекстом
// (в том числе через другие сервисы), попадают в ту же транзакцию.
// Ошибка fn откатывает все изменения.
func (s *Storage) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	const op = "storage.WithinTx"

	if _, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		// Уже внутри транзакции, вложенные единицы работы не открываются.
		return fn(ctx)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%s: rollback: %w", op, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// querier возвращает исполнителя запросов: транзакцию из контекста,
// если она есть, иначе пул соединений.
func (s *Storage) querier(ctx context.Context) DBTX {
	if tx, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.DB
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'client'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table client missing or query error: %w", err)
	}
	return nil
}
