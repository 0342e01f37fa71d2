package models

import "errors"

// Ошибки бизнес-правил. Сервисы возвращают их (обёрнутыми через %w),
// граница HTTP распознаёт их через errors.Is и переводит в статусы ответов.
var (
	// ErrClientNotFound — операция адресует клиента, которого нет или который деактивирован.
	ErrClientNotFound = errors.New("active client not found")
	// ErrContractNotFound — операция адресует договор, которого нет или который уже закрыт.
	ErrContractNotFound = errors.New("active contract not found")
	// ErrCompanyIdentifierTaken — идентификатор компании уже занят активной компанией.
	ErrCompanyIdentifierTaken = errors.New("company identifier already in use")
	// ErrInvalidDateRange — дата начала договора позже даты окончания.
	ErrInvalidDateRange = errors.New("start date is after end date")
	// ErrClientTypeMismatch — вариант запроса не совпадает с вариантом сохранённого клиента.
	ErrClientTypeMismatch = errors.New("client type mismatch")
	// ErrUnsupportedClientType — вариант вне закрытого множества person/company.
	ErrUnsupportedClientType = errors.New("unsupported client type")
	// ErrBirthdateInFuture — дата рождения позже текущей даты.
	ErrBirthdateInFuture = errors.New("birthdate is in the future")
)
