// Package models содержит доменные структуры клиентов и договоров,
// а также вспомогательные типы для работы с данными из внешних источников (например, JSON-запросы).
package models

import "time"

// ClientType определяет вариант клиента. Множество вариантов закрыто:
// физическое лицо или компания.
type ClientType string

const (
	// ClientTypePerson — физическое лицо.
	ClientTypePerson ClientType = "person"
	// ClientTypeCompany — компания.
	ClientTypeCompany ClientType = "company"
)

// Client представляет собой основную модель клиента,
// используемую в бизнес-логике и хранилище.
// Общие поля одинаковы для обоих вариантов; поле варианта определяется тегом Type:
// Birthdate заполняется только для person, CompanyIdentifier — только для company.
// Поле варианта задаётся при создании и далее не изменяется.
type Client struct {
	ID                int64      // Идентификатор
	Type              ClientType // Тег варианта: person или company
	Name              string     // Название компании или фамилия лица
	Phone             string     // Номер телефона
	Email             string     // Адрес электронной почты
	Active            bool       // Активен ли клиент (деактивация необратима)
	Birthdate         *time.Time // Дата рождения (только person)
	CompanyIdentifier *string    // Идентификатор компании (только company)
}

// DummyClient используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Client.
// Даты приходят в виде строк, чтобы их можно было валидировать и парсить вручную.
type DummyClient struct {
	Type              string `json:"type" validate:"required,oneof=person company"`    // Тег варианта
	Name              string `json:"name" validate:"required"`                         // Название или фамилия
	Phone             string `json:"phone" validate:"required"`                        // Номер телефона
	Email             string `json:"email" validate:"required,email"`                  // Адрес электронной почты
	Birthdate         string `json:"birthdate,omitempty" validate:"omitempty,datetime=2006-01-02"` // Дата рождения в формате 2006-01-02
	CompanyIdentifier string `json:"company_identifier,omitempty"`                     // Идентификатор компании
}

// ClientResponse описывает клиента в ответе API: общие поля плюс
// поле варианта, второе поле варианта опускается.
type ClientResponse struct {
	ID                int64   `json:"id"`
	Type              string  `json:"type"`
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	Email             string  `json:"email"`
	Active            bool    `json:"active"`
	Birthdate         *string `json:"birthdate,omitempty"`
	CompanyIdentifier *string `json:"company_identifier,omitempty"`
}
