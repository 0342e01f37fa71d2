package models

import "time"

// Contract представляет собой договор клиента.
// Поле EndDate может быть nil — это означает отсутствие даты окончания
// (договор бессрочный). Договор активен на дату D, если EndDate равен nil
// или D строго раньше EndDate: в день окончания договор уже не активен.
type Contract struct {
	ID         int64      // Идентификатор
	ClientID   int64      // Клиент, которому принадлежит договор
	StartDate  time.Time  // Дата начала
	EndDate    *time.Time // Дата окончания (nil — бессрочный)
	CostAmount float64    // Стоимость (неотрицательная)
	UpdateDate time.Time  // Дата последнего изменения
}

// DummyContract используется для приёма данных из JSON-запроса на создание договора.
// Обе даты необязательны: пустая StartDate заменяется текущей датой,
// пустая EndDate означает бессрочный договор.
type DummyContract struct {
	StartDate  string  `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"` // Дата начала в формате 2006-01-02
	EndDate    string  `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`   // Дата окончания в формате 2006-01-02
	CostAmount float64 `json:"cost_amount" validate:"gte=0"`                                  // Стоимость (>= 0)
}

// DummyContractCost используется для приёма нового значения стоимости договора.
type DummyContractCost struct {
	CostAmount float64 `json:"cost_amount" validate:"gte=0"` // Новая стоимость (>= 0)
}

// DummyContractFilter задаёт необязательные границы фильтра по дате изменения.
// Каждая граница независима и включительна; пустая строка не ограничивает
// результат с соответствующей стороны.
type DummyContractFilter struct {
	UpdatedAfter  string `json:"updated_after,omitempty" validate:"omitempty,datetime=2006-01-02"`
	UpdatedBefore string `json:"updated_before,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ContractResponse описывает договор в ответе API.
type ContractResponse struct {
	ID         int64   `json:"id"`
	ClientID   int64   `json:"client_id"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date,omitempty"`
	CostAmount float64 `json:"cost_amount"`
}

// ContractSumCost описывает суммарную стоимость активных договоров клиента.
type ContractSumCost struct {
	ClientID int64   `json:"client_id"`
	SumCost  float64 `json:"sum_cost"`
}
