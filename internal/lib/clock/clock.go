// Package clock предоставляет интерфейс источника текущей даты.
// Дата отсчёта передаётся в бизнес-логику и запросы хранилища явно,
// поэтому тесты могут зафиксировать «сегодня».
package clock

import "time"

// Clock возвращает текущую дату с точностью до дня.
type Clock interface {
	// Today возвращает текущую дату в UTC, усечённую до начала дня.
	Today() time.Time
}

// SystemClock реализует Clock на основе системного времени.
type SystemClock struct{}

// Today возвращает сегодняшнюю дату в UTC.
func (SystemClock) Today() time.Time {
	return Day(time.Now())
}

// Fixed возвращает Clock, всегда сообщающий одну и ту же дату.
func Fixed(t time.Time) Clock {
	return fixedClock{day: Day(t)}
}

type fixedClock struct {
	day time.Time
}

func (c fixedClock) Today() time.Time {
	return c.day
}

// Day усекает момент времени до начала дня в UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
