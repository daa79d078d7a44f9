package domain

import "time"

// Service услуга клиники
// ID стабилен после создания; переименование допустимо, ссылки из приёмов
// сохраняются через денормализацию названия и цены
type Service struct {
	ID              int64
	DentistID       int64
	Name            string
	DurationMinutes int
	Price           float64
	Description     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
