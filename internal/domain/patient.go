package domain

import "time"

// Patient пациент клиники
// Уникален в пределах клиники по номеру телефона: повторное бронирование
// с тем же телефоном переиспользует существующую запись
type Patient struct {
	ID        int64
	DentistID int64
	Name      string
	Phone     string // Нормализованный номер (E.164)
	Email     *string
	Notes     *string
	CreatedAt time.Time
}

// ContactInfo контактные данные пациента, введённые при оформлении записи.
// Сохраняются для автозаполнения следующей записи только с согласия пациента.
type ContactInfo struct {
	Name  string
	Phone string
	Email *string
}
