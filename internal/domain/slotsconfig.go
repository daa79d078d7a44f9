package domain

import "time"

// ClinicSlotsConfig конфигурация слотов клиники
// Двухуровневая иерархия:
// 1. Для конкретной услуги (dentist_id, service_id)
// 2. Для всей клиники (dentist_id, NULL)
type ClinicSlotsConfig struct {
	ID                        int64
	DentistID                 int64
	ServiceID                 *int64 // NULL = конфигурация для всех услуг
	SlotDurationMinutes       int
	MaxConcurrentAppointments int
	AdvanceBookingDays        int // 0 = без ограничения
	MinBookingNoticeMinutes   int
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// IsClinicWide возвращает true для конфигурации всей клиники
func (c *ClinicSlotsConfig) IsClinicWide() bool {
	return c.ServiceID == nil
}

// IsServiceSpecific возвращает true для конфигурации конкретной услуги
func (c *ClinicSlotsConfig) IsServiceSpecific() bool {
	return c.ServiceID != nil
}

// HasAdvanceBookingLimit возвращает true, если ограничена глубина записи вперед
func (c *ClinicSlotsConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// SupportsParallelAppointments возвращает true, если слот вмещает больше одного приёма
func (c *ClinicSlotsConfig) SupportsParallelAppointments() bool {
	return c.MaxConcurrentAppointments > 1
}
