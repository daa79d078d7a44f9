package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes       = 30
	DefaultMaxConcurrentAppointments = 1
	DefaultAdvanceBookingDays        = 0  // 0 = unlimited
	DefaultMinBookingNoticeMinutes   = 60 // 1 hour
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinConcurrentAppointments   = 1
	MaxConcurrentAppointments   = 100
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxPatientNameLength        = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы приёмов, занимающих слот
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// InactiveStatuses статусы приёмов, не занимающих слот
// Используется при подсчёте доступных мест
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}
