package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда приём не найден
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("appointment.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("appointment.repository: invalid appointment status")

	// ErrCannotCancel возвращается, когда приём не может быть отменён
	ErrCannotCancel = errors.New("appointment.repository: appointment cannot be cancelled")
)
