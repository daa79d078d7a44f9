package patients

import "errors"

var (
	// ErrPatientNotFound возвращается, когда пациент не найден
	ErrPatientNotFound = errors.New("patient not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
