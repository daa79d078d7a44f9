package patient

import "errors"

var (
	// ErrPatientNotFound возвращается, когда пациент не найден
	ErrPatientNotFound = errors.New("patient.repository: patient not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("patient.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("patient.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("patient.repository: failed to scan row")
)
