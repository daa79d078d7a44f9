package clinicconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация слотов не найдена
	ErrConfigNotFound = errors.New("clinicconfig.repository: config not found")

	// ErrScheduleNotFound возвращается, когда расписание клиники не найдено
	ErrScheduleNotFound = errors.New("clinicconfig.repository: schedule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("clinicconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("clinicconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("clinicconfig.repository: failed to scan row")

	// ErrDuplicateConfig возвращается при попытке создать дубликат конфигурации
	ErrDuplicateConfig = errors.New("clinicconfig.repository: duplicate config for dentist and service")
)
