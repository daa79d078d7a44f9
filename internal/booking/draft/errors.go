package draft

import "errors"

var (
	// ErrInvalidTransition возвращается при переходе, недопустимом из текущего состояния
	ErrInvalidTransition = errors.New("draft: invalid state transition")

	// ErrIncompleteStep возвращается, когда шаг не заполнен для продвижения вперёд
	ErrIncompleteStep = errors.New("draft: step is incomplete")

	// ErrSlotTaken возвращается, когда выбранный слот занят на момент выбора
	ErrSlotTaken = errors.New("draft: selected slot is not available")

	// ErrInvalidPhone возвращается, когда телефон пациента не прошёл валидацию
	ErrInvalidPhone = errors.New("draft: invalid patient phone number")

	// ErrTerminalState возвращается при попытке изменить завершённый черновик
	ErrTerminalState = errors.New("draft: draft is in a terminal state")
)
