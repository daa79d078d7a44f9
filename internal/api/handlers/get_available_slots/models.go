package get_available_slots

import (
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	getAvailableSlots "github.com/ilyassrachouady/rdvdb-booking-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	DentistID int64           `json:"dentistId"`
	ServiceID int64           `json:"serviceId"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			AvailableSpots:  slot.Remaining,
			TotalSpots:      slot.Capacity,
		}
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		DentistID: resp.DentistID,
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(dentistID, serviceID int64, dateStr, sessionID string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		DentistID: dentistID,
		ServiceID: serviceID,
		Date:      date,
		SessionID: sessionID,
	}, nil
}
