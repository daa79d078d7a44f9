package get_dentist_appointments

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	dentistID int64,
	userID int64,
	dateStr string,
	startDateStr string,
	endDateStr string,
	statusStr string,
	includeInactiveStr string,
) (*models.GetDentistAppointmentsRequest, error) {
	req := &models.GetDentistAppointmentsRequest{
		UserID:          userID,
		DentistID:       dentistID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// date - сокращение для запроса одного дня
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	}

	// Парсим startDate если указана
	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	// Парсим endDate если указана
	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
