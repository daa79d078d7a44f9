package models

import (
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
)

// PatientResponse ответ с данными пациента
type PatientResponse struct {
	ID        int64     `json:"id"`
	DentistID int64     `json:"dentistId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PatientListResponse ответ со списком пациентов клиники
type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
}

// FromDomainPatient конвертирует domain модель в DTO
func FromDomainPatient(p *domain.Patient) *PatientResponse {
	if p == nil {
		return nil
	}

	return &PatientResponse{
		ID:        p.ID,
		DentistID: p.DentistID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

// FromDomainPatientList конвертирует список domain моделей в DTO
func FromDomainPatientList(patients []*domain.Patient) *PatientListResponse {
	if patients == nil {
		return &PatientListResponse{Patients: []PatientResponse{}}
	}

	resp := &PatientListResponse{
		Patients: make([]PatientResponse, len(patients)),
	}

	for i, patient := range patients {
		if patientResp := FromDomainPatient(patient); patientResp != nil {
			resp.Patients[i] = *patientResp
		}
	}

	return resp
}
