package create_appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createAppointment "github.com/ilyassrachouady/rdvdb-booking-service/internal/usecase/create_appointment"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

type stubUseCase struct {
	resp *createAppointment.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, _ *createAppointment.Request) (*createAppointment.Response, error) {
	return s.resp, s.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc CreateAppointmentUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, noopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const validBody = `{
	"dentistId": 10,
	"serviceId": 3,
	"appointmentDate": "2026-09-15",
	"startTime": "10:00",
	"patientName": "Анна Петрова",
	"patientPhone": "+79991234567"
}`

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &createAppointment.Response{
		ID:        7,
		DentistID: 10,
		PatientID: 42,
		ServiceID: 3,
		StartTime: types.TimeString("10:00"),
		Status:    "pending",
	}}

	rec := doRequest(t, uc, validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "pending", resp.Status)
}

func TestHandle_SlotConflictWithSuggestion(t *testing.T) {
	suggested := types.TimeString("10:30")
	uc := &stubUseCase{err: &createAppointment.SlotUnavailableError{SuggestedTime: &suggested}}

	rec := doRequest(t, uc, validBody)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.SuggestedTime)
	assert.Equal(t, "10:30", *resp.SuggestedTime)
}

func TestHandle_SlotConflictWithoutSuggestion(t *testing.T) {
	uc := &stubUseCase{err: &createAppointment.SlotUnavailableError{}}

	rec := doRequest(t, uc, validBody)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.SuggestedTime)
}

func TestHandle_InvalidDate(t *testing.T) {
	rec := doRequest(t, &stubUseCase{}, `{"appointmentDate": "15.09.2026", "startTime": "10:00"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := doRequest(t, &stubUseCase{}, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_UnknownServiceMapsToNotFound(t *testing.T) {
	uc := &stubUseCase{err: createAppointment.ErrServiceNotFound}

	rec := doRequest(t, uc, validBody)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
