package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid end of day", input: "24:00"},
		{name: "no leading zero", input: "9:00", wantErr: true},
		{name: "with seconds", input: "09:00:00", wantErr: true},
		{name: "out of range hours", input: "25:00", wantErr: true},
		{name: "out of range minutes", input: "10:61", wantErr: true},
		{name: "garbage", input: "abcde", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), next)

	next, err = ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), next)

	// Переход через границу суток недопустим
	_, err = TimeString("23:50").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = ts.AddMinutes(-10)
	assert.ErrorIs(t, err, ErrNegativeMinutes)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("10:00").IsAfter("09:30"))
	assert.False(t, TimeString("09:30").IsAfter("09:30"))
	assert.True(t, TimeString("09:30").Equal("09:30"))
}

func TestNewTimeString(t *testing.T) {
	now := time.Date(2026, 9, 14, 14, 5, 59, 0, time.UTC)
	assert.Equal(t, TimeString("14:05"), NewTimeString(now))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30"))
	assert.Equal(t, TimeString("10:30"), ts)

	// TIME колонка в Postgres возвращает "10:30:00"
	require.NoError(t, ts.Scan([]byte("11:00:00")))
	assert.Equal(t, TimeString("11:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}
