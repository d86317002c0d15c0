package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay(" Wednesday ")
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, d)
	assert.Equal(t, "wednesday", DayName(d))

	_, err = ParseDay("rabu")
	assert.Error(t, err)
}

func TestNewScheduleValidation(t *testing.T) {
	now := time.Now()
	umkm := uuid.New()

	cases := []struct {
		name            string
		umkm            uuid.UUID
		day, start, end string
	}{
		{"nil umkm", uuid.Nil, "monday", "08:00", "17:00"},
		{"bad day", umkm, "someday", "08:00", "17:00"},
		{"bad start", umkm, "monday", "8am", "17:00"},
		{"bad end", umkm, "monday", "08:00", "25:00"},
		{"start after end", umkm, "monday", "17:00", "08:00"},
		{"empty range", umkm, "monday", "08:00", "08:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSchedule(tc.umkm, tc.day, tc.start, tc.end, now)
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
		})
	}

	s, err := NewSchedule(umkm, "Monday", "08:00", "17:00", now)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, s.DayOfWeek())
	assert.True(t, s.IsAvailable())
	assert.Equal(t, int64(1), s.Version())
	assert.True(t, s.IsOwnedBy(umkm))
}

func TestScheduleUpdateLeavesSlotOnError(t *testing.T) {
	s, err := NewSchedule(uuid.New(), "monday", "08:00", "17:00", time.Now())
	require.NoError(t, err)

	day, start := "tuesday", "18:00"
	err = s.Update(&day, &start, nil, nil, time.Now())
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, time.Monday, s.DayOfWeek())
	assert.Equal(t, "08:00", s.StartTime())
	assert.Equal(t, int64(1), s.Version())

	closed := false
	require.NoError(t, s.Update(&day, nil, nil, &closed, time.Now()))
	assert.Equal(t, time.Tuesday, s.DayOfWeek())
	assert.False(t, s.IsAvailable())
	assert.Equal(t, int64(2), s.Version())
}

func TestOpenOn(t *testing.T) {
	umkm := uuid.New()
	monday, err := NewSchedule(umkm, "monday", "08:00", "17:00", time.Now())
	require.NoError(t, err)
	friday, err := NewSchedule(umkm, "friday", "08:00", "12:00", time.Now())
	require.NoError(t, err)
	closed := false
	require.NoError(t, friday.Update(nil, nil, nil, &closed, time.Now()))

	assert.True(t, OpenOn(nil, time.Sunday), "no slots means open every day")
	slots := []*Schedule{monday, friday}
	assert.True(t, OpenOn(slots, time.Monday))
	assert.False(t, OpenOn(slots, time.Friday), "unavailable slot")
	assert.False(t, OpenOn(slots, time.Wednesday))
}
