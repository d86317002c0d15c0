package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/google/uuid"
)

// clockLayout is the wall-clock format of opening hours.
const clockLayout = "15:04"

// Schedule is one weekly opening slot of an UMKM.
type Schedule struct {
	id        uuid.UUID
	umkmID    uuid.UUID
	dayOfWeek time.Weekday
	startTime string
	endTime   string
	available bool
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// ParseDay maps an English weekday name to time.Weekday.
func ParseDay(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid day of week: %s", s)
}

// DayName is the stored form of d.
func DayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}

func validateHours(start, end string) error {
	s, err := time.Parse(clockLayout, start)
	if err != nil {
		return domain.NewValidationError("start_time must be HH:MM")
	}
	e, err := time.Parse(clockLayout, end)
	if err != nil {
		return domain.NewValidationError("end_time must be HH:MM")
	}
	if !s.Before(e) {
		return domain.NewValidationError("start_time must be before end_time")
	}
	return nil
}

// NewSchedule creates an available slot.
func NewSchedule(umkmID uuid.UUID, day string, startTime, endTime string, now time.Time) (*Schedule, error) {
	if umkmID == uuid.Nil {
		return nil, domain.NewValidationError("UMKM ID is required")
	}
	d, err := ParseDay(day)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if err := validateHours(startTime, endTime); err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Schedule{
		id:        uuid.New(),
		umkmID:    umkmID,
		dayOfWeek: d,
		startTime: startTime,
		endTime:   endTime,
		available: true,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Schedule from persistence data (no validation).
func Reconstruct(
	id, umkmID uuid.UUID,
	dayOfWeek time.Weekday,
	startTime, endTime string,
	available bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Schedule {
	return &Schedule{
		id:        id,
		umkmID:    umkmID,
		dayOfWeek: dayOfWeek,
		startTime: startTime,
		endTime:   endTime,
		available: available,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Schedule) ID() uuid.UUID           { return s.id }
func (s *Schedule) UMKMID() uuid.UUID       { return s.umkmID }
func (s *Schedule) DayOfWeek() time.Weekday { return s.dayOfWeek }
func (s *Schedule) StartTime() string       { return s.startTime }
func (s *Schedule) EndTime() string         { return s.endTime }
func (s *Schedule) IsAvailable() bool       { return s.available }
func (s *Schedule) Version() int64          { return s.version }
func (s *Schedule) CreatedAt() time.Time    { return s.createdAt }
func (s *Schedule) UpdatedAt() time.Time    { return s.updatedAt }

// IsOwnedBy checks if the slot belongs to the given UMKM.
func (s *Schedule) IsOwnedBy(umkmID uuid.UUID) bool {
	return s.umkmID == umkmID
}

// Update applies partial updates. Nil fields are left unchanged.
func (s *Schedule) Update(day, startTime, endTime *string, available *bool, now time.Time) error {
	d := s.dayOfWeek
	if day != nil {
		parsed, err := ParseDay(*day)
		if err != nil {
			return domain.NewValidationError(err.Error())
		}
		d = parsed
	}
	start, end := s.startTime, s.endTime
	if startTime != nil {
		start = *startTime
	}
	if endTime != nil {
		end = *endTime
	}
	if err := validateHours(start, end); err != nil {
		return err
	}

	s.dayOfWeek = d
	s.startTime = start
	s.endTime = end
	if available != nil {
		s.available = *available
	}
	s.version++
	s.updatedAt = now.UTC()
	return nil
}

// OpenOn reports whether an UMKM with the given slots accepts bookings on
// weekday d. An UMKM that has published no slots is open every day.
func OpenOn(slots []*Schedule, d time.Weekday) bool {
	if len(slots) == 0 {
		return true
	}
	for _, s := range slots {
		if s.available && s.dayOfWeek == d {
			return true
		}
	}
	return false
}
