package team

import (
	"errors"
	"testing"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMember(t *testing.T) {
	umkm := uuid.New()

	m, err := NewMember(umkm, " Budi ", "Teknisi", "0812", " Budi@Example.com ", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Budi", m.Name())
	assert.Equal(t, "budi@example.com", m.Email())
	assert.Equal(t, StatusActive, m.Status())
	assert.True(t, m.IsOwnedBy(umkm))

	m, err = NewMember(umkm, "Siti", "Kasir", "", "", time.Now())
	require.NoError(t, err)
	assert.Empty(t, m.Email(), "email is optional")

	for name, args := range map[string][3]string{
		"no name":   {"", "Kasir", ""},
		"no role":   {"Siti", " ", ""},
		"bad email": {"Siti", "Kasir", "not-an-email"},
	} {
		_, err := NewMember(umkm, args[0], args[1], "", args[2], time.Now())
		assert.True(t, errors.Is(err, domain.ErrValidation), name)
	}
	_, err = NewMember(uuid.Nil, "Siti", "Kasir", "", "", time.Now())
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestMemberUpdateStatus(t *testing.T) {
	m, err := NewMember(uuid.New(), "Budi", "Teknisi", "", "", time.Now())
	require.NoError(t, err)

	leave := StatusOnLeave
	require.NoError(t, m.Update(nil, nil, nil, nil, &leave, time.Now()))
	assert.Equal(t, StatusOnLeave, m.Status())
	assert.Equal(t, int64(2), m.Version())

	bogus := Status("retired")
	name := "Budi Santoso"
	err = m.Update(&name, nil, nil, nil, &bogus, time.Now())
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "Budi", m.Name(), "invalid update changes nothing")
	assert.Equal(t, StatusOnLeave, m.Status())
	assert.Equal(t, int64(2), m.Version())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusActive.IsValid())
	assert.True(t, StatusInactive.IsValid())
	assert.True(t, StatusOnLeave.IsValid())
	assert.False(t, Status("").IsValid())
}
