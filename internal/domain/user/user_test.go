package user

import (
	"errors"
	"testing"

	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserHashesPassword(t *testing.T) {
	u, err := NewUser("Budi", " Budi@Example.com ", "rahasia", "0812", auth.RoleCustomer)
	require.NoError(t, err)

	assert.Equal(t, "budi@example.com", u.Email())
	assert.NotEqual(t, "rahasia", u.PasswordHash())
	assert.True(t, u.CheckPassword("rahasia"))
	assert.False(t, u.CheckPassword("salah"))
	assert.True(t, u.IsCustomer())
}

func TestNewUserValidation(t *testing.T) {
	cases := map[string]struct {
		name, email, password string
		role                  auth.Role
	}{
		"no name":    {"", "a@b.co", "rahasia", auth.RoleUMKM},
		"bad email":  {"A", "not-an-email", "rahasia", auth.RoleUMKM},
		"short pass": {"A", "a@b.co", "123", auth.RoleUMKM},
		"bad role":   {"A", "a@b.co", "rahasia", auth.Role("admin")},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewUser(tc.name, tc.email, tc.password, "", tc.role)
			assert.True(t, errors.Is(err, domain.ErrValidation))
		})
	}
}
