package application_test

import (
	"errors"
	"testing"

	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamLifecycle(t *testing.T) {
	f := newFixture(t)
	umkmID := f.user(auth.RoleUMKM)

	budi, err := f.team.AddMember(f.ctx, umkmID, application.CreateTeamMemberRequest{Name: "Budi", Role: "Teknisi", Email: "budi@example.com"})
	require.NoError(t, err)
	siti, err := f.team.AddMember(f.ctx, umkmID, application.CreateTeamMemberRequest{Name: "Siti", Role: "Kasir"})
	require.NoError(t, err)
	assert.Equal(t, "active", budi.Status)
	assert.Equal(t, fixedNow, budi.CreatedAt)

	leave := "on_leave"
	updated, err := f.team.UpdateMember(f.ctx, umkmID, siti.ID, application.UpdateTeamMemberRequest{Status: &leave})
	require.NoError(t, err)
	assert.Equal(t, "on_leave", updated.Status)
	assert.Equal(t, int64(2), updated.Version)

	all, err := f.team.ListMembers(f.ctx, umkmID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := f.team.ListMembers(f.ctx, umkmID, "active")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, budi.ID, active[0].ID)

	_, err = f.team.ListMembers(f.ctx, umkmID, "fired")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	got, err := f.team.GetMember(f.ctx, umkmID, budi.ID)
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", got.Email)

	require.NoError(t, f.team.RemoveMember(f.ctx, umkmID, budi.ID))
	assert.Equal(t, int64(1), f.count(&repository.TeamMemberModel{}, "umkm_id = ?", umkmID))
}

func TestTeamMembersAreScopedToTheirUMKM(t *testing.T) {
	f := newFixture(t)
	owner := f.user(auth.RoleUMKM)
	other := f.user(auth.RoleUMKM)

	m, err := f.team.AddMember(f.ctx, owner, application.CreateTeamMemberRequest{Name: "Budi", Role: "Teknisi"})
	require.NoError(t, err)

	_, err = f.team.GetMember(f.ctx, other, m.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	name := "Mallory"
	_, err = f.team.UpdateMember(f.ctx, other, m.ID, application.UpdateTeamMemberRequest{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	err = f.team.RemoveMember(f.ctx, other, m.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	others, err := f.team.ListMembers(f.ctx, other, "")
	require.NoError(t, err)
	assert.Empty(t, others)

	_, err = f.team.AddMember(f.ctx, f.user(auth.RoleCustomer), application.CreateTeamMemberRequest{Name: "Budi", Role: "Teknisi"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
