package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsanalyst/backend/internal/model"
	appErr "github.com/bsanalyst/backend/internal/pkg/errors"
	"github.com/bsanalyst/backend/internal/repo"
	"github.com/bsanalyst/backend/internal/service"
)

func newCompanyService(t *testing.T) *service.CompanyService {
	t.Helper()
	db := openTestDB(t)
	return service.NewCompanyService(repo.NewCompanyRepo(db), repo.NewAccessRepo(db))
}

func TestCompanyCreateReturnsExisting(t *testing.T) {
	companies := newCompanyService(t)

	acme, existed, err := companies.Create(context.Background(), "Acme")
	require.NoError(t, err)
	require.False(t, existed)

	again, existed, err := companies.Create(context.Background(), "Acme")
	require.NoError(t, err)
	require.True(t, existed)
	require.Equal(t, acme.ID, again.ID)

	_, _, err = companies.Create(context.Background(), "")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestCompanyAccessModel(t *testing.T) {
	companies := newCompanyService(t)

	acme, _, err := companies.Create(context.Background(), "Acme")
	require.NoError(t, err)
	globex, _, err := companies.Create(context.Background(), "Globex")
	require.NoError(t, err)

	admin := &model.User{ID: 1, Role: model.RoleGroupAdmin}
	analyst := &model.User{ID: 2, Role: model.RoleAnalyst}

	// admin sees everything without grants
	ok, err := companies.HasAccess(context.Background(), admin, acme.ID)
	require.NoError(t, err)
	require.True(t, ok)
	all, err := companies.ListFor(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// analyst sees nothing until granted
	ok, err = companies.HasAccess(context.Background(), analyst, acme.ID)
	require.NoError(t, err)
	require.False(t, ok)
	none, err := companies.ListFor(context.Background(), analyst)
	require.NoError(t, err)
	require.Empty(t, none)

	require.NoError(t, companies.Grant(context.Background(), analyst.ID, acme.ID))
	ok, err = companies.HasAccess(context.Background(), analyst, acme.ID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = companies.HasAccess(context.Background(), analyst, globex.ID)
	require.NoError(t, err)
	require.False(t, ok)

	granted, err := companies.ListFor(context.Background(), analyst)
	require.NoError(t, err)
	require.Len(t, granted, 1)
	require.Equal(t, "Acme", granted[0].Name)

	// granting against a missing company fails
	require.ErrorIs(t, companies.Grant(context.Background(), analyst.ID, 999), appErr.ErrNotFound)
}
