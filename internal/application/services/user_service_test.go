package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/journalkeep/core/internal/adapters/repository"
	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/config"
	"github.com/journalkeep/core/internal/infrastructure/logger"
	"github.com/journalkeep/core/internal/infrastructure/store"
	"github.com/journalkeep/core/internal/ports"
)

func newUserFixture(t *testing.T) (*UserService, ports.UserRepository) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.json")
	st, err := store.New(config.StoreConfig{Path: path}, logger.NewNop())
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(st)
	svc := NewUserService(userRepo, repository.NewSettingsRepository(st), logger.NewNop())
	return svc, userRepo
}

func TestUpdateUserHashesPassword(t *testing.T) {
	ctx := context.Background()
	svc, repo := newUserFixture(t)
	user := createFixtureUser(t, repo, "a@b.c", entities.UserRoleClient, nil)

	updated, err := svc.UpdateUser(ctx, user.ID, entities.Record{"password": "brand-new-pass"})
	require.NoError(t, err)
	assert.NotContains(t, updated, "password")

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "brand-new-pass", stored.Password, "cleartext must never hit the store")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("brand-new-pass")))
}

func TestUpdateUserCannotRewriteID(t *testing.T) {
	ctx := context.Background()
	svc, repo := newUserFixture(t)
	user := createFixtureUser(t, repo, "a@b.c", entities.UserRoleClient, nil)

	updated, err := svc.UpdateUser(ctx, user.ID, entities.Record{"id": "hijacked", "name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, updated.ID())
	assert.Equal(t, "Renamed", updated.StringField("name"))
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	svc, repo := newUserFixture(t)
	user := createFixtureUser(t, repo, "a@b.c", entities.UserRoleClient, nil)

	_, err := svc.UpdateUser(ctx, user.ID, entities.Record{"role": "superuser"})
	assert.ErrorIs(t, err, entities.ErrInvalidRequest)
}

func TestListUsersSanitizes(t *testing.T) {
	ctx := context.Background()
	svc, repo := newUserFixture(t)
	createFixtureUser(t, repo, "a@b.c", entities.UserRoleClient, nil)
	createFixtureUser(t, repo, "d@e.f", entities.UserRolePsychologist, nil)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u, "password")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, repo := newUserFixture(t)
	user := createFixtureUser(t, repo, "a@b.c", entities.UserRoleClient, nil)

	empty, err := svc.GetSettings(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.PutSettings(ctx, user.ID, entities.Record{"theme": "dark"})
	require.NoError(t, err)

	got, err := svc.GetSettings(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.StringField("theme"))
}
