package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/config"
	"github.com/journalkeep/core/internal/infrastructure/logger"
	"github.com/journalkeep/core/internal/infrastructure/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.json")
	st, err := store.New(config.StoreConfig{Path: path}, logger.NewNop())
	require.NoError(t, err)
	return st
}

func testUser(email string) *entities.User {
	return &entities.User{
		Name:       "Someone",
		Email:      email,
		Password:   "hash",
		Role:       entities.UserRoleClient,
		AccessList: []string{},
		Extra:      entities.Record{},
	}
}

func TestUserRepositoryRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestStore(t))

	first, err := repo.Create(ctx, testUser("a@b.c"))
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	_, err = repo.Create(ctx, testUser("a@b.c"))
	assert.ErrorIs(t, err, entities.ErrEmailTaken)

	// The first registration must be untouched.
	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", got.Email)
	assert.Equal(t, first.Name, got.Name)
}

func TestUserRepositoryUpdateMergesPartial(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestStore(t))

	created, err := repo.Create(ctx, testUser("a@b.c"))
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, entities.Record{"name": "Renamed", "theme": "dark"})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "a@b.c", updated.Email, "email not in the partial must survive")
	assert.Equal(t, "dark", updated.Extra["theme"], "unknown keys ride along as extension fields")
}

func TestUserRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestStore(t))

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrUserNotFound)

	_, err = repo.Update(ctx, "missing", entities.Record{"name": "x"})
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestEntryRepositoryOwnerFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewEntryRepository(newTestStore(t))

	_, err := repo.Insert(ctx, entities.Record{"userId": "u1", "text": "one"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, entities.Record{"userId": "u2", "text": "two"})
	require.NoError(t, err)

	mine, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "one", mine[0].StringField("text"))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEntryRepositoryDeleteMissing(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	repo := NewEntryRepository(st)

	_, err := repo.Insert(ctx, entities.Record{"text": "keep me"})
	require.NoError(t, err)

	err = repo.Delete(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	remaining, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestGoalRepositoryReplaceForOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(newTestStore(t))

	other := entities.Record{"id": "gx", "userId": "u2", "title": "other"}
	require.NoError(t, repo.ReplaceForOwner(ctx, "u2", []entities.Record{other}))

	g1 := entities.Record{"id": "g1", "userId": "u1"}
	g2 := entities.Record{"id": "g2", "userId": "u1"}
	require.NoError(t, repo.ReplaceForOwner(ctx, "u1", []entities.Record{g1, g2}))

	g3 := entities.Record{"id": "g3", "userId": "u1"}
	require.NoError(t, repo.ReplaceForOwner(ctx, "u1", []entities.Record{g3}))

	mine, err := repo.ListForOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "g3", mine[0].ID())

	// Goals for other owners must be untouched.
	theirs, err := repo.ListForOwner(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, "gx", theirs[0].ID())
}

func TestGoalRepositoryReplaceValidation(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(newTestStore(t))

	assert.ErrorIs(t, repo.ReplaceForOwner(ctx, "", []entities.Record{}), entities.ErrInvalidRequest)
	assert.ErrorIs(t, repo.ReplaceForOwner(ctx, "u1", nil), entities.ErrInvalidRequest)

	// An empty, non-nil set is a legitimate "delete everything" sync.
	require.NoError(t, repo.ReplaceForOwner(ctx, "u1", []entities.Record{{"id": "g1", "userId": "u1"}}))
	require.NoError(t, repo.ReplaceForOwner(ctx, "u1", []entities.Record{}))

	mine, err := repo.ListForOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestSettingsRepositoryLastWriteWins(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(newTestStore(t))

	empty, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Put(ctx, "u1", entities.Record{"theme": "dark", "lang": "en"}))
	require.NoError(t, repo.Put(ctx, "u1", entities.Record{"theme": "light"}))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "light", got.StringField("theme"))
	assert.NotContains(t, got, "lang", "put replaces the whole object")
}

func TestResetTokenSingleUse(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := NewUserRepository(st)
	tokens := NewResetTokenRepository(st)

	user, err := users.Create(ctx, testUser("a@b.c"))
	require.NoError(t, err)

	token, err := tokens.Issue(ctx, user.ID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)

	updated, err := tokens.Consume(ctx, token.Token, "new-hash")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", updated.Password)

	// Replay must fail: the token was removed together with the password
	// write.
	_, err = tokens.Consume(ctx, token.Token, "other-hash")
	assert.ErrorIs(t, err, entities.ErrTokenInvalid)

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.Password)
}

func TestResetTokenExpired(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := NewUserRepository(st)

	user, err := users.Create(ctx, testUser("a@b.c"))
	require.NoError(t, err)

	now := time.Now()
	tokens := &ResetTokenRepositoryImpl{store: st, now: func() time.Time { return now }}

	token, err := tokens.Issue(ctx, user.ID, time.Minute)
	require.NoError(t, err)

	tokens.now = func() time.Time { return now.Add(2 * time.Minute) }

	_, err = tokens.Consume(ctx, token.Token, "new-hash")
	assert.ErrorIs(t, err, entities.ErrTokenExpired)

	// The expired token is rejected but stays in the ledger.
	assert.Len(t, st.Load().ResetTokens, 1)

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", got.Password, "an expired token must not change the password")
}

func TestResetTokenUserGone(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := NewResetTokenRepository(st)

	token, err := tokens.Issue(ctx, "ghost", time.Hour)
	require.NoError(t, err)

	_, err = tokens.Consume(ctx, token.Token, "new-hash")
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestResetTokenRepeatedIssueKeepsPriorTokens(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := NewUserRepository(st)
	tokens := NewResetTokenRepository(st)

	user, err := users.Create(ctx, testUser("a@b.c"))
	require.NoError(t, err)

	first, err := tokens.Issue(ctx, user.ID, time.Hour)
	require.NoError(t, err)
	_, err = tokens.Issue(ctx, user.ID, time.Hour)
	require.NoError(t, err)

	// Issuing again does not invalidate the first token.
	_, err = tokens.Consume(ctx, first.Token, "new-hash")
	require.NoError(t, err)
}
