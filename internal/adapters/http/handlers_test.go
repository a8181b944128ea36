package http

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journalkeep/core/internal/adapters/repository"
	"github.com/journalkeep/core/internal/application/services"
	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/config"
	"github.com/journalkeep/core/internal/infrastructure/logger"
	"github.com/journalkeep/core/internal/infrastructure/store"
	"github.com/journalkeep/core/internal/ports"
)

type handlerFixture struct {
	users       *UserHandler
	invitations *InvitationHandler
	userRepo    ports.UserRepository
	settings    ports.SettingsRepository
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.json")
	st, err := store.New(config.StoreConfig{Path: path}, logger.NewNop())
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(st)
	settingsRepo := repository.NewSettingsRepository(st)
	userSvc := services.NewUserService(userRepo, settingsRepo, logger.NewNop())
	invitationSvc := services.NewInvitationService(repository.NewInvitationRepository(st), logger.NewNop())
	return &handlerFixture{
		users:       NewUserHandler(userSvc, logger.NewNop()),
		invitations: NewInvitationHandler(invitationSvc, logger.NewNop()),
		userRepo:    userRepo,
		settings:    settingsRepo,
	}
}

func (f *handlerFixture) createUser(t *testing.T, email string) *entities.User {
	t.Helper()
	user, err := f.userRepo.Create(context.Background(), &entities.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
		Role:     entities.UserRoleClient,
	})
	require.NoError(t, err)
	return user
}

func TestUpdateUserByIDMergesPartial(t *testing.T) {
	f := newHandlerFixture(t)
	admin := f.createUser(t, "admin@example.com")
	target := f.createUser(t, "target@example.com")

	c, rec := newJSONContext(http.MethodPut, "/api/v1/users/"+target.ID, `{"name":"Renamed"}`, admin.ID)
	c.SetParamNames("id")
	c.SetParamValues(target.ID)
	require.NoError(t, f.users.UpdateUser(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var updated entities.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, target.ID, updated.ID())
	assert.Equal(t, "Renamed", updated.StringField("name"))
	assert.Equal(t, "target@example.com", updated.StringField("email"))
	assert.NotContains(t, updated, "password")
}

func TestUpdateCurrentUser(t *testing.T) {
	f := newHandlerFixture(t)
	user := f.createUser(t, "me@example.com")

	c, rec := newJSONContext(http.MethodPut, "/api/v1/users/me", `{"name":"New Me"}`, user.ID)
	require.NoError(t, f.users.UpdateCurrentUser(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var updated entities.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "New Me", updated.StringField("name"))
}

func TestPutSettingsKeepsBodyVerbatim(t *testing.T) {
	f := newHandlerFixture(t)
	user := f.createUser(t, "me@example.com")

	c, rec := newJSONContext(http.MethodPut, "/api/v1/settings/"+user.ID, `{"theme":"dark"}`, user.ID)
	c.SetParamNames("userId")
	c.SetParamValues(user.ID)
	require.NoError(t, f.users.PutSettings(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	// The stored object is exactly the request body. The path parameter
	// must not leak in as a userId key.
	stored, err := f.settings.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.Record{"theme": "dark"}, stored)
}

func TestUpdateInvitationMergesPartial(t *testing.T) {
	f := newHandlerFixture(t)
	user := f.createUser(t, "me@example.com")

	c, rec := newJSONContext(http.MethodPost, "/api/v1/invitations", `{"email":"guest@example.com","status":"pending"}`, user.ID)
	require.NoError(t, f.invitations.CreateInvitation(c))
	var stored entities.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))

	c, rec = newJSONContext(http.MethodPut, "/api/v1/invitations/"+stored.ID(), `{"status":"accepted"}`, user.ID)
	c.SetParamNames("id")
	c.SetParamValues(stored.ID())
	require.NoError(t, f.invitations.UpdateInvitation(c))

	var merged entities.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &merged))
	assert.Equal(t, stored.ID(), merged.ID())
	assert.Equal(t, "accepted", merged.StringField("status"))
	assert.Equal(t, "guest@example.com", merged.StringField("email"))
}

func TestUpdateMissingInvitationReturnsNotFound(t *testing.T) {
	f := newHandlerFixture(t)
	user := f.createUser(t, "me@example.com")

	c, _ := newJSONContext(http.MethodPut, "/api/v1/invitations/nope", `{"status":"accepted"}`, user.ID)
	c.SetParamNames("id")
	c.SetParamValues("nope")
	err := f.invitations.UpdateInvitation(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
