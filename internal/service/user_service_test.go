package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"
)

func newUserService(db *database.DB) *UserService {
	logger := zerolog.Nop()
	return NewUserService(db, &logger)
}

func TestUserAdd_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	_, err := svc.Add(ctx, models.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.Add(ctx, models.User{Name: "Clone", Email: "alice@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserUpdate_Patch(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	user, err := svc.Add(ctx, models.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	name := "Alice B"
	updated, err := svc.Update(ctx, user.ID, models.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	// Email untouched by a name-only patch.
	assert.Equal(t, "alice@example.com", updated.Email)

	email := "alice.b@example.com"
	updated, err = svc.Update(ctx, user.ID, models.UserPatch{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice.b@example.com", updated.Email)
}

func TestUserUpdate_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	name := "Ghost"
	_, err := svc.Update(context.Background(), 9999, models.UserPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	user, err := svc.Add(ctx, models.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))
	assert.ErrorIs(t, svc.Delete(ctx, user.ID), domain.ErrNotFound)
}

func TestUserGetAll(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	_, err := svc.Add(ctx, models.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, models.User{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	users, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
