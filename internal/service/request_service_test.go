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

func newRequestService(db *database.DB) *RequestService {
	logger := zerolog.Nop()
	return NewRequestService(db, fixedClock{now: testNow}, &logger)
}

func TestRequestAdd(t *testing.T) {
	db := setupTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	user := createUser(t, db, "Alice", "alice@example.com")

	request, err := svc.Add(ctx, user.ID, "need a drill")
	require.NoError(t, err)
	assert.NotZero(t, request.ID)
	assert.Equal(t, testNow.Unix(), request.Created.Unix())
	assert.NotNil(t, request.Items)
	assert.Empty(t, request.Items)
}

func TestRequestAdd_UnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newRequestService(db)

	_, err := svc.Add(context.Background(), 9999, "need a drill")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequestGetByID_WithItems(t *testing.T) {
	db := setupTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	requestor := createUser(t, db, "Alice", "alice@example.com")
	owner := createUser(t, db, "Bob", "bob@example.com")

	request, err := svc.Add(ctx, requestor.ID, "need a drill")
	require.NoError(t, err)

	answer := &models.Item{Name: "Drill", Description: "d", Available: true, OwnerID: owner.ID, RequestID: &request.ID}
	require.NoError(t, db.CreateItem(ctx, answer))

	got, err := svc.GetByID(ctx, request.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, answer.ID, got.Items[0].ID)
}

func TestRequestListOthers_ExcludesOwn(t *testing.T) {
	db := setupTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "Alice", "alice@example.com")
	bob := createUser(t, db, "Bob", "bob@example.com")

	mine, err := svc.Add(ctx, alice.ID, "mine")
	require.NoError(t, err)
	foreign, err := svc.Add(ctx, bob.ID, "foreign")
	require.NoError(t, err)

	got, err := svc.ListOthers(ctx, alice.ID, domain.Page{From: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, foreign.ID, got[0].ID)

	own, err := svc.ListOwn(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine.ID, own[0].ID)
}
