package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func TestCreateItem_WithRequest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	requestor := createTestUser(t, db, "Requestor", "req@example.com")

	request := &models.ItemRequest{
		Description: "need a drill",
		RequestorID: requestor.ID,
		Created:     time.Now(),
	}
	require.NoError(t, db.CreateRequest(ctx, request))

	item := &models.Item{
		Name:        "Drill",
		Description: "power drill",
		Available:   true,
		OwnerID:     owner.ID,
		RequestID:   &request.ID,
	}
	require.NoError(t, db.CreateItem(ctx, item))

	got, err := db.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RequestID)
	assert.Equal(t, request.ID, *got.RequestID)

	answers, err := db.GetItemsByRequest(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, item.ID, answers[0].ID)
}

func TestGetItemByID_NoRequest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	got, err := db.GetItemByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RequestID)
}

func TestUpdateItem(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	item.Name = "Big Drill"
	item.Available = false
	require.NoError(t, db.UpdateItem(ctx, item))

	got, err := db.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Big Drill", got.Name)
	assert.False(t, got.Available)
}

func TestGetItemsByOwner_Pagination(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")
	for i := 0; i < 5; i++ {
		createTestItem(t, db, owner.ID, "Item", true)
	}
	createTestItem(t, db, other.ID, "Foreign", true)

	items, err := db.GetItemsByOwner(ctx, owner.ID, domain.Page{From: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, owner.ID, item.OwnerID)
	}
}

func TestSearchItems(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")

	drill := &models.Item{Name: "Power DRILL", Description: "strong", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, drill))
	hidden := &models.Item{Name: "drill press", Description: "broken", Available: false, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, hidden))
	byDescription := &models.Item{Name: "Toolbox", Description: "includes a small drill", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, byDescription))

	found, err := db.SearchItems(ctx, "dRiLl", domain.Page{From: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, found, 2)

	// Unavailable items never match.
	for _, item := range found {
		assert.True(t, item.Available)
	}
}

func TestDeleteItem(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	require.NoError(t, db.DeleteItem(ctx, item.ID))

	_, err := db.GetItemByID(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = db.DeleteItem(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
