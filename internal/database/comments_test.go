package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/models"
)

func TestCreateAndGetComments(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	author := createTestUser(t, db, "Author", "author@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	base := time.Unix(1_700_000_000, 0)
	older := &models.Comment{Text: "works fine", ItemID: item.ID, AuthorID: author.ID, Created: base}
	require.NoError(t, db.CreateComment(ctx, older))
	newer := &models.Comment{Text: "battery died", ItemID: item.ID, AuthorID: author.ID, Created: base.Add(time.Hour)}
	require.NoError(t, db.CreateComment(ctx, newer))

	comments, err := db.GetCommentsByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	// Newest first, author name joined in.
	assert.Equal(t, "battery died", comments[0].Text)
	assert.Equal(t, "works fine", comments[1].Text)
	assert.Equal(t, "Author", comments[0].AuthorName)
}

func TestGetCommentsByItem_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	comments, err := db.GetCommentsByItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}
