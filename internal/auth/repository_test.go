// File: internal/auth/repository_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"tigerbites_backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupSessionDB(t *testing.T) Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Session{}))
	return NewGORMRepository(db)
}

func TestSessionRepository_CreateAndFind(t *testing.T) {
	repo := setupSessionDB(t)
	now := time.Now().UTC()

	session := &Session{
		Token:     "tok-1",
		NetID:     "alice",
		Email:     "alice@princeton.edu",
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), session))

	found, err := repo.FindByToken(context.Background(), "tok-1", now)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.NetID)
	assert.Equal(t, session.ID, found.ID)
}

func TestSessionRepository_ExpiredTokenIsNotFound(t *testing.T) {
	repo := setupSessionDB(t)
	now := time.Now().UTC()

	session := &Session{
		Token:     "tok-expired",
		NetID:     "alice",
		ExpiresAt: now.Add(-time.Minute),
	}
	require.NoError(t, repo.Create(context.Background(), session))

	_, err := repo.FindByToken(context.Background(), "tok-expired", now)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSessionRepository_DeleteByToken(t *testing.T) {
	repo := setupSessionDB(t)
	now := time.Now().UTC()

	session := &Session{Token: "tok-1", NetID: "alice", ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(context.Background(), session))
	require.NoError(t, repo.DeleteByToken(context.Background(), "tok-1"))

	_, err := repo.FindByToken(context.Background(), "tok-1", now)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Deleting an unknown token is not an error.
	assert.NoError(t, repo.DeleteByToken(context.Background(), "tok-unknown"))
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	repo := setupSessionDB(t)
	now := time.Now().UTC()

	for _, s := range []*Session{
		{Token: "tok-live", NetID: "alice", ExpiresAt: now.Add(time.Hour)},
		{Token: "tok-old-1", NetID: "bob", ExpiresAt: now.Add(-time.Hour)},
		{Token: "tok-old-2", NetID: "carol", ExpiresAt: now.Add(-2 * time.Hour)},
	} {
		require.NoError(t, repo.Create(context.Background(), s))
	}

	purged, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	_, err = repo.FindByToken(context.Background(), "tok-live", now)
	assert.NoError(t, err)
}
