package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/daylog/daylog/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, db.Init(filepath.Join(t.TempDir(), "test.db")))
}

func TestJournalUpsertByDate(t *testing.T) {
	initTestDB(t)
	repo := NewJournalRepository()

	created, err := repo.UpsertByDate("2024-03-05", "first draft", 100)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(100), created.CreateTime)
	assert.Equal(t, int64(100), created.UpdateTime)

	updated, err := repo.UpsertByDate("2024-03-05", "rewritten", 200)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "rewritten", updated.Content)
	assert.Equal(t, int64(100), updated.CreateTime)
	assert.Equal(t, int64(200), updated.UpdateTime)
}

func TestJournalListByMonthPrefix(t *testing.T) {
	initTestDB(t)
	repo := NewJournalRepository()

	for _, date := range []string{"2024-03-06", "2024-03-05", "2024-04-01"} {
		_, err := repo.UpsertByDate(date, "entry "+date, 1)
		require.NoError(t, err)
	}

	journals, err := repo.List(1, 10, "2024-03")
	require.NoError(t, err)
	require.Len(t, journals, 2)
	assert.Equal(t, "2024-03-05", journals[0].Date)
	assert.Equal(t, "2024-03-06", journals[1].Date)

	journals, err = repo.List(1, 10, "2024-04-01")
	require.NoError(t, err)
	require.Len(t, journals, 1)

	journals, err = repo.List(1, 10, "")
	require.NoError(t, err)
	assert.Len(t, journals, 3)
}

func TestJournalListClampsPaging(t *testing.T) {
	initTestDB(t)
	repo := NewJournalRepository()

	_, err := repo.UpsertByDate("2024-03-05", "only one", 1)
	require.NoError(t, err)

	journals, err := repo.List(-5, 0, "")
	require.NoError(t, err)
	assert.Len(t, journals, 1)
}

func TestJournalUpdate(t *testing.T) {
	initTestDB(t)
	repo := NewJournalRepository()

	created, err := repo.UpsertByDate("2024-03-05", "original", 1)
	require.NoError(t, err)
	_, err = repo.UpsertByDate("2024-03-06", "neighbor", 1)
	require.NoError(t, err)

	newContent := "patched"
	updated, err := repo.Update(created.ID, &newContent, nil)
	require.NoError(t, err)
	assert.Equal(t, "patched", updated.Content)
	assert.Equal(t, "2024-03-05", updated.Date)

	takenDate := "2024-03-06"
	_, err = repo.Update(created.ID, nil, &takenDate)
	assert.True(t, errors.Is(err, ErrDateTaken))

	freeDate := "2024-03-07"
	updated, err = repo.Update(created.ID, nil, &freeDate)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-07", updated.Date)

	_, err = repo.Update(99999, &newContent, nil)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestJournalDelete(t *testing.T) {
	initTestDB(t)
	repo := NewJournalRepository()

	created, err := repo.UpsertByDate("2024-03-05", "doomed", 1)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(created.ID))
	assert.True(t, errors.Is(repo.Delete(created.ID), gorm.ErrRecordNotFound))

	_, found, err := repo.FindIDByDate("2024-03-05")
	require.NoError(t, err)
	assert.False(t, found)
}
