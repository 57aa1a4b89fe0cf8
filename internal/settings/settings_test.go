package settings

import (
	"path/filepath"
	"testing"

	"github.com/daylog/daylog/internal/config"
	"github.com/daylog/daylog/internal/db"
	"github.com/daylog/daylog/internal/placeholder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	require.NoError(t, db.Init(filepath.Join(t.TempDir(), "test.db")))
	cfg := &config.Config{
		Sync: config.SyncConfig{
			OutputPath:    "journals/{yyyy}/{MM}-{dd}/{d}.md",
			CommitMessage: "sync journals {timestamp} count={count}",
		},
	}
	return NewService(cfg)
}

func TestServiceDefaultsWithoutOverrides(t *testing.T) {
	svc := newTestService(t)

	assert.Equal(t, placeholder.Default(), svc.Schema())
	assert.Equal(t, "journals/{yyyy}/{MM}-{dd}/{d}.md", svc.SyncOutputPath())
	assert.Equal(t, "sync journals {timestamp} count={count}", svc.SyncCommitMessage())
	assert.Equal(t, DefaultImportPatterns(placeholder.Default()), svc.ImportPatterns(placeholder.Default()))
}

func TestServicePersistsOverrides(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.SaveSyncOutputPath("daily/{date}.md"))
	assert.Equal(t, "daily/{date}.md", svc.SyncOutputPath())

	require.NoError(t, svc.SaveSyncCommitMessage("journal backup {date}"))
	assert.Equal(t, "journal backup {date}", svc.SyncCommitMessage())

	require.NoError(t, svc.SaveImportPatterns([]string{
		"{date}.md",
		"  {date}.md  ",
		"{yyyy}/{MM}/{dd}.md",
	}))
	assert.Equal(t, []string{"{date}.md", "{yyyy}/{MM}/{dd}.md"},
		svc.ImportPatterns(placeholder.Default()))
}

func TestServiceRejectsEmptyOverrides(t *testing.T) {
	svc := newTestService(t)

	assert.Error(t, svc.SaveSyncOutputPath("  "))
	assert.Error(t, svc.SaveSyncCommitMessage(""))
	assert.Error(t, svc.SaveImportPatterns([]string{" ", ""}))
}

func TestServiceSchemaRoundTrip(t *testing.T) {
	svc := newTestService(t)

	custom := placeholder.Default()
	custom.YYYY = "{year}"
	saved, err := svc.SaveSchema(custom)
	require.NoError(t, err)
	assert.Equal(t, "{year}", saved.YYYY)
	assert.Equal(t, saved, svc.Schema())

	bad := placeholder.Default()
	bad.MM = "month"
	_, err = svc.SaveSchema(bad)
	require.Error(t, err)
	// The stored schema is untouched by a failed save.
	assert.Equal(t, saved, svc.Schema())
}
