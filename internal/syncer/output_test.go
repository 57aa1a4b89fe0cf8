package syncer

import (
	"testing"

	"github.com/daylog/daylog/internal/model"
	"github.com/daylog/daylog/internal/placeholder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFormat(t *testing.T) {
	for _, in := range []string{"md", "markdown", "Markdown", " MD "} {
		format, err := NormalizeFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, "markdown", format)
	}

	_, err := NormalizeFormat("pdf")
	require.Error(t, err)
}

func TestBuildOutputFilesPerJournal(t *testing.T) {
	schema := placeholder.Default()
	journals := []model.Journal{
		{Date: "2024-03-05", Content: "fifth"},
		{Date: "2024-03-06", Content: "sixth"},
	}

	files, err := BuildOutputFiles("journals/{yyyy}/{MM}-{dd}/{d}.md", "markdown", journals, schema)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "journals/2024/03-05/5.md", files[0].RelPath)
	assert.Equal(t, "# 2024-03-05\n\nfifth\n", files[0].Content)
	assert.Equal(t, "journals/2024/03-06/6.md", files[1].RelPath)
}

func TestBuildOutputFilesAggregate(t *testing.T) {
	schema := placeholder.Default()
	journals := []model.Journal{
		{Date: "2024-03-05", Content: "fifth"},
		{Date: "2024-03-06", Content: "sixth"},
	}

	files, err := BuildOutputFiles("all-journals.md", "markdown", journals, schema)
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, "all-journals.md", files[0].RelPath)
	assert.Contains(t, files[0].Content, "# DayLog Journals")
	assert.Contains(t, files[0].Content, "## 2024-03-05")
	assert.Contains(t, files[0].Content, "## 2024-03-06")
	assert.Contains(t, files[0].Content, "---")
}

func TestBuildOutputFilesAggregateAllowsEmpty(t *testing.T) {
	schema := placeholder.Default()

	files, err := BuildOutputFiles("all.md", "markdown", nil, schema)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "# DayLog Journals\n\n", files[0].Content)
}

func TestBuildOutputFilesTemplateRequiresJournals(t *testing.T) {
	schema := placeholder.Default()

	_, err := BuildOutputFiles("{yyyy}/{MM}/{dd}.md", "markdown", nil, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no journals to sync")
}

func TestBuildOutputFilesRejectsUnsafePaths(t *testing.T) {
	schema := placeholder.Default()
	journals := []model.Journal{{Date: "2024-03-05", Content: "x"}}

	for _, path := range []string{
		"/etc/{yyyy}-{MM}-{dd}.md",
		"../{yyyy}-{MM}-{dd}.md",
		"   ",
	} {
		_, err := BuildOutputFiles(path, "markdown", journals, schema)
		assert.Error(t, err, path)
	}
}

func TestBuildOutputFilesRequiresMarkdownExtension(t *testing.T) {
	schema := placeholder.Default()
	journals := []model.Journal{{Date: "2024-03-05", Content: "x"}}

	_, err := BuildOutputFiles("journal.txt", "markdown", journals, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must end with .md")
}
