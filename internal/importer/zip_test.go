package importer

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/daylog/daylog/internal/placeholder"
	"github.com/daylog/daylog/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestParseZipMatchesDatedMarkdown(t *testing.T) {
	schema := placeholder.Default()
	patterns := settings.DefaultImportPatterns(schema)

	data := buildZip(t, map[string]string{
		"2024/03/05.md": "# fifth",
		"2024-03-06.md": "# sixth",
		"notes.txt":     "not markdown",
		"img/pic.png":   "binary",
	})

	result, err := ParseZip(data, patterns, schema)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalMarkdownFiles)
	require.Len(t, result.Matched, 2)
	assert.Empty(t, result.Skipped)

	byDate := make(map[string]Entry, len(result.Matched))
	for _, e := range result.Matched {
		byDate[e.Date] = e
	}
	assert.Equal(t, "# fifth", byDate["2024-03-05"].Content)
	assert.Equal(t, "# sixth", byDate["2024-03-06"].Content)
}

func TestParseZipNormalizesBackslashPaths(t *testing.T) {
	schema := placeholder.Default()
	patterns := settings.DefaultImportPatterns(schema)

	data := buildZip(t, map[string]string{
		`2024\03\07.md`: "# seventh",
	})

	result, err := ParseZip(data, patterns, schema)
	require.NoError(t, err)
	require.Len(t, result.Matched, 1)
	assert.Equal(t, "2024/03/07.md", result.Matched[0].Path)
	assert.Equal(t, "2024-03-07", result.Matched[0].Date)
}

func TestParseZipSkipsUnmatchedMarkdown(t *testing.T) {
	schema := placeholder.Default()
	patterns := settings.DefaultImportPatterns(schema)

	data := buildZip(t, map[string]string{
		"2024/03/05.md": "# fifth",
		"random.md":     "no date here",
	})

	result, err := ParseZip(data, patterns, schema)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalMarkdownFiles)
	assert.Len(t, result.Matched, 1)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "random.md", result.Skipped[0].Path)
	assert.Contains(t, result.Skipped[0].Reason, "path not match patterns")
}

func TestParseZipUppercaseExtensionCounts(t *testing.T) {
	schema := placeholder.Default()

	data := buildZip(t, map[string]string{
		"2024/03/05.MD": "# fifth",
	})

	result, err := ParseZip(data, []string{"{yyyy}/{MM}/{dd}.MD"}, schema)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalMarkdownFiles)
	assert.Len(t, result.Matched, 1)
}

func TestParseZipRejectsBrokenArchive(t *testing.T) {
	schema := placeholder.Default()

	_, err := ParseZip([]byte("not a zip"), []string{"{date}.md"}, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid zip file")
}

func TestParseZipReplacesInvalidUTF8(t *testing.T) {
	schema := placeholder.Default()

	data := buildZip(t, map[string]string{
		"20240305.md": "ok \xff\xfe bytes",
	})

	result, err := ParseZip(data, []string{"{date}.md"}, schema)
	require.NoError(t, err)
	require.Len(t, result.Matched, 1)
	assert.Equal(t, "ok � bytes", result.Matched[0].Content)
}
