package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDateNestedPattern(t *testing.T) {
	schema := Default()
	patterns := []string{"{yyyy}/{MM}-{dd}/{d}.md"}

	date, err := ExtractDate("journals/2024/03-05/5.md", patterns, schema)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", date)
}

func TestExtractDateZeroPadsShortComponents(t *testing.T) {
	schema := Default()

	date, err := ExtractDate("2024/3/5.md", []string{"{yyyy}/{M}/{d}.md"}, schema)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", date)
}

func TestExtractDateTrailingAlignment(t *testing.T) {
	schema := Default()
	patterns := []string{"{yyyy}-{MM}-{dd}.md"}

	date, err := ExtractDate("archive/old/deep/2024-03-05.md", patterns, schema)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", date)
}

func TestExtractDateFirstPatternWins(t *testing.T) {
	schema := Default()
	patterns := []string{"{yyyy}/{MM}/{dd}.md", "{dd}/{MM}/{yyyy}.md"}

	date, err := ExtractDate("2024/03/05.md", patterns, schema)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", date)
}

func TestExtractDatePlaceholderConflict(t *testing.T) {
	schema := Default()
	patterns := []string{"{yyyy}/{MM}-{dd}/{d}.md"}

	// dd captures 05 but d captures 6 for the same day slot.
	_, err := ExtractDate("2024/03-05/6.md", patterns, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflict")
}

func TestExtractDateCompositeEightDigitForm(t *testing.T) {
	schema := Default()
	patterns := []string{"{date}.md"}

	date, err := ExtractDate("20240305.md", patterns, schema)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", date)

	_, err = ExtractDate("20241305.md", patterns, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported date format")
}

func TestExtractDateCompositeRejectsSeparatorForms(t *testing.T) {
	schema := Default()
	patterns := []string{"{date}.md"}

	// A {date} capture only admits digits; separated dates need the
	// separators spelled out as literals in the pattern.
	for _, name := range []string{
		"2024-3-5.md",
		"2024_03_05.md",
		"2024.03.05.md",
	} {
		_, err := ExtractDate(name, patterns, schema)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "non-digit", name)
	}
}

func TestExtractDateSeparatedFormsViaLiteralPatterns(t *testing.T) {
	schema := Default()

	for name, pattern := range map[string]string{
		"2024-3-5.md":   "{yyyy}-{M}-{d}.md",
		"2024_03_05.md": "{yyyy}_{MM}_{dd}.md",
		"2024.03.05.md": "{yyyy}.{MM}.{dd}.md",
	} {
		date, err := ExtractDate(name, []string{pattern}, schema)
		require.NoError(t, err, name)
		assert.Equal(t, "2024-03-05", date, name)
	}
}

func TestExtractDateCompositeAgreesWithParts(t *testing.T) {
	schema := Default()
	patterns := []string{"{yyyy}/{date}.md"}

	date, err := ExtractDate("2024/20240305.md", patterns, schema)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", date)

	_, err = ExtractDate("2023/20240305.md", patterns, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicts")
}

func TestExtractDateRejectsOutOfRange(t *testing.T) {
	schema := Default()

	_, err := ExtractDate("2024/13/05.md", []string{"{yyyy}/{MM}/{dd}.md"}, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "month out of range")

	_, err = ExtractDate("2024/03/32.md", []string{"{yyyy}/{MM}/{dd}.md"}, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day out of range")
}

func TestExtractDateRejectsNonDigits(t *testing.T) {
	schema := Default()

	_, err := ExtractDate("2024/ab/05.md", []string{"{yyyy}/{MM}/{dd}.md"}, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-digit")
}

func TestExtractDateErrorNamesEveryPattern(t *testing.T) {
	schema := Default()
	patterns := []string{"{yyyy}/{MM}/{dd}.md", "{date}.md"}

	_, err := ExtractDate("notes.md", patterns, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[{yyyy}/{MM}/{dd}.md]")
	assert.Contains(t, err.Error(), "[{date}.md]")
}

func TestExtractDatePathShorterThanPattern(t *testing.T) {
	schema := Default()

	_, err := ExtractDate("05.md", []string{"{yyyy}/{MM}/{dd}.md"}, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "segment count")
}

func TestValidatePattern(t *testing.T) {
	schema := Default()

	assert.NoError(t, ValidatePattern("{yyyy}/{MM}/{dd}.md", schema))
	assert.NoError(t, ValidatePattern("{yyyy}/{M}-{d}.md", schema))
	assert.NoError(t, ValidatePattern("{date}.md", schema))
	assert.Error(t, ValidatePattern("{yyyy}/{MM}.md", schema))
	assert.Error(t, ValidatePattern("plain.md", schema))
}

func TestSchemaNormalize(t *testing.T) {
	schema := Default()
	schema.YYYY = "  {year}  "
	normalized, err := schema.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "{year}", normalized.YYYY)

	bad := Default()
	bad.MM = "MM"
	_, err = bad.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brace format")

	empty := Default()
	empty.Count = "   "
	_, err = empty.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")

	dup := Default()
	dup.D = dup.DD
	_, err = dup.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}
