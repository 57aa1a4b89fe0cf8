package placeholder

import (
	"fmt"
	"strconv"
	"strings"
)

// ExtractDate tries each pattern in order against the path and returns
// the first extracted yyyy-MM-dd. On total failure the error carries
// every per-pattern reason for diagnostics.
func ExtractDate(path string, patterns []string, schema Schema) (string, error) {
	reasons := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		date, err := matchPattern(path, pattern, schema)
		if err == nil {
			return date, nil
		}
		reasons = append(reasons, fmt.Sprintf("[%s] %s", pattern, err))
	}
	return "", fmt.Errorf("path not match patterns: %s", strings.Join(reasons, " | "))
}

func matchPattern(path, pattern string, schema Schema) (string, error) {
	pathSegs := strings.Split(path, "/")
	patternSegs := strings.Split(pattern, "/")

	if len(pathSegs) < len(patternSegs) {
		return "", fmt.Errorf("path segment count too short (path=%d, pattern=%d)",
			len(pathSegs), len(patternSegs))
	}

	// Align the pattern against the trailing segments so a short
	// pattern matches files nested arbitrarily deep.
	tail := pathSegs[len(pathSegs)-len(patternSegs):]

	var parts dateParts
	for i, template := range patternSegs {
		if err := captureComponent(tail[i], template, schema, &parts); err != nil {
			return "", err
		}
	}

	if parts.year == "" {
		return "", fmt.Errorf("missing yyyy from path")
	}
	if parts.month == "" {
		return "", fmt.Errorf("missing month from path")
	}
	if parts.day == "" {
		return "", fmt.Errorf("missing day from path")
	}

	if !validDateParts(parts.year, parts.month, parts.day) {
		return "", fmt.Errorf("invalid date parts: %s-%s-%s", parts.year, parts.month, parts.day)
	}

	return parts.year + "-" + parts.month + "-" + parts.day, nil
}

type dateParts struct {
	year  string
	month string
	day   string
}

// captureComponent scans one template segment against one actual
// segment: literal bytes must match at the cursor, a {token} consumes
// actual bytes up to the next literal (or segment end) and feeds the
// captured digits into the date slots.
func captureComponent(actual, template string, schema Schema, parts *dateParts) error {
	i, j := 0, 0

	for i < len(template) {
		if template[i] != '{' {
			if j >= len(actual) || template[i] != actual[j] {
				return fmt.Errorf("literal mismatch at '%s' expect '%c'", actual, template[i])
			}
			i++
			j++
			continue
		}

		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			return fmt.Errorf("invalid template component: %s", template)
		}
		key := template[i+1 : i+end]
		i += end + 1

		valueEnd := len(actual)
		if i < len(template) {
			next := template[i]
			pos := strings.IndexByte(actual[j:], next)
			if pos < 0 {
				return fmt.Errorf("missing literal '%c' after placeholder {%s} in '%s'",
					next, key, actual)
			}
			valueEnd = j + pos
		}
		value := actual[j:valueEnd]
		j = valueEnd

		if err := assignPlaceholder(key, value, schema, parts); err != nil {
			return fmt.Errorf("placeholder {%s} parse failed: %w", key, err)
		}
	}

	if j != len(actual) {
		return fmt.Errorf("component length mismatch: '%s'", actual)
	}
	return nil
}

func assignPlaceholder(key, value string, schema Schema, parts *dateParts) error {
	if !allDigits(value) {
		return fmt.Errorf("value '%s' contains non-digit", value)
	}

	yearKey, err := Key(schema.YYYY)
	if err != nil {
		return err
	}
	mmKey, err := Key(schema.MM)
	if err != nil {
		return err
	}
	mKey, err := Key(schema.M)
	if err != nil {
		return err
	}
	ddKey, err := Key(schema.DD)
	if err != nil {
		return err
	}
	dKey, err := Key(schema.D)
	if err != nil {
		return err
	}
	dateKey, err := Key(schema.Date)
	if err != nil {
		return err
	}

	switch key {
	case yearKey:
		if len(value) != 4 {
			return fmt.Errorf("yyyy must be 4 digits")
		}
		parts.year = value
		return nil
	case mmKey, mKey:
		month, ok := normalizeMonthOrDay(value, 1, 12)
		if !ok {
			return fmt.Errorf("month out of range (1..12)")
		}
		if !mergeOrCheck(&parts.month, month) {
			return fmt.Errorf("month conflict with another placeholder")
		}
		return nil
	case ddKey, dKey:
		day, ok := normalizeMonthOrDay(value, 1, 31)
		if !ok {
			return fmt.Errorf("day out of range (1..31)")
		}
		if !mergeOrCheck(&parts.day, day) {
			return fmt.Errorf("day conflict with another placeholder")
		}
		return nil
	case dateKey:
		year, month, day, ok := parseDateValue(value)
		if !ok {
			return fmt.Errorf("unsupported date format")
		}
		if !mergeOrCheck(&parts.year, year) ||
			!mergeOrCheck(&parts.month, month) ||
			!mergeOrCheck(&parts.day, day) {
			return fmt.Errorf("date conflicts with yyyy/MM/dd placeholders")
		}
		return nil
	default:
		return fmt.Errorf("unsupported placeholder: %s", key)
	}
}

// mergeOrCheck fills an empty slot, or demands exact agreement with the
// value already captured by another placeholder.
func mergeOrCheck(slot *string, value string) bool {
	if *slot != "" {
		return *slot == value
	}
	*slot = value
	return true
}

// parseDateValue accepts yyyymmdd or year-month-day split on one of
// '-', '_', '.'.
func parseDateValue(v string) (year, month, day string, ok bool) {
	s := strings.TrimSpace(v)
	if len(s) == 8 && allDigits(s) {
		y, m, d := s[0:4], s[4:6], s[6:8]
		if validDateParts(y, m, d) {
			return y, m, d, true
		}
		return "", "", "", false
	}

	for _, sep := range []string{"-", "_", "."} {
		fields := strings.Split(s, sep)
		if len(fields) != 3 {
			continue
		}
		y := fields[0]
		m, okM := normalizeMonthOrDay(fields[1], 1, 12)
		d, okD := normalizeMonthOrDay(fields[2], 1, 31)
		if len(y) == 4 && allDigits(y) && okM && okD && validDateParts(y, m, d) {
			return y, m, d, true
		}
	}

	return "", "", "", false
}

func normalizeMonthOrDay(v string, min, max int) (string, bool) {
	if v == "" || len(v) > 2 || !allDigits(v) {
		return "", false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > max {
		return "", false
	}
	return fmt.Sprintf("%02d", n), true
}

// validDateParts is a coarse range check only: day is not validated
// against the month's length.
func validDateParts(year, month, day string) bool {
	if _, err := strconv.Atoi(year); err != nil {
		return false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return false
	}
	return m >= 1 && m <= 12 && d >= 1 && d <= 31
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
