package placeholder

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RenderPath substitutes the six date tokens into a path template from
// a canonical yyyy-MM-dd date. The caller is responsible for relative
// path safety of the result.
func RenderPath(template, date string, schema Schema) (string, error) {
	fields := strings.Split(date, "-")
	if len(fields) != 3 {
		return "", fmt.Errorf("invalid journal date: %s", date)
	}
	year, month, day := fields[0], fields[1], fields[2]
	if len(year) != 4 || len(month) != 2 || len(day) != 2 ||
		!allDigits(year) || !allDigits(month) || !allDigits(day) {
		return "", fmt.Errorf("invalid journal date: %s", date)
	}

	m, err := strconv.Atoi(month)
	if err != nil {
		return "", fmt.Errorf("invalid month: %s", month)
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return "", fmt.Errorf("invalid day: %s", day)
	}

	out := template
	out = strings.ReplaceAll(out, schema.YYYY, year)
	out = strings.ReplaceAll(out, schema.MM, month)
	out = strings.ReplaceAll(out, schema.M, strconv.Itoa(m))
	out = strings.ReplaceAll(out, schema.DD, day)
	out = strings.ReplaceAll(out, schema.D, strconv.Itoa(d))
	out = strings.ReplaceAll(out, schema.Date, date)
	return out, nil
}

// RenderCommitMessage substitutes timestamp, count and the date tokens
// for the given instant.
func RenderCommitMessage(template string, count int, now time.Time, schema Schema) string {
	secs := now.Unix()
	year, month, day := civilFromUnix(secs)

	padMonth := fmt.Sprintf("%02d", month)
	padDay := fmt.Sprintf("%02d", day)
	date := fmt.Sprintf("%d-%s-%s", year, padMonth, padDay)

	out := template
	out = strings.ReplaceAll(out, schema.Timestamp, strconv.FormatInt(secs, 10))
	out = strings.ReplaceAll(out, schema.Count, strconv.Itoa(count))
	out = strings.ReplaceAll(out, schema.YYYY, strconv.FormatInt(year, 10))
	out = strings.ReplaceAll(out, schema.MM, padMonth)
	out = strings.ReplaceAll(out, schema.M, strconv.FormatInt(month, 10))
	out = strings.ReplaceAll(out, schema.DD, padDay)
	out = strings.ReplaceAll(out, schema.D, strconv.FormatInt(day, 10))
	out = strings.ReplaceAll(out, schema.Date, date)
	return out
}

// civilFromUnix converts epoch seconds to a UTC Gregorian date using
// the civil-from-days algorithm.
func civilFromUnix(secs int64) (year, month, day int64) {
	const secsPerDay = 86400
	days := secs / secsPerDay
	if secs%secsPerDay < 0 {
		days--
	}

	z := days + 719468
	era := z
	if z < 0 {
		era = z - 146096
	}
	era /= 146097
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day = doy - (153*mp+2)/5 + 1
	month = mp + 3
	if mp >= 10 {
		month = mp - 9
	}
	year = y
	if month <= 2 {
		year++
	}
	return year, month, day
}
