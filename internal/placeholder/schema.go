// Package placeholder implements the brace-token vocabulary shared by
// date extraction from file paths and by path / commit-message
// rendering.
package placeholder

import (
	"fmt"
	"strings"
)

// Schema is the full token set. The six date tokens are used by both
// matching and rendering; timestamp and count only appear in commit
// message templates.
type Schema struct {
	YYYY      string `json:"yyyy"`
	MM        string `json:"mm"`
	M         string `json:"m"`
	DD        string `json:"dd"`
	D         string `json:"d"`
	Date      string `json:"date"`
	Timestamp string `json:"timestamp"`
	Count     string `json:"count"`
}

func Default() Schema {
	return Schema{
		YYYY:      "{yyyy}",
		MM:        "{MM}",
		M:         "{M}",
		DD:        "{dd}",
		D:         "{d}",
		Date:      "{date}",
		Timestamp: "{timestamp}",
		Count:     "{count}",
	}
}

type schemaField struct {
	name  string
	token string
}

func (s Schema) fields() []schemaField {
	return []schemaField{
		{"yyyy", s.YYYY},
		{"MM", s.MM},
		{"M", s.M},
		{"dd", s.DD},
		{"d", s.D},
		{"date", s.Date},
		{"timestamp", s.Timestamp},
		{"count", s.Count},
	}
}

// Normalize trims every token, checks the {xxx} form, and rejects
// duplicates. The returned schema is safe for matching and rendering.
func (s Schema) Normalize() (Schema, error) {
	normalized := Schema{
		YYYY:      strings.TrimSpace(s.YYYY),
		MM:        strings.TrimSpace(s.MM),
		M:         strings.TrimSpace(s.M),
		DD:        strings.TrimSpace(s.DD),
		D:         strings.TrimSpace(s.D),
		Date:      strings.TrimSpace(s.Date),
		Timestamp: strings.TrimSpace(s.Timestamp),
		Count:     strings.TrimSpace(s.Count),
	}

	for _, f := range normalized.fields() {
		if f.token == "" {
			return Schema{}, fmt.Errorf("placeholder %s cannot be empty", f.name)
		}
		if !isBraceToken(f.token) {
			return Schema{}, fmt.Errorf("placeholder %s must use brace format like {xxx}", f.name)
		}
	}

	seen := make(map[string]struct{}, 8)
	for _, f := range normalized.fields() {
		if _, dup := seen[f.token]; dup {
			return Schema{}, fmt.Errorf("duplicate placeholder token '%s'", f.token)
		}
		seen[f.token] = struct{}{}
	}

	return normalized, nil
}

func isBraceToken(token string) bool {
	return len(token) >= 3 && strings.HasPrefix(token, "{") && strings.HasSuffix(token, "}")
}

// Key strips the surrounding braces from a token.
func Key(token string) (string, error) {
	if !isBraceToken(token) {
		return "", fmt.Errorf("invalid placeholder token '%s'", token)
	}
	return token[1 : len(token)-1], nil
}

func (s Schema) dateTokens() []string {
	return []string{s.YYYY, s.MM, s.M, s.DD, s.D, s.Date}
}

// ContainsDateToken reports whether any of the six date tokens appears
// in the template.
func ContainsDateToken(template string, schema Schema) bool {
	for _, token := range schema.dateTokens() {
		if strings.Contains(template, token) {
			return true
		}
	}
	return false
}

// ValidatePattern requires a year+month+day combination or the
// composite date token, otherwise the pattern can never produce a
// full date.
func ValidatePattern(pattern string, schema Schema) error {
	hasYear := strings.Contains(pattern, schema.YYYY)
	hasMonth := strings.Contains(pattern, schema.MM) || strings.Contains(pattern, schema.M)
	hasDay := strings.Contains(pattern, schema.DD) || strings.Contains(pattern, schema.D)
	hasDate := strings.Contains(pattern, schema.Date)
	if (hasYear && hasMonth && hasDay) || hasDate {
		return nil
	}
	return fmt.Errorf(
		"invalid pattern '%s', required placeholders: %s+%s|%s+%s|%s or %s",
		pattern, schema.YYYY, schema.MM, schema.M, schema.DD, schema.D, schema.Date,
	)
}
