package syncer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/daylog/daylog/internal/importer"
	"github.com/daylog/daylog/internal/logger"
	"github.com/daylog/daylog/internal/placeholder"
	"go.uber.org/zap"
)

// ImportResult reports a zip import: how many candidates were seen,
// what was written, and why the rest was skipped.
type ImportResult struct {
	TotalMarkdownFiles int                   `json:"totalMarkdownFiles"`
	MatchedFiles       int                   `json:"matchedFiles"`
	ImportedCount      int                   `json:"importedCount"`
	SkippedCount       int                   `json:"skippedCount"`
	SkippedPaths       []string              `json:"skippedPaths"`
	SkippedDetails     []importer.SkipDetail `json:"skippedDetails"`
	Patterns           []string              `json:"patterns"`
}

// ImportZip decodes an uploaded archive and upserts every matched
// entry by date. Individual failures (no pattern match, store write
// failure) degrade to skips; only a broken archive aborts.
func (o *Orchestrator) ImportZip(data []byte, rawPatterns string) (*ImportResult, error) {
	schema := o.settings.Schema()
	patterns, err := normalizePatterns(rawPatterns, o.settings.ImportPatterns(schema), schema)
	if err != nil {
		return nil, &ValidationError{msg: err.Error()}
	}

	parsed, err := importer.ParseZip(data, patterns, schema)
	if err != nil {
		return nil, &ValidationError{msg: err.Error()}
	}

	skipped := parsed.Skipped
	now := time.Now().Unix()
	imported := 0
	for _, entry := range parsed.Matched {
		if _, err := o.journals.UpsertByDate(entry.Date, entry.Content, now); err != nil {
			detail := importer.SkipDetail{Path: entry.Path, Reason: "db insert failed"}
			logger.Log.Warn("zip import skipped",
				zap.String("path", detail.Path),
				zap.String("reason", detail.Reason),
				zap.Error(err))
			skipped = append(skipped, detail)
			continue
		}
		imported++
	}

	skippedPaths := make([]string, 0, len(skipped))
	for _, detail := range skipped {
		skippedPaths = append(skippedPaths, fmt.Sprintf("%s (%s)", detail.Path, detail.Reason))
	}

	result := &ImportResult{
		TotalMarkdownFiles: parsed.TotalMarkdownFiles,
		MatchedFiles:       len(parsed.Matched),
		ImportedCount:      imported,
		SkippedCount:       len(skipped),
		SkippedPaths:       skippedPaths,
		SkippedDetails:     skipped,
		Patterns:           patterns,
	}

	logger.Log.Info("zip import done",
		zap.Int("total_md", result.TotalMarkdownFiles),
		zap.Int("matched", result.MatchedFiles),
		zap.Int("imported", result.ImportedCount),
		zap.Int("skipped", result.SkippedCount))
	return result, nil
}

// normalizePatterns parses the caller-supplied pattern list (a JSON
// array, or a string split on newlines/commas/semicolons), falling
// back to the defaults, then validates every pattern.
func normalizePatterns(raw string, defaults []string, schema placeholder.Schema) ([]string, error) {
	var patterns []string
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		patterns = defaults
	default:
		if err := json.Unmarshal([]byte(trimmed), &patterns); err != nil {
			patterns = strings.FieldsFunc(trimmed, func(r rune) bool {
				return r == '\n' || r == ',' || r == ';'
			})
		}
	}

	cleaned := make([]string, 0, len(patterns))
	seen := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		cleaned = append(cleaned, p)
	}

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("patterns required")
	}
	for _, p := range cleaned {
		if err := placeholder.ValidatePattern(p, schema); err != nil {
			return nil, err
		}
	}
	return cleaned, nil
}
