// Package settings layers persisted user overrides for the sync
// templates on top of the static configuration defaults.
package settings

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/daylog/daylog/internal/config"
	"github.com/daylog/daylog/internal/placeholder"
	"github.com/daylog/daylog/internal/repository"
)

const (
	KeyImportPatterns    = "import_patterns"
	KeySyncOutputPath    = "sync_output_path"
	KeySyncCommitMessage = "sync_commit_message"
	KeyDatePlaceholders  = "date_placeholders"
)

type Service struct {
	cfg  *config.Config
	repo *repository.SettingRepository
}

func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg, repo: repository.NewSettingRepository()}
}

// Schema returns the persisted placeholder schema when one was saved
// and still validates, falling back to the defaults.
func (s *Service) Schema() placeholder.Schema {
	value, found, err := s.repo.Load(KeyDatePlaceholders)
	if err != nil || !found {
		return placeholder.Default()
	}
	var schema placeholder.Schema
	if err := json.Unmarshal([]byte(value), &schema); err != nil {
		return placeholder.Default()
	}
	normalized, err := schema.Normalize()
	if err != nil {
		return placeholder.Default()
	}
	return normalized
}

func (s *Service) ImportPatterns(schema placeholder.Schema) []string {
	value, found, err := s.repo.Load(KeyImportPatterns)
	if err != nil || !found {
		return DefaultImportPatterns(schema)
	}
	var patterns []string
	if err := json.Unmarshal([]byte(value), &patterns); err != nil {
		return DefaultImportPatterns(schema)
	}
	cleaned := cleanPatterns(patterns)
	if len(cleaned) == 0 {
		return DefaultImportPatterns(schema)
	}
	return cleaned
}

func (s *Service) SyncOutputPath() string {
	value, found, err := s.repo.Load(KeySyncOutputPath)
	if err != nil || !found || strings.TrimSpace(value) == "" {
		return s.cfg.Sync.OutputPath
	}
	return value
}

func (s *Service) SyncCommitMessage() string {
	value, found, err := s.repo.Load(KeySyncCommitMessage)
	if err != nil || !found || strings.TrimSpace(value) == "" {
		return s.cfg.Sync.CommitMessage
	}
	return value
}

func (s *Service) SaveSchema(schema placeholder.Schema) (placeholder.Schema, error) {
	normalized, err := schema.Normalize()
	if err != nil {
		return placeholder.Schema{}, err
	}
	value, err := json.Marshal(normalized)
	if err != nil {
		return placeholder.Schema{}, fmt.Errorf("failed to encode placeholders: %w", err)
	}
	if err := s.repo.Save(KeyDatePlaceholders, string(value)); err != nil {
		return placeholder.Schema{}, fmt.Errorf("failed to save placeholders: %w", err)
	}
	return normalized, nil
}

func (s *Service) SaveImportPatterns(patterns []string) error {
	cleaned := cleanPatterns(patterns)
	sort.Strings(cleaned)
	cleaned = dedupe(cleaned)
	if len(cleaned) == 0 {
		return fmt.Errorf("import patterns cannot be empty")
	}
	value, err := json.Marshal(cleaned)
	if err != nil {
		return fmt.Errorf("failed to encode patterns: %w", err)
	}
	if err := s.repo.Save(KeyImportPatterns, string(value)); err != nil {
		return fmt.Errorf("failed to save patterns: %w", err)
	}
	return nil
}

func (s *Service) SaveSyncOutputPath(path string) error {
	value := strings.TrimSpace(path)
	if value == "" {
		return fmt.Errorf("sync output path cannot be empty")
	}
	if err := s.repo.Save(KeySyncOutputPath, value); err != nil {
		return fmt.Errorf("failed to save output path: %w", err)
	}
	return nil
}

func (s *Service) SaveSyncCommitMessage(message string) error {
	value := strings.TrimSpace(message)
	if value == "" {
		return fmt.Errorf("sync commit message cannot be empty")
	}
	if err := s.repo.Save(KeySyncCommitMessage, value); err != nil {
		return fmt.Errorf("failed to save commit message: %w", err)
	}
	return nil
}

// DefaultImportPatterns covers the common journal layouts: nested
// year/month/day directories plus flat dash and underscore names.
func DefaultImportPatterns(schema placeholder.Schema) []string {
	return []string{
		fmt.Sprintf("%s/%s/%s.md", schema.YYYY, schema.MM, schema.DD),
		fmt.Sprintf("%s/%s-%s.md", schema.YYYY, schema.MM, schema.DD),
		fmt.Sprintf("%s-%s-%s.md", schema.YYYY, schema.MM, schema.DD),
		fmt.Sprintf("%s_%s_%s.md", schema.YYYY, schema.MM, schema.DD),
	}
}

func cleanPatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func dedupe(patterns []string) []string {
	seen := make(map[string]struct{}, len(patterns))
	out := patterns[:0]
	for _, p := range patterns {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
