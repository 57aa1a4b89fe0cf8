package syncer

import (
	"strings"
	"time"

	"github.com/daylog/daylog/internal/gitsync"
	"github.com/daylog/daylog/internal/importer"
	"github.com/daylog/daylog/internal/logger"
	"github.com/daylog/daylog/internal/placeholder"
	"go.uber.org/zap"
)

// StartupImport brings the working tree to the remote tip and imports
// every dated entry found there into the store. It runs once at boot;
// when sync is not configured it is a silent no-op.
func (o *Orchestrator) StartupImport() error {
	cfg := o.cfg.Sync
	if !cfg.Enabled {
		logger.Log.Info("startup sync skipped: sync.enabled=false")
		return nil
	}
	if strings.TrimSpace(cfg.RepoURL) == "" {
		logger.Log.Info("startup sync skipped: sync.repo_url is empty")
		return nil
	}

	mode, err := gitsync.ResolveAuthMode(cfg)
	if err != nil {
		return &ValidationError{msg: err.Error()}
	}
	if err := gitsync.ValidateAuth(cfg, mode); err != nil {
		return &ValidationError{msg: err.Error()}
	}

	schema := placeholder.Default()
	patterns := make([]string, 0, len(cfg.ImportPatterns))
	for _, p := range cfg.ImportPatterns {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	if len(patterns) == 0 {
		patterns = append(patterns, cfg.OutputPath)
	}
	for _, p := range patterns {
		if err := placeholder.ValidatePattern(p, schema); err != nil {
			return &ValidationError{msg: err.Error()}
		}
	}

	repoPath := o.cfg.RepoPath()
	engine := gitsync.NewEngine(cfg, repoPath)
	if err := engine.PrepareForImport(); err != nil {
		return err
	}

	scan, err := importer.ScanRepo(repoPath, patterns, schema)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	imported := 0
	for _, entry := range scan.Matched {
		if _, err := o.journals.UpsertByDate(entry.Date, entry.Content, now); err != nil {
			logger.Log.Warn("startup import failed to upsert journal",
				zap.String("date", entry.Date),
				zap.String("path", entry.Path),
				zap.Error(err))
			continue
		}
		imported++
	}

	logger.Log.Info("startup sync done",
		zap.Int("total_md", scan.TotalMarkdownFiles),
		zap.Int("matched", len(scan.Matched)),
		zap.Int("imported", imported),
		zap.Int("skipped", scan.SkippedCount),
		zap.String("repo_path", repoPath))
	return nil
}
