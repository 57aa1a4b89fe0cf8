// Package syncer composes the renderer, the journal store, and the git
// engine into whole sync and import attempts.
package syncer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/daylog/daylog/internal/config"
	"github.com/daylog/daylog/internal/gitsync"
	"github.com/daylog/daylog/internal/logger"
	"github.com/daylog/daylog/internal/placeholder"
	"github.com/daylog/daylog/internal/repository"
	"github.com/daylog/daylog/internal/settings"
	"go.uber.org/zap"
)

// ValidationError marks failures detected before any repository I/O:
// bad config, bad templates, missing credentials.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

var ErrStoreQuery = errors.New("db query failed")

// Result is the outward-facing outcome of one sync attempt. A no-op
// ("nothing to do") is Pushed=false with an empty CommitID and is not
// an error.
type Result struct {
	Pushed   bool   `json:"pushed"`
	CommitID string `json:"commitId"`
	FilePath string `json:"filePath"`
	Format   string `json:"format"`
	Message  string `json:"message"`
}

type Orchestrator struct {
	cfg      *config.Config
	settings *settings.Service
	journals *repository.JournalRepository
}

func NewOrchestrator(cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		settings: settings.NewService(cfg),
		journals: repository.NewJournalRepository(),
	}
}

// Sync renders every stored journal into the working tree and pushes a
// commit when the content changed. Configuration is snapshotted up
// front; nothing mutates it mid-attempt.
func (o *Orchestrator) Sync() (*Result, error) {
	cfg := o.cfg.Sync
	outputPath := o.settings.SyncOutputPath()
	commitTemplate := o.settings.SyncCommitMessage()
	schema := o.settings.Schema()

	logger.Log.Info("journal sync start",
		zap.Bool("enabled", cfg.Enabled),
		zap.String("branch", cfg.Branch),
		zap.String("output_path", outputPath),
		zap.String("format", cfg.OutputFormat))

	if !cfg.Enabled {
		return nil, validationErrorf("sync disabled in config")
	}
	if strings.TrimSpace(cfg.RepoURL) == "" {
		return nil, validationErrorf("sync.repo_url is required")
	}

	mode, err := gitsync.ResolveAuthMode(cfg)
	if err != nil {
		return nil, &ValidationError{msg: err.Error()}
	}
	if err := gitsync.ValidateAuth(cfg, mode); err != nil {
		return nil, &ValidationError{msg: err.Error()}
	}

	journals, err := o.journals.ListAllOrdered()
	if err != nil {
		return nil, ErrStoreQuery
	}
	logger.Log.Info("journal sync query done", zap.Int("rows", len(journals)))

	format, err := NormalizeFormat(cfg.OutputFormat)
	if err != nil {
		return nil, &ValidationError{msg: err.Error()}
	}

	files, err := BuildOutputFiles(outputPath, format, journals, schema)
	if err != nil {
		return nil, &ValidationError{msg: err.Error()}
	}

	message := placeholder.RenderCommitMessage(commitTemplate, len(journals), time.Now(), schema)
	repoPath := o.cfg.RepoPath()
	logger.Log.Info("journal sync prepared",
		zap.String("repo_path", repoPath),
		zap.Int("output_files", len(files)),
		zap.String("commit_message", message))

	engine := gitsync.NewEngine(cfg, repoPath)
	outcome, err := engine.Sync(files, message)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Pushed:   outcome.Pushed,
		CommitID: outcome.CommitID,
		FilePath: outputPath,
		Format:   format,
		Message:  "no changes to push",
	}
	if outcome.Pushed {
		result.Message = "sync success"
	}
	logger.Log.Info("journal sync result",
		zap.Bool("pushed", result.Pushed),
		zap.String("path", result.FilePath))
	return result, nil
}
