// Package gitsync owns every git operation of a sync attempt: open or
// clone the working copy, fast-forward it onto the remote tip, write
// the rendered files, and commit/push only when content changed.
package gitsync

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/daylog/daylog/internal/config"
	"github.com/daylog/daylog/internal/logger"
	gogit "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"go.uber.org/zap"
)

const remoteName = "origin"

// OutputFile is one rendered file destined for the working tree, with
// a validated slash-separated relative path.
type OutputFile struct {
	RelPath string
	Content string
}

// Result reports one sync attempt. Pushed=false with an empty CommitID
// is the no-op fast path, not a failure.
type Result struct {
	Pushed   bool
	CommitID string
}

type Engine struct {
	cfg      config.SyncConfig
	repoPath string
}

func NewEngine(cfg config.SyncConfig, repoPath string) *Engine {
	return &Engine{cfg: cfg, repoPath: repoPath}
}

func (e *Engine) branch() string {
	return strings.TrimSpace(e.cfg.Branch)
}

// Sync runs the full attempt. States are strictly sequential; the
// first failure aborts and nothing is pushed without a commit.
func (e *Engine) Sync(files []OutputFile, message string) (Result, error) {
	repo, err := e.ensureLocalCopy()
	if err != nil {
		return Result{}, err
	}

	if err := e.fastForward(repo); err != nil {
		return Result{}, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return Result{}, fmt.Errorf("failed to open worktree: %w", err)
	}

	for _, f := range files {
		full := filepath.Join(e.repoPath, filepath.FromSlash(f.RelPath))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return Result{}, fmt.Errorf("failed to create output dir: %w", err)
		}
		logger.Log.Info("sync writing output file", zap.String("path", full))
		if err := os.WriteFile(full, []byte(f.Content), 0644); err != nil {
			return Result{}, fmt.Errorf("failed to write output file: %w", err)
		}
	}

	for _, f := range files {
		if _, err := worktree.Add(f.RelPath); err != nil {
			return Result{}, fmt.Errorf("failed to stage %s: %w", f.RelPath, err)
		}
	}

	status, err := worktree.Status()
	if err != nil {
		return Result{}, fmt.Errorf("failed to inspect worktree status: %w", err)
	}
	if status.IsClean() {
		logger.Log.Info("sync found no file changes, skip commit and push")
		return Result{Pushed: false, CommitID: ""}, nil
	}

	commitID, err := worktree.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  e.cfg.AuthorName,
			Email: e.cfg.AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to commit: %w", err)
	}
	logger.Log.Info("sync commit created", zap.String("commit", commitID.String()))

	if err := e.push(repo); err != nil {
		return Result{}, err
	}

	return Result{Pushed: true, CommitID: commitID.String()}, nil
}

// PrepareForImport brings the working tree to the remote tip without
// writing anything, for the startup import scan.
func (e *Engine) PrepareForImport() error {
	repo, err := e.ensureLocalCopy()
	if err != nil {
		return err
	}
	return e.fastForward(repo)
}

func (e *Engine) ensureLocalCopy() (*gogit.Repository, error) {
	if err := os.MkdirAll(filepath.Dir(e.repoPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create repo parent dir: %w", err)
	}

	if _, err := os.Stat(filepath.Join(e.repoPath, ".git")); err == nil {
		logger.Log.Info("sync opening existing repo", zap.String("path", e.repoPath))
		repo, err := gogit.PlainOpen(e.repoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open repo: %w", err)
		}
		return repo, nil
	}

	auth, err := authMethod(e.cfg, mustResolveAuthMode(e.cfg))
	if err != nil {
		return nil, err
	}

	logger.Log.Info("sync cloning repo",
		zap.String("url", e.cfg.RepoURL),
		zap.String("path", e.repoPath))
	repo, err := gogit.PlainClone(e.repoPath, false, &gogit.CloneOptions{
		URL:           strings.TrimSpace(e.cfg.RepoURL),
		ReferenceName: plumbing.NewBranchReferenceName(e.branch()),
		SingleBranch:  true,
		Auth:          auth,
	})
	if errors.Is(err, transport.ErrEmptyRemoteRepository) {
		return e.initLocalCopy()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to clone repo: %w", err)
	}
	return repo, nil
}

// initLocalCopy stands in for clone when the remote has no commits yet.
// The first commit here has no parent and the first push creates the
// remote branch.
func (e *Engine) initLocalCopy() (*gogit.Repository, error) {
	logger.Log.Info("sync remote is empty, initializing local repo",
		zap.String("path", e.repoPath))

	repo, err := gogit.PlainInitWithOptions(e.repoPath, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(e.branch()),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}
	if _, err := repo.CreateRemote(&gitcfg.RemoteConfig{
		Name: remoteName,
		URLs: []string{strings.TrimSpace(e.cfg.RepoURL)},
	}); err != nil {
		return nil, fmt.Errorf("failed to configure remote: %w", err)
	}
	return repo, nil
}

// fastForward fetches the configured branch and force-moves the local
// branch onto the remote tip, then force-checks it out. Local-only
// commits are deliberately discarded: fast-forward is the only merge
// strategy.
func (e *Engine) fastForward(repo *gogit.Repository) error {
	branch := e.branch()

	auth, err := authMethod(e.cfg, mustResolveAuthMode(e.cfg))
	if err != nil {
		return err
	}

	fetchErr := repo.Fetch(&gogit.FetchOptions{
		RemoteName: remoteName,
		Auth:       auth,
		RefSpecs: []gitcfg.RefSpec{
			gitcfg.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branch, remoteName, branch)),
		},
		Force: true,
	})
	if fetchErr != nil && !errors.Is(fetchErr, gogit.NoErrAlreadyUpToDate) {
		if isMissingRemoteBranch(fetchErr) {
			logger.Log.Info("sync remote branch missing, first push will create it",
				zap.String("branch", branch))
			return nil
		}
		return fmt.Errorf("failed to fetch %s: %w", branch, fetchErr)
	}

	remoteRef, err := repo.Reference(plumbing.NewRemoteReferenceName(remoteName, branch), true)
	if err != nil {
		return fmt.Errorf("failed to resolve remote branch %s: %w", branch, err)
	}

	localRefName := plumbing.NewBranchReferenceName(branch)
	if err := repo.Storer.SetReference(plumbing.NewHashReference(localRefName, remoteRef.Hash())); err != nil {
		return fmt.Errorf("failed to move local branch %s: %w", branch, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	if err := worktree.Checkout(&gogit.CheckoutOptions{
		Branch: localRefName,
		Force:  true,
	}); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", branch, err)
	}
	return nil
}

func (e *Engine) push(repo *gogit.Repository) error {
	branch := e.branch()

	auth, err := authMethod(e.cfg, mustResolveAuthMode(e.cfg))
	if err != nil {
		return err
	}

	logger.Log.Info("sync pushing branch", zap.String("branch", branch))
	pushErr := repo.Push(&gogit.PushOptions{
		RemoteName: remoteName,
		Auth:       auth,
		RefSpecs: []gitcfg.RefSpec{
			gitcfg.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch)),
		},
	})
	if pushErr != nil && !errors.Is(pushErr, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push %s: %w", branch, pushErr)
	}
	return nil
}

func isMissingRemoteBranch(err error) bool {
	if errors.Is(err, transport.ErrEmptyRemoteRepository) {
		return true
	}
	var noMatch gogit.NoMatchingRefSpecError
	return errors.As(err, &noMatch)
}

// mustResolveAuthMode is safe after the orchestrator has validated the
// config; an invalid method degrades to password here rather than
// failing mid-attempt.
func mustResolveAuthMode(cfg config.SyncConfig) AuthMode {
	mode, err := ResolveAuthMode(cfg)
	if err != nil {
		return AuthPassword
	}
	return mode
}
