package gitsync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/daylog/daylog/internal/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	httpauth "github.com/go-git/go-git/v5/plumbing/transport/http"
	sshauth "github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

type AuthMode int

const (
	AuthPassword AuthMode = iota
	AuthSSH
)

func (m AuthMode) String() string {
	if m == AuthSSH {
		return "ssh"
	}
	return "password"
}

// ResolveAuthMode honors an explicit method and otherwise infers one:
// a github.com remote prefers ssh, a username+password pair selects
// password, a configured private key selects ssh, password is the
// fallback.
func ResolveAuthMode(cfg config.SyncConfig) (AuthMode, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.AuthMethod)) {
	case "password", "userpass", "https":
		return AuthPassword, nil
	case "ssh":
		return AuthSSH, nil
	case "auto", "":
		if looksLikeGithubRepo(cfg.RepoURL) {
			return AuthSSH, nil
		}
		if strings.TrimSpace(cfg.Username) != "" && strings.TrimSpace(cfg.Password) != "" {
			return AuthPassword, nil
		}
		if strings.TrimSpace(cfg.SSHPrivateKeyPath) != "" {
			return AuthSSH, nil
		}
		return AuthPassword, nil
	default:
		return AuthPassword, fmt.Errorf("sync.auth_method must be one of: auto, password, ssh")
	}
}

// ValidateAuth fails fast before any repository I/O when the resolved
// mode is missing required fields, or the ssh key file does not exist.
func ValidateAuth(cfg config.SyncConfig, mode AuthMode) error {
	switch mode {
	case AuthPassword:
		if strings.TrimSpace(cfg.Username) == "" || strings.TrimSpace(cfg.Password) == "" {
			if looksLikeGithubRepo(cfg.RepoURL) {
				return fmt.Errorf("github repo should use ssh auth: set sync.auth_method='ssh' and sync.ssh_private_key_path")
			}
			return fmt.Errorf("sync.username and sync.password are required for password auth")
		}
		return nil
	case AuthSSH:
		if strings.TrimSpace(cfg.SSHPrivateKeyPath) == "" {
			return fmt.Errorf("sync.ssh_private_key_path is required for ssh auth")
		}
		keyPath, err := expandTildePath(strings.TrimSpace(cfg.SSHPrivateKeyPath))
		if err != nil {
			return err
		}
		if _, err := os.Stat(keyPath); err != nil {
			return fmt.Errorf("ssh private key not found: %s", keyPath)
		}
		return nil
	}
	return fmt.Errorf("unknown auth mode")
}

func authMethod(cfg config.SyncConfig, mode AuthMode) (transport.AuthMethod, error) {
	if mode == AuthPassword {
		return &httpauth.BasicAuth{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	}

	username := strings.TrimSpace(cfg.SSHUsername)
	if username == "" {
		username = "git"
	}
	keyPath, err := expandTildePath(strings.TrimSpace(cfg.SSHPrivateKeyPath))
	if err != nil {
		return nil, err
	}

	keys, err := sshauth.NewPublicKeysFromFile(username, keyPath, cfg.SSHPassphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to load ssh key %s: %w", keyPath, err)
	}
	return keys, nil
}

func looksLikeGithubRepo(repoURL string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(repoURL)), "github.com")
}

func expandTildePath(input string) (string, error) {
	if !strings.HasPrefix(input, "~") {
		return input, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir is required when using ~ in ssh key path: %w", err)
	}
	if input == "~" {
		return home, nil
	}
	if rest, ok := strings.CutPrefix(input, "~/"); ok {
		return filepath.Join(home, rest), nil
	}
	return "", fmt.Errorf("unsupported ~ path form, use ~/xxx for ssh key path")
}
