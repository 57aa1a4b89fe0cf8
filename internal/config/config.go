package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type SyncConfig struct {
	Enabled           bool     `mapstructure:"enabled"`
	RepoURL           string   `mapstructure:"repo_url"`
	Branch            string   `mapstructure:"branch"`
	Username          string   `mapstructure:"username"`
	Password          string   `mapstructure:"password"`
	AuthMethod        string   `mapstructure:"auth_method"`
	SSHUsername       string   `mapstructure:"ssh_username"`
	SSHPrivateKeyPath string   `mapstructure:"ssh_private_key_path"`
	SSHPublicKeyPath  string   `mapstructure:"ssh_public_key_path"`
	SSHPassphrase     string   `mapstructure:"ssh_passphrase"`
	AuthorName        string   `mapstructure:"author_name"`
	AuthorEmail       string   `mapstructure:"author_email"`
	CommitMessage     string   `mapstructure:"commit_message"`
	OutputFormat      string   `mapstructure:"output_format"`
	OutputPath        string   `mapstructure:"output_path"`
	RepoLocalPath     string   `mapstructure:"repo_local_path"`
	ImportPatterns    []string `mapstructure:"import_patterns"`
}

type Config struct {
	BasePath   string     `mapstructure:"base_path"`
	Port       int        `mapstructure:"port"`
	DBPath     string     `mapstructure:"db_path"`
	IndexPath  string     `mapstructure:"index_path"`
	StaticPath string     `mapstructure:"static_path"`
	Sync       SyncConfig `mapstructure:"sync"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home dir: %w", err)
	}

	basePath := filepath.Join(home, ".daylog")
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(basePath)

	viper.SetDefault("base_path", basePath)
	viper.SetDefault("port", 9999)
	viper.SetDefault("db_path", "db/daylog.sqlite")
	viper.SetDefault("index_path", "dist/index.html")
	viper.SetDefault("static_path", "dist/static")
	viper.SetDefault("sync.enabled", false)
	viper.SetDefault("sync.repo_url", "")
	viper.SetDefault("sync.branch", "main")
	viper.SetDefault("sync.username", "")
	viper.SetDefault("sync.password", "")
	viper.SetDefault("sync.auth_method", "auto")
	viper.SetDefault("sync.ssh_username", "git")
	viper.SetDefault("sync.ssh_private_key_path", "")
	viper.SetDefault("sync.ssh_public_key_path", "")
	viper.SetDefault("sync.ssh_passphrase", "")
	viper.SetDefault("sync.author_name", "day-log-bot")
	viper.SetDefault("sync.author_email", "day-log-bot@example.com")
	viper.SetDefault("sync.commit_message", "sync journals {timestamp} count={count}")
	viper.SetDefault("sync.output_format", "markdown")
	viper.SetDefault("sync.output_path", "journals/{yyyy}/{MM}-{dd}/{d}.md")
	viper.SetDefault("sync.repo_local_path", "sync-repo")
	viper.SetDefault("sync.import_patterns", []string{})

	viper.SetEnvPrefix("DAYLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// DBFile is the sqlite file location under the base path.
func (c *Config) DBFile() string {
	if filepath.IsAbs(c.DBPath) {
		return c.DBPath
	}
	return filepath.Join(c.BasePath, c.DBPath)
}

// RepoPath resolves the sync working tree, absolute paths win over the
// base-path-relative default.
func (c *Config) RepoPath() string {
	if filepath.IsAbs(c.Sync.RepoLocalPath) {
		return c.Sync.RepoLocalPath
	}
	return filepath.Join(c.BasePath, c.Sync.RepoLocalPath)
}
