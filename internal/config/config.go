package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	AccountsPathKey          = "accounts.path"
	PolicyPathKey            = "policy.path"
	LedgerBackendKey         = "ledger.backend"
	LedgerDirKey             = "ledger.dir"
	LedgerRedisURLKey        = "ledger.redis_url"
	LedgerStrictKey          = "ledger.strict"
	CandidatesDirKey         = "candidates.dir"
	ExecutorCommandKey       = "executor.command"
	ExecutorCredentialEnvKey = "executor.credential_env"
	SecretsDirKey            = "secrets.dir"
	LogLevelKey              = "log.level"
	LogFormatKey             = "log.format"
	MetricsTextfileKey       = "metrics.textfile"

	LedgerBackendFile  = "file"
	LedgerBackendRedis = "redis"

	EnvPrefix  = "PACER"
	configName = "config"
	configType = "toml"
	configDir  = ".pacer"
)

// Dir is the per-user state directory, ~/.pacer.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, configDir), nil
}

// Load registers defaults, PACER_* environment overrides and the optional
// ~/.pacer/config.toml file on cfg. A missing config file is not an error.
func Load(cfg *viper.Viper) error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dir)

	cfg.SetEnvPrefix(EnvPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(AccountsPathKey, filepath.Join(dir, "accounts.toml"))
	cfg.SetDefault(PolicyPathKey, filepath.Join(dir, "policy.toml"))
	cfg.SetDefault(LedgerBackendKey, LedgerBackendFile)
	cfg.SetDefault(LedgerDirKey, filepath.Join(dir, "ledgers"))
	cfg.SetDefault(LedgerRedisURLKey, "")
	cfg.SetDefault(LedgerStrictKey, false)
	cfg.SetDefault(CandidatesDirKey, filepath.Join(dir, "candidates"))
	cfg.SetDefault(ExecutorCredentialEnvKey, "PACER_CREDENTIAL")
	cfg.SetDefault(SecretsDirKey, filepath.Join(dir, "secrets"))
	cfg.SetDefault(LogLevelKey, "info")
	cfg.SetDefault(LogFormatKey, "text")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	return nil
}
