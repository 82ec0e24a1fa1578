package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/repository"
	"github.com/lite-lake/ipsync/internal/domain/service"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "ipsync.yaml"
	SecretsFile       = "secrets.yaml"
)

type ConfigLoader struct{}

var _ repository.ConfigLoader = (*ConfigLoader)(nil)

func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// Load decodes the configuration at path. A secrets.yaml next to it, when
// present, contributes additional entries to secrets.
func (l *ConfigLoader) Load(ctx context.Context, path string) (*entity.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfigReadFailed, path, err)
	}

	cfg := &entity.Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfigParseFailed, path, err)
	}

	secretsPath := filepath.Join(filepath.Dir(path), SecretsFile)
	if secretsPath != path {
		if _, err := os.Stat(secretsPath); err == nil {
			items, err := loadEntity[entity.Secret](secretsPath, "secrets")
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfigParseFailed, secretsPath, err)
			}
			cfg.Secrets = append(cfg.Secrets, items...)
		}
	}

	if cfg.Prober.WorkDir == "" {
		cfg.Prober.WorkDir = filepath.Dir(path)
	} else if !filepath.IsAbs(cfg.Prober.WorkDir) {
		cfg.Prober.WorkDir = filepath.Join(filepath.Dir(path), cfg.Prober.WorkDir)
	}
	workDir, err := filepath.Abs(cfg.Prober.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("%w: prober workdir: %v", domain.ErrConfigReadFailed, err)
	}
	cfg.Prober.WorkDir = workDir

	return cfg, nil
}

func (l *ConfigLoader) Validate(cfg *entity.Config) error {
	return service.NewValidator(cfg).Validate()
}

func loadEntity[T any](filePath, yamlKey string) ([]T, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	node, ok := raw[yamlKey]
	if !ok {
		return nil, nil
	}

	var items []T
	if err := node.Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}
