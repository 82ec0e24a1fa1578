package entity

import (
	"fmt"
	"log/slog"

	"github.com/lite-lake/ipsync/internal/domain"
)

// Secret is a named credential referenced by {secret: name}.
type Secret struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

func (s *Secret) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidName)
	}
	if s.Value == "" {
		return fmt.Errorf("%w: secrets[%s].value", domain.ErrEmptyValue, s.Name)
	}
	return nil
}

func (s Secret) LogValue() slog.Value {
	return slog.GroupValue(slog.String("name", s.Name), slog.String("value", "***"))
}
