package valueobject

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lite-lake/ipsync/internal/domain"
)

// SecretRef is a credential given inline, by name from the secrets list,
// or by environment variable.
type SecretRef struct {
	Plain  string `yaml:"plain,omitempty"`
	Secret string `yaml:"secret,omitempty"`
	Env    string `yaml:"env,omitempty"`
}

func NewSecretRefPlain(v string) SecretRef  { return SecretRef{Plain: v} }
func NewSecretRefSecret(n string) SecretRef { return SecretRef{Secret: n} }
func NewSecretRefEnv(n string) SecretRef    { return SecretRef{Env: n} }

func (s *SecretRef) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var plain string
	if err := unmarshal(&plain); err == nil {
		s.Plain = plain
		return nil
	}

	type alias SecretRef
	var ref alias
	if err := unmarshal(&ref); err != nil {
		return err
	}
	*s = SecretRef(ref)
	return nil
}

func (s SecretRef) MarshalYAML() (interface{}, error) {
	switch {
	case s.Secret != "":
		return map[string]string{"secret": s.Secret}, nil
	case s.Env != "":
		return map[string]string{"env": s.Env}, nil
	}
	return s.Plain, nil
}

func (s SecretRef) IsZero() bool {
	return s.Plain == "" && s.Secret == "" && s.Env == ""
}

func (s SecretRef) Resolve(secrets map[string]string) (string, error) {
	switch {
	case s.Secret != "":
		val, ok := secrets[s.Secret]
		if !ok {
			return "", fmt.Errorf("%w: %s", domain.ErrMissingSecret, s.Secret)
		}
		return val, nil
	case s.Env != "":
		val, ok := os.LookupEnv(s.Env)
		if !ok {
			return "", fmt.Errorf("%w: env %s", domain.ErrMissingSecret, s.Env)
		}
		return val, nil
	}
	return s.Plain, nil
}

func (s SecretRef) Validate() error {
	if s.IsZero() {
		return domain.ErrEmptyValue
	}
	return nil
}

// LogValue keeps credentials out of log output.
func (s SecretRef) LogValue() slog.Value {
	return slog.StringValue("***")
}
