package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidDomain   = errors.New("invalid domain")
	ErrInvalidURL      = errors.New("invalid URL")
	ErrInvalidPort     = errors.New("invalid port")
	ErrInvalidType     = errors.New("invalid type")
	ErrInvalidQuota    = errors.New("invalid quota")
	ErrEmptyValue      = errors.New("empty value")
	ErrRequired        = errors.New("required field missing")
	ErrMissingSecret   = errors.New("missing secret reference")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrConfigNotLoaded = errors.New("config not loaded")

	ErrMissingReference = errors.New("missing reference")
	ErrHostnameConflict = errors.New("hostname conflict")

	ErrConfigReadFailed  = errors.New("config read failed")
	ErrConfigParseFailed = errors.New("config parse failed")

	ErrUnknownGroup   = errors.New("unknown resolve group")
	ErrUnknownAccount = errors.New("unknown account")
	ErrRunLocked      = errors.New("another run holds the lock")

	ErrDownloadFailed = errors.New("candidate list download failed")
	ErrProberFailed   = errors.New("prober execution failed")

	ErrUnsupportedProvider = errors.New("unsupported DNS provider")
	ErrMissingCredential   = errors.New("missing credential")
	ErrCredentialCheck     = errors.New("DNS credential check failed")
	ErrRecordExists        = errors.New("DNS record already exists")

	ErrPluginAction = errors.New("plugin action failed")

	ErrUnknownChannel  = errors.New("unknown notification channel")
	ErrChannelRejected = errors.New("notification rejected by channel")

	ErrInvalidFileURL = errors.New("invalid repository file URL")
	ErrListConflict   = errors.New("list file changed concurrently")
)

func RequiredField(field string) error {
	return fmt.Errorf("%w: %s", ErrRequired, field)
}

func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func WrapEntity(entity, name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s[%s]: %w", entity, name, err)
}

// OpError ties a failure to the run phase that produced it.
type OpError struct {
	Op    string
	Cause error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *OpError) Unwrap() error {
	return e.Cause
}

func NewOpError(op string, cause error) error {
	return &OpError{Op: op, Cause: cause}
}
