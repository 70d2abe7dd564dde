package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neoclaw-ai/privatelink/internal/output"
)

// Validatable is implemented by config sections that can self-validate.
type Validatable interface {
	Validate() error
}

// Validate checks the cloud name. Credentials are not checked here; see Configured.
func (c AzureConfig) Validate() error {
	switch strings.ToLower(c.Cloud) {
	case CloudPublic, CloudChina, CloudGovernment:
		return nil
	default:
		return fmt.Errorf("invalid cloud %q (allowed: %q, %q, %q)", c.Cloud, CloudPublic, CloudChina, CloudGovernment)
	}
}

// Validate checks the output format.
func (c OutputConfig) Validate() error {
	_, err := output.ParseFormat(c.Format)
	return err
}

// Validate validates every section and joins the errors.
func (cfg *Config) Validate() error {
	var errs []error
	sections := []struct {
		name string
		v    Validatable
	}{
		{"azure", cfg.Azure},
		{"output", cfg.Output},
	}
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}
