package config

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"mvdan.cc/sh/v3/shell"

	"github.com/smykla-skalski/compilerlint/internal/color"
	"github.com/smykla-skalski/compilerlint/internal/output"
	"github.com/smykla-skalski/compilerlint/pkg/config"
)

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyValue is returned when a required value is empty.
	ErrEmptyValue = errors.New("empty value not allowed")

	// ErrInvalidOption is returned when an option value is invalid.
	ErrInvalidOption = errors.New("invalid option value")

	// ErrUnsupportedVersion is returned for a config version newer than this binary.
	ErrUnsupportedVersion = errors.New("unsupported config version")
)

// Validator validates configuration semantics.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the entire configuration.
// Returns an error describing all validation failures.
func (v *Validator) Validate(cfg *config.Config) error {
	if cfg == nil {
		return errors.WithMessage(ErrInvalidConfig, "config is nil")
	}

	var validationErrors []error

	if cfg.Version > config.CurrentConfigVersion {
		validationErrors = append(validationErrors, errors.Wrapf(
			ErrUnsupportedVersion,
			"version %d (latest supported is %d)",
			cfg.Version,
			config.CurrentConfigVersion,
		))
	}

	checks := []struct {
		section string
		err     error
	}{
		{"analyzer", v.validateAnalyzer(cfg.Analyzer)},
		{"suppression", v.validateSuppression(cfg.Suppression)},
		{"files", v.validateFiles(cfg.Files)},
		{"output", v.validateOutput(cfg.Output)},
	}

	for _, c := range checks {
		if c.err != nil {
			validationErrors = append(validationErrors, errors.Wrap(c.err, c.section))
		}
	}

	if len(validationErrors) > 0 {
		return errors.Mark(
			errors.Wrapf(
				combineErrors(validationErrors),
				"validation failed with %d error(s)",
				len(validationErrors),
			),
			ErrInvalidConfig,
		)
	}

	return nil
}

func (*Validator) validateAnalyzer(cfg *config.AnalyzerConfig) error {
	if cfg == nil {
		return nil
	}

	var validationErrors []error

	if strings.TrimSpace(cfg.Command) == "" {
		validationErrors = append(validationErrors, errors.WithMessage(ErrEmptyValue, "command"))
	} else if _, err := shell.Fields(cfg.Command, nil); err != nil {
		validationErrors = append(validationErrors, errors.Wrapf(
			ErrInvalidOption,
			"command %q: %v",
			cfg.Command,
			err,
		))
	}

	if cfg.MinVersion != "" {
		if _, err := semver.NewVersion(cfg.MinVersion); err != nil {
			validationErrors = append(validationErrors, errors.Wrapf(
				ErrInvalidOption,
				"min_version %q is not a semantic version",
				cfg.MinVersion,
			))
		}
	}

	return combineErrors(validationErrors)
}

func (*Validator) validateSuppression(cfg *config.SuppressionConfig) error {
	if cfg == nil {
		return nil
	}

	var validationErrors []error

	seen := make(map[string]bool, len(cfg.Classes))

	for i, class := range cfg.Classes {
		switch {
		case class.Name == "":
			validationErrors = append(validationErrors, errors.WithMessagef(ErrEmptyValue, "classes[%d].name", i))
		case seen[class.Name]:
			validationErrors = append(validationErrors, errors.Wrapf(
				ErrInvalidOption,
				"classes[%d]: duplicate class %q",
				i,
				class.Name,
			))
		}

		seen[class.Name] = true

		if strings.TrimSpace(class.Marker) == "" {
			validationErrors = append(validationErrors, errors.WithMessagef(ErrEmptyValue, "classes[%d].marker", i))
		}

		if len(class.Categories) == 0 {
			validationErrors = append(validationErrors, errors.WithMessagef(ErrEmptyValue, "classes[%d].categories", i))
		}
	}

	return combineErrors(validationErrors)
}

func (*Validator) validateFiles(cfg *config.FilesConfig) error {
	if cfg == nil {
		return nil
	}

	var validationErrors []error

	for _, group := range []struct {
		name     string
		patterns []string
	}{
		{"include", cfg.Include},
		{"ignore", cfg.Ignore},
	} {
		for _, p := range group.patterns {
			if !doublestar.ValidatePattern(p) {
				validationErrors = append(validationErrors, errors.Wrapf(
					ErrInvalidOption,
					"%s pattern %q is not a valid glob",
					group.name,
					p,
				))
			}
		}
	}

	if cfg.Concurrency < 0 {
		validationErrors = append(validationErrors, errors.Wrapf(
			ErrInvalidOption,
			"concurrency must be non-negative, got %d",
			cfg.Concurrency,
		))
	}

	return combineErrors(validationErrors)
}

func (*Validator) validateOutput(cfg *config.OutputConfig) error {
	if cfg == nil {
		return nil
	}

	var validationErrors []error

	if cfg.Format != "" && !output.Format(cfg.Format).Valid() {
		validationErrors = append(validationErrors, errors.Wrapf(
			ErrInvalidOption,
			"format must be one of %v, got %q",
			output.Formats,
			cfg.Format,
		))
	}

	if cfg.Color != "" && !color.Mode(cfg.Color).Valid() {
		validationErrors = append(validationErrors, errors.Wrapf(
			ErrInvalidOption,
			"color must be one of [auto always never], got %q",
			cfg.Color,
		))
	}

	return combineErrors(validationErrors)
}

// combineErrors combines multiple errors into a single error.
func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return errors.Join(errs...)
}
