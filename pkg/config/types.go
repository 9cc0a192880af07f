package config

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"
)

var (
	ErrNegativeDuration = errors.New("duration must be non-negative")
	ErrInvalidDuration  = errors.New("invalid duration")
)

// Duration is a non-negative time.Duration written as "30s" in TOML.
type Duration time.Duration

// ParseDuration accepts a Go duration string or a number of seconds.
func ParseDuration(v any) (Duration, error) {
	var d time.Duration

	switch v := v.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return 0, errors.Mark(errors.Wrapf(err, "%q", v), ErrInvalidDuration)
		}

		d = parsed
	case int:
		d = time.Duration(v) * time.Second
	case int64:
		d = time.Duration(v) * time.Second
	case float64:
		d = time.Duration(v * float64(time.Second))
	default:
		return 0, errors.Wrapf(ErrInvalidDuration, "unsupported type %T", v)
	}

	if d < 0 {
		return 0, errors.Wrapf(ErrNegativeDuration, "got %s", d)
	}

	return Duration(d), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d Duration) String() string { return time.Duration(d).String() }

// ToDuration converts Duration to time.Duration.
func (d Duration) ToDuration() time.Duration { return time.Duration(d) }

// JSONSchema describes Duration as a Go duration string or whole seconds.
func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "Go duration string such as \"30s\" or \"1m30s\", or a number of seconds",
		OneOf: []*jsonschema.Schema{
			{Type: "string", Pattern: `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`},
			{Type: "integer", Minimum: json.Number("0")},
		},
	}
}
