package config

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/smykla-skalski/compilerlint/pkg/config"
)

// CustomDecoderConfig returns the mapstructure decoder config shared by the
// loader and rule-options decoding. Result must be set by the caller.
func CustomDecoderConfig() *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			durationHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		TagName:          "koanf",
	}
}

// durationHook decodes config.Duration from "30s"-style strings or from a
// number of seconds.
func durationHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeFor[config.Duration]() {
		return data, nil
	}

	switch data.(type) {
	case string, int, int64, float64:
		return config.ParseDuration(data)
	default:
		return data, nil
	}
}
