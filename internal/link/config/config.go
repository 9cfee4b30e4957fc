package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Port is the TCP port the HTTP API binds to.
	Port int `koanf:"port" validate:"required,gte=1,lt=65535"`

	// CacheSize is the number of verdicts kept in the LRU cache. 0 disables it.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// BuiltinRules includes the compiled-in keyword, domain and TLD rules.
	BuiltinRules bool `koanf:"builtin_rules"`

	// RulesFile is an optional YAML, JSON or TOML file with keywords, domains and tlds.
	RulesFile string `koanf:"rules_file" validate:"omitempty,rules_file"`

	// RuleLists are optional domain feeds, plain or hosts format.
	RuleLists []string `koanf:"rule_lists" validate:"omitempty,dive,required"`

	// BloomFPRate is the target false-positive rate of the domain prefilter.
	BloomFPRate float64 `koanf:"bloom_fp_rate" validate:"gt=0,lt=1"`

	// MaxUploadBytes caps the size of uploaded QR images.
	MaxUploadBytes int64 `koanf:"max_upload_bytes" validate:"gte=1024"`
}

// DEFAULT_APP_CONFIG is applied before environment overrides.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:            "prod",
	LogLevel:       "info",
	Port:           8080,
	CacheSize:      1000,
	BuiltinRules:   true,
	BloomFPRate:    0.01,
	MaxUploadBytes: 5 << 20,
}

// validRulesFile accepts paths with an extension the rules loader can parse.
func validRulesFile(fl validator.FieldLevel) bool {
	switch strings.ToLower(filepath.Ext(fl.Field().String())) {
	case ".yaml", ".yml", ".json", ".toml":
		return true
	default:
		return false
	}
}

// listKeys are the AppConfig fields decoded from space or comma separated values.
var listKeys = map[string]bool{"rule_lists": true}

// envLoader loads variables prefixed with "LINK_", lowercasing keys and splitting
// the values of listKeys into lists. Other values are kept whole, so paths may
// contain spaces. Replaceable in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "LINK_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "LINK_"))
			value = strings.TrimSpace(value)

			if value == "" {
				return key, value
			}

			if listKeys[key] {
				parts := strings.FieldsFunc(value, func(r rune) bool {
					return r == ' ' || r == ','
				})
				return key, parts
			}

			return key, value
		},
	}), nil)
}

// defaultLoader loads DEFAULT_APP_CONFIG through the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the "rules_file" tag.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("rules_file", validRulesFile)
}

// Load returns the defaults overlaid with LINK_* environment variables, validated.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
