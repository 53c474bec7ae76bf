package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load builds the configuration: defaults, then the YAML file at path (when
// path is not empty), then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: open %q: %w", path, err)
		}
		defer f.Close()
		if err := decode(f, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}
	ApplyEnv(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over the defaults and validates the
// result. Environment variables are not consulted.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := decode(r, cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode yaml: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg from HTTP_ADDR, LOG_LEVEL, DICTIONARY_PATH,
// REDIS_ADDR, REDIS_PASSWORD and REDIS_DB. Setting REDIS_ADDR also selects
// the redis backend.
func ApplyEnv(cfg *Config) {
	cfg.Server.ListenAddr = getenv("HTTP_ADDR", cfg.Server.ListenAddr)
	cfg.Server.LogLevel = LogLevel(getenv("LOG_LEVEL", string(cfg.Server.LogLevel)))
	cfg.Speller.DictionaryPath = getenv("DICTIONARY_PATH", cfg.Speller.DictionaryPath)

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.CustomDict.Backend = BackendRedis
		cfg.CustomDict.Redis.Addr = addr
	}
	cfg.CustomDict.Redis.Password = getenv("REDIS_PASSWORD", cfg.CustomDict.Redis.Password)
	cfg.CustomDict.Redis.DB = getEnvInt("REDIS_DB", cfg.CustomDict.Redis.DB)
}

// Validate checks cfg and returns a joined error listing every problem.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.ListenAddr == "" {
		errs = append(errs, errors.New("server.listen_addr is required"))
	}
	if !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_upload_bytes must be positive, got %d", cfg.Server.MaxUploadBytes))
	}

	switch cfg.Speller.Engine {
	case EngineFrequency, EngineFuzzy:
	default:
		errs = append(errs, fmt.Errorf("speller.engine %q is invalid; valid values: frequency, fuzzy", cfg.Speller.Engine))
	}
	if cfg.Speller.MaxEditDistance < 1 || cfg.Speller.MaxEditDistance > 2 {
		errs = append(errs, fmt.Errorf("speller.max_edit_distance must be 1 or 2, got %d", cfg.Speller.MaxEditDistance))
	}
	if cfg.Speller.CountThreshold < 1 {
		errs = append(errs, fmt.Errorf("speller.count_threshold must be at least 1, got %d", cfg.Speller.CountThreshold))
	}
	if cfg.Speller.MaxWordLength < 0 {
		errs = append(errs, fmt.Errorf("speller.max_word_length must not be negative, got %d", cfg.Speller.MaxWordLength))
	}
	if cfg.Speller.DeepEditMaxLength < 0 {
		errs = append(errs, fmt.Errorf("speller.deep_edit_max_length must not be negative, got %d", cfg.Speller.DeepEditMaxLength))
	}
	if cfg.Speller.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("speller.cache_size must not be negative, got %d", cfg.Speller.CacheSize))
	}

	switch cfg.CustomDict.Backend {
	case BackendMemory:
	case BackendRedis:
		if cfg.CustomDict.Redis.Addr == "" {
			errs = append(errs, errors.New("custom_dict.redis.addr is required for the redis backend"))
		}
		if cfg.CustomDict.Redis.DB < 0 {
			errs = append(errs, fmt.Errorf("custom_dict.redis.db must not be negative, got %d", cfg.CustomDict.Redis.DB))
		}
	default:
		errs = append(errs, fmt.Errorf("custom_dict.backend %q is invalid; valid values: memory, redis", cfg.CustomDict.Backend))
	}

	return errors.Join(errs...)
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}
