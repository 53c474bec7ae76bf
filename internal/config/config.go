// Package config defines the corrector's configuration: a YAML file decoded
// over defaults, then environment overrides.
package config

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Engine selects the spell-checking engine.
type Engine string

const (
	// EngineFrequency is the built-in frequency dictionary engine.
	EngineFrequency Engine = "frequency"
	// EngineFuzzy is the sajari/fuzzy engine.
	EngineFuzzy Engine = "fuzzy"
)

// Backend selects where custom words are persisted.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)

// Config is the root configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Speller    SpellerConfig    `yaml:"speller"`
	CustomDict CustomDictConfig `yaml:"custom_dict"`
}

type ServerConfig struct {
	// ListenAddr is the HTTP listen address. Env: HTTP_ADDR.
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity. Env: LOG_LEVEL.
	LogLevel LogLevel `yaml:"log_level"`

	// MaxUploadBytes caps every request body, uploads included.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

type SpellerConfig struct {
	Engine Engine `yaml:"engine"`

	// DictionaryPath is a "word count" frequency file. Empty uses the
	// embedded English list. Env: DICTIONARY_PATH.
	DictionaryPath string `yaml:"dictionary_path"`

	MaxEditDistance int `yaml:"max_edit_distance"`
	CountThreshold  int `yaml:"count_threshold"`
	MaxWordLength   int `yaml:"max_word_length"`

	// DeepEditMaxLength limits the distance-2 search to words of at most
	// this many runes. 0 removes the limit.
	DeepEditMaxLength int `yaml:"deep_edit_max_length"`

	// CacheSize is the number of candidate lists the frequency engine
	// remembers. 0 disables the cache.
	CacheSize int `yaml:"cache_size"`

	// Alphabet restricts the letters used to generate edits. Empty uses
	// every letter in the dictionary.
	Alphabet string `yaml:"alphabet"`

	// FullCostTranspose ranks adjacent swaps like any other edit.
	FullCostTranspose bool `yaml:"full_cost_transpose"`
}

type CustomDictConfig struct {
	Backend Backend     `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig mirrors the go-redis client options the service uses.
type RedisConfig struct {
	Addr     string `yaml:"addr"`     // env: REDIS_ADDR
	Password string `yaml:"password"` // env: REDIS_PASSWORD
	DB       int    `yaml:"db"`       // env: REDIS_DB
	Key      string `yaml:"key"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:     ":8080",
			LogLevel:       LogInfo,
			MaxUploadBytes: 1 << 20,
		},
		Speller: SpellerConfig{
			Engine:          EngineFrequency,
			MaxEditDistance: 2,
			CountThreshold:  1,
			MaxWordLength:   24,

			DeepEditMaxLength: 10,
			CacheSize:         4096,
		},
		CustomDict: CustomDictConfig{
			Backend: BackendMemory,
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  "custom_dict",
			},
		},
	}
}
