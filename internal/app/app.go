// Package app assembles a ready-to-use correction pipeline from a
// [config.Config]: the custom-word store, the spell-checking engine and the
// pipeline itself.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"textcorrector/internal/config"
	"textcorrector/internal/corrector"
	"textcorrector/internal/customdict"
	"textcorrector/internal/observe"
	"textcorrector/internal/pipeline"
	"textcorrector/internal/speller"
	"textcorrector/pkg/options"
)

// Engine is a checker that can be filled from a frequency list.
type Engine interface {
	corrector.Checker
	Name() string
	Load(r io.Reader) (int, error)
	LoadFile(path string) (int, error)
}

// App owns the pipeline and the resources behind it.
type App struct {
	Pipeline *pipeline.Pipeline
	Engine   Engine
	Logger   *slog.Logger

	redis      *redis.Client
	persistent bool
}

// Option configures [Build].
type Option func(*buildOptions)

type buildOptions struct {
	metrics *observe.Metrics
	store   customdict.Store
}

// WithMetrics records pipeline metrics on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(o *buildOptions) { o.metrics = m }
}

// WithStore persists custom words in s instead of the configured backend.
func WithStore(s customdict.Store) Option {
	return func(o *buildOptions) { o.store = s }
}

// Build loads the dictionary, restores persisted custom words and returns a
// pipeline. A store that cannot be read at startup is logged and skipped.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var bo buildOptions
	for _, o := range opts {
		o(&bo)
	}

	a := &App{Logger: logger}

	engine, err := NewEngine(cfg.Speller)
	if err != nil {
		return nil, err
	}
	n, err := LoadDictionary(engine, cfg.Speller.DictionaryPath)
	if err != nil {
		return nil, err
	}
	logger.Info("dictionary loaded", "engine", engine.Name(), "words", n, "path", cfg.Speller.DictionaryPath)
	a.Engine = engine

	store := bo.store
	if store == nil && cfg.CustomDict.Backend == config.BackendRedis {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.CustomDict.Redis.Addr,
			Password: cfg.CustomDict.Redis.Password,
			DB:       cfg.CustomDict.Redis.DB,
		})
		store = customdict.NewRedisStore(a.redis, cfg.CustomDict.Redis.Key)
	}
	a.persistent = store != nil

	dict := customdict.New(store, logger)
	sc := corrector.NewSpellCorrector(corrector.CorrectorConfig{}, engine, dict, logger)
	if err := sc.LoadCustomWords(ctx); err != nil {
		logger.Warn("custom words not restored", "err", err)
	}

	popts := []pipeline.Option{pipeline.WithLogger(logger)}
	if bo.metrics != nil {
		popts = append(popts, pipeline.WithMetrics(bo.metrics))
	}
	a.Pipeline = pipeline.New(sc, popts...)
	return a, nil
}

// Persistent reports whether custom words outlive the process.
func (a *App) Persistent() bool { return a.persistent }

// Close releases the redis connection, if any.
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Close()
}

// NewEngine creates an empty engine for cfg.Engine.
func NewEngine(cfg config.SpellerConfig) (Engine, error) {
	switch cfg.Engine {
	case config.EngineFrequency, "":
		opts := []options.Options{
			options.WithMaxEditDistance(cfg.MaxEditDistance),
			options.WithDeepEditMaxLength(cfg.DeepEditMaxLength),
			options.WithCountThreshold(cfg.CountThreshold),
			options.WithMaxWordLength(cfg.MaxWordLength),
			options.WithKnownWordFrequency(cfg.CountThreshold),
			options.WithCacheSize(cfg.CacheSize),
			options.WithAlphabet(cfg.Alphabet),
		}
		if cfg.FullCostTranspose {
			opts = append(opts, options.WithoutTransposeDiscount())
		}
		return speller.NewFrequency(opts...), nil
	case config.EngineFuzzy:
		return speller.NewFuzzy(cfg.MaxEditDistance), nil
	}
	return nil, fmt.Errorf("app: unknown speller engine %q", cfg.Engine)
}

// LoadDictionary fills e from path, or from the embedded list when path is
// empty.
func LoadDictionary(e Engine, path string) (int, error) {
	if path == "" {
		return e.Load(speller.DefaultDictionary())
	}
	n, err := e.LoadFile(path)
	if err != nil {
		return 0, fmt.Errorf("app: load dictionary %q: %w", path, err)
	}
	return n, nil
}
