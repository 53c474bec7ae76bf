// Package pipeline chains the correction stages:
//
//  1. informal-text normalization (quotes, whitespace, contractions, slang,
//     repeated letters)
//  2. spelling correction against the custom dictionary and the checker
//  3. fluency post-processing
//  4. metrics and scores over the final text
//
// A [Pipeline] holds all process-wide state (custom dictionary and checker)
// and is safe for concurrent use.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"textcorrector/internal/corrector"
	cerrors "textcorrector/internal/errors"
	"textcorrector/internal/fluency"
	"textcorrector/internal/normalize"
	"textcorrector/internal/observe"
	"textcorrector/internal/scoring"
)

// Result is the complete output of one run.
type Result struct {
	Original     string                 `json:"original"`
	Corrected    string                 `json:"corrected"`
	Suggestions  []corrector.Suggestion `json:"suggestions"`
	Metrics      scoring.Metrics        `json:"metrics"`
	GrammarScore int                    `json:"grammar_score"`
	Readability  float64                `json:"readability"`
}

// Option configures a [Pipeline].
type Option func(*Pipeline)

// WithNormalizer replaces the default normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(p *Pipeline) {
		p.normalizer = n
	}
}

// WithMetrics records runs and custom-word additions on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

type Pipeline struct {
	normalizer *normalize.Normalizer
	speller    *corrector.SpellCorrector
	metrics    *observe.Metrics
	logger     *slog.Logger
}

// New builds a pipeline around sc.
func New(sc *corrector.SpellCorrector, opts ...Option) *Pipeline {
	p := &Pipeline{speller: sc}
	for _, o := range opts {
		o(p)
	}
	if p.normalizer == nil {
		p.normalizer = normalize.New()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Run corrects raw. It never fails: checker problems leave words unchanged.
func (p *Pipeline) Run(ctx context.Context, raw string) Result {
	start := time.Now()

	pre := p.normalizer.Normalize(raw)
	spelled, suggestions := p.speller.Correct(pre)
	final := fluency.Polish(spelled)

	m := scoring.Measure(final)
	res := Result{
		Original:     raw,
		Corrected:    final,
		Suggestions:  suggestions,
		Metrics:      m,
		GrammarScore: scoring.GrammarScore(len(suggestions)),
		Readability:  scoring.Readability(m),
	}

	elapsed := time.Since(start)
	if p.metrics != nil {
		p.metrics.RecordRun(ctx, len(suggestions), elapsed)
	}
	p.logger.Debug("pipeline run",
		"chars", m.Chars,
		"suggestions", len(suggestions),
		"duration", elapsed,
	)
	return res
}

// AddCustomWord adds word to the custom dictionary and returns its stored
// form. It fails only with an INVALID_WORD error.
func (p *Pipeline) AddCustomWord(ctx context.Context, word string) (string, error) {
	lw, err := p.speller.AddCustomWord(ctx, word)
	if p.metrics != nil {
		status := "ok"
		if cerrors.Is(err, cerrors.ErrInvalidWord) {
			status = "invalid"
		}
		p.metrics.RecordCustomWord(ctx, status)
	}
	if err != nil {
		return "", err
	}
	p.logger.Info("custom word added", "word", lw)
	return lw, nil
}

// CustomWords returns a sorted snapshot of the custom dictionary.
func (p *Pipeline) CustomWords() []string {
	return p.speller.Dict().Words()
}
