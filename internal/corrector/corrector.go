package corrector

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"textcorrector/internal/customdict"
	cerrors "textcorrector/internal/errors"
	"textcorrector/internal/token"
)

// Checker is the spell-checking engine the corrector consults. All words are
// passed lowercased. Implementations are best-effort: any error is treated
// as "cannot help" and the word is left unchanged.
type Checker interface {
	Unknown(word string) (bool, error)
	Correction(word string) (string, bool, error)
	Candidates(word string) ([]string, error)
	AddKnownWords(words ...string) error
}

type SpellCorrector struct {
	config  CorrectorConfig
	checker Checker
	dict    *customdict.CustomDict
	logger  *slog.Logger
}

// NewSpellCorrector wires a checker and a custom dictionary. dict may be nil
// for an in-memory dictionary; logger may be nil for slog.Default().
func NewSpellCorrector(cfg CorrectorConfig, checker Checker, dict *customdict.CustomDict, logger *slog.Logger) *SpellCorrector {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = DefaultMaxCandidates
	}
	if logger == nil {
		logger = slog.Default()
	}
	if dict == nil {
		dict = customdict.New(nil, logger)
	}
	return &SpellCorrector{config: cfg, checker: checker, dict: dict, logger: logger}
}

// Dict returns the custom dictionary.
func (sc *SpellCorrector) Dict() *customdict.CustomDict { return sc.dict }

// Correct replaces unknown words with the checker's best correction, keeping
// each word's case style, and returns a Suggestion per replaced token.
func (sc *SpellCorrector) Correct(text string) (string, []Suggestion) {
	tokens := token.Tokenize(text)
	suggestions := []Suggestion{}

	for idx, tok := range tokens {
		if !tok.IsWord() {
			continue
		}
		x := tok.Text
		xl := strings.ToLower(x)
		if sc.known(xl) {
			continue
		}

		best, ok, err := sc.checker.Correction(xl)
		if err != nil {
			sc.logger.Debug("correction skipped", "word", xl, "err", err)
			continue
		}
		if !ok {
			continue
		}

		fixed := token.MatchCase(x, best)
		if fixed == x {
			continue
		}
		tokens[idx].Text = fixed
		suggestions = append(suggestions, Suggestion{
			Index:      idx,
			From:       x,
			To:         fixed,
			Candidates: sc.candidates(xl),
		})
	}

	return token.Detokenize(tokens), suggestions
}

func (sc *SpellCorrector) known(xl string) bool {
	if sc.dict.Contains(xl) {
		return true
	}
	unknown, err := sc.checker.Unknown(xl)
	if err != nil {
		// unclassifiable words are left as they are
		sc.logger.Debug("classification skipped", "word", xl, "err", err)
		return true
	}
	return !unknown
}

func (sc *SpellCorrector) candidates(xl string) []string {
	cands, err := sc.checker.Candidates(xl)
	if err != nil {
		sc.logger.Debug("candidates unavailable", "word", xl, "err", err)
		return []string{}
	}
	if len(cands) > sc.config.MaxCandidates {
		cands = cands[:sc.config.MaxCandidates]
	}
	return append([]string{}, cands...)
}

// NormalizeWord trims, composes and lowercases a custom word and checks that
// it is a single run of letters.
func NormalizeWord(word string) (string, error) {
	lw := strings.ToLower(norm.NFC.String(strings.TrimSpace(word)))
	if lw == "" || strings.IndexFunc(lw, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
		return "", cerrors.NewInvalidWord(word)
	}
	return lw, nil
}

// AddCustomWord adds a word to the custom dictionary and the checker's
// frequency table. It returns the stored form. Only validation failures are
// returned; persistence and checker failures are logged.
func (sc *SpellCorrector) AddCustomWord(ctx context.Context, word string) (string, error) {
	lw, err := NormalizeWord(word)
	if err != nil {
		return "", err
	}
	if err := sc.dict.Add(ctx, lw); err != nil {
		sc.logger.Warn("custom word not persisted", "word", lw, "err", err)
	}
	if err := sc.checker.AddKnownWords(lw); err != nil {
		sc.logger.Warn("checker rejected custom word", "word", lw, "err", err)
	}
	return lw, nil
}

// LoadCustomWords pulls persisted custom words into memory and forwards them
// to the checker.
func (sc *SpellCorrector) LoadCustomWords(ctx context.Context) error {
	words, err := sc.dict.Load(ctx)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return nil
	}
	if err := sc.checker.AddKnownWords(words...); err != nil {
		sc.logger.Warn("checker rejected custom words", "count", len(words), "err", err)
	}
	return nil
}
