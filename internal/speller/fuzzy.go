package speller

import (
	"io"
	"math/bits"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sajari/fuzzy"

	cerrors "textcorrector/internal/errors"
)

const (
	defaultFuzzyDepth = 2
	// maxFuzzyWeight caps how many times one dictionary entry is trained.
	maxFuzzyWeight = 32
)

// Fuzzy adapts a sajari/fuzzy model to the corrector's checker contract. The
// model does its own locking; mu only guards the known set.
type Fuzzy struct {
	model *fuzzy.Model

	mu      sync.RWMutex
	known   map[string]struct{}
	longest int
}

// NewFuzzy creates an empty fuzzy engine searching up to depth edits. A depth
// of zero or less uses 2.
func NewFuzzy(depth int) *Fuzzy {
	if depth <= 0 {
		depth = defaultFuzzyDepth
	}
	m := fuzzy.NewModel()
	m.SetThreshold(1)
	m.SetDepth(depth)
	return &Fuzzy{model: m, known: make(map[string]struct{})}
}

// Name identifies the engine in logs and errors.
func (z *Fuzzy) Name() string { return "fuzzy" }

// Load trains the model from "word count" lines. Counts are compressed to a
// log2 weight so large corpora train in bounded time.
func (z *Fuzzy) Load(r io.Reader) (int, error) {
	return parseFrequencies(r, func(word string, count int) {
		z.train(word, fuzzyWeight(count))
	})
}

// LoadFile memory-maps a frequency file and trains on it.
func (z *Fuzzy) LoadFile(path string) (int, error) {
	return loadMapped(path, z.Load)
}

// Len returns the number of trained words.
func (z *Fuzzy) Len() int {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return len(z.known)
}

// Unknown reports whether word was never trained. Numbers and letterless or
// overlong tokens are treated as known, as in [Frequency.Unknown].
func (z *Fuzzy) Unknown(word string) (bool, error) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	if len(z.known) == 0 {
		return false, cerrors.NewCollaboratorUnavailable(z.Name())
	}
	if exempt(word, z.longest) {
		return false, nil
	}
	_, ok := z.known[word]
	return !ok, nil
}

// Correction returns the model's best spelling for word.
func (z *Fuzzy) Correction(word string) (string, bool, error) {
	if z.Len() == 0 {
		return "", false, cerrors.NewCollaboratorUnavailable(z.Name())
	}
	best := z.model.SpellCheck(word)
	if best == "" {
		return "", false, nil
	}
	return best, true, nil
}

// Candidates returns the model's suggestions for word.
func (z *Fuzzy) Candidates(word string) ([]string, error) {
	if z.Len() == 0 {
		return nil, cerrors.NewCollaboratorUnavailable(z.Name())
	}
	return z.model.Suggestions(word, false), nil
}

// AddKnownWords trains each word once.
func (z *Fuzzy) AddKnownWords(words ...string) error {
	for _, w := range words {
		z.train(strings.ToLower(w), 1)
	}
	return nil
}

func (z *Fuzzy) train(word string, weight int) {
	for i := 0; i < weight; i++ {
		z.model.TrainWord(word)
	}
	z.mu.Lock()
	z.known[word] = struct{}{}
	z.longest = max(z.longest, utf8.RuneCountInString(word))
	z.mu.Unlock()
}

func fuzzyWeight(count int) int {
	if count <= 1 {
		return 1
	}
	return min(bits.Len(uint(count)), maxFuzzyWeight)
}
