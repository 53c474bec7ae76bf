// Package speller provides the spell-checking engines the corrector consults:
// a frequency-dictionary engine with edit-distance candidate generation and
// an adapter over github.com/sajari/fuzzy.
package speller

import (
	"io"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
	lru "github.com/hashicorp/golang-lru/v2"

	cerrors "textcorrector/internal/errors"
	"textcorrector/pkg/options"
)

// Frequency is a dictionary of word frequencies. Unknown words are corrected
// to the most frequent dictionary word within the configured edit distance;
// equally frequent candidates are ordered by keyboard-weighted edit cost,
// then Jaro-Winkler similarity. Safe for concurrent use.
type Frequency struct {
	opts options.SpellerOptions

	mu       sync.RWMutex
	freq     map[string]int
	alphabet map[rune]struct{}
	letters  []rune // sorted alphabet, rebuilt on write
	longest  int    // rune length of the longest word

	// cache holds ranked candidates per word. Writers purge it under mu.
	cache *lru.Cache[string, []string]
}

// NewFrequency creates an empty engine.
func NewFrequency(opts ...options.Options) *Frequency {
	f := &Frequency{
		opts:     options.Resolve(opts...),
		freq:     make(map[string]int),
		alphabet: make(map[rune]struct{}),
	}
	for _, r := range f.opts.Alphabet {
		f.alphabet[r] = struct{}{}
	}
	f.rebuildLetters()
	if f.opts.CacheSize > 0 {
		f.cache, _ = lru.New[string, []string](f.opts.CacheSize)
	}
	return f
}

// Name identifies the engine in logs and errors.
func (f *Frequency) Name() string { return "frequency" }

// Add increases the frequency of word by count.
func (f *Frequency) Add(word string, count int) {
	word = strings.ToLower(word)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addLocked(word, count)
	f.purgeLocked()
}

func (f *Frequency) addLocked(word string, count int) {
	f.freq[word] += count
	f.longest = max(f.longest, utf8.RuneCountInString(word))
	if f.opts.Alphabet != "" {
		return
	}
	grown := false
	for _, r := range word {
		if !unicode.IsLetter(r) {
			continue
		}
		if _, ok := f.alphabet[r]; !ok {
			f.alphabet[r] = struct{}{}
			grown = true
		}
	}
	if grown {
		f.rebuildLetters()
	}
}

// Load reads "word count" lines from r.
func (f *Frequency) Load(r io.Reader) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	defer f.purgeLocked()
	return parseFrequencies(r, f.addLocked)
}

// LoadFile memory-maps a frequency file and loads it.
func (f *Frequency) LoadFile(path string) (int, error) {
	return loadMapped(path, f.Load)
}

// Len returns the number of dictionary words.
func (f *Frequency) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.freq)
}

// Frequency returns the count recorded for word.
func (f *Frequency) Frequency(word string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.freq[word]
}

// Unknown reports whether word is missing from the dictionary. Numbers,
// tokens without letters and tokens far longer than any dictionary word are
// never unknown.
func (f *Frequency) Unknown(word string) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.freq) == 0 {
		return false, cerrors.NewCollaboratorUnavailable(f.Name())
	}
	if exempt(word, f.longest) {
		return false, nil
	}
	return !f.knownLocked(word), nil
}

// Correction returns the most likely spelling of word. ok is false when no
// dictionary word is close enough.
func (f *Frequency) Correction(word string) (string, bool, error) {
	cands, err := f.Candidates(word)
	if err != nil || len(cands) == 0 {
		return "", false, err
	}
	return cands[0], true, nil
}

// Candidates returns the known words closest to word, best first. A known
// word is its own only candidate.
func (f *Frequency) Candidates(word string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.freq) == 0 {
		return nil, cerrors.NewCollaboratorUnavailable(f.Name())
	}
	if f.knownLocked(word) || exempt(word, f.longest) {
		return []string{word}, nil
	}
	n := utf8.RuneCountInString(word)
	if f.opts.MaxWordLength > 0 && n > f.opts.MaxWordLength {
		return nil, nil
	}
	if f.cache != nil {
		if cands, ok := f.cache.Get(word); ok {
			return slices.Clone(cands), nil
		}
	}
	cands := f.searchLocked(word, n)
	if f.cache != nil {
		f.cache.Add(word, cands)
	}
	return slices.Clone(cands), nil
}

// searchLocked collects known words one edit from word, falling back to two
// edits when none are found and word has at most DeepEditMaxLength runes.
func (f *Frequency) searchLocked(word string, n int) []string {
	letters := f.letters
	found := make(map[string]struct{})
	var e1 []string
	if f.opts.MaxEditDistance >= 1 {
		e1 = edits1(word, letters)
		for _, e := range e1 {
			if f.knownLocked(e) {
				found[e] = struct{}{}
			}
		}
	}
	deep := f.opts.DeepEditMaxLength <= 0 || n <= f.opts.DeepEditMaxLength
	if len(found) == 0 && f.opts.MaxEditDistance >= 2 && deep {
		for _, e := range e1 {
			for _, e2 := range edits1(e, letters) {
				if f.knownLocked(e2) {
					found[e2] = struct{}{}
				}
			}
		}
	}
	return f.rankLocked(word, found)
}

// AddKnownWords records words as known, each with the configured frequency.
func (f *Frequency) AddKnownWords(words ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range words {
		f.addLocked(strings.ToLower(w), f.opts.KnownWordFrequency)
	}
	f.purgeLocked()
	return nil
}

func (f *Frequency) knownLocked(word string) bool {
	return f.freq[word] >= max(f.opts.CountThreshold, 1)
}

func (f *Frequency) purgeLocked() {
	if f.cache != nil {
		f.cache.Purge()
	}
}

// longWordSlack is how far past the longest dictionary word a token may run
// before it is left unchecked.
const longWordSlack = 3

// exempt reports whether word is never spell-checked: it parses as a number,
// has no letter, or is more than longWordSlack runes longer than longest.
func exempt(word string, longest int) bool {
	if _, err := strconv.ParseFloat(word, 64); err == nil {
		return true
	}
	if !strings.ContainsFunc(word, unicode.IsLetter) {
		return true
	}
	return longest > 0 && utf8.RuneCountInString(word) > longest+longWordSlack
}

func (f *Frequency) rebuildLetters() {
	l := make([]rune, 0, len(f.alphabet))
	for r := range f.alphabet {
		l = append(l, r)
	}
	sort.Slice(l, func(i, j int) bool { return l[i] < l[j] })
	f.letters = l
}

type ranked struct {
	term  string
	freq  int
	edits int
	cost  float64
	sim   float64
}

func (f *Frequency) rankLocked(word string, found map[string]struct{}) []string {
	if len(found) == 0 {
		return nil
	}
	rs := make([]ranked, 0, len(found))
	for term := range found {
		rs = append(rs, ranked{
			term:  term,
			freq:  f.freq[term],
			edits: matchr.DamerauLevenshtein(word, term),
			cost:  f.cost(word, term),
			sim:   matchr.JaroWinkler(word, term, false),
		})
	}
	sort.Slice(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		switch {
		case a.freq != b.freq:
			return a.freq > b.freq
		case a.edits != b.edits:
			return a.edits < b.edits
		case a.cost != b.cost:
			return a.cost < b.cost
		case a.sim != b.sim:
			return a.sim > b.sim
		}
		return a.term < b.term
	})
	n := len(rs)
	if f.opts.MaxCandidates > 0 && n > f.opts.MaxCandidates {
		n = f.opts.MaxCandidates
	}
	out := make([]string, n)
	for i := range out {
		out[i] = rs[i].term
	}
	return out
}

func (f *Frequency) cost(a, b string) float64 {
	transpose := transposeCost
	if f.opts.DisableTransposeCut {
		transpose = 1.0
	}
	return weightedDL(a, b, transpose)
}

// edits1 returns every string one delete, adjacent transpose, replace or
// insert away from word.
func edits1(word string, letters []rune) []string {
	r := []rune(word)
	n := len(r)
	out := make([]string, 0, n+max(n-1, 0)+(2*n+1)*len(letters))
	buf := make([]rune, 0, n+1)
	for i := 0; i <= n; i++ {
		if i < n {
			buf = append(append(buf[:0], r[:i]...), r[i+1:]...)
			out = append(out, string(buf))
		}
		if i+1 < n {
			buf = append(append(buf[:0], r[:i]...), r[i+1], r[i])
			buf = append(buf, r[i+2:]...)
			out = append(out, string(buf))
		}
		for _, c := range letters {
			if i < n && c != r[i] {
				buf = append(append(buf[:0], r[:i]...), c)
				buf = append(buf, r[i+1:]...)
				out = append(out, string(buf))
			}
			buf = append(append(buf[:0], r[:i]...), c)
			buf = append(buf, r[i:]...)
			out = append(out, string(buf))
		}
	}
	return out
}
