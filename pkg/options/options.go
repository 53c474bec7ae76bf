package options

// DefaultOptions keeps lookups conservative: edit distance 2 for words up to
// ten runes, every dictionary word counts as known, long tokens skip
// candidate generation.
var DefaultOptions = SpellerOptions{
	MaxEditDistance:     2,
	DeepEditMaxLength:   10,
	CountThreshold:      1,
	MaxWordLength:       24,
	KnownWordFrequency:  1,
	MaxCandidates:       0,
	CacheSize:           4096,
	Alphabet:            "",
	DisableTransposeCut: false,
}

type SpellerOptions struct {
	MaxEditDistance     int
	DeepEditMaxLength   int    // longer words skip the distance-2 search; 0 means no limit
	CountThreshold      int    // minimum frequency for a word to count as known
	MaxWordLength       int    // words longer than this are never corrected
	KnownWordFrequency  int    // frequency added per AddKnownWords call
	MaxCandidates       int    // 0 means unlimited
	CacheSize           int    // candidate lists kept per engine; 0 disables the cache
	Alphabet            string // empty means letters seen in the dictionary
	DisableTransposeCut bool   // rank transpositions like any other edit
}

type Options interface {
	Apply(options *SpellerOptions)
}

type FuncConfig struct {
	ops func(options *SpellerOptions)
}

func (w FuncConfig) Apply(conf *SpellerOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *SpellerOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Resolve applies opts over DefaultOptions.
func Resolve(opts ...Options) SpellerOptions {
	o := DefaultOptions
	for _, opt := range opts {
		opt.Apply(&o)
	}
	return o
}

func WithMaxEditDistance(maxEditDistance int) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.MaxEditDistance = maxEditDistance
	})
}

func WithDeepEditMaxLength(n int) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.DeepEditMaxLength = n
	})
}

func WithCountThreshold(countThreshold int) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.CountThreshold = countThreshold
	})
}

func WithMaxWordLength(maxWordLength int) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.MaxWordLength = maxWordLength
	})
}

func WithKnownWordFrequency(frequency int) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.KnownWordFrequency = frequency
	})
}

func WithMaxCandidates(n int) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.MaxCandidates = n
	})
}

func WithCacheSize(n int) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.CacheSize = n
	})
}

func WithAlphabet(alphabet string) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.Alphabet = alphabet
	})
}

// WithoutTransposeDiscount ranks an adjacent swap at full substitution cost.
func WithoutTransposeDiscount() Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.DisableTransposeCut = true
	})
}
