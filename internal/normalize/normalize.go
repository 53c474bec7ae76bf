// Package normalize rewrites informal chat text into plain words before
// spelling correction: typographic quotes, contraction typos, slang and
// stretched words.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"textcorrector/internal/token"
)

var quotes = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"“", `"`,
	"”", `"`,
)

// Normalizer maps every word token through an ordered rule table. The first
// rule that applies wins. Normalizer is read-only after construction and safe
// for concurrent use.
type Normalizer struct {
	rules []Rule
}

// New returns a Normalizer with the given rules, tried in order. With no
// rules it uses DefaultRules.
func New(rules ...Rule) *Normalizer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Normalizer{rules: rules}
}

// Normalize runs the full normalization stage over text.
func (n *Normalizer) Normalize(text string) string {
	t := norm.NFC.String(quotes.Replace(text))
	t = strings.Join(strings.Fields(t), " ")

	tokens := token.Tokenize(t)
	for i, tok := range tokens {
		if tok.IsWord() {
			tokens[i].Text = n.mapWord(tok.Text)
		}
	}
	return token.Detokenize(tokens)
}

func (n *Normalizer) mapWord(word string) string {
	lower := strings.ToLower(word)
	for _, r := range n.rules {
		if out, ok := r.Apply(lower); ok {
			return token.MatchCase(word, out)
		}
	}
	return word
}
