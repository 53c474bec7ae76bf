// Package token splits text into word and symbol units and glues them back
// together with natural spacing.
package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	// Word is a maximal run of word runes.
	Word Kind = iota
	// Symbol is a single non-word, non-space rune.
	Symbol
)

func (k Kind) String() string {
	if k == Word {
		return "word"
	}
	return "symbol"
}

// Token is one unit of text. Tokens keep their source order.
type Token struct {
	Text string
	Kind Kind
}

// IsWord reports whether t is a word token.
func (t Token) IsWord() bool { return t.Kind == Word }

// IsWordRune reports whether r belongs to the word-character class:
// Unicode letters, Unicode numbers and underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Tokenize scans text left to right. Whitespace separates tokens and is
// never emitted.
func Tokenize(text string) []Token {
	var out []Token
	start := -1
	for i, r := range text {
		if IsWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, Token{Text: text[start:i], Kind: Word})
			start = -1
		}
		if unicode.IsSpace(r) {
			continue
		}
		out = append(out, Token{Text: string(r), Kind: Symbol})
	}
	if start >= 0 {
		out = append(out, Token{Text: text[start:], Kind: Word})
	}
	return out
}

// Words counts maximal runs of word runes in text.
func Words(text string) int {
	n := 0
	in := false
	for _, r := range text {
		w := IsWordRune(r)
		if w && !in {
			n++
		}
		in = w
	}
	return n
}

// stickyRight attaches to the preceding token without a space.
const stickyRight = ",.;:!?%)]}"

// apostrophes glue a contraction tail onto the preceding word.
const apostrophes = "'’`"

// Detokenize rebuilds text from tokens.
func Detokenize(tokens []Token) string {
	var b strings.Builder
	for i, t := range tokens {
		if i == 0 {
			b.WriteString(t.Text)
			continue
		}
		if !isSticky(t.Text, tokens[i-1].Text) {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

func isSticky(tok, prev string) bool {
	if tok == "" {
		return false
	}
	if strings.Trim(tok, stickyRight) == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(tok)
	return strings.ContainsRune(apostrophes, r) && strings.IndexFunc(prev, IsWordRune) >= 0
}
