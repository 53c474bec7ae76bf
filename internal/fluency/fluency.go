// Package fluency tidies corrected text: punctuation spacing, parentheses,
// the pronoun "I", a/an agreement and sentence capitalization.
package fluency

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"textcorrector/internal/token"
)

const spacedPunct = ",.;:!?"

var (
	spaceBeforePunct = regexp.MustCompile(`[\s\p{Z}]+([,.;:!?])`)
	spaceAfterOpen   = regexp.MustCompile(`\([\s\p{Z}]+`)
	spaceBeforeClose = regexp.MustCompile(`[\s\p{Z}]+\)`)
	articleRegex     = regexp.MustCompile(`(^|[^\p{L}\p{N}_])(a|an)[\s\p{Z}]+([A-Za-z]+)`)
)

// Polish applies every rewrite in order.
func Polish(text string) string {
	s := TightenPunctuation(text)
	s = SpaceAfterPunctuation(s)
	s = TightenParentheses(s)
	s = CollapseSpaces(s)
	s = CapitalizePronoun(s)
	s = FixArticles(s)
	return CapitalizeSentences(s)
}

// TightenPunctuation removes whitespace in front of , . ; : ! ?
func TightenPunctuation(s string) string {
	return spaceBeforePunct.ReplaceAllString(s, "$1")
}

// SpaceAfterPunctuation puts one space after , . ; : ! ? whenever the next
// rune is not already whitespace. Decimal points are not special: "3.14"
// becomes "3. 14".
func SpaceAfterPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for i, r := range s {
		b.WriteRune(r)
		if !strings.ContainsRune(spacedPunct, r) {
			continue
		}
		next, size := utf8.DecodeRuneInString(s[i+utf8.RuneLen(r):])
		if size > 0 && !unicode.IsSpace(next) {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// TightenParentheses removes whitespace just inside ( and ).
func TightenParentheses(s string) string {
	s = spaceBeforeClose.ReplaceAllString(s, ")")
	return spaceAfterOpen.ReplaceAllString(s, "(")
}

// CollapseSpaces turns whitespace runs into one space and trims the ends.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CapitalizePronoun uppercases every standalone lowercase "i".
func CapitalizePronoun(s string) string {
	if !strings.Contains(s, "i") {
		return s
	}
	out := []byte(s)
	prev := rune(-1)
	for i, r := range s {
		if r == 'i' && (prev < 0 || !token.IsWordRune(prev)) {
			next, size := utf8.DecodeRuneInString(s[i+1:])
			if size == 0 || !token.IsWordRune(next) {
				out[i] = 'I'
			}
		}
		prev = r
	}
	return string(out)
}

// FixArticles makes a lowercase "a" or "an" agree with the ASCII word after
// it: "an" before a vowel letter, "a" otherwise. Exceptions like "an hour"
// are not handled.
func FixArticles(s string) string {
	matches := articleRegex.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(matches))
	last := 0
	for _, m := range matches {
		// m: whole, prefix, article, next word
		b.WriteString(s[last:m[3]])
		next := s[m[6]:m[7]]
		if isVowel(rune(next[0])) {
			b.WriteString("an ")
		} else {
			b.WriteString("a ")
		}
		b.WriteString(next)
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// CapitalizeSentences uppercases the first rune of every sentence. A
// sentence ends at . ? or ! followed by whitespace; the terminal and the
// whitespace stay with it. The result is trimmed.
func CapitalizeSentences(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	capNext := true
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if end := sentenceEnd(s, i, r, size); end > i {
			// empty sentences leave capNext pending
			b.WriteString(s[i:end])
			capNext = true
			i = end
			continue
		}
		if capNext {
			b.WriteRune(unicode.ToUpper(r))
			capNext = false
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return strings.TrimSpace(b.String())
}

// sentenceEnd returns the offset just past a terminal rune at i and the
// whitespace following it, or i when the rune at i does not end a sentence.
func sentenceEnd(s string, i int, r rune, size int) int {
	if r != '.' && r != '?' && r != '!' {
		return i
	}
	j := i + size
	for j < len(s) {
		w, n := utf8.DecodeRuneInString(s[j:])
		if !unicode.IsSpace(w) {
			break
		}
		j += n
	}
	if j == i+size {
		return i
	}
	return j
}
