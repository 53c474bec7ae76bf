package token

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CaseStyle is the capitalization style of a surface form.
type CaseStyle int

const (
	Other CaseStyle = iota
	AllUpper
	Title
)

func (c CaseStyle) String() string {
	switch c {
	case AllUpper:
		return "upper"
	case Title:
		return "title"
	}
	return "other"
}

// StyleOf infers the case style of s. Mixed or all-lower forms are Other.
func StyleOf(s string) CaseStyle {
	if isUpper(s) {
		return AllUpper
	}
	if isTitle(s) {
		return Title
	}
	return Other
}

// MatchCase reapplies the case style of src to target.
func MatchCase(src, target string) string {
	switch StyleOf(src) {
	case AllUpper:
		return strings.ToUpper(target)
	case Title:
		return title(target)
	}
	return target
}

// isUpper needs at least one cased rune and no lowercase ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

// isTitle: uppercase runes only follow uncased ones, lowercase runes only
// follow cased ones.
func isTitle(s string) bool {
	cased, prevCased := false, false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased, cased = true, true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased, cased = true, true
		default:
			prevCased = false
		}
	}
	return cased
}

// Casers are stateful, so one is built per call.
func title(s string) string {
	return cases.Title(language.Und).String(s)
}
