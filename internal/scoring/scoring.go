// Package scoring derives counts and quality scores from corrected text.
package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"textcorrector/internal/token"
)

// Metrics holds counts taken from the final text.
type Metrics struct {
	Chars     int `json:"chars"`
	Words     int `json:"words"`
	Sentences int `json:"sentences"`
}

// Measure counts runes, word runs and sentence terminals in text. Text with
// no terminal counts as one sentence unless it is empty.
func Measure(text string) Metrics {
	m := Metrics{
		Chars: utf8.RuneCountInString(text),
		Words: token.Words(text),
	}
	for _, r := range text {
		if strings.ContainsRune(".!?", r) {
			m.Sentences++
		}
	}
	if m.Sentences == 0 && text != "" {
		m.Sentences = 1
	}
	return m
}

// GrammarScore starts at 100 and loses 5 points per suggestion, floored at 0.
func GrammarScore(suggestions int) int {
	return max(100-5*suggestions, 0)
}

// Readability is a Flesch reading-ease approximation. Syllables per word are
// estimated as characters per word divided by three. The result is rounded
// to two decimals and may fall outside 0..100.
func Readability(m Metrics) float64 {
	wordsPerSentence := float64(m.Words) / float64(max(m.Sentences, 1))
	syllablesPerWord := (float64(m.Chars) / float64(max(m.Words, 1))) / 3.0
	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	return math.Round(score*100) / 100
}
