package fluency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolish(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"sentences", "hello world. this is fine? yes!", "Hello world. This is fine? Yes!"},
		{"loose punctuation", "hello world . this is fine ?yes !", "Hello world. This is fine? Yes!"},
		{"pronoun", "i think i am right", "I think I am right"},
		{"articles", "he ate a apple and a banana", "He ate an apple and a banana"},
		{"parentheses", "see ( the notes ) here", "See (the notes) here"},
		{"whitespace", "  too   many \t spaces  ", "Too many spaces"},
		{"decimal", "pi is 3.14", "Pi is 3. 14"},
		{"ellipsis", "wait...what", "Wait. . . What"},
		{"empty", "", ""},
		{"only punctuation", "?!", "? !"},
		{"unicode", "é bien. ça va", "É bien. Ça va"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Polish(tc.input))
		})
	}
}

func TestSpaceAfterPunctuation(t *testing.T) {
	assert.Equal(t, "a, b", SpaceAfterPunctuation("a,b"))
	assert.Equal(t, "a, b", SpaceAfterPunctuation("a, b"))
	assert.Equal(t, "end.", SpaceAfterPunctuation("end."))
	assert.Equal(t, ". . .", SpaceAfterPunctuation("..."))
}

func TestTightenPunctuation(t *testing.T) {
	assert.Equal(t, "a, b.", TightenPunctuation("a , b  ."))
	assert.Equal(t, "a b!", TightenPunctuation("a b  !"))
}

func TestCapitalizePronoun(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"i", "I"},
		{"i'm here", "I'm here"},
		{"if it is", "if it is"},
		{"hi", "hi"},
		{"so i, then i.", "so I, then I."},
		{"i_x", "i_x"},
		{"I am", "I am"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, CapitalizePronoun(tc.input), tc.input)
	}
}

func TestFixArticles(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"a apple", "an apple"},
		{"an banana", "a banana"},
		{"an Orange", "an Orange"},
		{"a hour", "a hour"},
		{"take a  egg", "take an egg"},
		{"A apple", "A apple"},
		{"banana apple", "banana apple"},
		{"a 1apple", "a 1apple"},
		{"a a apple", "an a apple"},
		{"x a b an c", "x a b a c"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FixArticles(tc.input), tc.input)
	}
}

func TestCapitalizeSentences(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"one. two! three? four", "One. Two! Three? Four"},
		{"one.two", "One.two"},
		{"one. . two", "One. . Two"},
		{"\"quoted. start", "\"quoted. Start"},
		{"trailing.  ", "Trailing."},
		{"", ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, CapitalizeSentences(tc.input), tc.input)
	}
}

func TestPolishIsTotal(t *testing.T) {
	for _, s := range []string{"", " ", ".", "(", ")", "a", "i", "\xff\xfe", "日本語。テスト"} {
		assert.NotPanics(t, func() { Polish(s) }, s)
	}
}
