package corrector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textcorrector/internal/customdict"
	cerrors "textcorrector/internal/errors"
)

type stubChecker struct {
	known       map[string]bool
	corrections map[string]string
	candidates  map[string][]string
	added       []string

	unknownErr error
	candErr    error
	addErr     error
}

func newStub() *stubChecker {
	return &stubChecker{
		known: map[string]bool{"hello": true, "world": true, "the": true},
		corrections: map[string]string{
			"helo":  "hello",
			"wrld":  "world",
			"gonna": "gone",
		},
		candidates: map[string][]string{
			"helo":  {"hello", "help", "held", "helm", "hell", "hero", "halo"},
			"wrld":  {"world"},
			"gonna": {"gone"},
		},
	}
}

func (s *stubChecker) Unknown(word string) (bool, error) {
	if s.unknownErr != nil {
		return false, s.unknownErr
	}
	return !s.known[word], nil
}

func (s *stubChecker) Correction(word string) (string, bool, error) {
	c, ok := s.corrections[word]
	return c, ok, nil
}

func (s *stubChecker) Candidates(word string) ([]string, error) {
	if s.candErr != nil {
		return nil, s.candErr
	}
	return s.candidates[word], nil
}

func (s *stubChecker) AddKnownWords(words ...string) error {
	s.added = append(s.added, words...)
	for _, w := range words {
		s.known[w] = true
	}
	return s.addErr
}

func TestCorrect_ReplacesUnknownWords(t *testing.T) {
	sc := NewSpellCorrector(CorrectorConfig{}, newStub(), nil, nil)

	got, sugg := sc.Correct("Helo wrld, the end")
	assert.Equal(t, "Hello world, the end", got)
	require.Len(t, sugg, 2)

	assert.Equal(t, Suggestion{
		Index:      0,
		From:       "Helo",
		To:         "Hello",
		Candidates: []string{"hello", "help", "held", "helm", "hell"},
	}, sugg[0])
	assert.Equal(t, 1, sugg[1].Index)
	assert.Equal(t, "wrld", sugg[1].From)
	assert.Equal(t, "world", sugg[1].To)
}

func TestCorrect_AllUpperSource(t *testing.T) {
	sc := NewSpellCorrector(CorrectorConfig{}, newStub(), nil, nil)
	got, sugg := sc.Correct("HELO")
	assert.Equal(t, "HELLO", got)
	require.Len(t, sugg, 1)
	assert.Equal(t, "HELO", sugg[0].From)
}

func TestCorrect_NoCorrectionOffered(t *testing.T) {
	sc := NewSpellCorrector(CorrectorConfig{}, newStub(), nil, nil)
	got, sugg := sc.Correct("qzx hello")
	assert.Equal(t, "qzx hello", got)
	assert.Empty(t, sugg)
}

func TestCorrect_SymbolsUntouched(t *testing.T) {
	sc := NewSpellCorrector(CorrectorConfig{}, newStub(), nil, nil)
	got, sugg := sc.Correct("hello , world !")
	assert.Equal(t, "hello, world!", got)
	assert.Empty(t, sugg)
}

func TestCorrect_CollaboratorErrorsLeaveTokens(t *testing.T) {
	stub := newStub()
	stub.unknownErr = cerrors.NewCollaboratorUnavailable("stub")
	sc := NewSpellCorrector(CorrectorConfig{}, stub, nil, nil)

	got, sugg := sc.Correct("helo wrld")
	assert.Equal(t, "helo wrld", got)
	assert.Empty(t, sugg)
}

func TestCorrect_CandidateErrorKeepsSuggestion(t *testing.T) {
	stub := newStub()
	stub.candErr = errors.New("boom")
	sc := NewSpellCorrector(CorrectorConfig{}, stub, nil, nil)

	got, sugg := sc.Correct("helo")
	assert.Equal(t, "hello", got)
	require.Len(t, sugg, 1)
	assert.Empty(t, sugg[0].Candidates)
	assert.NotNil(t, sugg[0].Candidates)
}

func TestCorrect_CustomWordNotFlagged(t *testing.T) {
	stub := newStub()
	sc := NewSpellCorrector(CorrectorConfig{}, stub, nil, nil)

	_, sugg := sc.Correct("we are gonna win")
	require.NotEmpty(t, sugg)

	lw, err := sc.AddCustomWord(context.Background(), "gonna")
	require.NoError(t, err)
	assert.Equal(t, "gonna", lw)
	assert.True(t, sc.Dict().Contains("gonna"))
	assert.Equal(t, []string{"gonna"}, stub.added)

	// the dictionary alone must be enough
	stub.known["gonna"] = false
	got, sugg := sc.Correct("we are gonna win")
	assert.Equal(t, "we are gonna win", got)
	for _, s := range sugg {
		assert.NotEqual(t, "gonna", s.From)
	}
}

func TestAddCustomWord_Validation(t *testing.T) {
	sc := NewSpellCorrector(CorrectorConfig{}, newStub(), nil, nil)
	ctx := context.Background()

	for _, bad := range []string{" 123 ", "", "   ", "two words", "co-op", "abc1"} {
		_, err := sc.AddCustomWord(ctx, bad)
		require.Error(t, err, bad)
		assert.True(t, cerrors.Is(err, cerrors.ErrInvalidWord), bad)
	}
	assert.Zero(t, sc.Dict().Len())

	lw, err := sc.AddCustomWord(ctx, "  Café ")
	require.NoError(t, err)
	assert.Equal(t, "café", lw)
	assert.True(t, sc.Dict().Contains("café"))
}

func TestAddCustomWord_ComposesDecomposedInput(t *testing.T) {
	lw, err := NormalizeWord("Cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, "café", lw)
}

func TestAddCustomWord_CheckerFailureSwallowed(t *testing.T) {
	stub := newStub()
	stub.addErr = errors.New("table full")
	sc := NewSpellCorrector(CorrectorConfig{}, stub, nil, nil)

	lw, err := sc.AddCustomWord(context.Background(), "yeet")
	require.NoError(t, err)
	assert.Equal(t, "yeet", lw)
	assert.True(t, sc.Dict().Contains("yeet"))
}

type failingStore struct{}

func (failingStore) Add(context.Context, string) error     { return errors.New("down") }
func (failingStore) All(context.Context) ([]string, error) { return nil, errors.New("down") }

func TestAddCustomWord_StoreFailureSwallowed(t *testing.T) {
	dict := customdict.New(failingStore{}, nil)
	sc := NewSpellCorrector(CorrectorConfig{}, newStub(), dict, nil)

	_, err := sc.AddCustomWord(context.Background(), "yeet")
	require.NoError(t, err)
	assert.True(t, dict.Contains("yeet"))

	require.Error(t, sc.LoadCustomWords(context.Background()))
}

type listStore struct{ words []string }

func (s *listStore) Add(_ context.Context, w string) error {
	s.words = append(s.words, w)
	return nil
}
func (s *listStore) All(context.Context) ([]string, error) { return s.words, nil }

func TestLoadCustomWords_ForwardsToChecker(t *testing.T) {
	stub := newStub()
	dict := customdict.New(&listStore{words: []string{"gonna", "yeet"}}, nil)
	sc := NewSpellCorrector(CorrectorConfig{}, stub, dict, nil)

	require.NoError(t, sc.LoadCustomWords(context.Background()))
	assert.ElementsMatch(t, []string{"gonna", "yeet"}, stub.added)
	assert.True(t, dict.Contains("yeet"))
}
