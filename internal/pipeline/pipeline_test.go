package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textcorrector/internal/corrector"
	cerrors "textcorrector/internal/errors"
	"textcorrector/internal/speller"
)

func newFrequencyPipeline(t *testing.T) *Pipeline {
	t.Helper()
	f := speller.NewFrequency()
	_, err := f.Load(speller.DefaultDictionary())
	require.NoError(t, err)
	return New(corrector.NewSpellCorrector(corrector.CorrectorConfig{}, f, nil, nil))
}

// mapChecker knows a fixed word list and corrects from a fixed table.
type mapChecker struct {
	mu          sync.Mutex
	known       map[string]bool
	corrections map[string]string
}

func newMapChecker(known []string, corrections map[string]string) *mapChecker {
	c := &mapChecker{known: map[string]bool{}, corrections: corrections}
	for _, w := range known {
		c.known[w] = true
	}
	return c
}

func (c *mapChecker) Unknown(word string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.known[word], nil
}

func (c *mapChecker) Correction(word string) (string, bool, error) {
	best, ok := c.corrections[word]
	return best, ok, nil
}

func (c *mapChecker) Candidates(word string) ([]string, error) {
	if best, ok := c.corrections[word]; ok {
		return []string{best}, nil
	}
	return nil, nil
}

func (c *mapChecker) AddKnownWords(words ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range words {
		c.known[w] = true
	}
	return nil
}

type downChecker struct{}

func (downChecker) Unknown(string) (bool, error) {
	return false, cerrors.NewCollaboratorUnavailable("down")
}
func (downChecker) Correction(string) (string, bool, error) {
	return "", false, cerrors.NewCollaboratorUnavailable("down")
}
func (downChecker) Candidates(string) ([]string, error) {
	return nil, cerrors.NewCollaboratorUnavailable("down")
}
func (downChecker) AddKnownWords(...string) error {
	return cerrors.NewCollaboratorUnavailable("down")
}

func TestRun_SentenceCapitalization(t *testing.T) {
	p := newFrequencyPipeline(t)
	res := p.Run(context.Background(), "hello world. this is fine? yes!")

	assert.Equal(t, "Hello world. This is fine? Yes!", res.Corrected)
	assert.Empty(t, res.Suggestions)
	assert.Equal(t, 100, res.GrammarScore)
	assert.Equal(t, 6, res.Metrics.Words)
	assert.Equal(t, 3, res.Metrics.Sentences)
}

func TestRun_Articles(t *testing.T) {
	p := newFrequencyPipeline(t)
	res := p.Run(context.Background(), "he ate a apple and a banana")

	assert.Contains(t, res.Corrected, "an apple")
	assert.Contains(t, res.Corrected, "a banana")
}

func TestRun_Pronoun(t *testing.T) {
	p := newFrequencyPipeline(t)
	res := p.Run(context.Background(), "i think i am right")
	assert.Contains(t, res.Corrected, "I think I am right")
}

func TestRun_NumbersUntouched(t *testing.T) {
	p := newFrequencyPipeline(t)
	testCases := []struct {
		input    string
		expected string
	}{
		{"it costs 3 dollars", "It costs 3 dollars"},
		{"in 2024", "In 2024"},
		{"The price is 3.14 dollars.", "The price is 3. 14 dollars."},
	}
	for _, tc := range testCases {
		res := p.Run(context.Background(), tc.input)
		assert.Equal(t, tc.expected, res.Corrected, tc.input)
		assert.Empty(t, res.Suggestions, tc.input)
		assert.Equal(t, 100, res.GrammarScore, tc.input)
	}
}

func TestRun_CommonWordsSurvive(t *testing.T) {
	p := newFrequencyPipeline(t)

	res := p.Run(context.Background(), "Dont worry")
	assert.Equal(t, "Don' t worry", res.Corrected)
	assert.Empty(t, res.Suggestions)

	res = p.Run(context.Background(), "the price of the house went up because the government raised taxes")
	assert.Equal(t, "The price of the house went up because the government raised taxes", res.Corrected)
	assert.Empty(t, res.Suggestions)
}

func TestRun_SpellingSuggestions(t *testing.T) {
	checker := newMapChecker(
		[]string{"the", "cat", "sat", "on", "mat"},
		map[string]string{"teh": "the", "mta": "mat"},
	)
	p := New(corrector.NewSpellCorrector(corrector.CorrectorConfig{}, checker, nil, nil))

	res := p.Run(context.Background(), "teh cat sat on the mta")
	assert.Equal(t, "The cat sat on the mat", res.Corrected)
	require.Len(t, res.Suggestions, 2)
	assert.Equal(t, corrector.Suggestion{Index: 0, From: "teh", To: "the", Candidates: []string{"the"}}, res.Suggestions[0])
	assert.Equal(t, 5, res.Suggestions[1].Index)
	assert.Equal(t, 90, res.GrammarScore)
}

func TestRun_CustomWord(t *testing.T) {
	checker := newMapChecker([]string{"we", "are"}, map[string]string{"gonna": "gone"})
	p := New(corrector.NewSpellCorrector(corrector.CorrectorConfig{}, checker, nil, nil))
	ctx := context.Background()

	res := p.Run(ctx, "we are gonna")
	require.Len(t, res.Suggestions, 1)

	lw, err := p.AddCustomWord(ctx, "gonna")
	require.NoError(t, err)
	assert.Equal(t, "gonna", lw)
	assert.Equal(t, []string{"gonna"}, p.CustomWords())

	res = p.Run(ctx, "we are gonna")
	assert.Equal(t, "We are gonna", res.Corrected)
	assert.Empty(t, res.Suggestions)
}

func TestAddCustomWord_Invalid(t *testing.T) {
	p := newFrequencyPipeline(t)
	_, err := p.AddCustomWord(context.Background(), " 123 ")
	require.Error(t, err)
	assert.True(t, cerrors.Is(err, cerrors.ErrInvalidWord))

	lw, err := p.AddCustomWord(context.Background(), "Café")
	require.NoError(t, err)
	assert.Equal(t, "café", lw)
}

func TestRun_CheckerDownDegrades(t *testing.T) {
	p := New(corrector.NewSpellCorrector(corrector.CorrectorConfig{}, downChecker{}, nil, nil))
	res := p.Run(context.Background(), "helo wrld")
	assert.Equal(t, "Helo wrld", res.Corrected)
	assert.Empty(t, res.Suggestions)
	assert.Equal(t, 100, res.GrammarScore)

	_, err := p.AddCustomWord(context.Background(), "yeet")
	assert.NoError(t, err)
}

func TestRun_Empty(t *testing.T) {
	p := newFrequencyPipeline(t)
	res := p.Run(context.Background(), "")
	assert.Equal(t, "", res.Corrected)
	assert.Zero(t, res.Metrics.Sentences)
	assert.NotNil(t, res.Suggestions)
}

func TestRun_GrammarScoreFloor(t *testing.T) {
	checker := newMapChecker(nil, map[string]string{"x": "y"})
	p := New(corrector.NewSpellCorrector(corrector.CorrectorConfig{}, checker, nil, nil))
	res := p.Run(context.Background(), strings.Repeat("x ", 25))
	assert.Len(t, res.Suggestions, 25)
	assert.Equal(t, 0, res.GrammarScore)
}

func TestResult_JSON(t *testing.T) {
	p := newFrequencyPipeline(t)
	res := p.Run(context.Background(), "yes")

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	for _, key := range []string{"original", "corrected", "suggestions", "metrics", "grammar_score", "readability"} {
		assert.Contains(t, got, key)
	}
	assert.Equal(t, []any{}, got["suggestions"])
}

func TestRun_Concurrent(t *testing.T) {
	checker := newMapChecker([]string{"hello"}, nil)
	p := New(corrector.NewSpellCorrector(corrector.CorrectorConfig{}, checker, nil, nil))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.Run(ctx, "hello there")
		}()
		go func() {
			defer wg.Done()
			_, _ = p.AddCustomWord(ctx, "there")
		}()
	}
	wg.Wait()
	assert.Equal(t, []string{"there"}, p.CustomWords())
}
