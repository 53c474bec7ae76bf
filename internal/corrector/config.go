package corrector

// DefaultMaxCandidates is how many alternatives a Suggestion carries.
const DefaultMaxCandidates = 5

type CorrectorConfig struct {
	MaxCandidates int
}

// Suggestion records one spelling change made during correction.
type Suggestion struct {
	Index      int      `json:"index"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	Candidates []string `json:"candidates"`
}
