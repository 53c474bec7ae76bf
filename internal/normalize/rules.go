package normalize

// contractions maps apostrophe-less typos to their fixed form.
var contractions = map[string]string{
	"dont":     "don't",
	"cant":     "can't",
	"wont":     "won't",
	"im":       "I'm",
	"ive":      "I've",
	"youre":    "you're",
	"isnt":     "isn't",
	"wasnt":    "wasn't",
	"werent":   "weren't",
	"shouldnt": "shouldn't",
	"couldnt":  "couldn't",
	"wouldnt":  "wouldn't",
	"didnt":    "didn't",
	"doesnt":   "doesn't",
}

// slang maps chat abbreviations to their expansion.
var slang = map[string]string{
	"u":     "you",
	"ur":    "your",
	"r":     "are",
	"pls":   "please",
	"plz":   "please",
	"thx":   "thanks",
	"ty":    "thanks",
	"btw":   "by the way",
	"idk":   "I don't know",
	"imo":   "in my opinion",
	"imho":  "in my opinion",
	"afaik": "as far as I know",
	"brb":   "be right back",
	"ttyl":  "talk to you later",
}

// Rule rewrites a lowercased word. ok is false when the rule does not apply.
type Rule struct {
	Name  string
	Apply func(lower string) (out string, ok bool)
}

// Lookup builds a rule from a fixed table.
func Lookup(name string, table map[string]string) Rule {
	return Rule{
		Name: name,
		Apply: func(lower string) (string, bool) {
			v, ok := table[lower]
			return v, ok
		},
	}
}

// Contractions fixes apostrophe-less contractions ("dont" -> "don't").
func Contractions() Rule { return Lookup("contraction", contractions) }

// Slang expands chat abbreviations ("idk" -> "I don't know").
func Slang() Rule { return Lookup("slang", slang) }

// Repeats collapses runs of 3+ identical runes. It always applies, so it
// belongs last in a rule table.
func Repeats() Rule {
	return Rule{
		Name: "repeats",
		Apply: func(lower string) (string, bool) {
			return ReduceRepeats(lower), true
		},
	}
}

// DefaultRules is the contraction > slang > repeats priority table.
func DefaultRules() []Rule {
	return []Rule{Contractions(), Slang(), Repeats()}
}

// ReduceRepeats limits any rune repeated 3 or more times in a row to exactly
// two occurrences ("heeellooo" -> "heelloo").
func ReduceRepeats(s string) string {
	out := make([]rune, 0, len(s))
	run := 0
	var prev rune
	for i, r := range []rune(s) {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		prev = r
		if run <= 2 {
			out = append(out, r)
		}
	}
	return string(out)
}
