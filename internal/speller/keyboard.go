package speller

import (
	"math"
	"unicode"
)

const (
	transposeCost   = 0.6
	neighborInsDel  = 0.9
	keyboardNearSub = 0.6
	vowelSub        = 0.5
	offKeyboard     = 2.5
)

// qwerty rows with their horizontal stagger in key widths.
var qwerty = []struct {
	keys   string
	offset float64
}{
	{"qwertyuiop", 0},
	{"asdfghjkl", 0.25},
	{"zxcvbnm", 0.75},
}

type keyCoord struct{ x, y float64 }

var keyCoords = func() map[rune]keyCoord {
	m := make(map[rune]keyCoord, 26)
	for y, row := range qwerty {
		for x, r := range row.keys {
			m[r] = keyCoord{x: float64(x) + row.offset, y: float64(y)}
		}
	}
	return m
}()

// keyDistance is the euclidean distance between two keys in key widths.
// Runes off the keyboard are treated as far apart.
func keyDistance(a, b rune) float64 {
	ca, okA := keyCoords[unicode.ToLower(a)]
	cb, okB := keyCoords[unicode.ToLower(b)]
	if !okA || !okB {
		return offKeyboard
	}
	return math.Hypot(ca.x-cb.x, ca.y-cb.y)
}

// subTiers maps a key distance ceiling to a substitution cost.
var subTiers = []struct{ maxDist, cost float64 }{
	{1.0, keyboardNearSub},
	{1.5, 0.8},
	{2.2, 1.2},
}

func isVowelRune(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func substitutionCost(a, b rune) float64 {
	a, b = unicode.ToLower(a), unicode.ToLower(b)
	if isVowelRune(a) && isVowelRune(b) {
		return vowelSub
	}
	d := keyDistance(a, b)
	for _, t := range subTiers {
		if d <= t.maxDist {
			return t.cost
		}
	}
	return 1.8
}

// isOneAdjacentSwap reports whether b equals a with one pair of neighbouring
// runes exchanged.
func isOneAdjacentSwap(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return false
	}
	var diffs []int
	for i := range ra {
		if ra[i] != rb[i] {
			if diffs = append(diffs, i); len(diffs) > 2 {
				return false
			}
		}
	}
	if len(diffs) != 2 || diffs[1] != diffs[0]+1 {
		return false
	}
	i := diffs[0]
	return ra[i] == rb[i+1] && ra[i+1] == rb[i]
}

// weightedDL is a Damerau-Levenshtein distance where substitutions between
// neighbouring keys are cheap.
func weightedDL(a, b string, transpose float64) float64 {
	if isOneAdjacentSwap(a, b) {
		return transpose
	}
	ra := []rune(a)
	rb := []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 || lb == 0 {
		return float64(la+lb) * neighborInsDel
	}
	// three rolling rows: prev2 is needed for the transposition step
	prev2 := make([]float64, lb+1)
	prev := make([]float64, lb+1)
	curr := make([]float64, lb+1)
	for j := 1; j <= lb; j++ {
		prev[j] = float64(j) * neighborInsDel
	}
	for i := 1; i <= la; i++ {
		curr[0] = float64(i) * neighborInsDel
		for j := 1; j <= lb; j++ {
			var sub float64
			if ra[i-1] != rb[j-1] {
				sub = substitutionCost(ra[i-1], rb[j-1])
			}
			best := min(prev[j]+neighborInsDel, curr[j-1]+neighborInsDel, prev[j-1]+sub)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				best = min(best, prev2[j-2]+transpose)
			}
			curr[j] = best
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[lb]
}
