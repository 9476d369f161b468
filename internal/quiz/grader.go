// Package quiz holds the answer grader and the decision engine that drive
// both chat front-ends.
package quiz

import "strings"

// DefaultThreshold is the strictness both drivers grade with: half of the
// user's words must appear in the reference answer.
const DefaultThreshold = 0.5

// Normalize prepares answer text for grading: everything after the first
// period is dropped (trailing explanatory sentences), then everything after
// the first open parenthesis (parenthetical explanations), and the remainder
// is lower-cased.
func Normalize(text string) string {
	if i := strings.IndexByte(text, '.'); i >= 0 {
		text = text[:i]
	}
	if i := strings.IndexByte(text, '('); i >= 0 {
		text = text[:i]
	}
	return strings.ToLower(text)
}

// Grade reports whether candidate matches reference under the given
// strictness. Both strings are normalized, split into word sets, and the
// share of candidate words found in the reference set is compared against
// threshold. Matching is whole-word only; "cart" never matches "art".
//
// The ratio deliberately divides by the candidate's word count: a terse
// correct answer passes even when it omits most of the reference, while a
// rambling one is penalized.
//
// An empty candidate word set grades false, as does a threshold outside
// [0, 1].
func Grade(candidate, reference string, threshold float64) bool {
	if threshold < 0 || threshold > 1 {
		return false
	}

	candidateWords := wordSet(candidate)
	if len(candidateWords) == 0 {
		return false
	}
	referenceWords := wordSet(reference)

	matched := 0
	for w := range candidateWords {
		if _, ok := referenceWords[w]; ok {
			matched++
		}
	}

	ratio := float64(matched) / float64(len(candidateWords))
	return ratio >= threshold
}

func wordSet(text string) map[string]struct{} {
	fields := strings.Fields(Normalize(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
