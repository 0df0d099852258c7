package validation

import "strings"

// uncertaintyPhrases are matched case-insensitively against the raw answer.
// Hitting one short-circuits validation without a model call, so the
// "I don't know" path stays fast and deterministic.
var uncertaintyPhrases = []string{
	"not sure",
	"don't know",
	"dont know",
	"don’t know",
	"no idea",
	"no clue",
	"unsure",
	"i am uncertain",
	"i'm uncertain",
	"what do you mean",
	"can you help",
}

// ExpressesUncertainty reports whether the answer contains one of the fixed
// uncertainty phrases.
func ExpressesUncertainty(answer string) bool {
	lowered := strings.ToLower(answer)
	for _, phrase := range uncertaintyPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
