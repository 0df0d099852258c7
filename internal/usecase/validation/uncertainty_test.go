package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpressesUncertainty(t *testing.T) {
	positives := []string{
		"not sure",
		"I'm NOT SURE about that",
		"I don't know",
		"i dont know",
		"no idea honestly",
		"no clue",
		"unsure about the budget",
		"what do you mean by data?",
		"can you help me with this one",
	}
	for _, answer := range positives {
		assert.True(t, ExpressesUncertainty(answer), "expected uncertainty: %q", answer)
	}

	negatives := []string{
		"",
		"we want to automate ticket replies",
		"the data lives in Zendesk",
		"surely this will work", // contains "sure" but not a phrase
	}
	for _, answer := range negatives {
		assert.False(t, ExpressesUncertainty(answer), "expected no uncertainty: %q", answer)
	}
}
