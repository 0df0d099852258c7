package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpRendersQuestionnaireSize(t *testing.T) {
	assert.Contains(t, Help(12), "I ask 12 questions")
	assert.Contains(t, Help(3), "I ask 3 questions")
}

func TestQuestionShowsProgress(t *testing.T) {
	msg := Question(2, 10, "What problem does it solve?")
	assert.Contains(t, msg, "Question 2 of 10")
	assert.Contains(t, msg, "What problem does it solve?")
}
