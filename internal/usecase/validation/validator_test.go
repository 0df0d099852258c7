package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLanguageModel struct {
	resp  *entity.LLMCheckCriteriaResponse
	err   error
	calls int
}

func (s *stubLanguageModel) CheckCriteria(ctx context.Context, req *entity.LLMCheckCriteriaRequest) (*entity.LLMCheckCriteriaResponse, error) {
	s.calls++
	return s.resp, s.err
}

var testQuestion = &entity.QuestionSpec{
	ID:       "problem",
	Number:   2,
	Prompt:   "What problem does it solve?",
	Criteria: []string{"the problem", "who it affects"},
	Fields:   []string{"problem"},
}

func TestValidateUncertaintyShortCircuitsWithoutModelCall(t *testing.T) {
	llm := &stubLanguageModel{}
	v := NewValidator(llm, zap.NewNop())

	result := v.Validate(context.Background(), testQuestion, "I'm not sure what to say here", "I'm not sure what to say here")

	assert.True(t, result.Uncertain)
	assert.False(t, result.AllMet)
	assert.Equal(t, testQuestion.Criteria, result.Missing)
	assert.Equal(t, 0, llm.calls, "uncertainty must be decided locally")
}

func TestValidateChecksUncertaintyOnLatestFragmentOnly(t *testing.T) {
	llm := &stubLanguageModel{resp: &entity.LLMCheckCriteriaResponse{
		Met: []string{"the problem", "who it affects"},
	}}
	v := NewValidator(llm, zap.NewNop())

	// The accumulated history carries an old "not sure"; the latest
	// fragment is a real answer and must reach the model.
	accumulated := "not sure agents lose two hours a day, support leads are affected"
	result := v.Validate(context.Background(), testQuestion, accumulated,
		"agents lose two hours a day, support leads are affected")

	assert.False(t, result.Uncertain)
	assert.True(t, result.AllMet)
	assert.Equal(t, 1, llm.calls, "stale uncertainty in the history must not skip the model")
}

func TestValidateAllCriteriaMet(t *testing.T) {
	llm := &stubLanguageModel{resp: &entity.LLMCheckCriteriaResponse{
		Met: []string{"the problem", "who it affects"},
	}}
	v := NewValidator(llm, zap.NewNop())

	answer := "agents lose two hours a day, support leads are affected"
	result := v.Validate(context.Background(), testQuestion, answer, answer)

	assert.True(t, result.AllMet)
	assert.Empty(t, result.Missing)
	assert.False(t, result.Uncertain)
	assert.Equal(t, 1, llm.calls)
}

func TestValidateMissingCriteria(t *testing.T) {
	llm := &stubLanguageModel{resp: &entity.LLMCheckCriteriaResponse{
		Met:     []string{"the problem"},
		Missing: []string{"who it affects"},
	}}
	v := NewValidator(llm, zap.NewNop())

	result := v.Validate(context.Background(), testQuestion, "agents lose two hours a day", "agents lose two hours a day")

	assert.False(t, result.AllMet)
	assert.Equal(t, []string{"who it affects"}, result.Missing)
}

func TestValidateFailsClosedOnModelError(t *testing.T) {
	llm := &stubLanguageModel{err: errors.New("connection refused")}
	v := NewValidator(llm, zap.NewNop())

	result := v.Validate(context.Background(), testQuestion, "a perfectly fine answer", "a perfectly fine answer")

	require.NotNil(t, result)
	assert.False(t, result.AllMet, "a model failure must never count as validated")
	assert.Equal(t, testQuestion.Criteria, result.Missing)
	assert.False(t, result.Uncertain)
}

func TestValidateModelReportedUncertainty(t *testing.T) {
	llm := &stubLanguageModel{resp: &entity.LLMCheckCriteriaResponse{
		Missing:   []string{"the problem", "who it affects"},
		Uncertain: true,
	}}
	v := NewValidator(llm, zap.NewNop())

	result := v.Validate(context.Background(), testQuestion, "hmm, how should I phrase it", "hmm, how should I phrase it")

	assert.True(t, result.Uncertain)
	assert.False(t, result.AllMet)
}
