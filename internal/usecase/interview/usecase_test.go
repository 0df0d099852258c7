package interview

import (
	"context"
	"testing"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/usecase/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// allMetModel reports every criterion as met, so validation outcomes depend
// only on the local uncertainty check.
type allMetModel struct{}

func (allMetModel) CheckCriteria(ctx context.Context, req *entity.LLMCheckCriteriaRequest) (*entity.LLMCheckCriteriaResponse, error) {
	return &entity.LLMCheckCriteriaResponse{Met: req.Criteria}, nil
}

type stubValidator struct {
	result      *entity.ValidationResult
	queue       []*entity.ValidationResult
	calls       int
	accumulated []string
	latest      []string
}

func (s *stubValidator) Validate(ctx context.Context, question *entity.QuestionSpec, accumulated, latest string) *entity.ValidationResult {
	s.calls++
	s.accumulated = append(s.accumulated, accumulated)
	s.latest = append(s.latest, latest)
	if len(s.queue) > 0 {
		r := s.queue[0]
		s.queue = s.queue[1:]
		return r
	}
	if s.result != nil {
		return s.result
	}
	return &entity.ValidationResult{AllMet: true}
}

type stubFollowUps struct {
	followUpCalls   int
	suggestionCalls int
}

func (s *stubFollowUps) FollowUp(ctx context.Context, question *entity.QuestionSpec, missing []string, priorAnswer string, attempt int) string {
	s.followUpCalls++
	return "stub follow-up"
}

func (s *stubFollowUps) Suggestion(ctx context.Context, question *entity.QuestionSpec, priorAnswer string) string {
	s.suggestionCalls++
	return "stub suggestion"
}

func testQuestionnaire(t *testing.T) *entity.Questionnaire {
	t.Helper()
	q := &entity.Questionnaire{
		Questions: []entity.QuestionSpec{
			{
				ID:           "intro",
				Number:       1,
				Prompt:       "Describe your idea.",
				MaxFollowUps: 0,
				Fields:       []string{"intro"},
			},
			{
				ID:            "problem",
				Number:        2,
				Prompt:        "What problem does it solve?",
				Criteria:      []string{"the problem", "who it affects"},
				ExampleAnswer: "An example answer.",
				MaxFollowUps:  2,
				Fields:        []string{"problem"},
			},
			{
				ID:           "plan",
				Number:       3,
				Prompt:       "What is your timeline and budget?",
				Criteria:     []string{"timeline"},
				MaxFollowUps: 1,
				Fields:       []string{"timeline", "budget"},
			},
		},
	}
	require.NoError(t, q.Validate())
	return q
}

func newTestUsecase(t *testing.T, v *stubValidator, f *stubFollowUps) *Usecase {
	t.Helper()
	return NewUsecase(testQuestionnaire(t), v, f, zap.NewNop())
}

func TestAdvanceNilState(t *testing.T) {
	uc := newTestUsecase(t, &stubValidator{}, &stubFollowUps{})

	_, err := uc.Advance(context.Background(), nil, "answer")
	assert.ErrorIs(t, err, entity.ErrNilState)
}

func TestAdvanceRejectsEmptyAnswer(t *testing.T) {
	uc := newTestUsecase(t, &stubValidator{}, &stubFollowUps{})
	state := entity.NewConversationState("s1")

	for _, answer := range []string{"", "   ", "\n\t"} {
		_, err := uc.Advance(context.Background(), state, answer)
		assert.ErrorIs(t, err, entity.ErrEmptyAnswer)
	}
	assert.Equal(t, 1, state.CurrentQuestion)
	assert.Empty(t, state.Answers)
}

func TestAdvanceRejectsInvalidQuestionNumber(t *testing.T) {
	uc := newTestUsecase(t, &stubValidator{}, &stubFollowUps{})

	state := entity.NewConversationState("s1")
	state.CurrentQuestion = 0

	_, err := uc.Advance(context.Background(), state, "answer")
	assert.ErrorIs(t, err, entity.ErrInvalidQuestionNumber)

	state.CurrentQuestion = -3
	_, err = uc.Advance(context.Background(), state, "answer")
	assert.ErrorIs(t, err, entity.ErrInvalidQuestionNumber)
}

func TestAdvanceRejectsInvalidFollowUpCount(t *testing.T) {
	uc := newTestUsecase(t, &stubValidator{}, &stubFollowUps{})

	state := entity.NewConversationState("s1")
	state.CurrentQuestion = 2
	state.FollowUpCount = -1

	_, err := uc.Advance(context.Background(), state, "answer")
	assert.ErrorIs(t, err, entity.ErrInvalidFollowUpCount)

	// Above the per-question maximum is just as invalid; it is never clamped.
	state.FollowUpCount = 3
	_, err = uc.Advance(context.Background(), state, "answer")
	assert.ErrorIs(t, err, entity.ErrInvalidFollowUpCount)
	assert.Equal(t, 2, state.CurrentQuestion)
}

func TestAdvanceNoCriteriaSkipsValidation(t *testing.T) {
	v := &stubValidator{}
	uc := newTestUsecase(t, v, &stubFollowUps{})
	state := entity.NewConversationState("s1")

	outcome, err := uc.Advance(context.Background(), state, "my idea")
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeAdvance, outcome.Kind)
	assert.Equal(t, 2, outcome.QuestionNumber)
	assert.Equal(t, "problem", outcome.Question.ID)
	assert.False(t, outcome.MaxFollowUpsReached)
	assert.Equal(t, 0, v.calls, "criteria validator must not run for criterion-less questions")
	assert.Equal(t, "my idea", state.Answers["intro"])
}

func TestAdvanceAllMetAdvances(t *testing.T) {
	v := &stubValidator{result: &entity.ValidationResult{AllMet: true}}
	uc := newTestUsecase(t, v, &stubFollowUps{})

	state := entity.NewConversationState("s1")
	state.CurrentQuestion = 2
	state.FollowUpCount = 1

	outcome, err := uc.Advance(context.Background(), state, "a full answer")
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeAdvance, outcome.Kind)
	assert.Equal(t, 3, state.CurrentQuestion)
	assert.Equal(t, 0, state.FollowUpCount, "follow-up count resets on advance")
	assert.False(t, state.ForcedAdvance)
}

func TestAdvanceUncertaintyGivesAssistance(t *testing.T) {
	v := &stubValidator{result: &entity.ValidationResult{
		Uncertain: true,
		Missing:   []string{"the problem", "who it affects"},
	}}
	f := &stubFollowUps{}
	uc := newTestUsecase(t, v, f)

	state := entity.NewConversationState("s1")
	state.CurrentQuestion = 2
	state.FollowUpCount = 1

	outcome, err := uc.Advance(context.Background(), state, "not sure what you mean")
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeAssistance, outcome.Kind)
	assert.Equal(t, "stub suggestion", outcome.Suggestion)
	assert.Equal(t, []string{"the problem", "who it affects"}, outcome.Criteria)
	assert.Equal(t, "An example answer.", outcome.ExampleAnswer)

	// Assistance keeps the question active and does not spend the budget.
	assert.Equal(t, 2, state.CurrentQuestion)
	assert.Equal(t, 1, state.FollowUpCount)
	assert.Equal(t, 1, f.suggestionCalls)
	assert.Equal(t, 0, f.followUpCalls)
}

func TestAdvanceUncertaintyWinsOverExhaustedBudget(t *testing.T) {
	v := &stubValidator{result: &entity.ValidationResult{
		Uncertain: true,
		Missing:   []string{"the problem"},
	}}
	uc := newTestUsecase(t, v, &stubFollowUps{})

	state := entity.NewConversationState("s1")
	state.CurrentQuestion = 2
	state.FollowUpCount = 2

	outcome, err := uc.Advance(context.Background(), state, "no idea")
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeAssistance, outcome.Kind)
	assert.Equal(t, 2, state.CurrentQuestion)
	assert.Equal(t, 2, state.FollowUpCount)
}

func TestAdvanceAfterAssistanceValidatesFromScratch(t *testing.T) {
	v := &stubValidator{queue: []*entity.ValidationResult{
		{Uncertain: true, Missing: []string{"the problem", "who it affects"}},
		{AllMet: true},
	}}
	uc := newTestUsecase(t, v, &stubFollowUps{})

	state := entity.NewConversationState("s1")
	state.CurrentQuestion = 2

	outcome, err := uc.Advance(context.Background(), state, "not sure")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeAssistance, outcome.Kind)
	assert.Empty(t, state.Answers["problem"], "an uncertain fragment must not enter the accumulated answer")

	answer := "agents lose two hours a day, support leads are affected"
	outcome, err = uc.Advance(context.Background(), state, answer)
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeAdvance, outcome.Kind)
	assert.Equal(t, 3, state.CurrentQuestion)
	assert.Equal(t, answer, state.Answers["problem"])

	require.Equal(t, 2, v.calls)
	assert.Equal(t, "not sure", v.latest[0])
	assert.Equal(t, answer, v.latest[1])
	assert.Equal(t, answer, v.accumulated[1], "the uncertain fragment must not be carried into the next validation")
}

// Exercises the real validator: after an "I don't know" answer the very next
// complete submission must still advance the interview.
func TestUncertainAnswerDoesNotStallTheInterview(t *testing.T) {
	v := validation.NewValidator(allMetModel{}, zap.NewNop())
	uc := NewUsecase(testQuestionnaire(t), v, &stubFollowUps{}, zap.NewNop())

	state := entity.NewConversationState("s1")
	state.CurrentQuestion = 2

	outcome, err := uc.Advance(context.Background(), state, "not sure, can you help")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeAssistance, outcome.Kind)

	outcome, err = uc.Advance(context.Background(), state, "agents lose two hours a day, support leads are affected")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeAdvance, outcome.Kind)
	assert.Equal(t, 3, state.CurrentQuestion)
	assert.Equal(t, 0, state.FollowUpCount)
}

func TestAdvanceFollowUpWithinBudget(t *testing.T) {
	v := &stubValidator{result: &entity.ValidationResult{
		Missing: []string{"who it affects"},
	}}
	f := &stubFollowUps{}
	uc := newTestUsecase(t, v, f)

	state := entity.NewConversationState("s1")
	state.CurrentQuestion = 2

	outcome, err := uc.Advance(context.Background(), state, "it solves a problem")
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeFollowUp, outcome.Kind)
	assert.Equal(t, "stub follow-up", outcome.FollowUpQuestion)
	assert.Equal(t, 1, outcome.FollowUpCount)
	assert.Equal(t, []string{"who it affects"}, outcome.MissingCriteria)
	assert.Equal(t, 2, state.CurrentQuestion)
	assert.Equal(t, 1, state.FollowUpCount)
	assert.Equal(t, 1, f.followUpCalls)
}

func TestAdvanceForcesAdvanceAfterBudgetExhausted(t *testing.T) {
	v := &stubValidator{result: &entity.ValidationResult{
		Missing: []string{"the problem"},
	}}
	uc := newTestUsecase(t, v, &stubFollowUps{})

	state := entity.NewConversationState("s1")
	state.CurrentQuestion = 2
	state.FollowUpCount = 2

	outcome, err := uc.Advance(context.Background(), state, "still vague")
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeAdvance, outcome.Kind)
	assert.True(t, outcome.MaxFollowUpsReached)
	assert.Equal(t, 3, state.CurrentQuestion)
	assert.Equal(t, 0, state.FollowUpCount)
	assert.True(t, state.ForcedAdvance, "forced advance is recorded on the state")
}

func TestAdvanceAccumulatesAnswersWithSingleSpace(t *testing.T) {
	v := &stubValidator{result: &entity.ValidationResult{Missing: []string{"the problem"}}}
	uc := newTestUsecase(t, v, &stubFollowUps{})

	state := entity.NewConversationState("s1")
	state.CurrentQuestion = 2

	_, err := uc.Advance(context.Background(), state, "A")
	require.NoError(t, err)
	assert.Equal(t, "A", state.Answers["problem"])

	_, err = uc.Advance(context.Background(), state, "B")
	require.NoError(t, err)
	assert.Equal(t, "A B", state.Answers["problem"])
}

func TestAdvanceDuplicatesAnswerAcrossMappedFields(t *testing.T) {
	v := &stubValidator{result: &entity.ValidationResult{AllMet: true}}
	uc := newTestUsecase(t, v, &stubFollowUps{})

	state := entity.NewConversationState("s1")
	state.CurrentQuestion = 3

	outcome, err := uc.Advance(context.Background(), state, "three months, 50k")
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeComplete, outcome.Kind)
	assert.Equal(t, "three months, 50k", state.Answers["timeline"])
	assert.Equal(t, "three months, 50k", state.Answers["budget"])
}

func TestAdvanceCompletesAfterLastQuestion(t *testing.T) {
	v := &stubValidator{result: &entity.ValidationResult{AllMet: true}}
	uc := newTestUsecase(t, v, &stubFollowUps{})

	state := entity.NewConversationState("s1")
	state.CurrentQuestion = 3

	outcome, err := uc.Advance(context.Background(), state, "done")
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeComplete, outcome.Kind)
	assert.NotEmpty(t, outcome.Message)
	assert.Equal(t, 4, state.CurrentQuestion)
}

func TestAdvanceOnCompletedStateIsIdempotent(t *testing.T) {
	v := &stubValidator{}
	f := &stubFollowUps{}
	uc := newTestUsecase(t, v, f)

	state := entity.NewConversationState("s1")
	state.CurrentQuestion = 4
	state.Answers = map[string]string{"intro": "done"}
	transcriptLen := len(state.Transcript)

	for i := 0; i < 3; i++ {
		outcome, err := uc.Advance(context.Background(), state, "anything")
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeComplete, outcome.Kind)
		assert.Equal(t, state.Answers, outcome.Answers)
	}

	assert.Equal(t, 4, state.CurrentQuestion)
	assert.Equal(t, "done", state.Answers["intro"])
	assert.Len(t, state.Transcript, transcriptLen, "repeated completion must not touch the transcript")
	assert.Equal(t, 0, v.calls)
	assert.Equal(t, 0, f.followUpCalls+f.suggestionCalls)
}

func TestFullInterviewHappyPath(t *testing.T) {
	v := &stubValidator{result: &entity.ValidationResult{AllMet: true}}
	uc := newTestUsecase(t, v, &stubFollowUps{})

	state := entity.NewConversationState("s1")
	answers := []string{"an assistant", "it saves agent time", "pilot in Q3"}

	var last *entity.Outcome
	for _, a := range answers {
		outcome, err := uc.Advance(context.Background(), state, a)
		require.NoError(t, err)
		last = outcome
	}

	assert.Equal(t, entity.OutcomeComplete, last.Kind)
	assert.False(t, state.ForcedAdvance)
	assert.Equal(t, "an assistant", state.Answers["intro"])
	assert.Equal(t, "it saves agent time", state.Answers["problem"])
	assert.Equal(t, "pilot in Q3", state.Answers["timeline"])
}

func TestTranscriptRecordsBothSides(t *testing.T) {
	v := &stubValidator{result: &entity.ValidationResult{AllMet: true}}
	uc := newTestUsecase(t, v, &stubFollowUps{})

	state := entity.NewConversationState("s1")

	_, err := uc.Advance(context.Background(), state, "my idea")
	require.NoError(t, err)

	require.Len(t, state.Transcript, 2)
	assert.Equal(t, entity.RoleUser, state.Transcript[0].Role)
	assert.Equal(t, "my idea", state.Transcript[0].Content)
	assert.Equal(t, entity.RoleAssistant, state.Transcript[1].Role)
	assert.Equal(t, "What problem does it solve?", state.Transcript[1].Content)
}

func TestFirstQuestion(t *testing.T) {
	uc := newTestUsecase(t, &stubValidator{}, &stubFollowUps{})

	first := uc.FirstQuestion()
	require.NotNil(t, first)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "intro", first.ID)
}
