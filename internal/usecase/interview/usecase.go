// Package interview holds the sequencer: the state machine that decides,
// after each user answer, whether to offer assistance, re-ask, force forward
// or advance to the next question.
package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const completionMessage = "That's everything I needed — thank you! Your project summary is being prepared."

// Usecase implements the interview sequencer. The caller owns the
// ConversationState and must not advance the same state concurrently; the
// questionnaire is immutable and shared across all sessions.
type Usecase struct {
	questionnaire *entity.Questionnaire
	validator     CriteriaValidator
	followUps     FollowUpGenerator
	logger        *zap.Logger
}

func NewUsecase(
	questionnaire *entity.Questionnaire,
	validator CriteriaValidator,
	followUps FollowUpGenerator,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		questionnaire: questionnaire,
		validator:     validator,
		followUps:     followUps,
		logger:        logger,
	}
}

// Questionnaire exposes the immutable question table to the surfaces.
func (uc *Usecase) Questionnaire() *entity.Questionnaire {
	return uc.questionnaire
}

// FirstQuestion returns the opening question of the interview.
func (uc *Usecase) FirstQuestion() *entity.QuestionSpec {
	q, _ := uc.questionnaire.ByNumber(1)
	return q
}

// Advance processes one user answer and returns the next step of the
// interview. It mutates state in place; the outcome echoes the updated
// accumulated answers. Calling Advance on a completed state is idempotent
// and side-effect free.
func (uc *Usecase) Advance(ctx context.Context, state *entity.ConversationState, answer string) (*entity.Outcome, error) {
	if state == nil {
		return nil, entity.ErrNilState
	}

	total := uc.questionnaire.Total()

	if state.CurrentQuestion > total {
		ctxzap.Debug(ctx, "advance called on completed interview")
		return &entity.Outcome{
			Kind:    entity.OutcomeComplete,
			Message: completionMessage,
			Answers: state.Answers,
		}, nil
	}

	// Contract checks. The UI forbids empty submissions and owns the state
	// it sends back; anything inconsistent here is a caller bug and is
	// rejected rather than clamped.
	if strings.TrimSpace(answer) == "" {
		return nil, entity.ErrEmptyAnswer
	}
	if state.CurrentQuestion < 1 {
		return nil, fmt.Errorf("%w: %d", entity.ErrInvalidQuestionNumber, state.CurrentQuestion)
	}

	question, err := uc.questionnaire.ByNumber(state.CurrentQuestion)
	if err != nil {
		return nil, err
	}

	if state.FollowUpCount < 0 || state.FollowUpCount > question.MaxFollowUps {
		return nil, fmt.Errorf("%w: %d (question %q allows at most %d)",
			entity.ErrInvalidFollowUpCount, state.FollowUpCount, question.ID, question.MaxFollowUps)
	}

	// Questions without criteria (the open-ended intro) advance directly.
	if len(question.Criteria) == 0 {
		mergeAnswer(state, question, answer)
		ctxzap.Info(ctx, "question has no criteria, advancing",
			zap.String("question_id", question.ID))
		return uc.advance(ctx, state, false), nil
	}

	// Validate before committing the fragment. An uncertain fragment stays
	// out of the accumulated fields, otherwise it would keep tripping the
	// phrase check on every later submission to the question.
	accumulated := joinFragment(accumulatedAnswer(state, question), answer)
	result := uc.validator.Validate(ctx, question, accumulated, answer)

	if result.Uncertain {
		// The question stays active and the follow-up budget is untouched;
		// the next submission is validated from scratch.
		suggestion := uc.followUps.Suggestion(ctx, question, accumulated)
		state.Transcript = append(state.Transcript,
			entity.Message{Role: entity.RoleUser, Content: answer},
			entity.Message{Role: entity.RoleAssistant, Content: suggestion},
		)

		ctxzap.Info(ctx, "offering assistance",
			zap.String("question_id", question.ID))

		return &entity.Outcome{
			Kind:          entity.OutcomeAssistance,
			Suggestion:    suggestion,
			Criteria:      question.Criteria,
			ExampleAnswer: question.ExampleAnswer,
			Answers:       state.Answers,
		}, nil
	}

	mergeAnswer(state, question, answer)

	switch {
	case result.AllMet:
		ctxzap.Info(ctx, "all criteria met, advancing",
			zap.String("question_id", question.ID))
		return uc.advance(ctx, state, false), nil

	case state.FollowUpCount < question.MaxFollowUps:
		state.FollowUpCount++
		followUp := uc.followUps.FollowUp(ctx, question, result.Missing, accumulated, state.FollowUpCount)
		state.Transcript = append(state.Transcript, entity.Message{
			Role:    entity.RoleAssistant,
			Content: followUp,
		})

		ctxzap.Info(ctx, "criteria unmet, asking follow-up",
			zap.String("question_id", question.ID),
			zap.Int("follow_up_count", state.FollowUpCount),
			zap.Strings("missing", result.Missing))

		return &entity.Outcome{
			Kind:             entity.OutcomeFollowUp,
			FollowUpQuestion: followUp,
			FollowUpCount:    state.FollowUpCount,
			MissingCriteria:  result.Missing,
			Answers:          state.Answers,
		}, nil

	default:
		// Follow-up budget exhausted: a normal terminal transition for the
		// question, not a failure.
		ctxzap.Info(ctx, "follow-up budget exhausted, forcing advance",
			zap.String("question_id", question.ID),
			zap.Strings("missing", result.Missing))
		return uc.advance(ctx, state, true), nil
	}
}

// advance moves the interview to the next question, or completes it when
// the list is exhausted. forced marks an advance with unmet criteria.
func (uc *Usecase) advance(ctx context.Context, state *entity.ConversationState, forced bool) *entity.Outcome {
	state.CurrentQuestion++
	state.FollowUpCount = 0
	if forced {
		state.ForcedAdvance = true
	}

	if state.CurrentQuestion > uc.questionnaire.Total() {
		ctxzap.Info(ctx, "interview complete",
			zap.Bool("forced_advance", state.ForcedAdvance))
		return &entity.Outcome{
			Kind:                entity.OutcomeComplete,
			Message:             completionMessage,
			MaxFollowUpsReached: forced,
			Answers:             state.Answers,
		}
	}

	next, _ := uc.questionnaire.ByNumber(state.CurrentQuestion)
	state.Transcript = append(state.Transcript, entity.Message{
		Role:    entity.RoleAssistant,
		Content: next.Prompt,
	})

	return &entity.Outcome{
		Kind:                entity.OutcomeAdvance,
		Question:            next,
		QuestionNumber:      state.CurrentQuestion,
		MaxFollowUpsReached: forced,
		Answers:             state.Answers,
	}
}
