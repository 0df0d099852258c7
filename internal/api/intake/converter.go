package intake

import "github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"

func toQuestionDTO(q *entity.QuestionSpec) *entity.QuestionDTO {
	if q == nil {
		return nil
	}
	return &entity.QuestionDTO{
		ID:            q.ID,
		Number:        q.Number,
		Prompt:        q.Prompt,
		Criteria:      q.Criteria,
		ExampleAnswer: q.ExampleAnswer,
		MaxFollowUps:  q.MaxFollowUps,
	}
}

// toAdvanceResponse flattens the outcome union into the wire shape. The
// updated state is echoed so the caller owns persistence between calls.
func toAdvanceResponse(outcome *entity.Outcome, state *entity.ConversationState) *entity.AdvanceResponse {
	resp := &entity.AdvanceResponse{
		Answers: outcome.Answers,
		State:   state,
	}

	switch outcome.Kind {
	case entity.OutcomeComplete:
		resp.Complete = true
		resp.Message = outcome.Message
		resp.MaxFollowUpsReached = outcome.MaxFollowUpsReached
	case entity.OutcomeAssistance:
		resp.NeedsAssistance = true
		resp.Suggestion = outcome.Suggestion
		resp.Criteria = outcome.Criteria
		resp.ExampleAnswer = outcome.ExampleAnswer
	case entity.OutcomeFollowUp:
		resp.IsFollowUp = true
		resp.FollowUpCount = outcome.FollowUpCount
		resp.MissingCriteria = outcome.MissingCriteria
		resp.Question = &entity.QuestionDTO{
			Number: state.CurrentQuestion,
			Prompt: outcome.FollowUpQuestion,
		}
	case entity.OutcomeAdvance:
		resp.Question = toQuestionDTO(outcome.Question)
		resp.CurrentQuestionNumber = outcome.QuestionNumber
		resp.MaxFollowUpsReached = outcome.MaxFollowUpsReached
	}

	return resp
}

func toRecordDTO(rec *entity.IntakeRecord) *entity.RecordDTO {
	return &entity.RecordDTO{
		ID:                  rec.ID,
		CreatedAt:           rec.CreatedAt,
		Fields:              rec.Fields,
		RecommendedApproach: rec.RecommendedApproach,
		SuggestedModelType:  rec.SuggestedModelType,
		ComplexityEstimate:  rec.ComplexityEstimate,
		NextSteps:           rec.NextSteps,
		ForcedAdvance:       rec.ForcedAdvance,
	}
}
