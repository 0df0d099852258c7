package intake

import (
	"context"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
)

type InterviewUsecase interface {
	Questionnaire() *entity.Questionnaire
	FirstQuestion() *entity.QuestionSpec
	Advance(ctx context.Context, state *entity.ConversationState, answer string) (*entity.Outcome, error)
}

type RecordUsecase interface {
	Complete(ctx context.Context, state *entity.ConversationState) (*entity.IntakeRecord, error)
	Get(ctx context.Context, id string) (*entity.IntakeRecord, error)
	Render(record *entity.IntakeRecord) string
}
