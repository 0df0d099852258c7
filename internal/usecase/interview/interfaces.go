package interview

import (
	"context"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
)

type CriteriaValidator interface {
	Validate(ctx context.Context, question *entity.QuestionSpec, accumulated, latest string) *entity.ValidationResult
}

type FollowUpGenerator interface {
	FollowUp(ctx context.Context, question *entity.QuestionSpec, missing []string, priorAnswer string, attempt int) string
	Suggestion(ctx context.Context, question *entity.QuestionSpec, priorAnswer string) string
}
