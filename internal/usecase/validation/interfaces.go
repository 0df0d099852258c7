package validation

import (
	"context"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
)

type LanguageModel interface {
	CheckCriteria(ctx context.Context, req *entity.LLMCheckCriteriaRequest) (*entity.LLMCheckCriteriaResponse, error)
}
