package followup

import (
	"context"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
)

type LanguageModel interface {
	GenerateFollowUp(ctx context.Context, req *entity.LLMFollowUpRequest) (string, error)
	GenerateSuggestion(ctx context.Context, req *entity.LLMSuggestionRequest) (string, error)
}
