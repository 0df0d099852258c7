package record

import (
	"context"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
)

type LanguageModel interface {
	GenerateRecommendations(ctx context.Context, req *entity.LLMRecommendationRequest) (*entity.LLMRecommendationResponse, error)
}

// CSVStore is the append-only tabular sink for completed interviews.
type CSVStore interface {
	Append(record *entity.IntakeRecord) error
}

// Repository is the durable audit store for completed interviews.
type Repository interface {
	Save(ctx context.Context, record *entity.IntakeRecord) error
	GetByID(ctx context.Context, id string) (*entity.IntakeRecord, error)
}
