package llm

import (
	"context"
	"fmt"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a deterministic stand-in for the language model service,
// selected via ENABLE_MOCKS for local development without a model.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

// CheckCriteria treats any answer longer than a few words as complete.
func (m *MockConnector) CheckCriteria(ctx context.Context, req *entity.LLMCheckCriteriaRequest) (
	*entity.LLMCheckCriteriaResponse, error,
) {
	ctxzap.Info(ctx, "[MOCK] checking answer criteria", zap.Int("criteria_count", len(req.Criteria)))

	resp := &entity.LLMCheckCriteriaResponse{}
	if len(req.Answer) >= 40 {
		resp.Met = append(resp.Met, req.Criteria...)
	} else {
		resp.Missing = append(resp.Missing, req.Criteria...)
	}

	return resp, nil
}

func (m *MockConnector) GenerateFollowUp(ctx context.Context, req *entity.LLMFollowUpRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating follow-up question", zap.Int("attempt", req.Attempt))

	if len(req.Missing) == 0 {
		return "Could you add a bit more detail?", nil
	}
	return fmt.Sprintf("Thanks! Could you also tell me about %s?", req.Missing[0]), nil
}

func (m *MockConnector) GenerateSuggestion(ctx context.Context, req *entity.LLMSuggestionRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating answer suggestion")

	if req.ExampleAnswer != "" {
		return fmt.Sprintf("No problem — an answer could look like this: %s", req.ExampleAnswer), nil
	}
	return "No problem — describe your situation in your own words, even a rough answer helps.", nil
}

func (m *MockConnector) GenerateRecommendations(ctx context.Context, req *entity.LLMRecommendationRequest) (
	*entity.LLMRecommendationResponse, error,
) {
	ctxzap.Info(ctx, "[MOCK] generating project recommendations", zap.Int("answer_fields", len(req.Answers)))

	return &entity.LLMRecommendationResponse{
		RecommendedApproach: "Start with a scoped pilot using an off-the-shelf model before considering custom training.",
		SuggestedModelType:  "Large language model with retrieval over existing company data.",
		ComplexityEstimate:  "Medium",
		NextSteps:           "Validate data access, define the pilot user group, and set a baseline for the success metric.",
	}, nil
}
