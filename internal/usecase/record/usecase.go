// Package record turns a completed interview into the fixed-schema intake
// record: accumulated answers mapped onto output fields, recommendation
// fields synthesized by the language model, the row appended to the CSV
// file and saved for audit.
package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Usecase struct {
	questionnaire *entity.Questionnaire
	llm           LanguageModel
	csv           CSVStore
	repo          Repository
	logger        *zap.Logger
}

func NewUsecase(
	questionnaire *entity.Questionnaire,
	llm LanguageModel,
	csv CSVStore,
	repo Repository,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		questionnaire: questionnaire,
		llm:           llm,
		csv:           csv,
		repo:          repo,
		logger:        logger,
	}
}

// Complete builds and persists the intake record for a finished interview.
// The CSV append is the primary sink and its failure is fatal; the audit
// save is secondary and only logged. Recommendation generation falls back
// to deterministic text so a model outage never loses the submission.
func (uc *Usecase) Complete(ctx context.Context, state *entity.ConversationState) (*entity.IntakeRecord, error) {
	if state == nil {
		return nil, entity.ErrNilState
	}
	if state.CurrentQuestion <= uc.questionnaire.Total() {
		return nil, fmt.Errorf("%w: at question %d of %d",
			entity.ErrInterviewOngoing, state.CurrentQuestion, uc.questionnaire.Total())
	}

	rec := &entity.IntakeRecord{
		ID:            state.SessionID,
		CreatedAt:     time.Now().UTC(),
		Fields:        make(map[string]string, len(state.Answers)),
		ForcedAdvance: state.ForcedAdvance,
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	for _, field := range uc.questionnaire.FieldOrder() {
		rec.Fields[field] = state.Answers[field]
	}

	recommendation, err := uc.llm.GenerateRecommendations(ctx, &entity.LLMRecommendationRequest{
		Answers:    rec.Fields,
		Transcript: state.Transcript,
	})
	if err != nil {
		ctxzap.Warn(ctx, "recommendation generation failed, using fallback text",
			zap.Error(err))
		recommendation = fallbackRecommendations()
	}
	rec.RecommendedApproach = recommendation.RecommendedApproach
	rec.SuggestedModelType = recommendation.SuggestedModelType
	rec.ComplexityEstimate = recommendation.ComplexityEstimate
	rec.NextSteps = recommendation.NextSteps

	if err := uc.csv.Append(rec); err != nil {
		return nil, fmt.Errorf("append intake record to csv: %w", err)
	}

	if err := uc.repo.Save(ctx, rec); err != nil {
		ctxzap.Warn(ctx, "failed to save intake record for audit",
			zap.String("record_id", rec.ID),
			zap.Error(err))
	}

	ctxzap.Info(ctx, "intake record persisted",
		zap.String("record_id", rec.ID),
		zap.Bool("forced_advance", rec.ForcedAdvance))

	return rec, nil
}

// Get fetches a previously completed intake record.
func (uc *Usecase) Get(ctx context.Context, id string) (*entity.IntakeRecord, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get intake record: %w", err)
	}
	return rec, nil
}

// Render produces the human-readable summary text of a record, consumed by
// the export formatters.
func (uc *Usecase) Render(rec *entity.IntakeRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# AI Project Intake — %s\n\n", rec.ID)
	fmt.Fprintf(&sb, "Submitted: %s\n\n", rec.CreatedAt.Format(time.RFC3339))

	sb.WriteString("## Answers\n\n")
	for _, field := range uc.questionnaire.FieldOrder() {
		fmt.Fprintf(&sb, "**%s**: %s\n\n", field, rec.Fields[field])
	}

	sb.WriteString("## Recommendations\n\n")
	fmt.Fprintf(&sb, "**Recommended approach**: %s\n\n", rec.RecommendedApproach)
	fmt.Fprintf(&sb, "**Suggested model type**: %s\n\n", rec.SuggestedModelType)
	fmt.Fprintf(&sb, "**Complexity estimate**: %s\n\n", rec.ComplexityEstimate)
	fmt.Fprintf(&sb, "**Next steps**: %s\n\n", rec.NextSteps)

	if rec.ForcedAdvance {
		sb.WriteString("_Note: some questions were moved past without a fully validated answer._\n")
	}

	return sb.String()
}

func fallbackRecommendations() *entity.LLMRecommendationResponse {
	return &entity.LLMRecommendationResponse{
		RecommendedApproach: "Review the collected answers with a solutions architect; automated recommendations were unavailable at submission time.",
		SuggestedModelType:  "To be determined during review.",
		ComplexityEstimate:  "Unknown",
		NextSteps:           "Schedule a follow-up review of this intake submission.",
	}
}
