// Package followup phrases clarifying re-asks and assistance suggestions.
// The generator is a pure function of its inputs plus one model call; when
// the model is unavailable it falls back to deterministic templates so the
// user is never left without a next prompt.
package followup

import (
	"context"
	"fmt"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Generator struct {
	llm    LanguageModel
	logger *zap.Logger
}

func NewGenerator(llm LanguageModel, logger *zap.Logger) *Generator {
	return &Generator{
		llm:    llm,
		logger: logger,
	}
}

// FollowUp returns a clarifying question for the missing criteria. attempt is
// the 1-based follow-up number about to be asked.
func (g *Generator) FollowUp(ctx context.Context, question *entity.QuestionSpec, missing []string, priorAnswer string, attempt int) string {
	text, err := g.llm.GenerateFollowUp(ctx, &entity.LLMFollowUpRequest{
		Question:    question.Prompt,
		Missing:     missing,
		PriorAnswer: priorAnswer,
		Attempt:     attempt,
		MaxAttempts: question.MaxFollowUps,
	})
	if err != nil {
		ctxzap.Warn(ctx, "follow-up generation failed, using template",
			zap.String("question_id", question.ID),
			zap.Error(err))
		return templatedFollowUp(missing)
	}

	return text
}

// Suggestion returns help for a user who expressed uncertainty.
func (g *Generator) Suggestion(ctx context.Context, question *entity.QuestionSpec, priorAnswer string) string {
	text, err := g.llm.GenerateSuggestion(ctx, &entity.LLMSuggestionRequest{
		Question:      question.Prompt,
		Criteria:      question.Criteria,
		PriorAnswer:   priorAnswer,
		ExampleAnswer: question.ExampleAnswer,
	})
	if err != nil {
		ctxzap.Warn(ctx, "suggestion generation failed, using template",
			zap.String("question_id", question.ID),
			zap.Error(err))
		return templatedSuggestion(question)
	}

	return text
}

func templatedFollowUp(missing []string) string {
	if len(missing) == 0 {
		return "Could you expand on your answer a little?"
	}
	return fmt.Sprintf("Thanks! Could you also tell me about %s?", missing[0])
}

func templatedSuggestion(question *entity.QuestionSpec) string {
	if question.ExampleAnswer != "" {
		return fmt.Sprintf("No worries — here is an example of what an answer could look like: %s", question.ExampleAnswer)
	}
	return "No worries — answer in your own words, even a rough idea helps."
}
