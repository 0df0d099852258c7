// Package validation decides whether an accumulated answer satisfies a
// question's criteria. It fails closed: whenever the language model cannot
// confirm that all criteria are met, the result says they are not.
package validation

import (
	"context"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Validator struct {
	llm    LanguageModel
	logger *zap.Logger
}

func NewValidator(llm LanguageModel, logger *zap.Logger) *Validator {
	return &Validator{
		llm:    llm,
		logger: logger,
	}
}

// Validate checks the full accumulated answer for the question against its
// criteria list. The deterministic uncertainty check runs on the latest raw
// fragment only; an "I don't know" from an earlier turn must not keep
// short-circuiting once the user answers for real. It never returns an
// error: any upstream failure or malformed verdict resolves to "not all
// criteria met" so the sequencer can keep moving within the follow-up
// budget.
func (v *Validator) Validate(ctx context.Context, question *entity.QuestionSpec, accumulated, latest string) *entity.ValidationResult {
	// Deterministic local check first. An uncertain user gets help, not a
	// model round trip.
	if ExpressesUncertainty(latest) {
		ctxzap.Info(ctx, "answer expresses uncertainty, skipping model validation",
			zap.String("question_id", question.ID))
		return &entity.ValidationResult{
			AllMet:    false,
			Missing:   append([]string(nil), question.Criteria...),
			Uncertain: true,
		}
	}

	verdict, err := v.llm.CheckCriteria(ctx, &entity.LLMCheckCriteriaRequest{
		Question: question.Prompt,
		Answer:   accumulated,
		Criteria: question.Criteria,
	})
	if err != nil {
		ctxzap.Warn(ctx, "criteria check failed, treating all criteria as unmet",
			zap.String("question_id", question.ID),
			zap.Error(err))
		return &entity.ValidationResult{
			AllMet:    false,
			Missing:   append([]string(nil), question.Criteria...),
			Uncertain: false,
		}
	}

	return &entity.ValidationResult{
		AllMet:    len(verdict.Missing) == 0,
		Met:       verdict.Met,
		Missing:   verdict.Missing,
		Uncertain: verdict.Uncertain,
	}
}
