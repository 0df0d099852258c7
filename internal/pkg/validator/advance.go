package validator

import (
	"fmt"
	"strings"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
)

// ValidateAdvance validates an answer submission. State consistency beyond
// basic shape is the sequencer's job; this only rejects requests that are
// structurally unusable.
func (v *Validator) ValidateAdvance(req *entity.AdvanceRequest) error {
	if req.State == nil {
		return fmt.Errorf("%w: state", entity.ErrMissingField)
	}
	if strings.TrimSpace(req.Answer) == "" {
		return fmt.Errorf("%w: answer", entity.ErrMissingField)
	}
	if req.State.CurrentQuestion < 1 {
		return fmt.Errorf("%w: current_question must be >= 1, got %d",
			entity.ErrInvalidParameter, req.State.CurrentQuestion)
	}
	if req.State.FollowUpCount < 0 {
		return fmt.Errorf("%w: follow_up_count must be >= 0, got %d",
			entity.ErrInvalidParameter, req.State.FollowUpCount)
	}
	return nil
}

// ValidateResultFormat parses the export format query parameter, defaulting
// to markdown.
func (v *Validator) ValidateResultFormat(raw string) (entity.ResultFormat, error) {
	if raw == "" {
		return entity.FormatMarkdown, nil
	}
	format := entity.ResultFormat(strings.ToLower(raw))
	if err := format.Validate(); err != nil {
		return "", err
	}
	return format, nil
}
