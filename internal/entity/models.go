package entity

import (
	"fmt"
	"time"
)

// MessageRole tags transcript entries with their author.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one entry of the conversation transcript, kept in submission
// order and forwarded to the language model as context.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// QuestionSpec is the static definition of one interview question.
// Loaded once from configuration and never mutated afterwards, so it is safe
// for unsynchronized concurrent reads across sessions.
type QuestionSpec struct {
	ID            string   `json:"id"`
	Number        int      `json:"number"`
	Prompt        string   `json:"prompt"`
	Criteria      []string `json:"criteria,omitempty"`
	ExampleAnswer string   `json:"example_answer,omitempty"`
	MaxFollowUps  int      `json:"max_follow_ups"`
	Fields        []string `json:"fields"`
}

// Questionnaire is the ordered, immutable question table for the whole
// interview. Question numbers are 1-based and strictly sequential.
type Questionnaire struct {
	Questions []QuestionSpec `json:"questions"`
}

// Total returns the number of questions in the interview.
func (q *Questionnaire) Total() int {
	return len(q.Questions)
}

// ByNumber returns the question with the given 1-based number.
func (q *Questionnaire) ByNumber(number int) (*QuestionSpec, error) {
	if number < 1 || number > len(q.Questions) {
		return nil, fmt.Errorf("%w: question number %d of %d", ErrQuestionNotFound, number, len(q.Questions))
	}
	return &q.Questions[number-1], nil
}

// Validate checks structural integrity of a loaded questionnaire.
func (q *Questionnaire) Validate() error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: questionnaire has no questions", ErrInvalidQuestionnaire)
	}

	seen := make(map[string]bool, len(q.Questions))
	for i, spec := range q.Questions {
		if spec.Number != i+1 {
			return fmt.Errorf("%w: question %q has number %d, expected %d", ErrInvalidQuestionnaire, spec.ID, spec.Number, i+1)
		}
		if spec.ID == "" {
			return fmt.Errorf("%w: question %d has empty id", ErrInvalidQuestionnaire, i+1)
		}
		if seen[spec.ID] {
			return fmt.Errorf("%w: duplicate question id %q", ErrInvalidQuestionnaire, spec.ID)
		}
		seen[spec.ID] = true
		if spec.Prompt == "" {
			return fmt.Errorf("%w: question %q has empty prompt", ErrInvalidQuestionnaire, spec.ID)
		}
		if spec.MaxFollowUps < 0 {
			return fmt.Errorf("%w: question %q has negative max_follow_ups", ErrInvalidQuestionnaire, spec.ID)
		}
		if len(spec.Fields) == 0 {
			return fmt.Errorf("%w: question %q maps to no output fields", ErrInvalidQuestionnaire, spec.ID)
		}
	}
	return nil
}

// FieldOrder returns every output field name in question order, without
// duplicates. Used to lay out CSV columns deterministically.
func (q *Questionnaire) FieldOrder() []string {
	var order []string
	seen := make(map[string]bool)
	for _, spec := range q.Questions {
		for _, f := range spec.Fields {
			if !seen[f] {
				seen[f] = true
				order = append(order, f)
			}
		}
	}
	return order
}

// ConversationState is the mutable per-session record. The caller owns it:
// it is passed into every Advance call and the updated version is echoed
// back. There is no ambient session store for HTTP sessions.
type ConversationState struct {
	SessionID       string            `json:"session_id"`
	CurrentQuestion int               `json:"current_question"`
	FollowUpCount   int               `json:"follow_up_count"`
	Answers         map[string]string `json:"answers"`
	Transcript      []Message         `json:"transcript"`

	// ForcedAdvance records that at least one question was advanced with
	// unmet criteria. Carried into the final intake record.
	ForcedAdvance bool `json:"forced_advance,omitempty"`
}

// NewConversationState returns the initial state for a fresh interview.
func NewConversationState(sessionID string) *ConversationState {
	return &ConversationState{
		SessionID:       sessionID,
		CurrentQuestion: 1,
		FollowUpCount:   0,
		Answers:         make(map[string]string),
		Transcript:      nil,
	}
}

// ValidationResult is the per-call verdict of the criteria validator.
// Ephemeral: consumed immediately by the sequencer, never persisted.
type ValidationResult struct {
	AllMet    bool
	Met       []string
	Missing   []string
	Uncertain bool
}

// IntakeRecord is the fixed-schema output row produced when an interview
// completes. Answer fields are keyed by the questionnaire's output-field
// names; recommendation fields are synthesized by the language model.
type IntakeRecord struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Fields    map[string]string `json:"fields"`

	RecommendedApproach string `json:"recommended_approach"`
	SuggestedModelType  string `json:"suggested_model_type"`
	ComplexityEstimate  string `json:"complexity_estimate"`
	NextSteps           string `json:"next_steps"`

	// ForcedAdvance is true when at least one question was advanced with
	// unmet criteria after the follow-up budget ran out.
	ForcedAdvance bool `json:"forced_advance"`
}

// ResultFormat selects the export format for a completed intake record.
type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
)

func (f ResultFormat) Validate() error {
	switch f {
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return nil
	default:
		return fmt.Errorf("%w: result format %q", ErrInvalidParameter, string(f))
	}
}
