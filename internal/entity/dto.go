package entity

import "time"

type StartSessionRequest struct {
	// Initiator is optional free-form metadata about who starts the
	// interview (an email, a display name). Recorded, never validated.
	Initiator string `json:"initiator,omitempty"`
}

type StartSessionResponse struct {
	SessionID string             `json:"session_id"`
	Question  *QuestionDTO       `json:"question"`
	State     *ConversationState `json:"state"`
}

type AdvanceRequest struct {
	Answer string             `json:"answer"`
	State  *ConversationState `json:"state"`
}

// QuestionDTO is the wire shape of a question as shown to the user.
type QuestionDTO struct {
	ID            string   `json:"id"`
	Number        int      `json:"number"`
	Prompt        string   `json:"prompt"`
	Criteria      []string `json:"criteria,omitempty"`
	ExampleAnswer string   `json:"example_answer,omitempty"`
	MaxFollowUps  int      `json:"max_follow_ups"`
}

// AdvanceResponse is the wire form of the sequencer outcome. Exactly one of
// Complete, NeedsAssistance, IsFollowUp is true; when all are false the
// response is a plain advance to the next question.
type AdvanceResponse struct {
	Complete bool   `json:"complete,omitempty"`
	Message  string `json:"message,omitempty"`

	NeedsAssistance bool     `json:"needs_assistance,omitempty"`
	Suggestion      string   `json:"suggestion,omitempty"`
	Criteria        []string `json:"criteria,omitempty"`
	ExampleAnswer   string   `json:"example_answer,omitempty"`

	IsFollowUp      bool     `json:"is_follow_up,omitempty"`
	FollowUpCount   int      `json:"follow_up_count,omitempty"`
	MissingCriteria []string `json:"missing_criteria,omitempty"`

	Question              *QuestionDTO `json:"question,omitempty"`
	CurrentQuestionNumber int          `json:"current_question_number,omitempty"`
	MaxFollowUpsReached   bool         `json:"max_follow_ups_reached,omitempty"`

	Answers map[string]string  `json:"answers"`
	State   *ConversationState `json:"state"`
}

type RecordDTO struct {
	ID                  string            `json:"id"`
	CreatedAt           time.Time         `json:"created_at"`
	Fields              map[string]string `json:"fields"`
	RecommendedApproach string            `json:"recommended_approach"`
	SuggestedModelType  string            `json:"suggested_model_type"`
	ComplexityEstimate  string            `json:"complexity_estimate"`
	NextSteps           string            `json:"next_steps"`
	ForcedAdvance       bool              `json:"forced_advance"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
