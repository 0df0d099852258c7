package entity

import "errors"

// Domain errors
var (
	// Questionnaire errors
	ErrQuestionNotFound     = errors.New("question not found")
	ErrInvalidQuestionnaire = errors.New("invalid questionnaire")

	// Sequencer contract violations. These are caller bugs, not user input
	// problems: the sequencer rejects instead of clamping so that stale or
	// corrupted state surfaces immediately.
	ErrEmptyAnswer           = errors.New("answer must not be empty")
	ErrInvalidQuestionNumber = errors.New("invalid current question number")
	ErrInvalidFollowUpCount  = errors.New("invalid follow-up count")
	ErrNilState              = errors.New("conversation state must not be nil")

	// Record errors
	ErrRecordNotFound   = errors.New("intake record not found")
	ErrInterviewOngoing = errors.New("interview is not complete yet")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
