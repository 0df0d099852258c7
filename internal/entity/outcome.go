package entity

// OutcomeKind discriminates the sequencer's result union. Callers are
// expected to switch over it exhaustively.
type OutcomeKind string

const (
	// OutcomeAdvance moves the interview to the next question (or was a
	// forced advance after the follow-up budget ran out).
	OutcomeAdvance OutcomeKind = "ADVANCE"
	// OutcomeFollowUp re-asks the current question with a clarifying prompt.
	OutcomeFollowUp OutcomeKind = "FOLLOW_UP"
	// OutcomeAssistance keeps the current question active and offers an
	// AI-generated suggestion because the user expressed uncertainty.
	OutcomeAssistance OutcomeKind = "ASSISTANCE"
	// OutcomeComplete signals that the question list is exhausted.
	OutcomeComplete OutcomeKind = "COMPLETE"
)

// Outcome is the sequencer's answer to one user submission. Exactly one
// variant is populated according to Kind; Answers always echoes the updated
// accumulated-answers mapping so the caller can stay in sync.
type Outcome struct {
	Kind    OutcomeKind
	Answers map[string]string

	// OutcomeAdvance
	Question            *QuestionSpec
	QuestionNumber      int
	MaxFollowUpsReached bool

	// OutcomeFollowUp
	FollowUpQuestion string
	FollowUpCount    int
	MissingCriteria  []string

	// OutcomeAssistance
	Suggestion    string
	Criteria      []string
	ExampleAnswer string

	// OutcomeComplete
	Message string
}
