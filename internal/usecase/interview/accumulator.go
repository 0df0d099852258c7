package interview

import "github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"

// mergeAnswer folds a raw answer fragment into the accumulated fields for
// the question. Repeated answers to the same question (main + follow-ups)
// concatenate with a single space, in submission order; earlier text is
// never overwritten. A question mapping to several output fields writes the
// same accumulated text to all of them.
func mergeAnswer(state *entity.ConversationState, question *entity.QuestionSpec, fragment string) {
	if state.Answers == nil {
		state.Answers = make(map[string]string)
	}

	for _, field := range question.Fields {
		state.Answers[field] = joinFragment(state.Answers[field], fragment)
	}

	state.Transcript = append(state.Transcript, entity.Message{
		Role:    entity.RoleUser,
		Content: fragment,
	})
}

// joinFragment concatenates accumulated text and a new fragment with a
// single space. Earlier text always comes first.
func joinFragment(prior, fragment string) string {
	if prior == "" {
		return fragment
	}
	return prior + " " + fragment
}

// accumulatedAnswer returns the full accumulated text for the question. All
// mapped fields hold identical text, so the first one is authoritative.
func accumulatedAnswer(state *entity.ConversationState, question *entity.QuestionSpec) string {
	if state.Answers == nil || len(question.Fields) == 0 {
		return ""
	}
	return state.Answers[question.Fields[0]]
}
