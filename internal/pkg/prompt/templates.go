// Package prompt builds the instruction strings sent to the language model.
// Each template is a named function with typed parameters so the callers
// stay unit-testable without a live model.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
)

// CheckCriteriaSystem instructs the model to act as a strict JSON classifier.
const CheckCriteriaSystem = `You review answers given during an AI project intake interview.
For the question, answer and criteria below, decide which criteria the answer addresses.
Also decide whether the user is expressing uncertainty about what to answer.
Reply with ONLY a JSON object of this exact shape:
{"met": ["..."], "missing": ["..."], "uncertain": false}
Every criterion must appear in exactly one of "met" or "missing", copied verbatim.`

// CheckCriteria renders the user turn for a criteria validation call.
func CheckCriteria(req *entity.LLMCheckCriteriaRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question: %s\n\n", req.Question)
	fmt.Fprintf(&sb, "Answer so far: %s\n\n", req.Answer)
	sb.WriteString("Criteria:\n")
	for _, c := range req.Criteria {
		fmt.Fprintf(&sb, "- %s\n", c)
	}
	return sb.String()
}

// FollowUpSystem instructs the model to write a single clarifying question.
const FollowUpSystem = `You conduct an AI project intake interview.
The user's answer did not cover everything needed. Write ONE short, friendly
follow-up question that asks for the missing information. Do not repeat the
original question verbatim and do not mention "criteria". Reply with the
question text only.`

// FollowUp renders the user turn for a follow-up generation call. On the
// last allowed attempt the instruction asks for a more direct phrasing.
func FollowUp(req *entity.LLMFollowUpRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Original question: %s\n\n", req.Question)
	fmt.Fprintf(&sb, "User's answer so far: %s\n\n", req.PriorAnswer)
	sb.WriteString("Still missing:\n")
	for _, m := range req.Missing {
		fmt.Fprintf(&sb, "- %s\n", m)
	}
	if req.Attempt >= req.MaxAttempts {
		sb.WriteString("\nThis is the final follow-up: ask directly and specifically for the missing information.")
	}
	return sb.String()
}

// SuggestionSystem instructs the model to help an uncertain user.
const SuggestionSystem = `You conduct an AI project intake interview.
The user is unsure how to answer. Offer a brief, concrete suggestion of what
a good answer could look like for their situation, in two or three sentences.
Reply with the suggestion text only.`

// Suggestion renders the user turn for an assistance call.
func Suggestion(req *entity.LLMSuggestionRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question: %s\n\n", req.Question)
	if req.PriorAnswer != "" {
		fmt.Fprintf(&sb, "What the user said: %s\n\n", req.PriorAnswer)
	}
	if req.ExampleAnswer != "" {
		fmt.Fprintf(&sb, "Example of a good answer: %s\n\n", req.ExampleAnswer)
	}
	if len(req.Criteria) > 0 {
		sb.WriteString("A complete answer covers:\n")
		for _, c := range req.Criteria {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
	}
	return sb.String()
}

// RecommendationSystem instructs the model to derive the final record fields.
const RecommendationSystem = `You are an AI solutions consultant. Based on the completed intake interview
below, produce recommendations for the proposed project.
Reply with ONLY a JSON object of this exact shape:
{"recommended_approach": "...", "suggested_model_type": "...", "complexity_estimate": "...", "next_steps": "..."}
Keep each value to a few sentences.`

// Recommendation renders the user turn for the final recommendation call.
func Recommendation(req *entity.LLMRecommendationRequest) string {
	var sb strings.Builder
	fields := make([]string, 0, len(req.Answers))
	for field := range req.Answers {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	sb.WriteString("Collected answers:\n")
	for _, field := range fields {
		fmt.Fprintf(&sb, "%s: %s\n", field, req.Answers[field])
	}
	if len(req.Transcript) > 0 {
		sb.WriteString("\nFull conversation:\n")
		for _, msg := range req.Transcript {
			fmt.Fprintf(&sb, "[%s] %s\n", msg.Role, msg.Content)
		}
	}
	return sb.String()
}
