// Package render holds the user-facing message templates of the Telegram
// surface.
package render

import (
	"fmt"
	"strings"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
)

const (
	MsgWelcome = `👋 Hi! I collect the details of your AI project idea through a short structured interview.

Answer each question in your own words. If something is unclear, just say so and I will help with an example.

Send /begin to start the interview.`

	MsgNoActiveInterview = "No active interview. Use /begin to start one."

	MsgInterviewInProgress = "An interview is already in progress. Answer the current question, or /cancel to abandon it."

	MsgCancelled = "Interview abandoned. Use /begin when you want to start over."

	MsgInterviewDone = "This interview is already complete. Use /begin to start a new one."

	ErrGeneric = "❌ Something went wrong. Please try again or use /begin to restart."

	ErrEmptyAnswer = "Please answer with a text message."

	ErrUnknownCommand = "❌ Unknown command. Use /help to see what I understand."
)

// Help renders the command overview. The question count comes from the
// loaded questionnaire, which may differ from the built-in default.
func Help(total int) string {
	return fmt.Sprintf(`🤖 Bot commands:

/start - Show this welcome message
/begin - Start a new intake interview
/cancel - Abandon the current interview
/help - Show this help

How it works:
1. I ask %d questions about your project idea
2. You answer in free text; I may ask a short follow-up
3. At the end you get a project summary with recommendations`, total)
}

// Question renders an interview question with its number.
func Question(number, total int, prompt string) string {
	return fmt.Sprintf("❓ Question %d of %d\n\n%s", number, total, prompt)
}

// FollowUp renders a follow-up question.
func FollowUp(prompt string) string {
	return "🔁 " + prompt
}

// Assistance renders the help shown when the user signals uncertainty.
func Assistance(suggestion string, criteria []string, example string) string {
	var sb strings.Builder
	sb.WriteString("💡 ")
	sb.WriteString(suggestion)
	if len(criteria) > 0 {
		sb.WriteString("\n\nA complete answer covers:\n")
		for _, c := range criteria {
			sb.WriteString("• ")
			sb.WriteString(c)
			sb.WriteString("\n")
		}
	}
	if example != "" {
		sb.WriteString("\nFor example: ")
		sb.WriteString(example)
	}
	return sb.String()
}

// Completion renders the final message of the interview.
func Completion(message string) string {
	return "✅ " + message
}

// RecordSummary renders a compact summary of the finished intake record.
func RecordSummary(rec *entity.IntakeRecord) string {
	var sb strings.Builder
	sb.WriteString("📋 Project summary\n\n")
	fmt.Fprintf(&sb, "Recommended approach: %s\n", rec.RecommendedApproach)
	fmt.Fprintf(&sb, "Suggested model type: %s\n", rec.SuggestedModelType)
	fmt.Fprintf(&sb, "Complexity estimate: %s\n", rec.ComplexityEstimate)
	fmt.Fprintf(&sb, "Next steps: %s\n", rec.NextSteps)
	return sb.String()
}
