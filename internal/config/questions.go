package config

import "github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"

// DefaultQuestionnaire is the built-in question table used when no
// questions.json is deployed. The question count and per-question criteria
// are deliberately data, not code: deployments override them via
// QUESTIONNAIRE_PATH without a rebuild.
func DefaultQuestionnaire() *entity.Questionnaire {
	return &entity.Questionnaire{
		Questions: []entity.QuestionSpec{
			{
				ID:            "idea_description",
				Number:        1,
				Prompt:        "Let's get started. In a sentence or two, what is the AI project idea you have in mind?",
				ExampleAnswer: "An assistant that drafts responses to customer support tickets.",
				MaxFollowUps:  0,
				Fields:        []string{"idea_description"},
			},
			{
				ID:     "business_problem",
				Number: 2,
				Prompt: "What business problem would this project solve?",
				Criteria: []string{
					"the business problem being solved",
					"who is affected by the problem",
					"the cost or impact of the problem today",
				},
				ExampleAnswer: "Support agents spend 40% of their day writing repetitive replies, which delays responses to complex tickets and costs us roughly two full-time salaries per year.",
				MaxFollowUps:  2,
				Fields:        []string{"business_problem"},
			},
			{
				ID:     "target_users",
				Number: 3,
				Prompt: "Who would use this solution, and how often?",
				Criteria: []string{
					"who the primary users are",
					"how often they would use it",
				},
				ExampleAnswer: "Our 25 tier-1 support agents would use it on every ticket, so dozens of times per day each.",
				MaxFollowUps:  1,
				Fields:        []string{"target_users"},
			},
			{
				ID:     "current_process",
				Number: 4,
				Prompt: "How is this task handled today, without the AI solution?",
				Criteria: []string{
					"how the task is handled today",
					"pain points of the current process",
				},
				ExampleAnswer: "Agents copy from a shared document of canned replies and edit by hand; the document is outdated and answers are inconsistent.",
				MaxFollowUps:  1,
				Fields:        []string{"current_process"},
			},
			{
				ID:     "data_availability",
				Number: 5,
				Prompt: "What data do you have that the AI could learn from, and where does it live?",
				Criteria: []string{
					"what data exists",
					"where the data is stored",
					"roughly how much data there is",
				},
				ExampleAnswer: "About 200,000 resolved tickets with agent replies, stored in Zendesk for the last five years.",
				MaxFollowUps:  2,
				Fields:        []string{"data_sources", "data_readiness"},
			},
			{
				ID:     "success_metrics",
				Number: 6,
				Prompt: "How would you measure whether the project succeeded?",
				Criteria: []string{
					"a measurable definition of success",
					"a target value or threshold",
				},
				ExampleAnswer: "Average first-response time drops from 4 hours to under 1 hour within two quarters.",
				MaxFollowUps:  2,
				Fields:        []string{"success_metrics"},
			},
			{
				ID:     "integrations",
				Number: 7,
				Prompt: "Which existing systems would the solution need to work with?",
				Criteria: []string{
					"systems the solution must integrate with",
				},
				ExampleAnswer: "Zendesk for tickets and Slack for internal escalation.",
				MaxFollowUps:  1,
				Fields:        []string{"integrations"},
			},
			{
				ID:     "constraints",
				Number: 8,
				Prompt: "Are there regulatory, privacy, or technical constraints we should know about?",
				Criteria: []string{
					"regulatory or privacy constraints",
					"technical constraints",
				},
				ExampleAnswer: "Customer data must stay in the EU, and the tool has to run inside our VPC; no data may be sent to third-party APIs.",
				MaxFollowUps:  1,
				Fields:        []string{"constraints"},
			},
			{
				ID:     "timeline_budget",
				Number: 9,
				Prompt: "What timeline and budget do you have in mind?",
				Criteria: []string{
					"expected timeline",
					"available budget or team capacity",
				},
				ExampleAnswer: "A pilot within three months, with one engineer and a 50k budget for the first phase.",
				MaxFollowUps:  2,
				Fields:        []string{"timeline", "budget"},
			},
			{
				ID:     "risks",
				Number: 10,
				Prompt: "Finally, what risks or concerns do you have about this project?",
				Criteria: []string{
					"main risks or concerns",
				},
				ExampleAnswer: "Agents might distrust the drafts, and wrong answers reaching customers would damage the brand.",
				MaxFollowUps:  1,
				Fields:        []string{"risks"},
			},
		},
	}
}
