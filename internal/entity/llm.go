package entity

type LLMCheckCriteriaRequest struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Criteria []string  `json:"criteria"`
	Context  []Message `json:"context,omitempty"`
}

type LLMCheckCriteriaResponse struct {
	Met       []string `json:"met"`
	Missing   []string `json:"missing"`
	Uncertain bool     `json:"uncertain"`
}

type LLMFollowUpRequest struct {
	Question    string   `json:"question"`
	Missing     []string `json:"missing_criteria"`
	PriorAnswer string   `json:"prior_answer"`
	Attempt     int      `json:"attempt"`
	MaxAttempts int      `json:"max_attempts"`
}

type LLMSuggestionRequest struct {
	Question      string   `json:"question"`
	Criteria      []string `json:"criteria"`
	PriorAnswer   string   `json:"prior_answer"`
	ExampleAnswer string   `json:"example_answer"`
}

type LLMRecommendationRequest struct {
	Answers    map[string]string `json:"answers"`
	Transcript []Message         `json:"transcript"`
}

type LLMRecommendationResponse struct {
	RecommendedApproach string `json:"recommended_approach"`
	SuggestedModelType  string `json:"suggested_model_type"`
	ComplexityEstimate  string `json:"complexity_estimate"`
	NextSteps           string `json:"next_steps"`
}
