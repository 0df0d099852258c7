package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/config"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/pkg/prompt"
	pkghttp "github.com/dixonjohgithub/ai-intake-mvp-sub000/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const chatCompletionsEndpoint = "/v1/chat/completions"

// Connector talks to an OpenAI-compatible chat-completions service. Both the
// hosted OpenAI API and a local Ollama server speak this protocol, so the
// provider is chosen purely by LLM_SERVICE_URL.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.LLMConnectorConfig, logger *zap.Logger) *Connector {
	connCfg := &pkghttp.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	return &Connector{
		config: cfg,
		connector: pkghttp.NewConnector(
			connCfg,
			pkghttp.WithRequestTimeout(cfg.RequestTimeout),
			pkghttp.WithConnTimeout(cfg.ConnTimeout),
			pkghttp.WithKeepAlive(cfg.KeepAlive),
			pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
			pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
			pkghttp.WithRequestLogging(),
			pkghttp.WithAuthToken(cfg.Token),
		),
		logger: logger,
	}
}

// chat-completions wire types (the subset this service uses)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete performs one chat round trip with retries and returns the raw
// assistant text.
func (c *Connector) complete(ctx context.Context, system, user string) (string, error) {
	req := chatRequest{
		Model:       c.config.Model,
		Temperature: c.config.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	var resp chatResponse
	err := retry.Do(func() error {
		resp = chatResponse{}
		return c.connector.DoRequest(ctx, http.MethodPost, chatCompletionsEndpoint, req, &resp)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: response has no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// CheckCriteria asks the model which criteria the accumulated answer covers.
func (c *Connector) CheckCriteria(ctx context.Context, req *entity.LLMCheckCriteriaRequest) (
	*entity.LLMCheckCriteriaResponse, error,
) {
	ctxzap.Info(ctx, "checking answer criteria via language model",
		zap.Int("criteria_count", len(req.Criteria)))

	raw, err := c.complete(ctx, prompt.CheckCriteriaSystem, prompt.CheckCriteria(req))
	if err != nil {
		return nil, err
	}

	var verdict entity.LLMCheckCriteriaResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &verdict); err != nil {
		return nil, fmt.Errorf("parse criteria verdict: %w", err)
	}

	if len(verdict.Met)+len(verdict.Missing) != len(req.Criteria) {
		return nil, fmt.Errorf("criteria verdict enumerates %d of %d criteria",
			len(verdict.Met)+len(verdict.Missing), len(req.Criteria))
	}

	ctxzap.Info(ctx, "criteria checked",
		zap.Int("met", len(verdict.Met)),
		zap.Int("missing", len(verdict.Missing)),
		zap.Bool("uncertain", verdict.Uncertain))

	return &verdict, nil
}

// GenerateFollowUp asks the model for a clarifying re-ask of the question.
func (c *Connector) GenerateFollowUp(ctx context.Context, req *entity.LLMFollowUpRequest) (string, error) {
	ctxzap.Info(ctx, "generating follow-up question via language model",
		zap.Int("attempt", req.Attempt))

	text, err := c.complete(ctx, prompt.FollowUpSystem, prompt.FollowUp(req))
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("generate follow-up: empty completion")
	}

	return text, nil
}

// GenerateSuggestion asks the model to help a user who expressed uncertainty.
func (c *Connector) GenerateSuggestion(ctx context.Context, req *entity.LLMSuggestionRequest) (string, error) {
	ctxzap.Info(ctx, "generating answer suggestion via language model")

	text, err := c.complete(ctx, prompt.SuggestionSystem, prompt.Suggestion(req))
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("generate suggestion: empty completion")
	}

	return text, nil
}

// GenerateRecommendations derives the final record's recommendation fields.
func (c *Connector) GenerateRecommendations(ctx context.Context, req *entity.LLMRecommendationRequest) (
	*entity.LLMRecommendationResponse, error,
) {
	ctxzap.Info(ctx, "generating project recommendations via language model",
		zap.Int("answer_fields", len(req.Answers)))

	raw, err := c.complete(ctx, prompt.RecommendationSystem, prompt.Recommendation(req))
	if err != nil {
		return nil, err
	}

	var rec entity.LLMRecommendationResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &rec); err != nil {
		return nil, fmt.Errorf("parse recommendations: %w", err)
	}

	ctxzap.Info(ctx, "recommendations generated")

	return &rec, nil
}

// extractJSON strips markdown code fences some models wrap around JSON
// replies and cuts to the outermost object.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
