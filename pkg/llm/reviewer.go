// Package llm asks an OpenAI-compatible model for a second opinion on rejected articles.
// Verdicts are advisory, they are stored for manual audit and never change the relevance gate.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/renewscope/pkg/config"
	"github.com/umputun/renewscope/pkg/domain"
)

// Verdict is the model's opinion about a rejected article
type Verdict struct {
	IsProject   bool    `json:"is_project"`
	Type        string  `json:"type"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// String renders the verdict for storage on the rejection record
func (v Verdict) String() string {
	if v.IsProject {
		return fmt.Sprintf("project (%s, %.2f): %s", v.Type, v.Confidence, v.Explanation)
	}
	return fmt.Sprintf("not a project (%.2f): %s", v.Confidence, v.Explanation)
}

// Reviewer uses LLM to re-check rejected articles
type Reviewer struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewReviewer creates a new LLM reviewer
func NewReviewer(cfg config.LLMConfig) *Reviewer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Reviewer{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

const defaultSystemPrompt = `You review news articles that an automatic filter rejected. The filter looks for
renewable energy projects in India that are announced, planned or under construction: solar, wind, hydro,
battery storage, green hydrogen and biofuel plants and factories.

Decide whether the article actually describes such an in-pipeline project. Completed or fully operational
projects, market reports, stock news and policy commentary are not projects.

Respond with a JSON object:
- is_project: true or false
- type: one of Solar, Wind, Hydro, Battery, Hydrogen, Biofuel, or empty when is_project is false
- confidence: 0 to 1
- explanation: brief explanation (max 150 chars)`

var errNoJSON = errors.New("no json object found in response")

// Review asks the model whether the rejected article is a pipeline project.
// Unparseable answers are retried up to 3 times.
func (r *Reviewer) Review(ctx context.Context, rej domain.Rejection) (Verdict, error) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}
	prompt := r.buildPrompt(rej)

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		chatReq := openai.ChatCompletionRequest{
			Model:       r.config.Model,
			Temperature: float32(r.config.Temperature),
			MaxTokens:   r.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: r.systemMsg},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		}
		if r.config.UseJSONMode {
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
		}

		resp, err := r.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return Verdict{}, fmt.Errorf("llm request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return Verdict{}, errors.New("no response from llm")
		}

		verdict, err := parseVerdict(resp.Choices[0].Message.Content)
		if err == nil {
			return verdict, nil
		}
		lastErr = err
	}
	return Verdict{}, fmt.Errorf("failed after 3 attempts: %w", lastErr)
}

func (r *Reviewer) buildPrompt(rej domain.Rejection) string {
	var sb strings.Builder
	sb.WriteString("Rejected article:\n")
	sb.WriteString(fmt.Sprintf("URL: %s\n", rej.URL))
	if rej.Title != "" {
		sb.WriteString(fmt.Sprintf("Title: %s\n", rej.Title))
	}
	sb.WriteString(fmt.Sprintf("Filter reason: %s\n", rej.Reason))
	best, score := rej.Scores.Best()
	sb.WriteString(fmt.Sprintf("Filter scores: country %.2f, best category %s %.2f, pipeline %.2f\n",
		rej.Scores.Country, best, score, rej.Scores.Pipeline))
	if rej.Snippet != "" {
		sb.WriteString(fmt.Sprintf("Text: %s\n", rej.Snippet))
	}
	sb.WriteString("\nRespond with a JSON object only.")
	return sb.String()
}

// parseVerdict reads the first JSON object in content, the type is normalized to a known project type
func parseVerdict(content string) (Verdict, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start >= end {
		return Verdict{}, errNoJSON
	}
	var v Verdict
	if err := json.Unmarshal([]byte(content[start:end+1]), &v); err != nil {
		return Verdict{}, fmt.Errorf("failed to parse json response: %w", err)
	}
	if pt, ok := domain.ParseProjectType(v.Type); ok {
		v.Type = string(pt)
	} else {
		v.Type = ""
	}
	v.Confidence = min(max(v.Confidence, 0), 1)
	return v, nil
}
