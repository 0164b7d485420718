// Package scorer classifies job descriptions against résumé keywords using
// the OpenAI chat completions API. A scorer never fails a job: every degraded
// state maps onto the skipped or error relevance verdicts.
package scorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/sadewadee/job-applier/internal/domain"
)

const (
	// DefaultModel is the model used when none is configured
	DefaultModel = "gpt-4o-mini"

	defaultTimeout = 45 * time.Second

	maxRetries  = 3
	baseBackoff = 2 * time.Second
	maxBackoff  = 16 * time.Second

	// descriptions are truncated before prompting to bound token spend
	maxDescriptionChars = 6000
)

const systemPrompt = `You review job descriptions for a candidate. Given the
candidate's resume keywords and a job description, answer with a JSON object:
{"verdict": "match" | "partial_match" | "no_match", "rationale": "<one sentence>"}.
"match" means the candidate clearly fits, "partial_match" means a plausible
fit with gaps, "no_match" means the role does not fit at all.`

// Client scores descriptions through the OpenAI API
type Client struct {
	api     openai.Client
	model   string
	timeout time.Duration
}

// New creates a Client. An empty API key is a configuration error; use
// Disabled for the degraded no-op scorer instead.
func New(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	if model == "" {
		model = DefaultModel
	}

	return &Client{
		api:     openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: defaultTimeout,
	}, nil
}

// Score classifies one description. It retries rate-limited calls with
// exponential backoff and maps every failure to the error verdict.
func (c *Client) Score(ctx context.Context, keywords []string, description string) domain.ScoreResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if len(description) > maxDescriptionChars {
		description = description[:maxDescriptionChars]
	}

	prompt := fmt.Sprintf("Resume keywords: %s\n\nJob description:\n%s",
		strings.Join(keywords, ", "), description)

	content, err := c.completeWithRetry(ctx, prompt)
	if err != nil {
		log.Printf("warning: relevance scoring failed: %v", err)

		return domain.ScoreResult{
			Verdict:   domain.RelevanceError,
			Rationale: err.Error(),
			Model:     c.model,
		}
	}

	result := parseVerdict(content)
	result.Model = c.model

	return result
}

func (c *Client) completeWithRetry(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * baseBackoff
			if backoff > maxBackoff {
				backoff = maxBackoff
			}

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: shared.ChatModel(c.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemPrompt),
				openai.UserMessage(prompt),
			},
			Temperature: openai.Float(0),
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
			},
		})
		if err != nil {
			lastErr = err

			if isRateLimit(err) {
				continue
			}

			return "", fmt.Errorf("chat completion failed: %w", err)
		}

		if len(completion.Choices) == 0 {
			return "", errors.New("no completion choices returned")
		}

		return completion.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func isRateLimit(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}

	return false
}

// parseVerdict decodes the model's JSON answer, tolerating casing and
// synonym drift in the verdict field
func parseVerdict(content string) domain.ScoreResult {
	var raw struct {
		Verdict   string `json:"verdict"`
		Rationale string `json:"rationale"`
	}

	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return domain.ScoreResult{
			Verdict:   domain.RelevanceError,
			Rationale: "unparseable scorer response",
		}
	}

	verdict := strings.ToLower(strings.TrimSpace(raw.Verdict))
	verdict = strings.ReplaceAll(verdict, " ", "_")
	verdict = strings.ReplaceAll(verdict, "-", "_")

	switch verdict {
	case "match", "strong_match", "full_match":
		return domain.ScoreResult{Verdict: domain.RelevanceMatch, Rationale: raw.Rationale}
	case "partial_match", "partial", "possible_match":
		return domain.ScoreResult{Verdict: domain.RelevancePartialMatch, Rationale: raw.Rationale}
	case "no_match", "none", "mismatch":
		return domain.ScoreResult{Verdict: domain.RelevanceNoMatch, Rationale: raw.Rationale}
	default:
		return domain.ScoreResult{
			Verdict:   domain.RelevanceError,
			Rationale: fmt.Sprintf("unrecognized verdict %q", raw.Verdict),
		}
	}
}
