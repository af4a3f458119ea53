package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const coachPromptTemplate = `You are Remi. An AI sleep coach in an astronaut outfit. Analyze this data and return a JSON object. Keep the tone friendly and supportive. Give space related metaphors.

Data:
- Avg Sleep: %.1fh
- Quality: %.1f/5
- Consistency Var: %d min
- Patterns: %s

Return strictly valid JSON with this structure:
{
  "analysis": "2 sentences analyzing their sleep patterns and issues.",
  "tips": ["Short Tip 1(10 words max)", "Short Tip 2(12 words max)", "Short Tip 3 (10 words max)"],
  "encouragement": "1 short motivating closing sentence."
}`

// CoachLLM is the interface for generating coach narratives using an LLM.
type CoachLLM interface {
	// GenerateCoachNarrative turns a weekly insight into a coaching narrative.
	GenerateCoachNarrative(ctx context.Context, insight *domain.WeeklyInsight) (*domain.CoachNarrative, error)
}

// OpenAIClient implements CoachLLM using the OpenAI API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client for generating coach narratives.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client: client,
		model:  model,
	}
}

// GenerateCoachNarrative calls OpenAI in JSON mode and parses the response.
func (c *OpenAIClient) GenerateCoachNarrative(ctx context.Context, insight *domain.WeeklyInsight) (*domain.CoachNarrative, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	prompt := BuildCoachPrompt(insight)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := resp.Choices[0].Message.Content

	var narrative domain.CoachNarrative
	if err := json.Unmarshal([]byte(content), &narrative); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}
	if narrative.Analysis == "" {
		return nil, fmt.Errorf("%w: missing analysis field", ErrOpenAIResponse)
	}

	return &narrative, nil
}

// BuildCoachPrompt renders the fixed coach prompt for a weekly insight.
func BuildCoachPrompt(insight *domain.WeeklyInsight) string {
	patternText := "None"
	if len(insight.Patterns) > 0 {
		patternText = strings.Join(insight.Patterns, ", ")
	}

	return fmt.Sprintf(coachPromptTemplate,
		insight.Summary.AvgHours,
		insight.Summary.AvgQuality,
		insight.Summary.ConsistencyRange,
		patternText,
	)
}
