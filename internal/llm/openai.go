package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voyago/trip-planner/backend/internal/memory"
)

// maxRetries bounds transient transport retries inside a single Complete
// call. It does not change the caller's contract: Complete either returns one
// assistant turn or an error.
const maxRetries = 2

// OpenAIClient implements Client over the OpenAI chat completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient constructs an OpenAIClient for the given API key and model
// (e.g. "gpt-4o"). An empty baseURL uses the public OpenAI endpoint;
// set it to route through a compatible proxy.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Complete sends the full conversation context and returns the assistant's
// reply as a turn, with usage figures attached as turn metadata.
func (c *OpenAIClient) Complete(ctx context.Context, turns []memory.Turn) (memory.Turn, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openAIRole(t.Role),
			Content: t.Content,
		})
	}

	var resp openai.ChatCompletionResponse
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err = c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    c.model,
			Messages: messages,
			// go-openai drops a literal 0 because of omitempty; the smallest
			// positive float is the conventional way to request deterministic
			// output.
			Temperature: math.SmallestNonzeroFloat32,
		})
		if err == nil || ctx.Err() != nil {
			break
		}
	}
	if err != nil {
		return memory.Turn{}, fmt.Errorf("llm.OpenAIClient.Complete: %w", err)
	}
	if len(resp.Choices) == 0 {
		return memory.Turn{}, fmt.Errorf("llm.OpenAIClient.Complete: response contained no choices")
	}

	turn := memory.AssistantTurn(resp.Choices[0].Message.Content)
	turn.Meta = map[string]json.RawMessage{
		"model":             rawJSONString(resp.Model),
		"prompt_tokens":     rawJSONInt(resp.Usage.PromptTokens),
		"completion_tokens": rawJSONInt(resp.Usage.CompletionTokens),
	}
	return turn, nil
}

// openAIRole maps the log's role names onto the wire roles OpenAI expects.
// Unknown roles fall back to "user" rather than failing the whole request —
// a single odd historical turn should not make the conversation unusable.
func openAIRole(role string) string {
	switch role {
	case memory.RoleHuman:
		return openai.ChatMessageRoleUser
	case memory.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	case memory.RoleSystem:
		return openai.ChatMessageRoleSystem
	}
	return openai.ChatMessageRoleUser
}

func rawJSONString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func rawJSONInt(n int) json.RawMessage {
	return json.RawMessage(fmt.Sprintf("%d", n))
}
