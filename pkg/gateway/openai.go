package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	loggerpkg "github.com/minhyannv/adbrain-go/pkg/logger"
	"github.com/minhyannv/adbrain-go/pkg/transcript"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI completes transcripts with the chat completions API.
type OpenAI struct {
	client  openai.Client
	model   string
	apiKey  string
	logger  loggerpkg.Logger
	verbose bool
}

// NewOpenAI builds the backend. A missing key is reported by Complete, not here.
func NewOpenAI(opts Options) *OpenAI {
	return &OpenAI{
		client:  newOpenAIClient(opts),
		model:   strings.TrimSpace(opts.Model),
		apiKey:  strings.TrimSpace(opts.APIKey),
		logger:  opts.Logger,
		verbose: opts.Verbose,
	}
}

func newOpenAIClient(opts Options) openai.Client {
	reqOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.APIKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(opts.APIKey))
	}
	return openai.NewClient(reqOpts...)
}

// Complete sends messages and returns the first choice's content.
func (g *OpenAI) Complete(ctx context.Context, messages []transcript.Message) (string, error) {
	if g.apiKey == "" {
		return "", configError("OPENAI_API_KEY is not set")
	}
	if err := checkTranscript(messages); err != nil {
		return "", err
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(g.model),
		Messages: toOpenAIMessages(messages),
	}
	loggerpkg.Debugf(g.verbose, g.logger, "[verbose] openai: sending request model=%s messages=%d", g.model, len(messages))

	completion, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		loggerpkg.Debugf(g.verbose, g.logger, "[verbose] openai: request failed: %v", err)
		return "", classify(err)
	}
	if len(completion.Choices) == 0 {
		return "", serviceError("malformed response", errors.New("empty completion choices"))
	}
	choice := completion.Choices[0]
	loggerpkg.Debugf(g.verbose, g.logger, "[verbose] openai: received %d choice(s), finish_reason=%s", len(completion.Choices), choice.FinishReason)
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", serviceError("malformed response", fmt.Errorf("empty completion content (finish_reason=%s)", choice.FinishReason))
	}
	return choice.Message.Content, nil
}

func toOpenAIMessages(messages []transcript.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case transcript.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case transcript.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
