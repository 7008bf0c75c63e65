package gateway

import (
	"context"
	"errors"
	"strings"
	"sync"

	loggerpkg "github.com/minhyannv/adbrain-go/pkg/logger"
	"github.com/minhyannv/adbrain-go/pkg/transcript"
	"google.golang.org/genai"
)

// Gemini completes transcripts with the Gemini API.
type Gemini struct {
	apiKey  string
	baseURL string
	model   string
	logger  loggerpkg.Logger
	verbose bool

	mu     sync.Mutex
	client *genai.Client
}

// NewGemini builds the backend. The SDK client is created on first use so a
// missing key surfaces as a ConfigurationError from Complete.
func NewGemini(opts Options) *Gemini {
	return &Gemini{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: strings.TrimSpace(opts.BaseURL),
		model:   strings.TrimSpace(opts.Model),
		logger:  opts.Logger,
		verbose: opts.Verbose,
	}
}

func (g *Gemini) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}

	cc := &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, serviceError("creating gemini client", err)
	}
	g.client = client
	return client, nil
}

// Complete sends messages and returns the text of the first candidate.
func (g *Gemini) Complete(ctx context.Context, messages []transcript.Message) (string, error) {
	if g.apiKey == "" {
		return "", configError("GEMINI_API_KEY is not set")
	}
	if err := checkTranscript(messages); err != nil {
		return "", err
	}
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	system, contents := toGeminiContents(messages)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	loggerpkg.Debugf(g.verbose, g.logger, "[verbose] gemini: sending request model=%s contents=%d", g.model, len(contents))

	res, err := client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		loggerpkg.Debugf(g.verbose, g.logger, "[verbose] gemini: request failed: %v", err)
		return "", classify(err)
	}
	text := res.Text()
	if strings.TrimSpace(text) == "" {
		return "", serviceError("malformed response", errors.New("empty completion text"))
	}
	return text, nil
}

// toGeminiContents splits system messages into one instruction and maps the
// rest to user/model turns.
func toGeminiContents(messages []transcript.Message) (string, []*genai.Content) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case transcript.RoleSystem:
			system = append(system, msg.Content)
		case transcript.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	return strings.Join(system, "\n\n"), contents
}
