package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	configpkg "github.com/minhyannv/adbrain-go/pkg/config"
	"github.com/minhyannv/adbrain-go/pkg/transcript"
	"google.golang.org/genai"
)

func TestFuncClassifiesPlainErrors(t *testing.T) {
	gw := Func(func(context.Context, []transcript.Message) (string, error) {
		return "", errors.New("dial tcp: connection refused")
	})

	_, err := gw.Complete(context.Background(), seededMessages("hi"))
	if !IsService(err) {
		t.Fatalf("expected service error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "connection error: ") {
		t.Fatalf("unexpected description: %q", err.Error())
	}
}

func TestFuncPassesThroughGatewayErrors(t *testing.T) {
	want := configError("OPENAI_API_KEY is not set")
	gw := Func(func(context.Context, []transcript.Message) (string, error) {
		return "", want
	})

	_, err := gw.Complete(context.Background(), seededMessages("hi"))
	var ge *Error
	if !errors.As(err, &ge) || ge != want {
		t.Fatalf("expected the same *Error, got %v", err)
	}
}

func TestFuncSuccess(t *testing.T) {
	gw := Func(func(_ context.Context, msgs []transcript.Message) (string, error) {
		return fmt.Sprintf("%d messages", len(msgs)), nil
	})
	text, err := gw.Complete(context.Background(), seededMessages("hi"))
	if err != nil || text != "2 messages" {
		t.Fatalf("unexpected result %q, %v", text, err)
	}
}

func TestClassifyDescriptions(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{errors.New(`POST "x": 401 Unauthorized`), "authentication failed"},
		{errors.New("429 Too Many Requests: quota"), "rate limited or quota exceeded"},
		{errors.New("model not found"), "model not found"},
		{errors.New("unexpected EOF"), "connection error"},
		{context.DeadlineExceeded, "request timed out"},
		{fmt.Errorf("wrapped: %w", context.Canceled), "request canceled"},
		{errors.New("something odd"), "completion failed"},
		{errors.New(`POST "http://127.0.0.1:40123/chat/completions": 500 Internal Server Error`), "completion failed"},
		{errors.New(`POST "http://127.0.0.1:4293/v1": 502 Bad Gateway`), "completion failed"},
	}
	for _, tc := range cases {
		got := classify(tc.err)
		if got.Kind != ServiceError {
			t.Fatalf("%v: expected service error kind, got %v", tc.err, got.Kind)
		}
		if got.Msg != tc.want {
			t.Fatalf("%v: got %q, want %q", tc.err, got.Msg, tc.want)
		}
		if !errors.Is(got, tc.err) {
			t.Fatalf("%v: classified error must unwrap to the cause", tc.err)
		}
	}
}

func TestClassifyUsesStatusCode(t *testing.T) {
	cases := []struct {
		err  genai.APIError
		want string
	}{
		{genai.APIError{Code: 500, Message: "quota check 401 failed on 127.0.0.1:40123"}, "service unavailable"},
		{genai.APIError{Code: 403, Message: "caller lacks permission"}, "authentication failed"},
		{genai.APIError{Code: 429, Message: "Resource has been exhausted"}, "rate limited or quota exceeded"},
		{genai.APIError{Code: 404, Message: "models/unknown is not supported"}, "model not found"},
		{genai.APIError{Code: 400, Message: "input exceeds maximum context length"}, "conversation too long"},
		{genai.APIError{Code: 400, Message: "connection reset by peer"}, "connection error"},
	}
	for _, tc := range cases {
		got := classify(fmt.Errorf("generate: %w", tc.err))
		if got.Kind != ServiceError || got.Msg != tc.want {
			t.Fatalf("code %d: got %v %q, want %q", tc.err.Code, got.Kind, got.Msg, tc.want)
		}
		var apiErr genai.APIError
		if !errors.As(got, &apiErr) || apiErr.Code != tc.err.Code {
			t.Fatalf("code %d: classified error must unwrap to the API error", tc.err.Code)
		}
	}
}

func TestErrorFormatting(t *testing.T) {
	if got := configError("no key").Error(); got != "no key" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := (&Error{Kind: ServiceError, Err: errors.New("x")}).Error(); got != "x" {
		t.Fatalf("unexpected message %q", got)
	}
	if ServiceError.String() != "service error" || ConfigurationError.String() != "configuration error" {
		t.Fatal("unexpected kind names")
	}
}

func TestNewSelectsProvider(t *testing.T) {
	gw, err := New(configpkg.Config{Provider: configpkg.ProviderOpenAI}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	oa, ok := gw.(*OpenAI)
	if !ok {
		t.Fatalf("expected *OpenAI, got %T", gw)
	}
	if oa.model != configpkg.DefaultOpenAIModel {
		t.Fatalf("expected default model, got %q", oa.model)
	}

	gw, err = New(configpkg.Config{Provider: "Gemini"}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, ok := gw.(*Gemini); !ok {
		t.Fatalf("expected *Gemini, got %T", gw)
	}

	if _, err := New(configpkg.Config{Provider: "bard"}, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
