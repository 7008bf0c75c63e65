package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/minhyannv/adbrain-go/pkg/gateway"
	"github.com/minhyannv/adbrain-go/pkg/prompts"
	"github.com/minhyannv/adbrain-go/pkg/session"
	"github.com/minhyannv/adbrain-go/pkg/transcript"
)

func newEchoController(t *testing.T, fail error) (*session.Controller, *[][]transcript.Message) {
	t.Helper()
	var requests [][]transcript.Message
	gw := gateway.Func(func(_ context.Context, msgs []transcript.Message) (string, error) {
		requests = append(requests, msgs)
		if fail != nil {
			return "", fail
		}
		return "reply to: " + msgs[len(msgs)-1].Content, nil
	})
	ctrl, err := session.New(gw)
	if err != nil {
		t.Fatalf("session.New returned error: %v", err)
	}
	return ctrl, &requests
}

func runTestREPL(t *testing.T, ctrl *session.Controller, input string) string {
	t.Helper()
	var out bytes.Buffer
	if err := runREPL(context.Background(), ctrl, replOptions{Markdown: plainMarkdown}, strings.NewReader(input), &out); err != nil {
		t.Fatalf("runREPL returned error: %v", err)
	}
	return out.String()
}

func TestRunREPLPrintsWelcomeAndReply(t *testing.T) {
	ctrl, requests := newEchoController(t, nil)
	out := runTestREPL(t, ctrl, "I sell candles online\n")

	for _, want := range []string{
		"=== AdBrain – Advertising Strategist ===",
		"Mode: Campaign Strategy",
		"AdBrain: reply to: I sell candles online",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if len(*requests) != 1 {
		t.Fatalf("expected one completion request, got %d", len(*requests))
	}
}

func TestRunREPLShowsFailureAndKeepsGoing(t *testing.T) {
	ctrl, requests := newEchoController(t, errors.New("quota exceeded"))
	out := runTestREPL(t, ctrl, "first\nsecond\n")

	if strings.Count(out, transcript.SurrogateMarker) != 2 {
		t.Fatalf("expected two failure notices:\n%s", out)
	}
	if strings.Contains(out, "AdBrain: "+transcript.SurrogateMarker) {
		t.Fatalf("failure notice should not be labelled as a reply:\n%s", out)
	}
	// Failure notices never go back to the model.
	last := (*requests)[1]
	for _, msg := range last {
		if strings.HasPrefix(msg.Content, transcript.SurrogateMarker) {
			t.Fatalf("surrogate leaked into request: %+v", last)
		}
	}
}

func TestRunREPLExitWord(t *testing.T) {
	ctrl, requests := newEchoController(t, nil)
	out := runTestREPL(t, ctrl, "EXIT\nnever sent\n")

	if !strings.Contains(out, "Good luck with your campaigns!") {
		t.Fatalf("expected farewell:\n%s", out)
	}
	if len(*requests) != 0 {
		t.Fatalf("expected no requests after exit, got %d", len(*requests))
	}
}

func TestRunREPLSkipsBlankLines(t *testing.T) {
	ctrl, requests := newEchoController(t, nil)
	runTestREPL(t, ctrl, "\n   \n")
	if len(*requests) != 0 {
		t.Fatalf("blank lines should not be submitted, got %d requests", len(*requests))
	}
}

func TestRunREPLModeCommandRestartsConversation(t *testing.T) {
	ctrl, requests := newEchoController(t, nil)
	out := runTestREPL(t, ctrl, "hello\n/mode copy\nwrite a headline\n")

	if !strings.Contains(out, "Switched to Copywriting.") {
		t.Fatalf("expected mode switch notice:\n%s", out)
	}
	if ctrl.Mode() != prompts.ModeCopywriting {
		t.Fatalf("expected Copywriting, got %q", ctrl.Mode())
	}
	second := (*requests)[1]
	if len(second) != 2 || second[0].Content != prompts.BuildSystemPrompt(prompts.ModeCopywriting) {
		t.Fatalf("expected fresh copywriting transcript, got %+v", second)
	}
}

func TestRunREPLRequiresSession(t *testing.T) {
	if err := runREPL(context.Background(), nil, replOptions{}, strings.NewReader(""), nil); err == nil {
		t.Fatal("expected error for nil session")
	}
}

func TestHandleCommand(t *testing.T) {
	ctrl, _ := newEchoController(t, nil)

	tests := []struct {
		input    string
		want     string
		wantQuit bool
	}{
		{input: "/help", want: "/mode <name>"},
		{input: "/modes", want: "* 1. Campaign Strategy"},
		{input: "/mode", want: "Current mode: Campaign Strategy"},
		{input: "/mode billboards", want: "Unknown mode: billboards"},
		{input: "/clear", want: "Conversation history cleared."},
		{input: "/bogus", want: "Unknown command: /bogus"},
		{input: "/quit", want: "Talk soon.", wantQuit: true},
	}
	for _, tc := range tests {
		var out bytes.Buffer
		quit := handleCommand(tc.input, ctrl, &out)
		if quit != tc.wantQuit {
			t.Fatalf("%s: quit = %v, want %v", tc.input, quit, tc.wantQuit)
		}
		if !strings.Contains(out.String(), tc.want) {
			t.Fatalf("%s: expected %q in output %q", tc.input, tc.want, out.String())
		}
	}
}

func TestHandleCommandClearKeepsMode(t *testing.T) {
	ctrl, _ := newEchoController(t, nil)
	if err := ctrl.SetMode(prompts.ModeAdAudit); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if err := ctrl.Submit(context.Background(), "audit this"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	var out bytes.Buffer
	handleCommand("/clear", ctrl, &out)
	if ctrl.Mode() != prompts.ModeAdAudit {
		t.Fatalf("clear changed mode to %q", ctrl.Mode())
	}
	if got := ctrl.Transcript(); len(got) != 1 || got[0].Role != transcript.RoleSystem {
		t.Fatalf("expected only the system message, got %+v", got)
	}
}

func TestPrintReplyIgnoresNonAssistant(t *testing.T) {
	var out bytes.Buffer
	printReply(&out, []transcript.Message{{Role: transcript.RoleUser, Content: "hi"}}, plainMarkdown)
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}
