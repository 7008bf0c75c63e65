package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	loggerpkg "github.com/minhyannv/adbrain-go/pkg/logger"
	"github.com/minhyannv/adbrain-go/pkg/prompts"
	"github.com/minhyannv/adbrain-go/pkg/session"
	"github.com/minhyannv/adbrain-go/pkg/transcript"
)

// replOptions configures REPL behavior.
type replOptions struct {
	Verbose  bool
	Logger   loggerpkg.Logger
	Markdown markdownFunc
}

// runREPL starts an interactive line-based session.
func runREPL(ctx context.Context, ctrl *session.Controller, opts replOptions, in io.Reader, out io.Writer) error {
	if ctrl == nil {
		return fmt.Errorf("session is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}
	if opts.Markdown == nil {
		opts.Markdown = plainMarkdown
	}

	loggerpkg.Debug(opts.Verbose, opts.Logger, "repl start", map[string]any{
		"session_id": ctrl.ID(),
		"mode":       ctrl.Mode(),
	})

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	printWelcome(out, ctrl.Mode())

	for {
		_, _ = fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if isExitWord(input) {
			printFarewell(out)
			break
		}
		if strings.HasPrefix(input, "/") {
			if shouldQuit := handleCommand(input, ctrl, out); shouldQuit {
				break
			}
			continue
		}

		if err := ctrl.Submit(ctx, input); err != nil {
			if errors.Is(err, session.ErrEmptyInput) {
				continue
			}
			_, _ = fmt.Fprintf(out, "Error: %v\n\n", err)
			continue
		}
		printReply(out, ctrl.Transcript(), opts.Markdown)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// printReply prints the newest message, which is either the model's reply or
// a failure notice.
func printReply(out io.Writer, messages []transcript.Message, md markdownFunc) {
	if len(messages) == 0 {
		return
	}
	last := messages[len(messages)-1]
	if last.Role != transcript.RoleAssistant {
		return
	}
	if last.IsSurrogate() {
		_, _ = fmt.Fprintf(out, "\n%s\n\n", last.Content)
		return
	}
	_, _ = fmt.Fprintf(out, "\nAdBrain: %s\n\n", md(last.Content))
}

func isExitWord(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit":
		return true
	}
	return false
}

func printWelcome(out io.Writer, mode prompts.Mode) {
	_, _ = fmt.Fprintln(out, "=== AdBrain – Advertising Strategist ===")
	_, _ = fmt.Fprintln(out, "AdBrain: Hi, I'm your advertising strategist. Ask me anything about ads.")
	_, _ = fmt.Fprintf(out, "Mode: %s\n", mode)
	_, _ = fmt.Fprintln(out, "Describe your business, offer, audience, and goal. Type /help for commands, 'exit' or 'quit' to leave.")
	_, _ = fmt.Fprintln(out)
}

func printFarewell(out io.Writer) {
	_, _ = fmt.Fprintln(out, "AdBrain: Talk soon. Good luck with your campaigns! 👋")
}

// handleCommand processes slash commands. It reports whether the REPL should
// exit.
func handleCommand(input string, ctrl *session.Controller, out io.Writer) bool {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case "/help", "/h":
		printHelp(out)
	case "/modes", "/m":
		printModes(out, ctrl.Modes(), ctrl.Mode())
	case "/mode":
		if arg == "" {
			_, _ = fmt.Fprintf(out, "Current mode: %s. Usage: /mode <name>\n\n", ctrl.Mode())
			return false
		}
		mode, ok := prompts.ParseMode(arg)
		if !ok {
			_, _ = fmt.Fprintf(out, "Unknown mode: %s. Type /modes to list modes.\n\n", arg)
			return false
		}
		if err := ctrl.SetMode(mode); err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n\n", err)
			return false
		}
		_, _ = fmt.Fprintf(out, "Switched to %s. Conversation restarted.\n\n", mode)
	case "/clear", "/c":
		if err := ctrl.Reset(); err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n\n", err)
			return false
		}
		_, _ = fmt.Fprintln(out, "Conversation history cleared.")
		_, _ = fmt.Fprintln(out)
	case "/quit", "/exit", "/q":
		printFarewell(out)
		return true
	default:
		_, _ = fmt.Fprintf(out, "Unknown command: %s. Type /help for available commands.\n\n", input)
	}
	return false
}

func printModes(out io.Writer, modes []prompts.Mode, current prompts.Mode) {
	_, _ = fmt.Fprintln(out, "Modes:")
	for i, m := range modes {
		marker := " "
		if m == current {
			marker = "*"
		}
		_, _ = fmt.Fprintf(out, " %s %d. %-24s (%s)\n", marker, i+1, m, m.Slug())
	}
	_, _ = fmt.Fprintln(out)
}

func printHelp(out io.Writer) {
	_, _ = fmt.Fprintln(out, "Commands:")
	_, _ = fmt.Fprintln(out, "  /help         - Show this help message")
	_, _ = fmt.Fprintln(out, "  /modes        - List modes")
	_, _ = fmt.Fprintln(out, "  /mode <name>  - Switch mode (restarts the conversation)")
	_, _ = fmt.Fprintln(out, "  /clear        - Clear conversation history")
	_, _ = fmt.Fprintln(out, "  /quit, /exit  - Exit the program")
	_, _ = fmt.Fprintln(out)
}
