// Package main provides the AdBrain command-line front-ends: a line REPL and a
// terminal chat UI over one advertising-strategist session.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	configpkg "github.com/minhyannv/adbrain-go/pkg/config"
	"github.com/minhyannv/adbrain-go/pkg/gateway"
	loggerpkg "github.com/minhyannv/adbrain-go/pkg/logger"
	"github.com/minhyannv/adbrain-go/pkg/prompts"
	"github.com/minhyannv/adbrain-go/pkg/session"
	"github.com/spf13/cobra"
)

// main is the program entry point.
func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the wiring shared by the chat commands.
type app struct {
	flags  cliFlags
	config configpkg.Config
	logger loggerpkg.Logger
	sync   func()

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut, logger: loggerpkg.NopLogger{}, sync: func() {}}

	root := &cobra.Command{
		Use:   "adbrain",
		Short: "AdBrain – talk to a senior performance marketer",
		Long: `AdBrain is an advertising strategist you can chat with from the terminal.

Pick a mode (Campaign Strategy, Copywriting, Ad Audit, Persona / Offer Builder),
describe your business, offer, audience and goal, and AdBrain will ask
clarifying questions before recommending angles, copy and strategy.

Run without arguments to start the line-based chat.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg, err := resolveConfig(cmd.Flags(), a.flags, os.Getenv)
			if err != nil {
				return err
			}
			a.config = cfg
			logger, sync, err := newLogger(cfg, a.errOut)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			a.logger, a.sync = logger, sync
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	a.flags.register(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "chat",
			Short: "Start the line-based chat (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runChat(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "tui",
			Short: "Start the full-screen chat UI",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				// Log lines would tear the alternate screen.
				a.logger = loggerpkg.NopLogger{}
				ctrl, err := a.newSession()
				if err != nil {
					return err
				}
				return runTUI(cmd.Context(), ctrl, a.config.Plain)
			},
		},
		&cobra.Command{
			Use:   "modes",
			Short: "List the available modes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				for i, m := range prompts.Modes() {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %-24s %s\n", i+1, m, m.Slug())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "prompt [mode]",
			Short: "Print the system prompt for a mode",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				mode := startMode(a.config)
				if len(args) == 1 {
					parsed, ok := prompts.ParseMode(args[0])
					if !ok {
						parsed = prompts.Mode(args[0])
					}
					mode = parsed
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), prompts.BuildSystemPrompt(mode))
				return nil
			},
		},
	)
	return root
}

func (a *app) newSession() (*session.Controller, error) {
	gw, err := gateway.New(a.config, a.logger)
	if err != nil {
		return nil, err
	}
	return session.New(gw,
		session.WithLogger(a.logger),
		session.WithVerbose(a.config.Verbose),
		session.WithDefaultMode(startMode(a.config)),
	)
}

func (a *app) runChat(ctx context.Context) error {
	ctrl, err := a.newSession()
	if err != nil {
		return err
	}
	md := plainMarkdown
	if f, ok := a.out.(*os.File); ok && f == os.Stdout {
		md = stdoutMarkdown(a.config.Plain)
	}
	return runREPL(ctx, ctrl, replOptions{
		Verbose:  a.config.Verbose,
		Logger:   a.logger,
		Markdown: md,
	}, a.in, a.out)
}
