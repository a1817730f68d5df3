// ABOUTME: CLI entry point: parses flags, loads config, wires provider/tools/agent
// ABOUTME: Dispatches to print mode or the interactive TUI

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/goclaw/goclaw/internal/agent"
	"github.com/goclaw/goclaw/internal/config"
	"github.com/goclaw/goclaw/internal/log"
	"github.com/goclaw/goclaw/internal/mode/interactive"
	"github.com/goclaw/goclaw/internal/mode/print"
	"github.com/goclaw/goclaw/internal/rules"
	"github.com/goclaw/goclaw/internal/session"
	"github.com/goclaw/goclaw/internal/tools"
	"github.com/goclaw/goclaw/pkg/ai"

	// Provider registration.
	_ "github.com/goclaw/goclaw/pkg/ai/provider/anthropic"
	_ "github.com/goclaw/goclaw/pkg/ai/provider/openai"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("goclaw %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs) error {
	if args.verbose {
		log.SetVerbose(true)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyOverrides(cfg, args)

	apiKey, err := cfg.APIKey()
	if err != nil {
		return err
	}
	provider, err := ai.NewProvider(cfg.LLM.Provider, ai.ProviderConfig{
		APIKey:  apiKey,
		BaseURL: cfg.LLM.BaseURL,
	})
	if err != nil {
		return err
	}

	registry := tools.NewRegistry(cfg.Tools)
	store := session.NewStore(config.SessionsDir())

	sess, err := loadSession(store, args.resume, cfg.LLM.Model)
	if err != nil {
		return err
	}

	prompt, isPrint, err := resolvePrompt(args)
	if err != nil {
		return err
	}

	opts := agent.Options{
		Model:         cfg.LLM.Model,
		SystemPrompt:  systemPrompt(cfg, cwd),
		MaxTokens:     cfg.LLM.MaxTokens,
		MaxIterations: cfg.Agent.MaxIterations,
		ContextWindow: cfg.LLM.ContextWindow,
		Stream:        cfg.LLM.Stream,
	}

	if isPrint {
		opts.PermCheck = printPermCheck(cfg.Yolo)
		a := newAgent(provider, registry, opts, sess)
		traceEvents(a, args.verbose)
		return runPrint(a, prompt, args)
	}

	gate := interactive.NewPermGate(cfg.Yolo)
	opts.PermCheck = gate.Check
	a := newAgent(provider, registry, opts, sess)
	traceEvents(a, args.verbose)

	if err := interactive.Run(interactive.Deps{
		Agent: a,
		Store: store,
		Sess:  sess,
		Model: cfg.LLM.Model,
		Gate:  gate,
	}); err != nil {
		return err
	}
	// Persist whatever the session accumulated before exit.
	if len(sess.Messages) > 0 {
		if err := store.Save(sess); err != nil {
			log.Warn("saving session on exit: %v", err)
		}
	}
	return nil
}

func applyOverrides(cfg *config.Config, args cliArgs) {
	if args.model != "" {
		cfg.LLM.Model = args.model
	}
	if args.baseURL != "" {
		cfg.LLM.BaseURL = args.baseURL
	}
	if args.yolo {
		cfg.Yolo = true
	}
}

// systemPrompt appends discovered project rules to the configured prompt.
func systemPrompt(cfg *config.Config, cwd string) string {
	prompt := cfg.Agent.SystemPrompt
	if rulesCtx := rules.Context(cwd); rulesCtx != "" {
		prompt += "\n\n<project_rules>\n" + rulesCtx + "\n</project_rules>"
	}
	return prompt
}

func newAgent(provider ai.Provider, registry *tools.Registry, opts agent.Options, sess *session.Session) *agent.Agent {
	a := agent.New(provider, registry, opts)
	if len(sess.Messages) > 0 {
		a.SetHistory(sess.Messages)
	}
	return a
}

// traceEvents logs tool and error events for debugging.
func traceEvents(a *agent.Agent, verbose bool) {
	if !verbose {
		return
	}
	a.Subscribe(func(evt agent.AgentEvent) {
		switch evt.Type {
		case agent.EventToolStart:
			log.Debug("tool start: %s %s", evt.ToolName, evt.ToolArgs)
		case agent.EventToolEnd:
			log.Debug("tool end: %s ok=%v", evt.ToolName, evt.Success)
		case agent.EventError:
			log.Error("turn error: %v", evt.Error)
		}
	})
}

func loadSession(store *session.Store, resume, model string) (*session.Session, error) {
	if resume == "" {
		return session.New(model), nil
	}
	sess, err := store.Load(resume)
	if err != nil {
		return nil, fmt.Errorf("resuming session: %w", err)
	}
	log.Info("resumed session %s (%d messages)", sess.ID, len(sess.Messages))
	return sess, nil
}

// resolvePrompt decides between print mode and the TUI. A prompt can come
// from -p, a positional argument, or piped stdin.
func resolvePrompt(args cliArgs) (string, bool, error) {
	if args.prompt != "" {
		return args.prompt, true, nil
	}
	if rest := args.remaining(); len(rest) > 0 {
		return strings.Join(rest, " "), true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("reading stdin: %w", err)
		}
		prompt := strings.TrimSpace(string(data))
		if prompt == "" {
			return "", false, fmt.Errorf("stdin is not a terminal and carried no prompt")
		}
		return prompt, true, nil
	}
	return "", false, nil
}

func runPrint(a *agent.Agent, prompt string, args cliArgs) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var f print.Formatter
	switch args.format {
	case "json":
		f = print.NewJSONFormatter(os.Stdout)
	case "text":
		f = print.NewTextFormatter(os.Stdout, os.Stderr, args.verbose)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", args.format)
	}

	_, err := print.Run(ctx, a, prompt, f)
	return err
}

// printPermCheck asks on the terminal when possible, otherwise denies.
func printPermCheck(yolo bool) agent.PermCheckFunc {
	reader := bufio.NewReader(os.Stdin)
	canAsk := term.IsTerminal(int(os.Stdin.Fd()))

	return func(tool string, params map[string]any) error {
		if yolo || tools.Assess(tool, params) != tools.RiskDangerous {
			return nil
		}
		if !canAsk {
			return fmt.Errorf("denied: %s requires confirmation (use -yolo to allow)", tools.Describe(tool, params))
		}
		fmt.Fprintf(os.Stderr, "Allow %s? [y/N] ", tools.Describe(tool, params))
		line, err := reader.ReadString('\n')
		if err != nil || !strings.HasPrefix(strings.TrimSpace(strings.ToLower(line)), "y") {
			return fmt.Errorf("denied by user")
		}
		return nil
	}
}
