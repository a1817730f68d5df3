// ABOUTME: Tests for print mode with a scripted provider
// ABOUTME: Covers text streaming, the JSON envelope, and error propagation

package print

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/goclaw/goclaw/internal/agent"
	"github.com/goclaw/goclaw/pkg/ai"
)

type scriptedProvider struct {
	scripts [][]ai.StreamChunk
	call    int
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(ctx context.Context, req *ai.ChatRequest) (*ai.ChatResponse, error) {
	return p.Stream(ctx, req).Result()
}

func (p *scriptedProvider) Stream(_ context.Context, _ *ai.ChatRequest) *ai.ChunkStream {
	script := p.scripts[len(p.scripts)-1]
	if p.call < len(p.scripts) {
		script = p.scripts[p.call]
	}
	p.call++

	out := ai.NewChunkStream(len(script) + 1)
	go func() {
		asm := ai.NewAssembler()
		for _, c := range script {
			out.Send(c)
			_ = asm.Feed(c)
		}
		resp, err := asm.Finalize()
		if err != nil {
			out.FinishWithError(err)
			return
		}
		out.Finish(resp)
	}()
	return out
}

func textTurn(text string) []ai.StreamChunk {
	return []ai.StreamChunk{
		{Type: ai.ChunkTextDelta, Text: text},
		{Type: ai.ChunkUsage, Usage: &ai.Usage{InputTokens: 10, OutputTokens: 5}},
		{Type: ai.ChunkDone},
	}
}

func toolTurn(id, name, args string) []ai.StreamChunk {
	return []ai.StreamChunk{
		{Type: ai.ChunkToolCallDelta, Index: 0, ToolID: id, ToolName: name, ArgsFragment: args},
		{Type: ai.ChunkUsage, Usage: &ai.Usage{InputTokens: 20, OutputTokens: 8}},
		{Type: ai.ChunkDone},
	}
}

type mapRouter map[string]*agent.AgentTool

func (r mapRouter) Resolve(name string) (*agent.AgentTool, bool) {
	t, ok := r[name]
	return t, ok
}

func (r mapRouter) Definitions() []ai.ToolDefinition {
	var defs []ai.ToolDefinition
	for _, t := range r {
		defs = append(defs, t.Definition())
	}
	return defs
}

func echoRouter() mapRouter {
	return mapRouter{"echo": {
		Name:        "echo",
		Description: "echo a value",
		Execute: func(_ context.Context, params map[string]any) (agent.ToolResult, error) {
			v, _ := params["value"].(string)
			return agent.ToolResult{Content: "echo: " + v}, nil
		},
	}}
}

func newTestAgent(p ai.Provider, r agent.Router) *agent.Agent {
	return agent.New(p, r, agent.Options{Model: "test-model", MaxTokens: 1024, Stream: true})
}

func TestRunTextFormatter(t *testing.T) {
	t.Parallel()

	p := &scriptedProvider{scripts: [][]ai.StreamChunk{textTurn("hello")}}
	a := newTestAgent(p, mapRouter{})

	var stdout, stderr bytes.Buffer
	stats, err := Run(context.Background(), a, "hi", NewTextFormatter(&stdout, &stderr, false))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stdout.String() != "hello\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if stats.RequestCount != 1 || stats.TotalTokens() != 15 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRunJSONFormatter(t *testing.T) {
	t.Parallel()

	p := &scriptedProvider{scripts: [][]ai.StreamChunk{
		toolTurn("call_1", "echo", `{"value":"ping"}`),
		textTurn("done"),
	}}
	a := newTestAgent(p, echoRouter())

	var out bytes.Buffer
	if _, err := Run(context.Background(), a, "go", NewJSONFormatter(&out)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var decoded struct {
		Text      string `json:"text"`
		ToolCalls []struct {
			Name    string `json:"name"`
			Result  string `json:"result"`
			Success bool   `json:"success"`
		} `json:"tool_calls"`
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}
	if decoded.Text != "done" {
		t.Errorf("text = %q", decoded.Text)
	}
	if len(decoded.ToolCalls) != 1 || !decoded.ToolCalls[0].Success || decoded.ToolCalls[0].Result != "echo: ping" {
		t.Errorf("tool_calls = %+v", decoded.ToolCalls)
	}
	if len(decoded.Errors) != 0 {
		t.Errorf("errors = %v", decoded.Errors)
	}
}

func TestRunSurfacesIterationLimit(t *testing.T) {
	t.Parallel()

	p := &scriptedProvider{scripts: [][]ai.StreamChunk{
		toolTurn("call_1", "echo", `{"value":"x"}`),
	}}
	a := agent.New(p, echoRouter(), agent.Options{
		Model: "test-model", MaxTokens: 1024, Stream: true, MaxIterations: 2,
	})

	var stdout, stderr bytes.Buffer
	_, err := Run(context.Background(), a, "go", NewTextFormatter(&stdout, &stderr, false))
	if !errors.Is(err, agent.ErrIterationLimit) {
		t.Errorf("err = %v, want iteration limit", err)
	}
}
