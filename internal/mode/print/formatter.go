// ABOUTME: Print-mode formatters: plain text on stdout and a single JSON object
// ABOUTME: Text mode keeps tool notes on stderr so stdout stays pipeable

package print

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goclaw/goclaw/internal/agent"
)

// TextFormatter streams assistant text to stdout and tool activity
// to stderr.
type TextFormatter struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Verbose bool

	wroteText bool
}

func NewTextFormatter(stdout, stderr io.Writer, verbose bool) *TextFormatter {
	return &TextFormatter{Stdout: stdout, Stderr: stderr, Verbose: verbose}
}

func (f *TextFormatter) Text(s string) {
	fmt.Fprint(f.Stdout, s)
	f.wroteText = true
}

func (f *TextFormatter) ToolStart(name, args string) {
	fmt.Fprintf(f.Stderr, "[tool: %s] %s\n", name, args)
}

func (f *TextFormatter) ToolEnd(name, result string, ok bool) {
	if !ok {
		fmt.Fprintf(f.Stderr, "[tool: %s failed] %s\n", name, result)
		return
	}
	if f.Verbose {
		fmt.Fprintf(f.Stderr, "[tool: %s done] %s\n", name, result)
	}
}

func (f *TextFormatter) Error(err error) {
	fmt.Fprintf(f.Stderr, "error: %v\n", err)
}

func (f *TextFormatter) End(finalText string, stats agent.SessionStats) {
	if f.wroteText && !strings.HasSuffix(finalText, "\n") {
		fmt.Fprintln(f.Stdout)
	}
	if f.Verbose {
		fmt.Fprintf(f.Stderr, "[%d requests, %d tokens]\n", stats.RequestCount, stats.TotalTokens())
	}
}

type jsonToolCall struct {
	Name    string `json:"name"`
	Args    string `json:"args"`
	Result  string `json:"result"`
	Success bool   `json:"success"`
}

type jsonOutput struct {
	Text      string             `json:"text"`
	ToolCalls []jsonToolCall     `json:"tool_calls"`
	Errors    []string           `json:"errors"`
	Stats     agent.SessionStats `json:"stats"`
}

// JSONFormatter buffers the run and emits one JSON object at the end.
type JSONFormatter struct {
	Out io.Writer

	out jsonOutput
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{Out: w}
}

func (f *JSONFormatter) Text(string) {}

func (f *JSONFormatter) ToolStart(name, args string) {
	f.out.ToolCalls = append(f.out.ToolCalls, jsonToolCall{Name: name, Args: args})
}

func (f *JSONFormatter) ToolEnd(name, result string, ok bool) {
	for i := len(f.out.ToolCalls) - 1; i >= 0; i-- {
		tc := &f.out.ToolCalls[i]
		if tc.Name == name && tc.Result == "" {
			tc.Result = result
			tc.Success = ok
			return
		}
	}
}

func (f *JSONFormatter) Error(err error) {
	f.out.Errors = append(f.out.Errors, err.Error())
}

func (f *JSONFormatter) End(finalText string, stats agent.SessionStats) {
	f.out.Text = finalText
	f.out.Stats = stats
	if f.out.ToolCalls == nil {
		f.out.ToolCalls = []jsonToolCall{}
	}
	if f.out.Errors == nil {
		f.out.Errors = []string{}
	}
	enc := json.NewEncoder(f.Out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(f.out)
}
