// ABOUTME: Bash tool: runs commands via bash -c with timeout and output caps
// ABOUTME: Pumps stdout/stderr concurrently through an errgroup

package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goclaw/goclaw/internal/agent"
)

const (
	defaultBashTimeout = 30 * time.Second
	maxBashTimeout     = 300 * time.Second
	maxBashOutput      = 100_000
)

// NewBashTool creates a tool that executes shell commands.
func NewBashTool() *agent.AgentTool {
	return &agent.AgentTool{
		Name: "bash",
		Description: "Execute a shell command via bash. Returns stdout and stderr. " +
			"Use this for running build commands, searching files (grep/rg/find), " +
			"git operations, listing directories, installing packages, etc. " +
			"Commands run with a configurable timeout (default 30s).",
		Parameters: json.RawMessage(`{
			"type": "object",
			"required": ["command"],
			"properties": {
				"command": {"type": "string", "description": "The shell command to execute"},
				"timeout": {"type": "integer", "description": "Timeout in seconds (default: 30, max: 300)"}
			}
		}`),
		Execute: executeBash,
	}
}

func executeBash(ctx context.Context, params map[string]any) (agent.ToolResult, error) {
	command, err := requireStringParam(params, "command")
	if err != nil {
		return errResult(err), nil
	}

	timeout := time.Duration(intParam(params, "timeout", int(defaultBashTimeout/time.Second))) * time.Second
	if timeout <= 0 || timeout > maxBashTimeout {
		timeout = maxBashTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "bash", "-c", command)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errResult(fmt.Errorf("opening stdout pipe: %w", err)), nil
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return errResult(fmt.Errorf("opening stderr pipe: %w", err)), nil
	}

	if err := cmd.Start(); err != nil {
		return errResult(fmt.Errorf("starting command: %w", err)), nil
	}

	var outBuf, errBuf bytes.Buffer
	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(&outBuf, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&errBuf, stderr)
		return err
	})
	pumpErr := g.Wait()
	waitErr := cmd.Wait()

	if ctx.Err() == context.DeadlineExceeded {
		return errResult(fmt.Errorf("command timed out after %s: %s", timeout, command)), nil
	}
	if pumpErr != nil {
		return errResult(fmt.Errorf("reading command output: %w", pumpErr)), nil
	}

	exitCode := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			return errResult(fmt.Errorf("running command: %w", waitErr)), nil
		}
	}

	return agent.ToolResult{Content: formatBashOutput(outBuf.String(), errBuf.String(), exitCode)}, nil
}

func formatBashOutput(stdout, stderr string, exitCode int) string {
	var out string
	if stdout != "" {
		out = truncateMiddle(stdout, maxBashOutput)
	}
	if stderr != "" {
		if out != "" {
			out += "\n"
		}
		out += "[stderr]\n" + truncateMiddle(stderr, maxBashOutput/2)
	}
	if out == "" {
		return fmt.Sprintf("(no output, exit code: %d)", exitCode)
	}
	if exitCode != 0 {
		out += fmt.Sprintf("\n[exit code: %d]", exitCode)
	}
	return out
}
