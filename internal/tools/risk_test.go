// ABOUTME: Tests for risk classification of tool calls and bash commands
// ABOUTME: Table tests over safe, moderate, and dangerous cases

package tools

import "testing"

func TestAssessFileTools(t *testing.T) {
	t.Parallel()

	if got := Assess("read_file", nil); got != RiskSafe {
		t.Errorf("read_file = %v, want safe", got)
	}
	if got := Assess("list_directory", nil); got != RiskSafe {
		t.Errorf("list_directory = %v, want safe", got)
	}
	if got := Assess("write_file", nil); got != RiskModerate {
		t.Errorf("write_file = %v, want moderate", got)
	}
	if got := Assess("edit", nil); got != RiskModerate {
		t.Errorf("edit = %v, want moderate", got)
	}
	if got := Assess("anything_else", nil); got != RiskModerate {
		t.Errorf("unknown tool = %v, want moderate", got)
	}
}

func TestAssessBash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		want    RiskLevel
	}{
		{"ls -la", RiskSafe},
		{"cat main.go", RiskSafe},
		{"grep -rn TODO .", RiskSafe},
		{"git status", RiskSafe},
		{"go test ./...", RiskSafe},
		{"find . -name '*.go'", RiskSafe},
		{"/usr/bin/grep pattern file", RiskSafe},
		{"ls -la && echo done", RiskSafe},
		{"ls -la || echo fallback", RiskSafe},
		{"ls -l hello* 2>/dev/null || echo not found", RiskSafe},
		{"python3 app.py > /tmp/app.log 2>&1", RiskSafe},

		{"cp a b", RiskModerate},
		{"tar xf archive.tar", RiskModerate},
		{"wget https://example.com/file", RiskModerate},

		{"rm -rf /tmp/test", RiskDangerous},
		{"sudo apt-get install foo", RiskDangerous},
		{"kill -9 1234", RiskDangerous},
		{"chmod 777 /etc/passwd", RiskDangerous},
		{"dd if=/dev/zero of=/dev/sda", RiskDangerous},
		{"ls && rm -rf /", RiskDangerous},
		{"echo x > /etc/hosts", RiskDangerous},
		{"cat file | sudo tee /etc/conf", RiskDangerous},
	}

	for _, tt := range tests {
		got := Assess("bash", map[string]any{"command": tt.command})
		if got != tt.want {
			t.Errorf("Assess(bash, %q) = %v, want %v", tt.command, got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	desc := Describe("bash", map[string]any{"command": "ls -la"})
	if desc != "run command: ls -la" {
		t.Errorf("Describe = %q", desc)
	}
	desc = Describe("edit", map[string]any{"path": "main.go"})
	if desc != "edit file: main.go" {
		t.Errorf("Describe = %q", desc)
	}
	desc = Describe("mystery", nil)
	if desc != "call tool: mystery" {
		t.Errorf("Describe = %q", desc)
	}
}
