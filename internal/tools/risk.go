// ABOUTME: Risk classification of tool calls for the confirmation flow
// ABOUTME: Bash commands are classified by first word per pipe/chain segment and redirect targets

package tools

import (
	"fmt"
	"strings"
)

// RiskLevel classifies how much damage a tool call could do.
type RiskLevel int

const (
	// RiskSafe: read-only operations, auto-execute without confirmation.
	RiskSafe RiskLevel = iota
	// RiskModerate: file modifications, shown but auto-executed.
	RiskModerate
	// RiskDangerous: destructive operations, require explicit confirmation.
	RiskDangerous
)

func (l RiskLevel) String() string {
	switch l {
	case RiskSafe:
		return "safe"
	case RiskModerate:
		return "moderate"
	case RiskDangerous:
		return "dangerous"
	}
	return "unknown"
}

var dangerousCommandWords = map[string]bool{
	"rm": true, "rmdir": true, "sudo": true, "su": true,
	"kill": true, "pkill": true, "killall": true,
	"chmod": true, "chown": true, "chgrp": true,
	"dd": true, "mkfs": true, "fdisk": true, "parted": true,
	"mount": true, "umount": true, "shutdown": true, "reboot": true,
	"systemctl": true, "service": true, "iptables": true,
	"useradd": true, "userdel": true, "passwd": true,
}

var safeCommandWords = map[string]bool{
	"ls": true, "cat": true, "head": true, "tail": true, "less": true, "more": true,
	"wc": true, "echo": true, "printf": true, "pwd": true, "whoami": true,
	"which": true, "where": true, "type": true, "file": true, "stat": true,
	"du": true, "df": true, "date": true, "uname": true, "env": true, "printenv": true,
	"grep": true, "rg": true, "find": true, "fd": true, "ag": true, "awk": true, "sed": true,
	"sort": true, "uniq": true, "diff": true, "tree": true,
	"git": true, "cargo": true, "npm": true, "node": true,
	"python": true, "python3": true, "pip": true, "pip3": true,
	"go": true, "make": true, "cmake": true, "docker": true, "kubectl": true,
	"cd": true, "sleep": true,
}

// Assess classifies a tool call from its name and decoded arguments.
func Assess(toolName string, params map[string]any) RiskLevel {
	switch toolName {
	case "read_file", "list_directory":
		return RiskSafe
	case "write_file", "edit":
		return RiskModerate
	case "bash":
		cmd, _ := params["command"].(string)
		return classifyBashCommand(cmd)
	default:
		return RiskModerate
	}
}

// classifyBashCommand evaluates each &&/|| segment and returns the worst level.
func classifyBashCommand(command string) RiskLevel {
	worst := RiskSafe
	for _, sub := range splitChain(strings.TrimSpace(command)) {
		level := classifySingleCommand(sub)
		if level == RiskDangerous {
			return RiskDangerous
		}
		if level > worst {
			worst = level
		}
	}
	return worst
}

func splitChain(cmd string) []string {
	var subs []string
	for _, andPart := range strings.Split(cmd, "&&") {
		for _, orPart := range strings.Split(andPart, "||") {
			if s := strings.TrimSpace(orPart); s != "" {
				subs = append(subs, s)
			}
		}
	}
	return subs
}

func classifySingleCommand(cmd string) RiskLevel {
	for _, seg := range strings.Split(cmd, "|") {
		if dangerousCommandWords[firstWord(seg)] {
			return RiskDangerous
		}
	}

	if hasDangerousRedirect(cmd) {
		return RiskDangerous
	}

	first := firstWord(cmd)
	if safeCommandWords[first] {
		return RiskSafe
	}
	// Path-qualified invocations of safe commands, e.g. /usr/bin/grep.
	if idx := strings.LastIndex(first, "/"); idx >= 0 && safeCommandWords[first[idx+1:]] {
		return RiskSafe
	}

	return RiskModerate
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// isSafeRedirectTarget allows /dev/null, fd duplication, and temp locations.
func isSafeRedirectTarget(target string) bool {
	t := strings.TrimSpace(target)
	if t == "" || t == "/dev/null" {
		return true
	}
	if strings.HasPrefix(t, "&") && len(t) > 1 {
		digitsOnly := true
		for _, c := range t[1:] {
			if c < '0' || c > '9' {
				digitsOnly = false
				break
			}
		}
		if digitsOnly {
			return true
		}
	}
	if t == "/tmp" || strings.HasPrefix(t, "/tmp/") {
		return true
	}
	if t == "/var/tmp" || strings.HasPrefix(t, "/var/tmp/") {
		return true
	}
	return false
}

// hasDangerousRedirect reports whether cmd writes via > or >> to a
// non-temp real file.
func hasDangerousRedirect(cmd string) bool {
	runes := []rune(cmd)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '>' {
			continue
		}
		j := i + 1
		if j < len(runes) && runes[j] == '>' {
			j++
		}
		for j < len(runes) && runes[j] == ' ' {
			j++
		}
		start := j
		for j < len(runes) && !isSpace(runes[j]) {
			j++
		}
		target := string(runes[start:j])
		if target != "" && !isSafeRedirectTarget(target) {
			return true
		}
		i = j
	}
	return false
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// Describe renders a human-readable summary for a confirmation prompt.
func Describe(toolName string, params map[string]any) string {
	str := func(key string) string {
		if s, ok := params[key].(string); ok {
			return s
		}
		return "?"
	}
	switch toolName {
	case "bash":
		return fmt.Sprintf("run command: %s", str("command"))
	case "write_file":
		return fmt.Sprintf("write file: %s", str("path"))
	case "edit":
		return fmt.Sprintf("edit file: %s", str("path"))
	case "read_file":
		return fmt.Sprintf("read file: %s", str("path"))
	default:
		return fmt.Sprintf("call tool: %s", toolName)
	}
}
