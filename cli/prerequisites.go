// Package cli validates the external tools cmtui shells out to.
package cli

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool describes an external command cmtui depends on.
type Tool struct {
	Name        string // command name or path, e.g. "cm"
	Description string
	InstallHint string // where to get it, shown when missing
}

// CheckResult is the outcome of probing one tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string // resolved executable path if found
	Version string // first line of version output, if any
	Err     error
}

// Check probes PATH for the tool and, when found, tries to read its
// version. A missing tool is reported in the result, not returned as an
// error.
func Check(tool Tool) CheckResult {
	result := CheckResult{Tool: tool}

	path, err := exec.LookPath(tool.Name)
	if err != nil {
		result.Err = fmt.Errorf("%s not found in PATH", tool.Name)
		return result
	}

	result.Found = true
	result.Path = path
	result.Version = probeVersion(tool.Name)
	return result
}

// ValidateCommand checks that the configured session-manager binary is
// runnable and returns a descriptive error when it is not.
func ValidateCommand(name string) error {
	result := Check(Tool{
		Name:        name,
		Description: "session manager backend",
	})
	if !result.Found {
		return fmt.Errorf("session manager command %q not found in PATH; "+
			"set CM_COMMAND to the correct binary", name)
	}
	return nil
}

// probeVersion tries the common version flags and returns the first line
// of whichever succeeds.
func probeVersion(name string) string {
	for _, flag := range []string{"--version", "-v", "version"} {
		output, err := exec.Command(name, flag).Output()
		if err != nil {
			continue
		}
		line, _, _ := strings.Cut(string(output), "\n")
		line = strings.TrimSpace(line)
		if len(line) > 100 {
			line = line[:100] + "..."
		}
		return line
	}
	return ""
}

// FormatCheckResult renders one probe outcome for display.
func FormatCheckResult(r CheckResult) string {
	if !r.Found {
		s := fmt.Sprintf("✗ %s (%s)", r.Tool.Name, r.Tool.Description)
		if r.Tool.InstallHint != "" {
			s += "\n  Install: " + r.Tool.InstallHint
		}
		return s
	}
	if r.Version != "" {
		return fmt.Sprintf("✓ %s (%s)", r.Tool.Name, r.Version)
	}
	return fmt.Sprintf("✓ %s", r.Tool.Name)
}
