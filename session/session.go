package session

import (
	"os"
	"strings"
	"sync"
	"time"
)

// Metadata is best-effort enrichment read from a session's JSONL log files.
// Every field is independently optional: partial or malformed source data
// yields an emptier value, never an error.
type Metadata struct {
	// WorkingDirectory is the last known working directory, or "" if unknown.
	WorkingDirectory string
	// LastModified is parsed from the log's timestamp field. Zero if the
	// field was missing or unparseable.
	LastModified time.Time
	// TotalMessages is the recorded message count, 0 if absent.
	TotalMessages int
}

// Session is one project/session group tracked by the external cm tool.
// Values are treated as immutable: enrichment replaces the whole record.
type Session struct {
	// Name is the opaque identifier as emitted by cm: a filesystem path
	// with separators replaced by dashes. Non-empty and unique within a
	// registry snapshot.
	Name string
	// Path is the session's directory, derived by joining the configured
	// store root with Name.
	Path string
	// SessionCount is the number of sessions recorded under this name.
	// Zero is valid.
	SessionCount int
	// Metadata is absent (zero) until the enrichment step runs.
	Metadata Metadata
}

// CurrentCwd returns the last known working directory or "".
func (s Session) CurrentCwd() string {
	return s.Metadata.WorkingDirectory
}

// IsAura reports whether this session belongs to the aura group. Used only
// for grouping in the display table.
func (s Session) IsAura() bool {
	return strings.Contains(strings.ToLower(s.Name), "auras")
}

// DisplayName returns the decoded, human-readable form of the session name:
// the encoded home-directory prefix becomes "~/" and remaining dashes become
// path separators. Presentation only — Name stays the canonical identifier.
func (s Session) DisplayName() string {
	name := s.Name
	if prefix := encodedHomePrefix(); prefix != "" {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			return "~/" + strings.ReplaceAll(rest, "-", "/")
		}
	}
	return strings.ReplaceAll(name, "-", "/")
}

var (
	homeOnce   sync.Once
	homePrefix string
)

// encodedHomePrefix returns the current user's home directory in cm's
// encoded form, with a trailing dash (e.g. "-Users-alice-"). Empty if the
// home directory cannot be determined.
func encodedHomePrefix() string {
	homeOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return
		}
		homePrefix = strings.ReplaceAll(home, string(os.PathSeparator), "-") + "-"
	})
	return homePrefix
}

// setEncodedHomePrefix overrides the cached home prefix. Testing only.
func setEncodedHomePrefix(prefix string) {
	homeOnce.Do(func() {})
	homePrefix = prefix
}
