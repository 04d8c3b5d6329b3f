// Package session defines the session data model and the pure logic around
// it: parsing cm's list output, reading metadata out of JSONL log files, and
// keyword search over loaded sessions.
//
// # Overview
//
// The external cm tool tracks one "session group" per project, identified by
// an encoded name where path separators are replaced by dashes
// (e.g. -Users-alice-src-myproject). This package turns cm's human-readable
// listing into typed Session values and enriches them, best-effort, from the
// .jsonl files cm keeps under each session's directory.
//
// # Failure policy
//
// Parsing a single malformed list line fails with ErrInvalidFormat and is
// skipped by callers. Metadata reading never fails: missing files, unreadable
// directories, and malformed JSON all collapse into an empty Metadata value.
// Only the listing command itself can fail a load.
package session
