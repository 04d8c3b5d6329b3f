package session

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidFormat is returned when a list line does not match the expected
// session line shape. Callers skip such lines rather than aborting the batch:
// cm's list output interleaves headers and totals with session lines, and
// this grammar is the only thing that tells them apart.
var ErrInvalidFormat = errors.New("invalid session line format")

// listLineRe matches one session line of cm's list output:
//
//	"  -Users-alice-src-myproject (       5 sessions)"
//
// Optional leading whitespace, the encoded name, then a parenthesized count.
// Singular "1 session" is accepted alongside the plural form.
var listLineRe = regexp.MustCompile(`^\s*(\S+)\s*\(\s*(\d+)\s+sessions?\)`)

// ParseListLine extracts the session name and count from one line of cm's
// list output. Lines that do not match the grammar fail with ErrInvalidFormat.
func ParseListLine(line string) (name string, count int, err error) {
	m := listLineRe.FindStringSubmatch(line)
	if m == nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidFormat, line)
	}

	name = m[1]
	count, err = strconv.Atoi(m[2])
	if err != nil {
		// The digits group guarantees a numeric string, but it can still
		// overflow int.
		return "", 0, fmt.Errorf("%w: session count %q: %v", ErrInvalidFormat, m[2], err)
	}

	return name, count, nil
}
