package session

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// metadataLine is the JSON structure of the one JSONL line we care about.
type metadataLine struct {
	Cwd          string `json:"cwd"`
	Timestamp    string `json:"timestamp"`
	MessageCount int    `json:"message_count"`
}

// timestampLayouts are tried in order when parsing the timestamp field.
// cm writes ISO-8601, with or without a zone offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ReadMetadata scans a session directory's JSONL log files for metadata.
// It reads the first *.jsonl file in directory-listing order line by line
// until a line containing a cwd key parses as JSON, and extracts the working
// directory, timestamp, and message count from it.
//
// ReadMetadata never fails: a missing directory, no log files, unreadable
// files, or malformed JSON on every candidate line all yield an empty
// Metadata. An unparseable timestamp is swallowed, leaving LastModified zero.
//
// When multiple .jsonl files exist, which one is read is deliberately
// unspecified (os.ReadDir returns filename order, which is not "the latest").
func ReadMetadata(dir string) Metadata {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Metadata{}
	}

	var logFile string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == ".jsonl" {
			logFile = filepath.Join(dir, entry.Name())
			break
		}
	}
	if logFile == "" {
		return Metadata{}
	}

	f, err := os.Open(logFile)
	if err != nil {
		return Metadata{}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10 MB max line

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, `"cwd":`) {
			continue
		}

		var ml metadataLine
		if err := json.Unmarshal([]byte(line), &ml); err != nil {
			continue
		}

		return metadataFromLine(ml)
	}

	// Scanner errors (oversized line, read failure) are absorbed too.
	return Metadata{}
}

func metadataFromLine(ml metadataLine) Metadata {
	md := Metadata{
		WorkingDirectory: ml.Cwd,
		TotalMessages:    ml.MessageCount,
	}

	if ml.Timestamp != "" {
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, ml.Timestamp); err == nil {
				md.LastModified = ts
				break
			}
		}
	}

	return md
}
