package manager

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cmtui/logger"
	"cmtui/session"
)

// Load runs one full load cycle: list sessions via the external command,
// parse the output, enrich each session with metadata, and swap the result
// into the registry. On any listing failure the previous snapshot is left
// untouched and a *LoadError is returned.
//
// Lines of the list output that don't look like session lines are ignored;
// session-shaped lines that fail the grammar are dropped and counted, not
// fatal. Metadata enrichment cannot fail a load either — at worst a session
// ends up with empty metadata.
func (m *Manager) Load(ctx context.Context) error {
	loadID := uuid.NewString()[:8]
	log := logger.WithComponent("manager").With("loadID", loadID)
	start := time.Now()

	output, err := m.runCommand(ctx, "list")
	if err != nil {
		log.Warn("list command failed", "err", err)
		return &LoadError{Err: err}
	}

	sessions, dropped := m.parseListOutput(output)
	if dropped > 0 {
		log.Debug("dropped malformed session lines", "count", dropped)
	}

	m.enrich(sessions, log)
	m.state.replace(sessions)

	log.Info("sessions loaded",
		"count", len(sessions), "dropped", dropped, "duration", time.Since(start))
	return nil
}

// parseListOutput extracts sessions from cm's list output. Only lines
// containing "sessions)" are candidates; the rest (headers, totals) are
// ignored outright. Candidate lines that fail the grammar are dropped and
// counted.
func (m *Manager) parseListOutput(output string) (sessions []session.Session, dropped int) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "sessions)") {
			continue
		}

		name, count, err := session.ParseListLine(line)
		if err != nil {
			dropped++
			continue
		}

		sessions = append(sessions, session.Session{
			Name:         name,
			Path:         m.cfg.SessionPath(name),
			SessionCount: count,
		})
	}
	return sessions, dropped
}

// enrich fills in metadata for each session, at most cfg.MaxConcurrent
// directory reads in flight at once. Results are written back by index, so
// completion order is irrelevant. A panic in one item leaves that session
// un-enriched rather than aborting the batch.
func (m *Manager) enrich(sessions []session.Session, log *slog.Logger) {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, m.cfg.MaxConcurrent)

	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Error("metadata enrichment panicked", "session", sessions[i].Name, "panic", r)
				}
			}()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			sessions[i].Metadata = session.ReadMetadata(sessions[i].Path)
		}(i)
	}

	wg.Wait()
}
