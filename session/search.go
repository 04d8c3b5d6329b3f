package session

import (
	"fmt"
	"sort"
	"strings"
)

// Search scoring weights. A raw-name hit outranks a display-name hit, which
// outranks a working-directory hit.
const (
	scoreName    = 3
	scoreDisplay = 2
	scorePath    = 1
)

// SearchResult pairs a session with its relevance score for one query.
// Results with a zero score are never constructed.
type SearchResult struct {
	Session Session
	Score   int
	// Matches describes which fields each token hit, for display only.
	Matches []string
}

// Search ranks sessions against a whitespace-tokenized query. Each token
// scores independently against the raw name (+3), the display name (+2), and
// the working directory (+1); a token can contribute on all three. Sessions
// that score zero are excluded. Results are sorted by score descending,
// stable on ties, so equal-score sessions keep their registry order.
//
// An empty or whitespace-only query returns nil.
func Search(sessions []Session, query string) []SearchResult {
	keywords := strings.Fields(strings.ToLower(query))
	if len(keywords) == 0 {
		return nil
	}

	var results []SearchResult
	for _, sess := range sessions {
		nameLower := strings.ToLower(sess.Name)
		displayLower := strings.ToLower(sess.DisplayName())
		pathLower := strings.ToLower(sess.CurrentCwd())

		score := 0
		var matches []string
		for _, kw := range keywords {
			if strings.Contains(nameLower, kw) {
				score += scoreName
				matches = append(matches, fmt.Sprintf("name: %s", kw))
			}
			if strings.Contains(displayLower, kw) {
				score += scoreDisplay
				matches = append(matches, fmt.Sprintf("display: %s", kw))
			}
			if pathLower != "" && strings.Contains(pathLower, kw) {
				score += scorePath
				matches = append(matches, fmt.Sprintf("path: %s", kw))
			}
		}

		if score > 0 {
			results = append(results, SearchResult{Session: sess, Score: score, Matches: matches})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
