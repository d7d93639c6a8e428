package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"docquery-backend/internal/shared/storage/search"
)

// Index is an in-memory search.Index for development and tests. Scoring is
// naive term frequency, which is enough to keep ordering deterministic.
type Index struct {
	mu      sync.RWMutex
	entries map[string]search.Entry
}

// New constructs an empty in-memory index.
func New() *Index {
	return &Index{entries: make(map[string]search.Entry)}
}

// Ensure is a no-op for the in-memory index.
func (i *Index) Ensure(ctx context.Context) error {
	return ctx.Err()
}

// Upsert stores or replaces the entry keyed by its id.
func (i *Index) Upsert(ctx context.Context, entry search.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries[entry.ID] = entry
	return nil
}

// Search evaluates the boolean query against every entry and returns matches
// ordered by descending score.
func (i *Index) Search(ctx context.Context, query search.Query) ([]search.Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	var hits []search.Hit
	for _, entry := range i.entries {
		score, ok := evaluate(query, entry)
		if !ok {
			continue
		}
		hits = append(hits, search.Hit{
			ID:      entry.ID,
			Title:   entry.Title,
			Content: entry.Content,
			Score:   score,
		})
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].ID < hits[b].ID
	})
	return hits, nil
}

func evaluate(q search.Query, entry search.Entry) (float64, bool) {
	switch {
	case q.Match != nil:
		score := matchScore(fieldValue(entry, q.Match.Field), q.Match.Text)
		return score, score > 0
	case q.Term != nil:
		if fieldValue(entry, q.Term.Field) == q.Term.Value {
			return 0, true
		}
		return 0, false
	case q.Bool != nil:
		total := 0.0
		for _, sub := range q.Bool.Must {
			score, ok := evaluate(sub, entry)
			if !ok {
				return 0, false
			}
			total += score
		}
		if len(q.Bool.Should) > 0 {
			matched := false
			for _, sub := range q.Bool.Should {
				if score, ok := evaluate(sub, entry); ok {
					matched = true
					total += score
				}
			}
			if !matched {
				return 0, false
			}
		}
		return total, true
	default:
		return 0, true
	}
}

func matchScore(text, needle string) float64 {
	text = strings.ToLower(text)
	score := 0.0
	for _, token := range strings.Fields(strings.ToLower(needle)) {
		score += float64(strings.Count(text, token))
	}
	return score
}

func fieldValue(entry search.Entry, field string) string {
	switch field {
	case "id":
		return entry.ID
	case "title":
		return entry.Title
	case "content":
		return entry.Content
	case "user_id":
		return entry.UserID
	default:
		return ""
	}
}

var _ search.Index = (*Index)(nil)
