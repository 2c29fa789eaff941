package watcher

import (
	"context"

	"github.com/sahilm/fuzzy"
)

// Suggest returns up to limit distinct process names that fuzzily resemble
// target, best match first. It is used to hint at typos when the target
// matches nothing.
func (w *Watcher) Suggest(ctx context.Context, target string, limit int) ([]string, error) {
	names, err := w.Names(ctx)
	if err != nil {
		return nil, err
	}

	unique := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			unique = append(unique, n)
		}
	}

	matches := fuzzy.Find(target, unique)
	out := make([]string, 0, limit)
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out, nil
}
