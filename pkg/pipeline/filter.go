package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/rnalayout/pkg/cache"
	"github.com/matzehuels/rnalayout/pkg/observability"
	"github.com/matzehuels/rnalayout/pkg/rna"
)

// FilterResult is the outcome of pseudoknot removal.
type FilterResult struct {
	Structure rna.Structure
	Removed   []rna.Pair
}

// DotBracket returns the filtered structure in dot-bracket notation. A
// filtered structure is nested, so the result only uses parentheses.
func (f FilterResult) DotBracket() string {
	db, _ := f.Structure.DotBracket()
	return db
}

type filterEntry struct {
	Pairs   []int      `json:"pairs"`
	Removed []rna.Pair `json:"removed"`
}

// Filter removes pseudoknotted pairs from s, keeping the earliest-opened pair
// of every crossing set. Results are cached by structure.
func (r *Runner) Filter(ctx context.Context, s rna.Structure) (FilterResult, error) {
	key, err := json.Marshal(s.Pairs())
	if err != nil {
		return FilterResult{}, fmt.Errorf("encode structure: %w", err)
	}
	cacheKey := r.Keyer.FilterKey(cache.Hash(key))
	cacheHooks := observability.Cache()

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var entry filterEntry
		if json.Unmarshal(data, &entry) == nil {
			if filtered, err := rna.New(entry.Pairs); err == nil && filtered.Len() == s.Len() {
				cacheHooks.OnCacheHit(ctx, "filter")
				return FilterResult{Structure: filtered, Removed: entry.Removed}, nil
			}
		}
	}
	cacheHooks.OnCacheMiss(ctx, "filter")

	res := FilterResult{Structure: s.FilterPseudoknots(), Removed: s.Pseudoknots()}
	if data, err := json.Marshal(filterEntry{Pairs: res.Structure.Pairs(), Removed: res.Removed}); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLFilter); err == nil {
			cacheHooks.OnCacheSet(ctx, "filter", len(data))
		}
	}
	r.Logger.Debug("filtered pseudoknots", "length", s.Len(), "removed", len(res.Removed))
	return res, nil
}
