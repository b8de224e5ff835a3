package cache

import (
	"encoding/json"
	"time"

	"github.com/scigate/scigate/internal/model"
)

// VerdictStore caches originality verdicts keyed by the analyzed text, so
// re-checking unchanged text is served locally instead of re-running the
// upstream analysis.
type VerdictStore struct {
	cache Cache
	ttl   time.Duration
}

// NewVerdictStore creates a verdict store over any Cache.
func NewVerdictStore(c Cache, ttl time.Duration) *VerdictStore {
	return &VerdictStore{cache: c, ttl: ttl}
}

// Get returns the cached verdict for the text, if any.
func (s *VerdictStore) Get(text string) (*model.Verdict, bool) {
	data, found := s.cache.Get(Key(text))
	if !found {
		return nil, false
	}

	var v model.Verdict
	if err := json.Unmarshal(data, &v); err != nil {
		// A corrupt entry is dropped so the next lookup re-analyzes.
		_ = s.cache.Delete(Key(text))
		return nil, false
	}
	return &v, true
}

// Put stores a verdict for the text.
func (s *VerdictStore) Put(text string, v *model.Verdict) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.cache.Set(Key(text), data, s.ttl)
}
