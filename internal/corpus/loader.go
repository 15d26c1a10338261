package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ppiankov/corefilter/internal/cache"
	"github.com/ppiankov/corefilter/internal/model"
)

// Loader reads corpus files, consulting the document cache so repeated runs
// over unchanged files skip re-parsing. A nil cache disables caching.
type Loader struct {
	cache cache.Cache
}

// NewLoader creates a loader backed by c; c may be nil.
func NewLoader(c cache.Cache) *Loader {
	return &Loader{cache: c}
}

// LoadFile reads and parses every document in a corpus file. The cache key
// is derived from the file contents, so edited files always re-parse.
func (l *Loader) LoadFile(path string) ([]*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}

	key := cache.Key(data)
	if l.cache != nil {
		if raw, found := l.cache.Get(key); found {
			var docs []*model.Document
			if json.Unmarshal(raw, &docs) == nil {
				return docs, nil
			}
			// Undecodable entry: fall through to a fresh parse.
			_ = l.cache.Delete(key)
		}
	}

	docs, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if l.cache != nil {
		if raw, err := json.Marshal(docs); err == nil {
			_ = l.cache.Set(key, raw, 0)
		}
	}
	return docs, nil
}
