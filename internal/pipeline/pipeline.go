// Package pipeline orchestrates the complete filtering process: load
// annotated documents, extract candidate mentions, run the filter cascade,
// and render reports.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/corefilter/internal/cache"
	"github.com/ppiankov/corefilter/internal/corpus"
	"github.com/ppiankov/corefilter/internal/extract"
	"github.com/ppiankov/corefilter/internal/filter"
	"github.com/ppiankov/corefilter/internal/model"
)

// Pipeline wires the corpus loader, the mention extractor and the filter
// cascade. Pipelines share no per-document state and may be used for many
// documents in sequence; concurrent documents should each get their own
// replica.
type Pipeline struct {
	loader    *corpus.Loader
	extractor *extract.MentionExtractor
	cascade   *filter.Cascade
	config    *model.Config
}

// NewPipeline creates a pipeline from the given configuration.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	cascade, err := filter.FromConfig(cfg.Filters)
	if err != nil {
		return nil, fmt.Errorf("build cascade: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		dir, err := cacheDir(cfg.Cache.Dir)
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		store = cache.NewLayeredCache(cfg.Cache.TTL, dir, cfg.Cache.TTL)
	}

	return &Pipeline{
		loader:    corpus.NewLoader(store),
		extractor: extract.NewMentionExtractor(),
		cascade:   cascade,
		config:    cfg,
	}, nil
}

// Result holds the filtered mention list and the report for one document.
type Result struct {
	Document *model.Document
	Mentions []*model.Mention
	Report   *model.Report
}

// ProcessFile parses a corpus file and runs every document in it through
// extraction and the cascade. A data-integrity error in any document aborts
// the file.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) ([]*Result, error) {
	docs, err := p.loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	results := make([]*Result, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := p.ProcessDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// ProcessDocument runs a single document through extraction and the
// cascade.
func (p *Pipeline) ProcessDocument(doc *model.Document) (*Result, error) {
	extracted, err := p.extractor.Extract(doc)
	if err != nil {
		return nil, err
	}

	retained, stats := p.cascade.Apply(extracted)

	return &Result{
		Document: doc,
		Mentions: retained,
		Report:   model.NewReport(doc.Name, extracted, retained, stats),
	}, nil
}

// cacheDir resolves the configured cache directory, defaulting to
// ~/.corefilter/cache.
func cacheDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".corefilter", "cache"), nil
}
