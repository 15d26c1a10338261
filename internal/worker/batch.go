package worker

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/corefilter/internal/pipeline"
)

// Processor is the part of the pipeline the batch runner needs.
type Processor interface {
	ProcessFile(ctx context.Context, path string) ([]*pipeline.Result, error)
}

// FilterJob processes one corpus file.
type FilterJob struct {
	Path      string
	Processor Processor
}

// Execute runs the job.
func (j *FilterJob) Execute(ctx context.Context) Result {
	results, err := j.Processor.ProcessFile(ctx, j.Path)
	return &FileResult{Path: j.Path, Results: results, Error: err}
}

// FileResult is the outcome of processing one corpus file.
type FileResult struct {
	Path    string
	Results []*pipeline.Result
	Error   error
}

// Err satisfies the pool Result interface.
func (r *FileResult) Err() error {
	return r.Error
}

// BatchProcessor processes many corpus files concurrently.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPaths processes the given corpus files concurrently. Results come
// back sorted by path for deterministic reporting.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	defer pool.Shutdown()

	// Submit concurrently: the pool's channels are bounded, so draining
	// must overlap submission for large batches.
	go func() {
		for _, path := range paths {
			pool.Submit(&FilterJob{Path: path, Processor: b.processor})
		}
		pool.Close()
	}()

	results := pool.Wait()

	fileResults := make([]*FileResult, len(results))
	for i, result := range results {
		fileResults[i] = result.(*FileResult)
	}
	sort.Slice(fileResults, func(i, j int) bool {
		return fileResults[i].Path < fileResults[j].Path
	})
	return fileResults
}

// ProcessDir walks a directory and processes every corpus file in it.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*FileResult, error) {
	paths, err := ListCorpusFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list corpus files: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathList reads a newline-separated list of corpus file paths. Blank
// lines and lines starting with "#" are skipped.
func ReadPathList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	return paths, nil
}

// ListCorpusFiles returns the corpus files under dir, sorted. Files are
// recognized by the ".conll" suffix.
func ListCorpusFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".conll") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
