package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/ppiankov/corefilter/internal/pipeline"
)

type mockProcessor struct {
	mu      sync.Mutex
	calls   []string
	failOn  string
	failErr error
}

func (p *mockProcessor) ProcessFile(ctx context.Context, path string) ([]*pipeline.Result, error) {
	p.mu.Lock()
	p.calls = append(p.calls, path)
	p.mu.Unlock()
	if path == p.failOn {
		return nil, p.failErr
	}
	return []*pipeline.Result{}, nil
}

func (p *mockProcessor) sortedCalls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := append([]string(nil), p.calls...)
	sort.Strings(out)
	return out
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	proc := &mockProcessor{}
	batch := NewBatchProcessor(proc, 4)

	paths := []string{"c.conll", "a.conll", "b.conll"}
	results := batch.ProcessPaths(context.Background(), paths)

	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
	// Deterministic order regardless of completion order.
	for i, want := range []string{"a.conll", "b.conll", "c.conll"} {
		if results[i].Path != want {
			t.Errorf("result %d path = %q, want %q", i, results[i].Path, want)
		}
	}
	if calls := proc.sortedCalls(); len(calls) != len(paths) {
		t.Errorf("processor called %d times, want %d", len(calls), len(paths))
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	batch := NewBatchProcessor(&mockProcessor{}, 2)
	if results := batch.ProcessPaths(context.Background(), nil); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBatchProcessor_PartialFailure(t *testing.T) {
	wantErr := errors.New("parse failed")
	proc := &mockProcessor{failOn: "bad.conll", failErr: wantErr}
	batch := NewBatchProcessor(proc, 2)

	results := batch.ProcessPaths(context.Background(), []string{"good.conll", "bad.conll"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// One file failing must not take down the rest of the batch.
	if results[0].Path != "bad.conll" || !errors.Is(results[0].Err(), wantErr) {
		t.Errorf("bad.conll result: path=%q err=%v", results[0].Path, results[0].Err())
	}
	if results[1].Path != "good.conll" || results[1].Err() != nil {
		t.Errorf("good.conll result: path=%q err=%v", results[1].Path, results[1].Err())
	}
}

func TestBatchProcessor_ManyFiles(t *testing.T) {
	proc := &mockProcessor{}
	batch := NewBatchProcessor(proc, 2)

	var paths []string
	for i := 0; i < 50; i++ {
		paths = append(paths, fmt.Sprintf("doc-%03d.conll", i))
	}
	results := batch.ProcessPaths(context.Background(), paths)
	if len(results) != len(paths) {
		t.Errorf("expected %d results, got %d", len(paths), len(results))
	}
}

func TestListCorpusFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.conll", "a.conll", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(sub, "c.conll"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := ListCorpusFiles(dir)
	if err != nil {
		t.Fatalf("ListCorpusFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.conll"),
		filepath.Join(dir, "b.conll"),
		filepath.Join(sub, "c.conll"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestReadPathList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files.txt")
	contents := "# corpus batch\na.conll\n\n  b.conll  \n# skipped\nc.conll\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathList(path)
	if err != nil {
		t.Fatalf("ReadPathList: %v", err)
	}
	want := []string{"a.conll", "b.conll", "c.conll"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestListCorpusFiles_MissingDir(t *testing.T) {
	if _, err := ListCorpusFiles(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
