package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/corefilter/internal/model"
)

const corpusFixture = `#begin document news/0001
0	Malaysia	NNP	(TOP(S(NP*)	(GPE)	(1)
1	welcomed	VBD	(VP*	*	-
2	John	NNP	(NP(NP*)	(PERSON)	(2
3	,	,	*	*	-
4	the	DT	(NP*	*	(3
5	CEO	NN	*)	*	3)
6	,	,	*)	*	2)
7	for	IN	(PP*	*	-
8	five	CD	(NP*	(MONEY*	(4
9	dollars	NNS	*)))))	*)	4)

#end document
`

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return cfg
}

func TestPipeline_ProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.conll")
	if err := os.WriteFile(path, []byte(corpusFixture), 0644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}

	p, err := NewPipeline(testConfig(t))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	results, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	res := results[0]
	if res.Document.Name != "news/0001" {
		t.Errorf("document name = %q", res.Document.Name)
	}
	// Four annotated spans plus the dummy.
	if res.Report.Extracted != 5 {
		t.Errorf("extracted = %d, want 5", res.Report.Extracted)
	}
	// The money amount and the inner appositive half are removed.
	if res.Report.Retained != 3 {
		t.Errorf("retained = %d, want 3", res.Report.Retained)
	}

	var retained []string
	for _, m := range res.Mentions {
		if m.IsDummy {
			continue
		}
		retained = append(retained, m.Text())
	}
	want := []string{"Malaysia", "John , the CEO ,"}
	if len(retained) != len(want) {
		t.Fatalf("retained mentions = %v, want %v", retained, want)
	}
	for i := range want {
		if retained[i] != want[i] {
			t.Errorf("retained[%d] = %q, want %q", i, retained[i], want[i])
		}
	}
}

func TestPipeline_ProcessFile_ContextCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.conll")
	if err := os.WriteFile(path, []byte(corpusFixture), 0644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}

	p, err := NewPipeline(testConfig(t))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.ProcessFile(ctx, path); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestPipeline_ProcessFile_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.conll")
	broken := "#begin document broken\n0\tdog\tNN\t(TOP(NP*))\t*\t(1\n#end document\n"
	if err := os.WriteFile(path, []byte(broken), 0644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}

	p, err := NewPipeline(testConfig(t))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	if _, err := p.ProcessFile(context.Background(), path); err == nil {
		t.Fatal("expected error for unclosed mention span")
	}
}

func TestPipeline_ProcessDocument_EmptyDocument(t *testing.T) {
	p, err := NewPipeline(testConfig(t))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	res, err := p.ProcessDocument(&model.Document{Name: "empty"})
	if err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	// Only the dummy candidate exists and it survives every stage.
	if res.Report.Extracted != 1 || res.Report.Retained != 1 {
		t.Errorf("extracted=%d retained=%d, want 1/1", res.Report.Extracted, res.Report.Retained)
	}
	if !res.Mentions[0].IsDummy {
		t.Error("survivor is not the dummy mention")
	}
}

func TestNewPipeline_BadStage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Filters.Stages = []string{"bogus"}
	if _, err := NewPipeline(cfg); err == nil {
		t.Fatal("expected error for unknown stage")
	}
}

func TestRenderer_RenderJSON(t *testing.T) {
	p, err := NewPipeline(testConfig(t))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	res, err := p.ProcessDocument(&model.Document{
		Name:   "render/doc",
		Tokens: []string{"John"},
		POS:    []string{"NNP"},
		NER:    []string{"PERSON"},
		Annotations: []model.Annotation{
			{Span: model.Span{Begin: 0, End: 1}, HeadSpan: model.Span{Begin: 0, End: 1}, Type: model.TypeName},
		},
	})
	if err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := NewRenderer(false).RenderJSON([]*Result{res}, path); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var reports []model.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if len(reports) != 1 || reports[0].Document != "render/doc" {
		t.Errorf("unexpected reports: %+v", reports)
	}
	if !strings.Contains(string(data), `"stages"`) {
		t.Error("report JSON missing per-stage statistics")
	}
}
