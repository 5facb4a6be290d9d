package splitter_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cleavehq/cleave/internal/analysis"
	"github.com/cleavehq/cleave/internal/embeddings"
	"github.com/cleavehq/cleave/internal/splitter"
	"github.com/cleavehq/cleave/internal/templates"
)

// recordingObserver captures pipeline notifications for assertions.
type recordingObserver struct {
	mu         sync.Mutex
	started    int
	decided    []splitter.PageDecision
	boundaries []splitter.Boundary
	documents  []splitter.SplitDocument
}

func (o *recordingObserver) PageStarted(page, total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started++
}

func (o *recordingObserver) PageDecided(d splitter.PageDecision) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.decided = append(o.decided, d)
}

func (o *recordingObserver) BoundariesComputed(boundaries []splitter.Boundary) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.boundaries = boundaries
}

func (o *recordingObserver) DocumentWritten(doc splitter.SplitDocument) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.documents = append(o.documents, doc)
}

func newTestPipeline(engine *fakeEngine, sink *memorySink, tmpls []templates.Template, workers int) *splitter.Pipeline {
	logger := discardLogger()
	return splitter.NewPipeline(
		&fixedTemplates{all: tmpls},
		engine,
		analysis.New(grayImages{}, unitTexts{}, 0.01),
		splitter.NewAssembler(engine, sink, logger),
		splitter.Matcher{ImageGate: 0.85, MatchThreshold: 0.85},
		workers,
		logger,
	)
}

func invoiceTemplate() templates.Template {
	return templates.Template{
		Name:           "invoice",
		ImageEmbedding: embeddings.Vector{1, 0},
		TextEmbedding:  embeddings.Vector{1, 0},
	}
}

func TestFindFirstPages(t *testing.T) {
	// White pages embed as the template vector, black pages as orthogonal.
	engine := &fakeEngine{
		grays: []uint8{255, 0, 0, 255, 0},
		texts: []string{"a", "b", "c", "d", "e"},
	}
	pipeline := newTestPipeline(engine, newMemorySink(), []templates.Template{invoiceTemplate()}, 2)

	firsts, decisions, err := pipeline.FindFirstPages(context.Background(), "batch.pdf", splitter.NopObserver{})
	if err != nil {
		t.Fatalf("find first pages failed: %v", err)
	}

	if len(firsts) != 2 || firsts[0] != 0 || firsts[1] != 3 {
		t.Fatalf("firsts: got %v, want [0 3]", firsts)
	}
	if len(decisions) != 5 {
		t.Fatalf("got %d decisions, want 5", len(decisions))
	}
	for i, d := range decisions {
		if d.Page != i {
			t.Errorf("decision %d out of order: page %d", i, d.Page)
		}
	}
	if !decisions[0].Matched || !decisions[3].Matched {
		t.Error("expected pages 0 and 3 matched")
	}
	if decisions[1].Matched || decisions[2].Matched || decisions[4].Matched {
		t.Error("unexpected match on a continuation page")
	}
	if decisions[0].BestMatch.Template != "invoice" {
		t.Errorf("best match: got %q, want %q", decisions[0].BestMatch.Template, "invoice")
	}
}

func TestFindFirstPagesNoTemplates(t *testing.T) {
	engine := &fakeEngine{grays: []uint8{255}}
	pipeline := newTestPipeline(engine, newMemorySink(), nil, 1)

	_, _, err := pipeline.FindFirstPages(context.Background(), "batch.pdf", splitter.NopObserver{})
	if !errors.Is(err, splitter.ErrNoTemplates) {
		t.Fatalf("got %v, want ErrNoTemplates", err)
	}
}

func TestSplit(t *testing.T) {
	engine := &fakeEngine{
		grays: []uint8{255, 0, 0, 255, 0, 0},
		texts: []string{"a", "b", "c", "d", "e", "f"},
	}
	sink := newMemorySink()
	pipeline := newTestPipeline(engine, sink, []templates.Template{invoiceTemplate()}, 3)

	obs := &recordingObserver{}
	docs, err := pipeline.Split(context.Background(), "batch.pdf", "batch", obs)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].Filename != "batch_document_1.pdf" || docs[1].Filename != "batch_document_2.pdf" {
		t.Errorf("filenames: got %q, %q", docs[0].Filename, docs[1].Filename)
	}
	if docs[0].PageCount != 3 || docs[1].PageCount != 3 {
		t.Errorf("page counts: got %d, %d, want 3, 3", docs[0].PageCount, docs[1].PageCount)
	}

	for _, doc := range docs {
		if ok, _ := sink.Exists(context.Background(), doc.Key); !ok {
			t.Errorf("output %q not stored", doc.Key)
		}
	}

	if obs.started != 6 {
		t.Errorf("page started events: got %d, want 6", obs.started)
	}
	if len(obs.decided) != 6 {
		t.Errorf("page decided events: got %d, want 6", len(obs.decided))
	}
	if len(obs.boundaries) != 2 {
		t.Errorf("boundaries event: got %d, want 2", len(obs.boundaries))
	}
	if len(obs.documents) != 2 {
		t.Errorf("document events: got %d, want 2", len(obs.documents))
	}
}

func TestSplitUnsplittable(t *testing.T) {
	engine := &fakeEngine{grays: []uint8{0, 0, 0}}
	pipeline := newTestPipeline(engine, newMemorySink(), []templates.Template{invoiceTemplate()}, 1)

	_, err := pipeline.Split(context.Background(), "batch.pdf", "batch", splitter.NopObserver{})
	if !errors.Is(err, splitter.ErrNoFirstPages) {
		t.Fatalf("got %v, want ErrNoFirstPages", err)
	}
}

func TestSplitDeterministicAcrossRuns(t *testing.T) {
	run := func() []splitter.SplitDocument {
		engine := &fakeEngine{grays: []uint8{255, 0, 255, 0, 0}}
		pipeline := newTestPipeline(engine, newMemorySink(), []templates.Template{invoiceTemplate()}, 4)
		docs, err := pipeline.Split(context.Background(), "batch.pdf", "batch", splitter.NopObserver{})
		if err != nil {
			t.Fatalf("split failed: %v", err)
		}
		return docs
	}

	first := run()
	second := run()

	if len(first) != len(second) {
		t.Fatalf("document counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Filename != second[i].Filename ||
			first[i].StartPage != second[i].StartPage ||
			first[i].EndPage != second[i].EndPage {
			t.Errorf("document %d differs across runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
