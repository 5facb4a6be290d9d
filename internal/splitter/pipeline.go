package splitter

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cleavehq/cleave/internal/analysis"
	"github.com/cleavehq/cleave/internal/pdf"
	"github.com/cleavehq/cleave/internal/templates"
)

// Pipeline wires the oracles and core stages into the exposed operations:
// first-page detection, composite splitting, and template training.
type Pipeline struct {
	templates templates.System
	engine    pdf.Engine
	analyzer  *analysis.Analyzer
	assembler *Assembler
	matcher   Matcher
	workers   int
	logger    *slog.Logger
}

// NewPipeline creates a Pipeline. workers caps concurrent per-page
// analysis; values below 1 run sequentially.
func NewPipeline(
	tmpls templates.System,
	engine pdf.Engine,
	analyzer *analysis.Analyzer,
	assembler *Assembler,
	matcher Matcher,
	workers int,
	logger *slog.Logger,
) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		templates: tmpls,
		engine:    engine,
		analyzer:  analyzer,
		assembler: assembler,
		matcher:   matcher,
		workers:   workers,
		logger:    logger.With("system", "splitter"),
	}
}

// FindFirstPages classifies every page of the composite at path and returns
// the matched first-page indices in ascending order alongside the full
// ordered decision sequence.
//
// Page analysis (localization and embedding) fans out across workers, but
// decisions land in a page-indexed slice so order is restored before any
// boundary reasoning happens; segmentation itself is inherently sequential.
func (p *Pipeline) FindFirstPages(ctx context.Context, path string, obs Observer) ([]int, []PageDecision, error) {
	tmpls, err := p.templates.All()
	if err != nil {
		return nil, nil, fmt.Errorf("load templates: %w", err)
	}
	if len(tmpls) == 0 {
		return nil, nil, ErrNoTemplates
	}

	pages, texts, err := p.loadPages(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	decisions := make([]PageDecision, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i := range pages {
		g.Go(func() error {
			obs.PageStarted(i, len(pages))

			profile, err := p.analyzer.Analyze(gctx, pages[i], texts[i])
			if err != nil {
				return fmt.Errorf("page %d: %w", i, err)
			}

			decision := p.matcher.Match(i, profile, tmpls)
			decisions[i] = decision
			obs.PageDecided(decision)

			if decision.Matched {
				p.logger.Info(
					"first page detected",
					"page", i,
					"template", decision.BestMatch.Template,
					"score", roundScore(decision.BestMatch.FusedScore),
				)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var firsts []int
	for _, d := range decisions {
		if d.Matched {
			firsts = append(firsts, d.Page)
		}
	}

	return firsts, decisions, nil
}

// Split partitions the composite at path into one output document per
// detected boundary and returns their descriptors in boundary order.
func (p *Pipeline) Split(ctx context.Context, path, baseName string, obs Observer) ([]SplitDocument, error) {
	started := time.Now()

	_, decisions, err := p.FindFirstPages(ctx, path, obs)
	if err != nil {
		return nil, err
	}

	boundaries, err := Segment(decisions, len(decisions))
	if err != nil {
		return nil, err
	}
	obs.BoundariesComputed(boundaries)

	docs, err := p.assembler.Assemble(ctx, path, baseName, boundaries, decisions, obs)
	if err != nil {
		return nil, err
	}

	p.logger.Info(
		"composite split",
		"source", baseName,
		"pages", len(decisions),
		"documents", len(docs),
		"duration", time.Since(started),
	)

	return docs, nil
}

// loadPages rasterizes the composite and pairs every page image with its
// text. Missing trailing texts degrade to empty strings; pages with an
// empty text layer fall back to OCR when a build with OCR support has it
// enabled.
func (p *Pipeline) loadPages(ctx context.Context, path string) ([]image.Image, []string, error) {
	pages, err := p.engine.Rasterize(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	extracted, err := p.engine.ExtractText(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	texts := make([]string, len(pages))
	copy(texts, extracted)

	for i, text := range texts {
		if text != "" {
			continue
		}
		recognized, err := p.engine.Recognize(pages[i])
		if err != nil {
			if !errors.Is(err, pdf.ErrOCRNotEnabled) {
				p.logger.Warn("ocr fallback failed", "page", i, "error", err)
			}
			continue
		}
		texts[i] = recognized
	}

	return pages, texts, nil
}
