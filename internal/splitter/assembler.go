package splitter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/cleavehq/cleave/internal/pdf"
	"github.com/cleavehq/cleave/pkg/storage"
)

// outputPrefix namespaces split outputs within the storage sink.
const outputPrefix = "outputs/"

// Assembler partitions a source PDF into one output per boundary.
type Assembler struct {
	engine pdf.Engine
	sink   storage.System
	logger *slog.Logger
}

// NewAssembler creates an Assembler writing through the given storage sink.
func NewAssembler(engine pdf.Engine, sink storage.System, logger *slog.Logger) *Assembler {
	return &Assembler{
		engine: engine,
		sink:   sink,
		logger: logger.With("system", "assembler"),
	}
}

// Assemble writes one output PDF per boundary, in boundary order. Output
// names are deterministic: {baseName}_document_{n}.pdf with n starting at 1.
// Each output's page count is re-verified after assembly; a mismatch
// indicates corruption in page copying and fails the whole operation.
// Each document carries the match evidence of its first page so consumers
// can audit why the boundary was drawn.
func (a *Assembler) Assemble(
	ctx context.Context,
	sourcePath string,
	baseName string,
	boundaries []Boundary,
	decisions []PageDecision,
	obs Observer,
) ([]SplitDocument, error) {
	docs := make([]SplitDocument, 0, len(boundaries))

	for i, b := range boundaries {
		var buf bytes.Buffer
		if err := a.engine.CopyPageRange(sourcePath, b.Start, b.End, &buf); err != nil {
			return nil, fmt.Errorf("assemble document %d: %w", i+1, err)
		}

		written, err := a.engine.PageCountBytes(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("verify document %d: %w", i+1, err)
		}
		if written != b.Pages() {
			a.logger.Error(
				"assembled page count mismatch",
				"document", i+1,
				"want", b.Pages(),
				"got", written,
			)
			return nil, fmt.Errorf(
				"document %d pages [%d, %d): wrote %d pages: %w",
				i+1, b.Start, b.End, written, ErrPageCountMismatch,
			)
		}

		filename := fmt.Sprintf("%s_document_%d.pdf", baseName, i+1)
		key := outputPrefix + filename
		if err := a.sink.Upload(ctx, key, bytes.NewReader(buf.Bytes()), "application/pdf"); err != nil {
			return nil, fmt.Errorf("store document %d: %w", i+1, err)
		}

		doc := SplitDocument{
			Filename:  filename,
			Key:       key,
			StartPage: b.Start + 1,
			EndPage:   b.End,
			PageCount: b.Pages(),
			Evidence:  roundedEvidence(decisions[b.Start].BestMatch),
		}

		a.logger.Info(
			"document written",
			"filename", filename,
			"pages", doc.PageCount,
			"start", doc.StartPage,
			"end", doc.EndPage,
		)

		obs.DocumentWritten(doc)
		docs = append(docs, doc)
	}

	return docs, nil
}
