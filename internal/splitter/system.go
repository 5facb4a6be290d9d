package splitter

import "context"

// System exposes the splitting engine's operations.
type System interface {
	Train(ctx context.Context, path, name string) (*TrainResult, error)
	Preview(ctx context.Context, path string) (*PipelinePreview, error)
	FindFirstPages(ctx context.Context, path string, obs Observer) ([]int, []PageDecision, error)
	Split(ctx context.Context, path, baseName string, obs Observer) ([]SplitDocument, error)
}

var _ System = (*Pipeline)(nil)
