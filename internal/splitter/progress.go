package splitter

import (
	"fmt"

	"github.com/cleavehq/cleave/pkg/jobs"
)

// Observer receives progress notifications from the pipeline at well-defined
// points. Implementations must not block; the pipeline notifies and moves on.
type Observer interface {
	PageStarted(page, total int)
	PageDecided(d PageDecision)
	BoundariesComputed(boundaries []Boundary)
	DocumentWritten(doc SplitDocument)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) PageStarted(page, total int)              {}
func (NopObserver) PageDecided(d PageDecision)               {}
func (NopObserver) BoundariesComputed(boundaries []Boundary) {}
func (NopObserver) DocumentWritten(doc SplitDocument)        {}

// jobObserver publishes pipeline progress into a tracked job for polling.
type jobObserver struct {
	job *jobs.Job
}

// NewJobObserver returns an Observer that records progress on the given job.
func NewJobObserver(job *jobs.Job) Observer {
	return &jobObserver{job: job}
}

func (o *jobObserver) PageStarted(page, total int) {
	o.job.Progress(page+1, total, fmt.Sprintf("analyzing page %d of %d", page+1, total))
}

func (o *jobObserver) PageDecided(d PageDecision) {
	o.job.AppendPage(d)
}

func (o *jobObserver) BoundariesComputed(boundaries []Boundary) {
	o.job.Note(fmt.Sprintf("identified %d documents", len(boundaries)))
}

func (o *jobObserver) DocumentWritten(doc SplitDocument) {
	o.job.AppendDocument(doc)
}
