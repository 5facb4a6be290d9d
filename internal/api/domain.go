package api

import (
	"github.com/cleavehq/cleave/internal/analysis"
	"github.com/cleavehq/cleave/internal/splitter"
	"github.com/cleavehq/cleave/internal/templates"
)

// Domain holds the domain systems that comprise the API.
type Domain struct {
	Templates templates.System
	Splitter  splitter.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	analyzer := analysis.New(
		runtime.Images,
		runtime.Texts,
		runtime.EngineConfig.MinAreaRatio,
	)

	assembler := splitter.NewAssembler(
		runtime.Engine,
		runtime.Storage,
		runtime.Logger,
	)

	pipeline := splitter.NewPipeline(
		runtime.Templates,
		runtime.Engine,
		analyzer,
		assembler,
		splitter.Matcher{
			ImageGate:      runtime.EngineConfig.ImageGate,
			MatchThreshold: runtime.EngineConfig.MatchThreshold,
		},
		runtime.EngineConfig.Workers,
		runtime.Logger,
	)

	return &Domain{
		Templates: runtime.Templates,
		Splitter:  pipeline,
	}
}
