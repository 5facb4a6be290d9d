package api

import (
	"net/http"

	"github.com/cleavehq/cleave/internal/config"
	"github.com/cleavehq/cleave/internal/splitter"
	"github.com/cleavehq/cleave/internal/templates"
	"github.com/cleavehq/cleave/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	templatesHandler := templates.NewHandler(
		domain.Templates,
		runtime.Storage,
		runtime.Logger,
	)

	splitterHandler := splitter.NewHandler(
		domain.Splitter,
		runtime.Jobs,
		runtime.Storage,
		runtime.Logger,
		cfg.API.MaxUploadSizeBytes(),
		cfg.Engine.UploadsDir,
	)

	routes.Register(
		mux,
		templatesHandler.Routes(),
		splitterHandler.Routes(),
	)
}
