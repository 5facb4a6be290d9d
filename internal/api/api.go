// Package api assembles the API module: domain systems, route registration,
// and the middleware stack, mounted under the configured base path.
package api

import (
	"net/http"
	"strings"

	"github.com/cleavehq/cleave/internal/config"
	"github.com/cleavehq/cleave/internal/infrastructure"
	"github.com/cleavehq/cleave/pkg/middleware"
)

// NewHandler creates the API handler with all domain routes and middleware,
// served under cfg.API.BasePath.
func NewHandler(cfg *config.Config, infra *infrastructure.Infrastructure) http.Handler {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	var stack middleware.Stack
	stack.Use(middleware.CORS(&cfg.API.CORS))
	stack.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return mount(cfg.API.BasePath, stack.Apply(mux))
}

// mount serves handler under basePath, stripping the prefix before dispatch.
func mount(basePath string, handler http.Handler) http.Handler {
	base := strings.TrimSuffix(basePath, "/")
	if base == "" {
		return handler
	}
	return http.StripPrefix(base, handler)
}
