package templates

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"

	"github.com/cleavehq/cleave/internal/vision"
	"github.com/cleavehq/cleave/pkg/handlers"
	"github.com/cleavehq/cleave/pkg/routes"
	"github.com/cleavehq/cleave/pkg/storage"
)

// Handler provides the read endpoints for trained templates.
type Handler struct {
	sys    System
	store  storage.System
	logger *slog.Logger
}

// ListResponse is the body of the template listing endpoint.
type ListResponse struct {
	Templates []Summary `json:"templates"`
	Count     int       `json:"count"`
}

// PreviewResponse carries the stored preview renders for one template as
// PNG data URLs, mirroring what the training endpoint returned at train time.
type PreviewResponse struct {
	Name          string        `json:"name"`
	Region        vision.Region `json:"region"`
	OriginalImage string        `json:"original_image"`
	CroppedImage  string        `json:"cropped_image"`
}

// NewHandler creates a Handler over the template system and preview storage.
func NewHandler(sys System, store storage.System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		store:  store,
		logger: logger.With("handler", "templates"),
	}
}

// Routes returns the route group for template read endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/templates",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{name}/preview", Handler: h.Preview},
		},
	}
}

// List returns every trained template's summary and the total count.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.sys.All()
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	summaries := make([]Summary, 0, len(all))
	for i := range all {
		summaries = append(summaries, all[i].Summarize())
	}

	handlers.RespondJSON(w, http.StatusOK, ListResponse{
		Templates: summaries,
		Count:     len(summaries),
	})
}

// Preview returns the original and cropped preview renders stored when the
// template was trained.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	t, err := h.sys.Get(r.PathValue("name"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if t.OriginalPreviewKey == "" || t.CroppedPreviewKey == "" {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrNoPreview), ErrNoPreview)
		return
	}

	original, err := h.fetchDataURL(r.Context(), t.OriginalPreviewKey)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	cropped, err := h.fetchDataURL(r.Context(), t.CroppedPreviewKey)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, PreviewResponse{
		Name:          t.Name,
		Region:        t.Region,
		OriginalImage: original,
		CroppedImage:  cropped,
	})
}

func (h *Handler) fetchDataURL(ctx context.Context, key string) (string, error) {
	reader, err := h.store.Download(ctx, key)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
