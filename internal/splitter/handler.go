package splitter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cleavehq/cleave/pkg/handlers"
	"github.com/cleavehq/cleave/pkg/jobs"
	"github.com/cleavehq/cleave/pkg/routes"
	"github.com/cleavehq/cleave/pkg/storage"
)

// Handler provides the training, preview, splitting, job polling, and
// output download endpoints.
type Handler struct {
	sys           System
	tracker       *jobs.Tracker
	outputs       storage.System
	logger        *slog.Logger
	maxUploadSize int64
	uploadsDir    string
}

// SplitAccepted is the response to a split request: the job to poll.
type SplitAccepted struct {
	JobID  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
}

// NewHandler creates a Handler over the splitting system.
func NewHandler(
	sys System,
	tracker *jobs.Tracker,
	outputs storage.System,
	logger *slog.Logger,
	maxUploadSize int64,
	uploadsDir string,
) *Handler {
	return &Handler{
		sys:           sys,
		tracker:       tracker,
		outputs:       outputs,
		logger:        logger.With("handler", "splitter"),
		maxUploadSize: maxUploadSize,
		uploadsDir:    uploadsDir,
	}
}

// Routes returns the route group for the splitting endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/templates", Handler: h.Train},
			{Method: "POST", Pattern: "/templates/preview", Handler: h.PreviewPipeline},
			{Method: "POST", Pattern: "/split", Handler: h.Split},
			{Method: "GET", Pattern: "/jobs/{id}", Handler: h.JobStatus},
			{Method: "GET", Pattern: "/outputs/{filename}", Handler: h.Download},
		},
	}
}

// Train registers a new template from an uploaded single-document PDF.
// Training runs synchronously; the response carries the stored template and
// its preview renders.
func (h *Handler) Train(w http.ResponseWriter, r *http.Request) {
	path, _, err := h.receiveUpload(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer os.Remove(path)

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		err := fmt.Errorf("missing template name: %w", ErrInvalidFile)
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Train(r.Context(), path, name)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// PreviewPipeline runs content detection on an upload without persisting a
// template, so operators can inspect the detected region before training.
func (h *Handler) PreviewPipeline(w http.ResponseWriter, r *http.Request) {
	path, _, err := h.receiveUpload(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer os.Remove(path)

	preview, err := h.sys.Preview(r.Context(), path)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, preview)
}

// Split accepts a composite PDF and starts an asynchronous split job. The
// response is immediate; clients poll the returned job for page decisions,
// boundaries, and written documents.
func (h *Handler) Split(w http.ResponseWriter, r *http.Request) {
	path, filename, err := h.receiveUpload(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	baseName := strings.TrimSuffix(filename, filepath.Ext(filename))
	job := h.tracker.Create()

	go h.runSplit(job, path, baseName)

	handlers.RespondJSON(w, http.StatusAccepted, SplitAccepted{
		JobID:  job.ID(),
		Status: jobs.StatusInitializing,
	})
}

// runSplit executes a split detached from the originating request.
func (h *Handler) runSplit(job *jobs.Job, path, baseName string) {
	defer os.Remove(path)

	if _, err := h.sys.Split(context.Background(), path, baseName, NewJobObserver(job)); err != nil {
		h.logger.Error("split job failed", "job", job.ID(), "error", err)
		job.Fail(err)
		return
	}

	job.Complete()
}

// JobStatus returns a point-in-time snapshot of a split job.
func (h *Handler) JobStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid job id: %w", err))
		return
	}

	job := h.tracker.Get(id)
	if job == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, fmt.Errorf("job %s not found", id))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, job.Snapshot())
}

// Download streams one split output as an attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	if strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		err := fmt.Errorf("invalid filename %q: %w", filename, ErrInvalidFile)
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	reader, err := h.outputs.Download(r.Context(), outputPrefix+filename)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("download interrupted", "filename", filename, "error", err)
	}
}

// receiveUpload validates and spools the multipart "file" field to the
// uploads directory, returning the spooled path and the client filename.
// Callers own the returned file and must remove it.
func (h *Handler) receiveUpload(w http.ResponseWriter, r *http.Request) (string, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", "", fmt.Errorf("upload exceeds %d bytes: %w", h.maxUploadSize, ErrFileTooLarge)
		}
		return "", "", fmt.Errorf("missing file field: %w", ErrInvalidFile)
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return "", "", fmt.Errorf("%q is not a PDF: %w", filename, ErrInvalidFile)
	}

	path, err := h.spool(file)
	if err != nil {
		return "", "", err
	}

	return path, filename, nil
}

// spool writes the upload to a uniquely named file under the uploads
// directory.
func (h *Handler) spool(file multipart.File) (string, error) {
	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		return "", fmt.Errorf("prepare uploads dir: %w", err)
	}

	tmp, err := os.CreateTemp(h.uploadsDir, "upload-*.pdf")
	if err != nil {
		return "", fmt.Errorf("spool upload: %w", err)
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("spool upload: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("spool upload: %w", err)
	}

	return tmp.Name(), nil
}
