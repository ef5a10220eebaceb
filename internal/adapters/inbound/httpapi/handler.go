package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/docforge/docforge/internal/domain"
	"go.uber.org/zap"
)

// DiagramGenerator is the part of the diagram service the API needs.
type DiagramGenerator interface {
	Generate(ctx context.Context, rootPath string) (*domain.DiagramResult, error)
	RenderDiagram(ctx context.Context, doc *domain.DiagramDocument, format domain.ImageFormat) ([]byte, error)
}

// JavadocGenerator is the part of the javadoc service the API needs.
type JavadocGenerator interface {
	GenerateDocs(ctx context.Context, sourceDir, customClasspath string) (*domain.JavadocResult, error)
	GenerateFromRepository(ctx context.Context, req domain.RepositoryRequest) (*domain.JavadocResult, error)
}

type DiagramHandler struct {
	service     DiagramGenerator
	allowedBase string
	log         *zap.Logger
}

func NewDiagramHandler(service DiagramGenerator, allowedBase string, log *zap.Logger) *DiagramHandler {
	return &DiagramHandler{service: service, allowedBase: allowedBase, log: log}
}

// Generate answers with {"plantUML": "<text>"} for the posted directoryPath.
func (h *DiagramHandler) Generate(w http.ResponseWriter, r *http.Request) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}

	res, err := h.service.Generate(r.Context(), dir)
	if err != nil {
		writeError(w, h.log, err, "Error generating UML: ")
		return
	}
	h.log.Debug("generated diagram", zap.String("dir", dir), zap.String("plantuml", res.PlantUML()))
	writeJSON(w, http.StatusOK, map[string]string{"plantUML": res.PlantUML()})
}

// Image renders the diagram of directoryPath as png or svg.
func (h *DiagramHandler) Image(w http.ResponseWriter, r *http.Request) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}
	format, err := domain.ParseImageFormat(r.FormValue("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.service.Generate(r.Context(), dir)
	if err != nil {
		writeError(w, h.log, err, "Error generating UML: ")
		return
	}
	img, err := h.service.RenderDiagram(r.Context(), res.Document, format)
	if err != nil {
		writeError(w, h.log, err, "Error rendering UML: ")
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

// directory validates the directoryPath form value, writing a 400 on failure.
func (h *DiagramHandler) directory(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.FormValue("directoryPath")
	h.log.Info("received diagram request", zap.String("directory", raw))
	if strings.TrimSpace(raw) == "" {
		http.Error(w, "directoryPath is required", http.StatusBadRequest)
		return "", false
	}
	dir, err := within(h.allowedBase, raw)
	if err != nil {
		h.log.Warn("rejected directory", zap.String("directory", raw), zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return dir, true
}

type JavadocHandler struct {
	service     JavadocGenerator
	allowedBase string
	log         *zap.Logger
}

func NewJavadocHandler(service JavadocGenerator, allowedBase string, log *zap.Logger) *JavadocHandler {
	return &JavadocHandler{service: service, allowedBase: allowedBase, log: log}
}

// Generate documents the posted folderPath with an optional classpath.
func (h *JavadocHandler) Generate(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("folderPath")
	if strings.TrimSpace(raw) == "" {
		http.Error(w, "Error: folderPath is required", http.StatusBadRequest)
		return
	}
	dir, err := within(h.allowedBase, raw)
	if err != nil {
		http.Error(w, "Error: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.service.GenerateDocs(r.Context(), dir, r.FormValue("classpath"))
	if err != nil {
		writeError(w, h.log, err, "An unexpected error occurred: ")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Repository documents a remote Git repository described by a JSON body.
func (h *JavadocHandler) Repository(w http.ResponseWriter, r *http.Request) {
	var req domain.RepositoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Error: invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	// Output locations come from server settings only.
	req.OutputDir = ""

	res, err := h.service.GenerateFromRepository(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err, "An unexpected error occurred: ")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// within resolves p against the working directory and requires the result to
// sit inside base.
func within(base, p string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &domain.AccessDeniedError{Path: absPath, Base: absBase}
	}
	return absPath, nil
}

func writeError(w http.ResponseWriter, log *zap.Logger, err error, prefix string) {
	var (
		invalid   *domain.InvalidInputError
		denied    *domain.AccessDeniedError
		rendering *domain.RenderingError
	)
	switch {
	case errors.As(err, &invalid), errors.As(err, &denied):
		http.Error(w, "Error: "+err.Error(), http.StatusBadRequest)
	case errors.As(err, &rendering):
		log.Error("rendering failed", zap.Error(err))
		http.Error(w, prefix+err.Error(), http.StatusBadGateway)
	default:
		log.Error("request failed", zap.Error(err))
		http.Error(w, prefix+err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
