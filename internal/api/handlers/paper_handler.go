package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/markdave123-py/papervoice/internal/core/acquire"
	"github.com/markdave123-py/papervoice/internal/core/extraction_engine"
	"github.com/markdave123-py/papervoice/internal/models"
	"github.com/markdave123-py/papervoice/internal/services"
)

const maxUploadBytes = 52 << 20

type PaperHandler struct {
	pipeline *services.PipelineService
	fetcher  *acquire.Fetcher
}

func NewPaperHandler(pipeline *services.PipelineService, fetcher *acquire.Fetcher) *PaperHandler {
	return &PaperHandler{pipeline: pipeline, fetcher: fetcher}
}

// Process accepts one paper — uploaded file, DOI, or URL, in that precedence —
// plus a comma-separated topic list, runs the pipeline, and returns the full
// result as JSON.
func (h *PaperHandler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	doc, err := h.resolveDocument(ctx, r)
	if err != nil {
		log.Printf("paper acquisition failed: %v", err)
		http.Error(w, fmt.Sprintf("could not acquire paper: %v", err), http.StatusBadGateway)
		return
	}
	if doc == nil {
		http.Error(w, "provide a file upload, a DOI, or a URL", http.StatusBadRequest)
		return
	}

	topics := strings.Split(r.FormValue("topics"), ",")

	result, err := h.pipeline.Run(ctx, *doc, topics)
	if err != nil {
		if errors.Is(err, extraction_engine.ErrUnsupportedFormat) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		log.Printf("pipeline run failed: %v", err)
		http.Error(w, fmt.Sprintf("processing failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// resolveDocument tries the upload first, then DOI, then URL. A nil document
// with nil error means no source was supplied at all.
func (h *PaperHandler) resolveDocument(ctx context.Context, r *http.Request) (*models.Document, error) {
	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		return &models.Document{
			Data:   data,
			Format: uploadFormat(header.Filename, header.Header.Get("Content-Type"), data),
		}, nil
	}

	if doi := strings.TrimSpace(r.FormValue("doi")); doi != "" {
		return h.fetcher.FromDOI(ctx, doi)
	}
	if rawURL := strings.TrimSpace(r.FormValue("url")); rawURL != "" {
		return h.fetcher.FromURL(ctx, rawURL)
	}
	return nil, nil
}

// uploadFormat prefers the filename extension, then the declared content
// type and magic bytes.
func uploadFormat(filename, contentType string, data []byte) models.Format {
	switch strings.ToLower(filepath.Ext(filepath.Base(filename))) {
	case ".pdf":
		return models.FormatPDF
	case ".docx":
		return models.FormatDocx
	case ".txt", ".text":
		return models.FormatPlainText
	}
	return acquire.DetectFormat(data, contentType)
}
