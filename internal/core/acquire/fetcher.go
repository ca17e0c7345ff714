// Package acquire fetches paper bytes by DOI or URL.
package acquire

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/papervoice/internal/models"
)

const (
	doiResolver    = "https://doi.org/"
	defaultTimeout = 60 * time.Second
	maxDocSize     = 100 << 20
)

// Fetcher retrieves papers over HTTP. Any transport error or non-success
// status yields an error; callers treat that as "no document" and skip
// processing.
type Fetcher struct {
	httpClient *http.Client
	resolver   string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: defaultTimeout},
		resolver:   doiResolver,
	}
}

// NewFetcherWithClient is used by tests to point at a stub server.
func NewFetcherWithClient(client *http.Client, resolver string) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if resolver == "" {
		resolver = doiResolver
	}
	return &Fetcher{httpClient: client, resolver: resolver}
}

// FromDOI resolves a DOI through the public resolver, asking for the PDF
// rendition.
func (f *Fetcher) FromDOI(ctx context.Context, doi string) (*models.Document, error) {
	return f.fetch(ctx, f.resolver+strings.TrimSpace(doi), true)
}

// FromURL fetches the paper bytes directly.
func (f *Fetcher) FromURL(ctx context.Context, rawURL string) (*models.Document, error) {
	return f.fetch(ctx, strings.TrimSpace(rawURL), false)
}

func (f *Fetcher) fetch(ctx context.Context, target string, wantPDF bool) (*models.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if wantPDF {
		req.Header.Set("Accept", "application/pdf")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", target, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocSize))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fetch %s: empty response", target)
	}

	contentType := resp.Header.Get("Content-Type")

	// HTML landing pages are converted to plain text so the pipeline can
	// still process them instead of choking the PDF parser on markup.
	if strings.Contains(contentType, "text/html") || looksLikeHTML(data) {
		text, err := htmlToText(data)
		if err != nil {
			return nil, fmt.Errorf("convert html %s: %w", target, err)
		}
		return &models.Document{Data: []byte(text), Format: models.FormatPlainText}, nil
	}

	return &models.Document{Data: data, Format: DetectFormat(data, contentType)}, nil
}

// DetectFormat infers the format tag from the content type, falling back to
// magic bytes ("%PDF", the zip signature of a docx container).
func DetectFormat(data []byte, contentType string) models.Format {
	switch {
	case strings.Contains(contentType, "application/pdf"):
		return models.FormatPDF
	case strings.Contains(contentType, "wordprocessingml"):
		return models.FormatDocx
	case strings.HasPrefix(contentType, "text/"):
		return models.FormatPlainText
	}

	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return models.FormatPDF
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return models.FormatDocx
	default:
		return models.FormatPlainText
	}
}

func looksLikeHTML(data []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(data))
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

func htmlToText(data []byte) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), "text/html", false)
	if err != nil {
		return "", err
	}
	return res.Body, nil
}
