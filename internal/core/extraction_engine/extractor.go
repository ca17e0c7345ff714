package extraction_engine

import (
	"errors"
	"fmt"

	"github.com/markdave123-py/papervoice/internal/core"
	"github.com/markdave123-py/papervoice/internal/models"
)

// ErrUnsupportedFormat is returned for format tags the engine cannot parse.
// Callers should treat it as "this document cannot be processed", not as an
// empty document.
var ErrUnsupportedFormat = errors.New("unsupported document format")

var _ core.DocumentExtractor = (*Extractor)(nil)

// Extractor parses raw document bytes into labeled text and image units,
// dispatching on the declared format tag.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the document's text units and image units in document
// order. Per-image decode failures are skipped; only an unreadable document
// or an unrecognized format produce an error.
func (e *Extractor) Extract(data []byte, format models.Format) ([]models.TextUnit, []models.ImageUnit, error) {
	switch format {
	case models.FormatPDF:
		return extractPDF(data)
	case models.FormatDocx:
		return extractDocx(data)
	case models.FormatPlainText:
		return extractPlainText(data), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
