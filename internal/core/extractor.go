package core

import "github.com/markdave123-py/papervoice/internal/models"

// DocumentExtractor turns raw document bytes into ordered, labeled text and
// image units. Implementations must be deterministic: the same bytes and
// format always yield the same sequences, in document order.
type DocumentExtractor interface {
	Extract(data []byte, format models.Format) ([]models.TextUnit, []models.ImageUnit, error)
}
