package extraction_engine

import (
	"fmt"
	"strings"

	"github.com/markdave123-py/papervoice/internal/models"
)

// windowSize is the number of lines grouped into one plain-text unit.
const windowSize = 40

// extractPlainText decodes the bytes as UTF-8 (dropping invalid sequences),
// splits into lines, and groups them into fixed 40-line windows. Labels state
// the window boundaries, 1-indexed inclusive: a final short window is still
// labeled up to start+39.
func extractPlainText(data []byte) []models.TextUnit {
	text := strings.ToValidUTF8(string(data), "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	var units []models.TextUnit
	for start := 0; start < len(lines); start += windowSize {
		end := start + windowSize
		if end > len(lines) {
			end = len(lines)
		}
		window := strings.TrimSpace(strings.Join(lines[start:end], "\n"))
		if window == "" {
			continue
		}
		units = append(units, models.TextUnit{
			Label:   fmt.Sprintf("Lines %d-%d", start+1, start+windowSize),
			Content: window,
		})
	}
	return units
}
