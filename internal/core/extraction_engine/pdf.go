package extraction_engine

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/markdave123-py/papervoice/internal/models"
)

// extractPDF walks the document page by page. Each page with visible text
// yields one TextUnit labeled "Page {n}"; each embedded raster image yields
// one ImageUnit labeled "Page {n}-Image {j}". A failure to decode one image
// skips that image only.
func extractPDF(data []byte) ([]models.TextUnit, []models.ImageUnit, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	var units []models.TextUnit
	var images []models.ImageUnit

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		if txt := pageText(ctx, pageNr); txt != "" {
			units = append(units, models.TextUnit{
				Label:   fmt.Sprintf("Page %d", pageNr),
				Content: txt,
			})
		}
		images = append(images, pageImages(ctx, pageNr)...)
	}

	return units, images, nil
}

// pageText decodes a single page's content stream and returns its trimmed
// visible text, or "" when the page has none.
func pageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return strings.TrimSpace(textFromContentStream(data))
}

// pageImages extracts the page's raster images in object-number order, so
// repeated runs over the same bytes produce identical sequences.
func pageImages(ctx *model.Context, pageNr int) []models.ImageUnit {
	found, err := pdfcpu.ExtractPageImages(ctx, pageNr, false)
	if err != nil {
		log.Printf("pdf: page %d image scan failed: %v", pageNr, err)
		return nil
	}

	objNrs := make([]int, 0, len(found))
	for nr := range found {
		objNrs = append(objNrs, nr)
	}
	sort.Ints(objNrs)

	var units []models.ImageUnit
	for _, nr := range objNrs {
		img := found[nr]
		blob, err := io.ReadAll(img)
		if err != nil || len(blob) == 0 {
			log.Printf("pdf: page %d obj %d image decode failed, skipping", pageNr, nr)
			continue
		}
		units = append(units, models.ImageUnit{
			Label: fmt.Sprintf("Page %d-Image %d", pageNr, len(units)+1),
			Data:  blob,
		})
	}
	return units
}

// literalRe matches PDF string literals: (text here)
var literalRe = regexp.MustCompile(`\(([^)]*)\)`)

// textFromContentStream walks the page's operator stream and collects the
// arguments of the text-showing operators (Tj, TJ, ').
func textFromContentStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range literalRe.FindAllSubmatch(line, -1) {
				sb.WriteString(unescapePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range literalRe.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(unescapePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return collapseWhitespace(sb.String())
}

// unescapePDFString resolves backslash escapes, including octal codes,
// inside a PDF string literal.
func unescapePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(c)
		default:
			if c >= '0' && c <= '7' {
				val := int(c - '0')
				for k := 0; k < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; k++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(c)
			}
		}
	}
	return sb.String()
}

// collapseWhitespace folds whitespace runs into single spaces and drops
// non-printable characters left over from stream decoding.
func collapseWhitespace(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
