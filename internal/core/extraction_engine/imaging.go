package extraction_engine

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/gif" // register decoders for formats PDFs and DOCX embed
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// NormalizePNG decodes an embedded image in whatever encoding the source
// document used and re-encodes it as PNG, the format the captioning service
// expects. The error is per-image; callers substitute a marker and move on.
func NormalizePNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
