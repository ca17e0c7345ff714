package extraction_engine

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/markdave123-py/papervoice/internal/models"
)

// extractDocx reads a word-processing container: paragraphs become TextUnits
// labeled "Paragraph {n}" (n counts every paragraph element, matching how
// word processors number them), and any relationship part whose target looks
// like an image asset becomes an ImageUnit.
func extractDocx(data []byte) ([]models.TextUnit, []models.ImageUnit, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, fmt.Errorf("open docx archive: %w", err)
	}

	units, err := docxParagraphs(zr)
	if err != nil {
		return nil, nil, err
	}

	return units, docxImages(zr), nil
}

// docxParagraphs streams word/document.xml and emits one unit per non-empty
// paragraph. Only w:t runs contribute text; field codes and properties are
// skipped.
func docxParagraphs(zr *zip.Reader) ([]models.TextUnit, error) {
	doc := zipEntry(zr, "word/document.xml")
	if doc == nil {
		return nil, fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	var units []models.TextUnit
	var current strings.Builder
	var paraNr int
	var inPara, inRun bool

	decoder := xml.NewDecoder(rc)

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				paraNr++
				current.Reset()
			case "t":
				inRun = inPara
			}
		case xml.CharData:
			if inRun {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				inPara = false
				if text := strings.TrimSpace(current.String()); text != "" {
					units = append(units, models.TextUnit{
						Label:   fmt.Sprintf("Paragraph %d", paraNr),
						Content: text,
					})
				}
			}
		}
	}

	return units, nil
}

// docxRelationships mirrors word/_rels/document.xml.rels.
type docxRelationships struct {
	Relationships []struct {
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// docxImages scans the document's relationship parts for image targets and
// reads each referenced blob. An unreadable part is skipped; the rest of the
// scan continues.
func docxImages(zr *zip.Reader) []models.ImageUnit {
	rels := zipEntry(zr, "word/_rels/document.xml.rels")
	if rels == nil {
		return nil
	}

	rc, err := rels.Open()
	if err != nil {
		return nil
	}
	defer rc.Close()

	var parsed docxRelationships
	if err := xml.NewDecoder(rc).Decode(&parsed); err != nil {
		log.Printf("docx: relationship scan failed: %v", err)
		return nil
	}

	var units []models.ImageUnit
	for _, rel := range parsed.Relationships {
		if !strings.Contains(rel.Target, "image") {
			continue
		}
		blob, err := readDocxPart(zr, rel.Target)
		if err != nil {
			log.Printf("docx: image part %q unreadable, skipping: %v", rel.Target, err)
			continue
		}
		units = append(units, models.ImageUnit{
			Label: fmt.Sprintf("Image %d", len(units)+1),
			Data:  blob,
		})
	}
	return units
}

// readDocxPart resolves a relationship target against the word/ directory
// and returns the part's bytes.
func readDocxPart(zr *zip.Reader, target string) ([]byte, error) {
	name := target
	if strings.HasPrefix(name, "/") {
		name = strings.TrimPrefix(name, "/")
	} else {
		name = "word/" + name
	}

	f := zipEntry(zr, name)
	if f == nil {
		return nil, fmt.Errorf("part %q not in archive", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func zipEntry(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
