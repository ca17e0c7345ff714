package extraction_engine

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docxBody = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">   </w:t></w:r></w:p>
    <w:p><w:r><w:t>Third </w:t></w:r><w:r><w:t>paragraph, two runs.</w:t></w:r></w:p>
  </w:body>
</w:document>`

const docxRels = `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type=".../styles" Target="styles.xml"/>
  <Relationship Id="rId2" Type=".../image" Target="media/image1.png"/>
  <Relationship Id="rId3" Type=".../image" Target="media/image2.png"/>
</Relationships>`

// buildDocx assembles an in-memory word-processing container.
func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		f, err := zw.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractDocx_Paragraphs(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"word/document.xml": docxBody,
	})

	units, images, err := extractDocx(data)
	require.NoError(t, err)
	assert.Empty(t, images)

	// Paragraph numbering counts the empty paragraph even though it
	// produces no unit.
	require.Len(t, units, 2)
	assert.Equal(t, "Paragraph 1", units[0].Label)
	assert.Equal(t, "First paragraph.", units[0].Content)
	assert.Equal(t, "Paragraph 3", units[1].Label)
	assert.Equal(t, "Third paragraph, two runs.", units[1].Content)
}

func TestExtractDocx_Images(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"word/document.xml":            docxBody,
		"word/_rels/document.xml.rels": docxRels,
		"word/media/image1.png":        "png-bytes-1",
		"word/media/image2.png":        "png-bytes-2",
	})

	_, images, err := extractDocx(data)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "Image 1", images[0].Label)
	assert.Equal(t, []byte("png-bytes-1"), images[0].Data)
	assert.Equal(t, []byte("png-bytes-2"), images[1].Data)
}

func TestExtractDocx_MissingImagePartSkipped(t *testing.T) {
	// rId2's target is absent from the archive: that one relationship is
	// skipped, the rest of the scan continues.
	data := buildDocx(t, map[string]string{
		"word/document.xml":            docxBody,
		"word/_rels/document.xml.rels": docxRels,
		"word/media/image2.png":        "png-bytes-2",
	})

	_, images, err := extractDocx(data)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, []byte("png-bytes-2"), images[0].Data)
}

func TestExtractDocx_NotAZip(t *testing.T) {
	_, _, err := extractDocx([]byte("definitely not a zip"))
	assert.Error(t, err)
}

func TestExtractDocx_MissingDocumentXML(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/other.xml": "<x/>"})
	_, _, err := extractDocx(data)
	assert.Error(t, err)
}
