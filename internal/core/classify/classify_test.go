package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/papervoice/internal/models"
)

func unit(content string) models.TextUnit {
	return models.TextUnit{Label: "Page 1", Content: content}
}

func TestClassify_WholeWordNotStemmed(t *testing.T) {
	units := []models.TextUnit{unit("Transformer models use attention.")}

	buckets := Classify(units, []string{"attention", "transformers"})
	require.Len(t, buckets, 2)

	// "attention" is present as a standalone word.
	assert.Equal(t, "attention", buckets[0].Topic)
	assert.Len(t, buckets[0].Units, 1)

	// "transformers" must not match the singular "Transformer".
	assert.Equal(t, "transformers", buckets[1].Topic)
	assert.Empty(t, buckets[1].Units)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	buckets := Classify([]models.TextUnit{unit("ATTENTION is all you need")}, []string{"attention"})
	require.Len(t, buckets, 1)
	assert.Len(t, buckets[0].Units, 1)
}

func TestClassify_MultiWordPhrase(t *testing.T) {
	units := []models.TextUnit{
		unit("We study neural networks here."),
		unit("The networks neural order differs."),
	}
	buckets := Classify(units, []string{"neural networks"})
	require.Len(t, buckets, 1)
	// Matched as one literal phrase, not as independent words.
	require.Len(t, buckets[0].Units, 1)
	assert.Equal(t, units[0], buckets[0].Units[0])
}

func TestClassify_OneBucketPerTopicInInputOrder(t *testing.T) {
	units := []models.TextUnit{unit("nothing relevant")}
	topics := []string{"zebra", "apple", "mango"}

	buckets := Classify(units, topics)
	require.Len(t, buckets, 3)
	for i, b := range buckets {
		assert.Equal(t, topics[i], b.Topic)
		assert.NotNil(t, b.Units)
		assert.Empty(t, b.Units)
	}
}

func TestClassify_EmptyTopicsFiltered(t *testing.T) {
	buckets := Classify([]models.TextUnit{unit("text")}, []string{"", "  ", "text"})
	require.Len(t, buckets, 1)
	assert.Equal(t, "text", buckets[0].Topic)
}

func TestClassify_TopicsAreTrimmedButCasePreserved(t *testing.T) {
	buckets := Classify([]models.TextUnit{unit("About GANs.")}, []string{"  GANs "})
	require.Len(t, buckets, 1)
	assert.Equal(t, "GANs", buckets[0].Topic)
	assert.Len(t, buckets[0].Units, 1)
}

func TestClassify_UnitInMultipleBuckets(t *testing.T) {
	units := []models.TextUnit{unit("attention and convolution together")}
	buckets := Classify(units, []string{"attention", "convolution"})
	require.Len(t, buckets, 2)
	assert.Len(t, buckets[0].Units, 1)
	assert.Len(t, buckets[1].Units, 1)
}

func TestClassify_RegexMetacharactersAreLiteral(t *testing.T) {
	units := []models.TextUnit{
		unit("see x.y here"),
		unit("see xzy here"),
	}
	buckets := Classify(units, []string{"x.y"})
	require.Len(t, buckets, 1)
	// The dot is a literal character, not an any-char wildcard.
	require.Len(t, buckets[0].Units, 1)
	assert.Equal(t, units[0], buckets[0].Units[0])
}

func TestClassify_PreservesDocumentOrderWithinBucket(t *testing.T) {
	units := []models.TextUnit{
		{Label: "Page 1", Content: "attention first"},
		{Label: "Page 2", Content: "no match"},
		{Label: "Page 3", Content: "attention again"},
	}
	buckets := Classify(units, []string{"attention"})
	require.Len(t, buckets, 1)
	require.Len(t, buckets[0].Units, 2)
	assert.Equal(t, "Page 1", buckets[0].Units[0].Label)
	assert.Equal(t, "Page 3", buckets[0].Units[1].Label)
}
