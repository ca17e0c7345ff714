package models

// Format identifies how a document's raw bytes should be parsed.
type Format string

const (
	FormatPDF       Format = "pdf"
	FormatDocx      Format = "docx"
	FormatPlainText Format = "plain-text"
)

// Document holds one acquired paper: raw bytes plus the declared format.
// It is consumed exactly once by the extractor and never retained.
type Document struct {
	Data   []byte `json:"-"`
	Format Format `json:"format"`
}

// TextUnit is a labeled, trimmed span of extracted document text.
// Label is a human-readable locator ("Page 3", "Paragraph 12", "Lines 41-80");
// Content is always non-empty.
type TextUnit struct {
	Label   string `json:"label"`
	Content string `json:"content"`
}

// ImageUnit is a raw image blob extracted from a document, in whatever
// encoding the source embedded. Label identifies the source location.
type ImageUnit struct {
	Label string `json:"label"`
	Data  []byte `json:"data"`
}

// CaptionedImage pairs an extracted image with its generated caption.
// When captioning fails the Caption field carries a visible error marker
// rather than being dropped, so positional pairing with the extracted
// images is never broken.
type CaptionedImage struct {
	Label   string `json:"label"`
	Data    []byte `json:"data"`
	Caption string `json:"caption"`
}

// TopicBucket is one classification result: the topic as the user typed it
// and every text unit that matched, in document order. Buckets are kept in
// topic input order, so the classifier returns a slice rather than a map.
type TopicBucket struct {
	Topic string     `json:"topic"`
	Units []TextUnit `json:"units"`
}

// TopicSynthesis is the generated summary for one non-empty topic bucket,
// with its audio narration. AudioErr is set instead of Audio when speech
// synthesis failed for this topic.
type TopicSynthesis struct {
	Topic    string `json:"topic"`
	Summary  string `json:"summary"`
	Audio    []byte `json:"audio,omitempty"`
	AudioErr string `json:"audio_error,omitempty"`
}

// PipelineResult is everything one pipeline run produced. It is owned by
// the caller; no run state survives outside of it.
type PipelineResult struct {
	RunID    string           `json:"run_id"`
	Summary  string           `json:"summary"`
	Audio    []byte           `json:"audio,omitempty"`
	AudioErr string           `json:"audio_error,omitempty"`
	Topics   []TopicSynthesis `json:"topics,omitempty"`
	Images   []CaptionedImage `json:"images,omitempty"`
}
