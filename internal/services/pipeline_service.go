package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/papervoice/internal/core"
	"github.com/markdave123-py/papervoice/internal/core/classify"
	"github.com/markdave123-py/papervoice/internal/core/extraction_engine"
	"github.com/markdave123-py/papervoice/internal/models"
)

const summarySystemPrompt = "You summarize research content clearly and accurately."

// captionParallelism bounds concurrent captioning calls per run.
const captionParallelism = 4

// PipelineService drives one document through extraction, captioning,
// classification, synthesis, and narration. Every run returns a fresh
// PipelineResult owned by the caller; the service itself holds no run state.
type PipelineService struct {
	extractor core.DocumentExtractor
	captioner core.Captioner
	llm       core.LLMProvider
	speech    core.SpeechProvider
}

func NewPipelineService(ex core.DocumentExtractor, cap core.Captioner, llm core.LLMProvider, sp core.SpeechProvider) *PipelineService {
	return &PipelineService{extractor: ex, captioner: cap, llm: llm, speech: sp}
}

// Run executes the full pipeline over one document. Failures in external
// calls (captioning, synthesis, narration) are substituted with visible
// markers on the affected unit or topic and never abort sibling work; only
// an unreadable or unsupported document fails the run itself.
func (s *PipelineService) Run(ctx context.Context, doc models.Document, topics []string) (*models.PipelineResult, error) {
	units, images, err := s.extractor.Extract(doc.Data, doc.Format)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	result := &models.PipelineResult{RunID: uuid.NewString()}
	result.Images = s.captionAll(ctx, images)

	var buckets []models.TopicBucket
	if hasTopics(topics) {
		buckets = classify.Classify(units, topics)
	}

	if summary, err := s.SummarizeDocument(ctx, units); err != nil {
		log.Printf("pipeline %s: document summary failed: %v", result.RunID, err)
		result.Summary = failureMarker("summary", err)
	} else {
		result.Summary = summary
		result.Audio, result.AudioErr = s.narrate(ctx, summary)
	}

	result.Topics = s.SummarizeTopics(ctx, buckets)
	for i := range result.Topics {
		t := &result.Topics[i]
		if t.Summary == "" || isFailureMarker(t.Summary) {
			continue
		}
		t.Audio, t.AudioErr = s.narrate(ctx, t.Summary)
	}

	return result, nil
}

// SummarizeDocument concatenates every unit's content in document order with
// blank-line separators and delegates the whole context in one call.
func (s *PipelineService) SummarizeDocument(ctx context.Context, units []models.TextUnit) (string, error) {
	if len(units) == 0 {
		return "", fmt.Errorf("no text content to summarize")
	}
	return s.llm.Generate(ctx, summarySystemPrompt, summarizePrompt(units))
}

// SummarizeTopics produces one synthesis per non-empty bucket, in bucket
// order. Empty buckets are excluded entirely. Synthesis calls fan out
// concurrently; a failed topic gets a marker summary and its siblings
// are unaffected.
func (s *PipelineService) SummarizeTopics(ctx context.Context, buckets []models.TopicBucket) []models.TopicSynthesis {
	var nonEmpty []models.TopicBucket
	for _, b := range buckets {
		if len(b.Units) > 0 {
			nonEmpty = append(nonEmpty, b)
		}
	}
	if len(nonEmpty) == 0 {
		return nil
	}

	out := make([]models.TopicSynthesis, len(nonEmpty))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(captionParallelism)

	for i, b := range nonEmpty {
		g.Go(func() error {
			summary, err := s.llm.Generate(gctx, summarySystemPrompt, summarizePrompt(b.Units))
			if err != nil {
				log.Printf("pipeline: topic %q synthesis failed: %v", b.Topic, err)
				summary = failureMarker("synthesis", err)
			}
			out[i] = models.TopicSynthesis{Topic: b.Topic, Summary: summary}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// captionAll captions every image concurrently, writing each result into its
// own slot so the output pairs positionally with the input: entry i is always
// image i's caption or a failure marker, never reordered or skipped.
func (s *PipelineService) captionAll(ctx context.Context, images []models.ImageUnit) []models.CaptionedImage {
	if len(images) == 0 {
		return nil
	}

	out := make([]models.CaptionedImage, len(images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(captionParallelism)

	for i, img := range images {
		g.Go(func() error {
			out[i] = models.CaptionedImage{
				Label:   img.Label,
				Data:    img.Data,
				Caption: s.captionOne(gctx, img),
			}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (s *PipelineService) captionOne(ctx context.Context, img models.ImageUnit) string {
	png, err := extraction_engine.NormalizePNG(img.Data)
	if err != nil {
		log.Printf("pipeline: %s: %v", img.Label, err)
		return failureMarker("caption", err)
	}
	caption, err := s.captioner.Caption(ctx, png)
	if err != nil {
		log.Printf("pipeline: %s caption failed: %v", img.Label, err)
		return failureMarker("caption", err)
	}
	return caption
}

func (s *PipelineService) narrate(ctx context.Context, text string) ([]byte, string) {
	audio, err := s.speech.Synthesize(ctx, text)
	if err != nil {
		log.Printf("pipeline: narration failed: %v", err)
		return nil, err.Error()
	}
	return audio, ""
}

func summarizePrompt(units []models.TextUnit) string {
	contents := make([]string, len(units))
	for i, u := range units {
		contents[i] = u.Content
	}
	return "Summarize the following:\n" + strings.Join(contents, "\n\n")
}

// failureMarker renders a service failure as a visible value stored in place
// of the real result.
func failureMarker(stage string, err error) string {
	return fmt.Sprintf("[%s failed: %v]", stage, err)
}

// isFailureMarker reports whether a summary slot holds a marker rather than
// generated text, so failed topics are not narrated.
func isFailureMarker(s string) bool {
	return strings.HasPrefix(s, "[") && strings.Contains(s, " failed: ")
}

func hasTopics(topics []string) bool {
	for _, t := range topics {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}
