package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/markdave123-py/papervoice/internal/core"
)

const captionPrompt = "Caption this image in detail."

// GeminiVision captions images with a multimodal Gemini model.
type GeminiVision struct {
	client    *genai.Client
	modelName string
}

func NewGeminiVision(ctx context.Context, apiKey, modelName string) (*GeminiVision, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiVision{client: cl, modelName: modelName}, nil
}

func (g *GeminiVision) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Caption sends PNG bytes alongside the caption prompt and returns the
// generated description.
func (g *GeminiVision) Caption(ctx context.Context, png []byte) (string, error) {
	m := g.client.GenerativeModel(g.modelName)

	resp, err := m.GenerateContent(ctx, genai.ImageData("png", png), genai.Text(captionPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini caption: %w", err)
	}
	return joinTextParts(resp), nil
}

var _ core.Captioner = (*GeminiVision)(nil)
