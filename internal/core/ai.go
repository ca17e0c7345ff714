package core

import "context"

// LLMProvider generates text from a system instruction and a user prompt.
// Both the whole-document summary and per-topic syntheses go through it.
type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// Captioner produces a text caption for PNG-encoded image bytes.
type Captioner interface {
	Caption(ctx context.Context, png []byte) (string, error)
}

// SpeechProvider renders text as binary audio.
type SpeechProvider interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
