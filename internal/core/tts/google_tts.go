// Package tts renders text as MP3 audio via the Google Translate
// text-to-speech endpoint.
package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/markdave123-py/papervoice/internal/core"
)

const (
	defaultBaseURL = "https://translate.google.com/translate_tts"
	defaultLang    = "en"
	defaultTimeout = 30 * time.Second

	// maxChunkRunes is the endpoint's per-request text limit.
	maxChunkRunes = 200
)

var _ core.SpeechProvider = (*Client)(nil)

// Client calls the translate_tts endpoint one chunk at a time and
// concatenates the MP3 payloads.
type Client struct {
	baseURL    string
	lang       string
	httpClient *http.Client
}

// Option tunes a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithLanguage sets the narration language code (default "en").
func WithLanguage(lang string) Option {
	return func(c *Client) { c.lang = lang }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		lang:       defaultLang,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Synthesize renders the text as MP3 audio. Text longer than the endpoint's
// limit is split on whitespace into chunks; the resulting MP3 streams are
// concatenated, which players accept frame-by-frame.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("tts: empty text")
	}

	var audio []byte
	for _, chunk := range splitChunks(text, maxChunkRunes) {
		part, err := c.fetchChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		audio = append(audio, part...)
	}
	return audio, nil
}

func (c *Client) fetchChunk(ctx context.Context, chunk string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", chunk)
	q.Set("tl", c.lang)
	q.Set("client", "tw-ob")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts request: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// splitChunks breaks text into runs of at most limit runes, preferring
// whitespace boundaries so words are not cut mid-way.
func splitChunks(text string, limit int) []string {
	runes := []rune(text)
	var chunks []string

	for len(runes) > 0 {
		if len(runes) <= limit {
			chunks = append(chunks, string(runes))
			break
		}

		cut := limit
		for i := limit; i > 0; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}

		chunk := strings.TrimSpace(string(runes[:cut]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		runes = runes[cut:]
		for len(runes) > 0 && unicode.IsSpace(runes[0]) {
			runes = runes[1:]
		}
	}

	return chunks
}
