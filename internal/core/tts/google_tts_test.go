package tts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_SingleChunk(t *testing.T) {
	var gotQuery, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLang = r.URL.Query().Get("tl")
		w.Write([]byte("MP3DATA"))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithLanguage("fr"))
	audio, err := c.Synthesize(context.Background(), "bonjour le monde")
	require.NoError(t, err)

	assert.Equal(t, []byte("MP3DATA"), audio)
	assert.Equal(t, "bonjour le monde", gotQuery)
	assert.Equal(t, "fr", gotLang)
}

func TestSynthesize_LongTextChunksAndConcatenates(t *testing.T) {
	var mu sync.Mutex
	var chunks []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		chunks = append(chunks, r.URL.Query().Get("q"))
		mu.Unlock()
		w.Write([]byte("X"))
	}))
	defer srv.Close()

	text := strings.TrimSpace(strings.Repeat("word ", 120)) // ~600 runes
	c := NewClient(WithBaseURL(srv.URL))
	audio, err := c.Synthesize(context.Background(), text)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(chunks), 3)
	assert.Equal(t, strings.Repeat("X", len(chunks)), string(audio))

	// No chunk exceeds the endpoint limit, and rejoining loses no words.
	for _, ch := range chunks {
		assert.LessOrEqual(t, len([]rune(ch)), maxChunkRunes)
	}
	assert.Equal(t, text, strings.Join(chunks, " "))
}

func TestSynthesize_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Synthesize(context.Background(), "hello")
	assert.Error(t, err)
}

func TestSynthesize_EmptyText(t *testing.T) {
	c := NewClient()
	_, err := c.Synthesize(context.Background(), "   ")
	assert.Error(t, err)
}

func TestSplitChunks_WordBoundaries(t *testing.T) {
	chunks := splitChunks("alpha beta gamma", 11)
	assert.Equal(t, []string{"alpha beta", "gamma"}, chunks)
}

func TestSplitChunks_NoWhitespace(t *testing.T) {
	chunks := splitChunks(strings.Repeat("a", 25), 10)
	assert.Equal(t, []string{strings.Repeat("a", 10), strings.Repeat("a", 10), strings.Repeat("a", 5)}, chunks)
}
