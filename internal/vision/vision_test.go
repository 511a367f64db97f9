package vision

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/apperrors"
	"github.com/tordrt/umlgen/internal/config"
)

// pngHeader is enough for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

const diagramJSON = `{"title": "Tienda", "classes": [{"name": "Usuario", "attributes": ["- email: String"]}, {"name": "Pedido"}],
 "relationships": [{"kind": "association", "from": "Usuario", "to": "Pedido", "sourceMultiplicity": "1", "targetMultiplicity": "0..*"}]}`

type stubProvider struct {
	answer string
	err    error
	delay  time.Duration
	prompt string
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Describe(ctx context.Context, _ Image, prompt string) (string, error) {
	s.prompt = prompt
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.answer, s.err
}

func TestImport(t *testing.T) {
	p := &stubProvider{answer: "<think>two boxes</think>\n```json\n" + diagramJSON + "\n```"}
	doc, err := NewImporter(p, time.Second, zap.NewNop()).Import(context.Background(), NewImage(pngHeader))
	require.NoError(t, err)

	assert.Equal(t, "Tienda", doc.Title)
	require.Len(t, doc.Classes, 2)
	assert.Equal(t, "Usuario", doc.Classes[0].Name)
	require.Len(t, doc.Relationships, 1)
	assert.Contains(t, p.prompt, `"classes"`)
}

func TestImport_Failures(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubProvider
		kind     ErrorKind
		sentinel error
	}{
		{"unavailable", &stubProvider{err: errors.New("connection refused")}, KindUnavailable, apperrors.ErrVisionUnavailable},
		{"timeout", &stubProvider{answer: diagramJSON, delay: time.Second}, KindTimeout, apperrors.ErrVisionUnavailable},
		{"invalid", &stubProvider{answer: "I see a diagram with two classes."}, KindInvalidResponse, apperrors.ErrVisionResponse},
		{"nameless class", &stubProvider{answer: `{"classes": [{"attributes": []}]}`}, KindInvalidResponse, apperrors.ErrVisionResponse},
		{"empty", &stubProvider{answer: `{"classes": [], "relationships": []}`}, KindEmptyDiagram, apperrors.ErrVisionResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewImporter(tt.provider, 20*time.Millisecond, nil).Import(context.Background(), NewImage(pngHeader))
			require.Error(t, err)
			assert.Empty(t, doc.Classes)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.True(t, errors.Is(err, tt.sentinel))

			var ve *Error
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "stub", ve.Provider)
		})
	}
}

func TestImport_EmptyImage(t *testing.T) {
	_, err := NewImporter(&stubProvider{answer: diagramJSON}, 0, nil).Import(context.Background(), Image{})
	assert.Equal(t, KindInvalidResponse, KindOf(err))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := newError(KindUnavailable, "openai", "provider call failed", cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "vision unavailable (openai): provider call failed: boom", err.Error())
	assert.Equal(t, ErrorKind(""), KindOf(cause))
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"<think>hmm {x}</think>Here you go: {\"a\": {\"b\": 2}} done", `{"a": {"b": 2}}`},
		{"no json", "no json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanResponse(tt.in))
	}
}

func TestNewImage(t *testing.T) {
	img := NewImage(pngHeader)
	assert.Equal(t, "image/png", img.MediaType)
	assert.True(t, strings.HasPrefix(img.DataURL(), "data:image/png;base64,iVBOR"))
}

func TestNew(t *testing.T) {
	_, err := New(config.VisionConfig{Provider: "openai"}, nil)
	assert.True(t, errors.Is(err, apperrors.ErrVisionUnavailable))

	im, err := New(config.VisionConfig{Provider: "anthropic", APIKey: "k", Timeout: time.Second}, nil)
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, im.provider.Name())

	_, err = New(config.VisionConfig{Provider: "gemini", APIKey: "k"}, nil)
	assert.Equal(t, KindUnavailable, KindOf(err))
}

func TestOpenAIProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req["model"])
		body, _ := json.Marshal(req["messages"])
		assert.Contains(t, string(body), "data:image/png;base64,")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"model":   "gpt-4o",
			"choices": []any{map[string]any{"index": 0, "message": map[string]any{"role": "assistant", "content": diagramJSON}, "finish_reason": "stop"}},
		})
	}))
	defer srv.Close()

	im := NewImporter(NewOpenAI("sk-test", "", srv.URL), time.Second, nil)
	doc, err := im.Import(context.Background(), NewImage(pngHeader))
	require.NoError(t, err)
	assert.Len(t, doc.Classes, 2)
}

func TestAnthropicProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("X-Api-Key"))

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"media_type":"image/png"`)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_1",
			"type":        "message",
			"role":        "assistant",
			"model":       DefaultAnthropicModel,
			"content":     []any{map[string]any{"type": "text", "text": diagramJSON}},
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 10, "output_tokens": 20},
		})
	}))
	defer srv.Close()

	im := NewImporter(NewAnthropic("sk-ant", "", srv.URL), time.Second, nil)
	doc, err := im.Import(context.Background(), NewImage(pngHeader))
	require.NoError(t, err)
	assert.Len(t, doc.Classes, 2)
}

func TestProviderHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := NewImporter(NewOpenAI("bad", "", srv.URL), time.Second, nil).Import(context.Background(), NewImage(pngHeader))
	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.True(t, errors.Is(err, apperrors.ErrVisionUnavailable))
}
