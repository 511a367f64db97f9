// Package vision imports a class diagram from an image through an external
// multimodal model. The model is asked for an interchange document, which is
// then decoded strictly.
package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/config"
	"github.com/tordrt/umlgen/internal/interchange"
)

// DefaultTimeout bounds a provider call when none is configured.
const DefaultTimeout = 60 * time.Second

// Image is the picture sent to the provider.
type Image struct {
	Data      []byte
	MediaType string
}

// NewImage detects the media type of data.
func NewImage(data []byte) Image {
	mt := http.DetectContentType(data)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return Image{Data: data, MediaType: mt}
}

// Base64 is the standard encoding of the image bytes.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL is the image as a data: URL.
func (i Image) DataURL() string {
	return "data:" + i.MediaType + ";base64," + i.Base64()
}

// Provider sends one image and prompt to a model and returns its text answer.
type Provider interface {
	Name() string
	Describe(ctx context.Context, img Image, prompt string) (string, error)
}

// Importer turns diagram images into interchange documents.
type Importer struct {
	provider Provider
	timeout  time.Duration
	logger   *zap.Logger
}

// NewImporter wraps a provider. A zero timeout means DefaultTimeout.
func NewImporter(p Provider, timeout time.Duration, logger *zap.Logger) *Importer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{provider: p, timeout: timeout, logger: logger.Named("vision")}
}

// New builds the importer for the configured provider.
func New(cfg config.VisionConfig, logger *zap.Logger) (*Importer, error) {
	if !cfg.Enabled() {
		return nil, newError(KindUnavailable, cfg.Provider, "no API key configured", nil)
	}
	var p Provider
	switch cfg.Provider {
	case ProviderOpenAI:
		p = NewOpenAI(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case ProviderAnthropic:
		p = NewAnthropic(cfg.APIKey, cfg.Model, cfg.BaseURL)
	default:
		return nil, newError(KindUnavailable, cfg.Provider, "unknown provider", nil)
	}
	return NewImporter(p, cfg.Timeout, logger), nil
}

// Import asks the provider for the diagram in img. On failure it returns a
// *Error and no document.
func (im *Importer) Import(ctx context.Context, img Image) (interchange.Document, error) {
	name := im.provider.Name()
	if len(img.Data) == 0 {
		return interchange.Document{}, newError(KindInvalidResponse, name, "image is empty", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, im.timeout)
	defer cancel()

	start := time.Now()
	answer, err := im.provider.Describe(ctx, img, Prompt)
	if err != nil {
		kind := KindUnavailable
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			kind = KindTimeout
		}
		im.logger.Error("vision request failed",
			zap.String("provider", name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return interchange.Document{}, newError(kind, name, "provider call failed", err)
	}

	doc, err := interchange.DecodeStrict([]byte(CleanResponse(answer)), interchange.FormatJSON)
	if err != nil {
		im.logger.Warn("vision response unreadable",
			zap.String("provider", name),
			zap.Int("response_len", len(answer)),
			zap.Error(err))
		return interchange.Document{}, newError(KindInvalidResponse, name, "response is not a diagram document", err)
	}
	if len(doc.Classes) == 0 {
		return interchange.Document{}, newError(KindEmptyDiagram, name, "no class found in the image", nil)
	}

	im.logger.Info("vision import completed",
		zap.String("provider", name),
		zap.Int("classes", len(doc.Classes)),
		zap.Int("relationships", len(doc.Relationships)),
		zap.Duration("elapsed", time.Since(start)))
	return doc, nil
}

var (
	thinkPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)
	fencePattern = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")
)

// CleanResponse strips reasoning tags and code fences and keeps the outermost
// JSON object.
func CleanResponse(s string) string {
	s = thinkPattern.ReplaceAllString(s, "")
	if m := fencePattern.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return strings.TrimSpace(s)
}

// Prompt asks for the interchange document.
var Prompt = fmt.Sprintf(`You are reading a UML class diagram from an image.
Return ONLY a JSON object with this shape and no other text:
{
  "title": "diagram title, if any",
  "classes": [
    {"name": "Usuario", "type": "class|interface|abstract", "stereotype": "entity|service|repository|controller|utility",
     "attributes": ["- email: String"], "methods": ["+ login(password: String): boolean"]}
  ],
  "relationships": [
    {"kind": "association|composition|aggregation|inheritance", "from": "Usuario", "to": "Pedido",
     "sourceMultiplicity": "1", "targetMultiplicity": "0..*", "label": ""}
  ]
}
Rules:
- "from" and "to" are class names exactly as in "classes".
- For inheritance, "from" is the subclass and "to" the superclass.
- Use %q when a class shows no stereotype.
- Keep attribute and method names as written in the image.`, "entity")
