package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/expirywatch/labelscan/internal/gemini"
	"github.com/expirywatch/labelscan/internal/models"
	"github.com/expirywatch/labelscan/internal/ollama"
	"github.com/expirywatch/labelscan/internal/openai"
	"github.com/expirywatch/labelscan/internal/providers"
)

// ErrNotConfigured is returned when the selected provider has no API key set.
var ErrNotConfigured = errors.New("extraction provider not configured")

// maxProductLen caps product names, extracted or manually supplied.
const maxProductLen = 120

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// placeholderRe matches auto-generated product names assigned before
// extraction completes. A manual override matching it carries no information
// and must not shadow the extracted name.
var placeholderRe = regexp.MustCompile(`^product_\d+$`)

// Request is one label image to analyze, with optional manual overrides.
// Provider and Model, when set, take precedence over the environment.
type Request struct {
	ImageData     []byte
	MIMEType      string
	ManualProduct string
	ManualDate    string
	Provider      string
	Model         string
}

// Service extracts product names and expiry dates from label photos.
type Service struct {
	provider providers.Provider
	model    string
}

// NewService returns a Service that resolves its provider from the
// environment on each call.
func NewService() *Service {
	return &Service{}
}

// NewServiceWithProvider returns a Service pinned to the given provider,
// bypassing environment lookup. Used by the eval runner and tests.
func NewServiceWithProvider(p providers.Provider, model string) *Service {
	return &Service{provider: p, model: model}
}

// Analyze extracts a product name and expiry date from the request's image.
// Unparseable model output degrades to empty fields rather than an error.
func (s *Service) Analyze(ctx context.Context, req Request) (models.AnalyzeResult, error) {
	if len(req.ImageData) == 0 {
		return models.AnalyzeResult{}, fmt.Errorf("no image supplied")
	}

	provider, model, err := s.resolve(req.Provider, req.Model)
	if err != nil {
		return models.AnalyzeResult{}, err
	}

	mimeType := req.MIMEType
	if !allowedMIMETypes[mimeType] {
		mimeType = "image/jpeg"
	}

	reply, err := provider.ExtractText(ctx, providers.Config{
		Model:       model,
		Temperature: 0.1,
		Prompt:      buildLabelPrompt(),
		ImageData:   req.ImageData,
		MIMEType:    mimeType,
	})
	if err != nil {
		return models.AnalyzeResult{}, fmt.Errorf("extraction failed: %w", err)
	}

	result := ParseModelReply(reply)
	result.ExpiryDate = NormalizeDate(result.ExpiryDate)

	if req.ManualProduct != "" && !placeholderRe.MatchString(req.ManualProduct) {
		result.Product = req.ManualProduct
	}
	if req.ManualDate != "" {
		result.ExpiryDate = NormalizeDate(req.ManualDate)
	}
	result.Product = truncate(result.Product, maxProductLen)

	slog.Info("Extracted label fields", "product", result.Product, "expiry", result.ExpiryDate)
	return result, nil
}

// resolve picks the provider, falling back to the environment when the
// request does not name one, and verifies its API key.
func (s *Service) resolve(name, model string) (providers.Provider, string, error) {
	if s.provider != nil {
		return s.provider, s.model, nil
	}

	if name == "" {
		name = os.Getenv("LABELSCAN_PROVIDER")
	}
	if name == "" {
		name = "gemini"
	}
	if model == "" {
		model = defaultModel(name)
	}

	switch name {
	case "gemini":
		if os.Getenv("GEMINI_API_KEY") == "" {
			return nil, "", fmt.Errorf("%w: GEMINI_API_KEY not set", ErrNotConfigured)
		}
		return gemini.New(), model, nil
	case "openai":
		if os.Getenv("OPENAI_API_KEY") == "" {
			return nil, "", fmt.Errorf("%w: OPENAI_API_KEY not set", ErrNotConfigured)
		}
		return openai.New(), model, nil
	case "ollama":
		return ollama.New(), model, nil
	default:
		return nil, "", fmt.Errorf("unsupported provider: %s", name)
	}
}

func defaultModel(provider string) string {
	switch provider {
	case "gemini":
		model := os.Getenv("GEMINI_MODEL")
		if model == "" {
			return "gemini-2.0-flash"
		}
		return model
	case "openai":
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			return "gpt-4o"
		}
		return model
	case "ollama":
		model := os.Getenv("OLLAMA_MODEL")
		if model == "" {
			return "mistral-small3.2:24b"
		}
		return model
	default:
		return ""
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// buildLabelPrompt builds the fixed extraction instruction sent with every
// label image.
func buildLabelPrompt() string {
	return `You are reading a product label photo. Extract the product name and the expiry date strictly from text visible in the image.

INSTRUCTIONS:
1. Product name:
   - Prefer explicitly labeled fields such as "Product Description", "Product Name", or "Description"
   - Do NOT include lot numbers, batch numbers, REF codes, or catalog numbers in the product name
   - If no labeled field exists, use the most prominent product text on the label
2. Expiry date:
   - Look for fields labeled "EXP", "Expiry", "Expiration", "Use By", "Best Before", or an hourglass symbol
   - Do NOT use production, manufacture ("MFG"), or sterilization dates
   - If only a month and year are shown, use the first day of that month
   - Output the date exactly as printed if you cannot determine the format
3. Extract only what is visible. Do not invent or infer values. Use "" for anything not present.

OUTPUT FORMAT:
Respond with ONLY a JSON object:

{"product": "...", "expiryDate": "..."}

Do not include any other text, markdown, or explanations.`
}
