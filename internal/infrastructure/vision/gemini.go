package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/stylelens/backend/internal/domain"
)

// ProviderGemini identifies the remote Gemini vision provider
const ProviderGemini = "gemini-vision"

const geminiPrompt = `Analyze the outfit in this image. Respond with ONLY a JSON object, no prose:
{"dominantColors": ["..."], "detectedCategories": ["..."], "overallStyle": "..."}
dominantColors: up to 4 lowercase basic color names.
detectedCategories: the visible garment kinds, each one of "top", "pants", "shoes", "accessories".
overallStyle: one lowercase word, e.g. "casual", "formal", "sporty", "streetwear".`

// GeminiConfig holds configuration for the Gemini extractor
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float64
}

// GeminiExtractor extracts image features through the Gemini multimodal API
type GeminiExtractor struct {
	apiKey      string
	model       string
	temperature float32
	rateLimiter *rate.Limiter
}

// NewGeminiExtractor creates a new Gemini-backed feature extractor
func NewGeminiExtractor(config GeminiConfig) *GeminiExtractor {
	model := config.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	// Free-tier Gemini allows roughly 60 requests per minute
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &GeminiExtractor{
		apiKey:      config.APIKey,
		model:       model,
		temperature: float32(config.Temperature),
		rateLimiter: limiter,
	}
}

// Name returns the provider identifier
func (g *GeminiExtractor) Name() string {
	return ProviderGemini
}

// Available reports whether the provider is configured
func (g *GeminiExtractor) Available() bool {
	return g.apiKey != ""
}

// ExtractFeatures sends the image to Gemini and parses the structured
// attributes out of the model response.
func (g *GeminiExtractor) ExtractFeatures(ctx context.Context, image []byte, mimeType string) (*domain.FeatureSet, error) {
	if !g.Available() {
		return nil, domain.ErrExtractorUnavailable
	}
	if len(image) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	if err := g.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(g.temperature)

	resp, err := model.GenerateContent(ctx,
		genai.Text(geminiPrompt),
		genai.ImageData(imageFormat(mimeType), image),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	meta, err := parseAnalysis(text)
	if err != nil {
		return nil, err
	}

	log.Printf("[VISION] Gemini detected colors=%v categories=%v style=%q",
		meta.DominantColors, meta.DetectedCategories, meta.OverallStyle)

	return newFeatureSet(ProviderGemini, meta), nil
}

// responseText unwraps the first text part of a Gemini response
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates returned", domain.ErrExtractionFailed)
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty content returned", domain.ErrExtractionFailed)
	}
	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}
	return "", fmt.Errorf("%w: unexpected response format", domain.ErrExtractionFailed)
}

// geminiAnalysis is the JSON shape the prompt asks the model for
type geminiAnalysis struct {
	DominantColors     []string `json:"dominantColors"`
	DetectedCategories []string `json:"detectedCategories"`
	OverallStyle       string   `json:"overallStyle"`
}

// parseAnalysis extracts the JSON object from the model text and normalizes
// it into feature metadata, dropping values outside the fixed category enum.
func parseAnalysis(text string) (domain.FeatureMetadata, error) {
	var analysis geminiAnalysis
	if err := json.Unmarshal([]byte(extractJSON(text)), &analysis); err != nil {
		return domain.FeatureMetadata{}, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	meta := domain.FeatureMetadata{
		DominantColors:     []string{},
		DetectedCategories: []domain.Category{},
		OverallStyle:       strings.ToLower(strings.TrimSpace(analysis.OverallStyle)),
	}

	seenColors := make(map[string]bool, len(analysis.DominantColors))
	for _, c := range analysis.DominantColors {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" && !seenColors[c] {
			seenColors[c] = true
			meta.DominantColors = append(meta.DominantColors, c)
		}
	}

	for _, c := range analysis.DetectedCategories {
		category := domain.Category(strings.ToLower(strings.TrimSpace(c)))
		if domain.ValidCategory(category) {
			meta.DetectedCategories = append(meta.DetectedCategories, category)
		}
	}

	return meta, nil
}

// extractJSON pulls the JSON object out of a model reply that may wrap it in
// markdown fences or prose.
func extractJSON(text string) string {
	if strings.Contains(text, "```") {
		chunk := text
		if idx := strings.Index(chunk, "```json"); idx >= 0 {
			chunk = chunk[idx+len("```json"):]
		} else if idx := strings.Index(chunk, "```"); idx >= 0 {
			chunk = chunk[idx+3:]
		}
		if idx := strings.Index(chunk, "```"); idx >= 0 {
			chunk = chunk[:idx]
		}
		text = chunk
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return "{}"
}

// imageFormat converts a MIME type to the bare format Gemini expects
func imageFormat(mimeType string) string {
	format := strings.TrimPrefix(strings.ToLower(mimeType), "image/")
	if format == "" {
		return "jpeg"
	}
	return format
}
