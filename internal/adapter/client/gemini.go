package client

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/genai"

	"ordo-core/internal/domain/entity"
)

// GeminiClient adapts the genai SDK to the generation core. One instance
// serves every model tier; the tier to invoke arrives with each call.
type GeminiClient struct {
	client *genai.Client
	apiKey string
	httpc  *http.Client
}

// NewGeminiClient connects to the Gemini API with the given credential.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return NewGeminiClientFromClient(client, apiKey), nil
}

func NewGeminiClientFromClient(c *genai.Client, apiKey string) *GeminiClient {
	return &GeminiClient{
		client: c,
		apiKey: apiKey,
		httpc:  http.DefaultClient,
	}
}

// GenerateJSON runs one schema-constrained round trip and returns the raw
// JSON text plus token accounting.
func (g *GeminiClient) GenerateJSON(ctx context.Context, call entity.ModelCall) (*entity.ModelOutput, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(call.Plan.Temperature),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schemaFor(call.Plan.Schema),
		SystemInstruction: genai.NewContentFromText(call.Plan.System, genai.RoleUser),
	}
	if call.Plan.ThinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(call.Plan.ThinkingBudget),
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, call.Plan.Model, contentsFor(call.Parts), cfg)
	if err != nil {
		return nil, wrapAPIError(err)
	}

	out := &entity.ModelOutput{Text: result.Text()}
	if result.UsageMetadata != nil {
		out.TokenCount = int(result.UsageMetadata.TotalTokenCount)
	}
	return out, nil
}

// contentsFor converts the ordered domain parts into one user content.
func contentsFor(parts []entity.Part) []*genai.Content {
	converted := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.Inline != nil {
			converted = append(converted, genai.NewPartFromBytes(p.Inline.Data, p.Inline.MIMEType))
			continue
		}
		converted = append(converted, genai.NewPartFromText(p.Text))
	}
	return []*genai.Content{genai.NewContentFromParts(converted, genai.RoleUser)}
}

// wrapAPIError exposes the provider's numeric status to the classifier
// without leaking the SDK error type into the domain.
func wrapAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &entity.StatusError{Code: apiErr.Code, Message: apiErr.Message}
	}
	return err
}
