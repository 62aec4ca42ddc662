package client

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"ordo-core/internal/domain/entity"
)

const imageModel = "gemini-3-pro-image-preview"

// GenerateImage runs a single round trip on the image model. The response
// must contain inline binary data; anything else is an empty-response
// failure, not a silent success.
func (g *GeminiClient) GenerateImage(ctx context.Context, prompt, aspectRatio string) (*entity.GeneratedMedia, error) {
	if aspectRatio == "" {
		aspectRatio = "1:1"
	}

	cfg := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: aspectRatio},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, imageModel, contents, cfg)
	if err != nil {
		return nil, wrapAPIError(err)
	}

	tokens := 0
	if result.UsageMetadata != nil {
		tokens = int(result.UsageMetadata.TotalTokenCount)
	}
	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mime := part.InlineData.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return &entity.GeneratedMedia{Data: part.InlineData.Data, MIMEType: mime, TokenCount: tokens}, nil
			}
		}
	}

	return nil, fmt.Errorf("no inline image in candidates: %w", entity.ErrEmptyResponse)
}
