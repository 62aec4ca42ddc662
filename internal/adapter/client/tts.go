package client

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"ordo-core/internal/domain/entity"
)

const (
	speechModel = "gemini-2.5-flash-preview-tts"
	speechVoice = "Puck"
)

// GenerateSpeech synthesizes the given text as audio. language is accepted
// for parity with the generation paths; the TTS model infers pronunciation
// from the text itself.
func (g *GeminiClient) GenerateSpeech(ctx context.Context, text, language string) (*entity.GeneratedMedia, error) {
	_ = language

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: speechVoice},
			},
		},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(text)}, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, speechModel, contents, cfg)
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
					mime = "audio/mp3"
				}
				return &entity.GeneratedMedia{Data: part.InlineData.Data, MIMEType: mime, TokenCount: tokens}, nil
			}
		}
	}

	return nil, fmt.Errorf("no audio in candidates: %w", entity.ErrEmptyResponse)
}
