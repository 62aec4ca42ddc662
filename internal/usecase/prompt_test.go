package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordo-core/internal/domain/entity"
)

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt(entity.PersonaStudent, "English")

	assert.Contains(t, prompt, "MODE ACTUEL : STUDENT")
	assert.Contains(t, prompt, "en : English")
	assert.Contains(t, prompt, "format JSON")

	t.Run("language defaults to French", func(t *testing.T) {
		assert.Contains(t, BuildSystemPrompt(entity.PersonaDoctor, ""), "en : Français")
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, prompt, BuildSystemPrompt(entity.PersonaStudent, "English"))
	})
}

func TestBuildParts(t *testing.T) {
	img := &entity.Blob{MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8}}

	t.Run("text lookup sends the raw input", func(t *testing.T) {
		parts := buildParts(entity.GenerateRequest{Mode: entity.ModeMolecule, Input: "Amoxicilline"})
		require.Len(t, parts, 1)
		assert.Equal(t, "Amoxicilline", parts[0].Text)
	})

	t.Run("encyclopedia wraps the input in its instruction", func(t *testing.T) {
		parts := buildParts(entity.GenerateRequest{Mode: entity.ModeEncyclopedia, Input: "Diabète de type 2"})
		require.Len(t, parts, 1)
		assert.Contains(t, parts[0].Text, `"Diabète de type 2"`)
		assert.Contains(t, parts[0].Text, "fiche encyclopédique")
	})

	t.Run("media part precedes the analysis instruction", func(t *testing.T) {
		parts := buildParts(entity.GenerateRequest{Mode: entity.ModePathology, Input: "lésion cutanée", Image: img})
		require.Len(t, parts, 2)
		assert.Same(t, img, parts[0].Inline)
		assert.Contains(t, parts[1].Text, "Analyse cette image.")
		assert.Contains(t, parts[1].Text, "lésion cutanée")
	})

	t.Run("media with no text still gets an instruction", func(t *testing.T) {
		parts := buildParts(entity.GenerateRequest{Mode: entity.ModePathology, Video: &entity.Blob{MIMEType: "video/mp4"}})
		require.Len(t, parts, 2)
		assert.Contains(t, parts[1].Text, "Analyse cette vidéo.")
		assert.NotContains(t, parts[1].Text, "Contexte supplémentaire")
	})
}
