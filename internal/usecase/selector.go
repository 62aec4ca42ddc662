package usecase

import "ordo-core/internal/domain/entity"

// Model identifiers per capability tier.
const (
	ModelFlashLite = "gemini-2.5-flash-lite"
	ModelPro       = "gemini-3-pro-preview"
	ModelImage     = "gemini-3-pro-image-preview"
	ModelVideo     = "veo-3.1-fast-generate-preview"
	ModelSpeech    = "gemini-2.5-flash-preview-tts"
)

// maxThinkingBudget is the reasoning budget requested on the pro tier for
// specialist and encyclopedia work.
const maxThinkingBudget int32 = 32768

const defaultTemperature float32 = 0.2

// SelectPlan decides model tier, schema, system prompt and generation
// parameters for a schema-constrained request. Pure: no side effects, no
// network access. Image/video generation modes never reach this function;
// the orchestrator routes them to the dedicated media paths first.
func SelectPlan(req entity.GenerateRequest) entity.ModelPlan {
	plan := entity.ModelPlan{
		Model:       ModelFlashLite,
		Schema:      schemaFor(req.Mode),
		System:      BuildSystemPrompt(req.Persona, req.Language),
		Temperature: defaultTemperature,
	}

	switch {
	case req.Persona == entity.PersonaSpecialist || req.Mode == entity.ModeEncyclopedia:
		plan.Model = ModelPro
		plan.ThinkingBudget = maxThinkingBudget
	case req.HasMedia():
		// Multi-modal understanding needs the pro tier regardless of persona.
		plan.Model = ModelPro
	}

	return plan
}

// schemaFor is the total Mode -> SchemaKind mapping. Molecule and class
// lookups share the drug-reference schema.
func schemaFor(mode entity.Mode) entity.SchemaKind {
	switch mode {
	case entity.ModePathology:
		return entity.SchemaPrescription
	case entity.ModeAddMedication:
		return entity.SchemaMedication
	case entity.ModeEncyclopedia:
		return entity.SchemaEncyclopedia
	default:
		return entity.SchemaReference
	}
}
