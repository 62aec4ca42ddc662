package entity

import "strings"

// fingerprintSep joins fingerprint fields. The unit separator cannot
// appear in a mode, persona, language or typed query.
const fingerprintSep = "\x1f"

// Fingerprint derives the deterministic cache key of a text request. The
// free-text input is matched modulo case and surrounding whitespace.
func Fingerprint(mode Mode, persona Persona, language, input string) string {
	return strings.Join([]string{
		string(mode),
		string(persona),
		language,
		strings.ToLower(strings.TrimSpace(input)),
	}, fingerprintSep)
}

// Mode is the closed category of request. It determines which response
// schema and prompt template apply.
type Mode string

const (
	ModePathology     Mode = "pathology"
	ModeMolecule      Mode = "molecule"
	ModeClass         Mode = "class"
	ModeAddMedication Mode = "add_medication"
	ModeEncyclopedia  Mode = "encyclopedia"
	ModeImageGen      Mode = "image_generation"
	ModeVideoGen      Mode = "video_generation"
)

// Persona is the requesting clinician's declared role. It shapes prompt
// tone and one dosage-view default, never the response schema.
type Persona string

const (
	PersonaDoctor     Persona = "doctor"
	PersonaStudent    Persona = "student"
	PersonaEmergency  Persona = "emergency"
	PersonaPediatric  Persona = "pediatric"
	PersonaSpecialist Persona = "specialist"
)

// Blob is an inline binary payload with its declared media type.
type Blob struct {
	MIMEType string
	Data     []byte
}

// GenerateRequest is the request descriptor handed over by the view layer.
// At most one of Image/Video may be set.
type GenerateRequest struct {
	Input       string
	Mode        Mode
	Persona     Persona
	Language    string
	AspectRatio string
	Image       *Blob
	Video       *Blob
	UserID      string
}

// HasMedia reports whether the request carries an image or video payload.
// Media requests never touch the response cache.
func (r GenerateRequest) HasMedia() bool {
	return r.Image != nil || r.Video != nil
}

// SchemaKind identifies which structured-output schema the model is
// constrained to. The Mode -> SchemaKind mapping is total.
type SchemaKind string

const (
	SchemaPrescription SchemaKind = "prescription"
	SchemaMedication   SchemaKind = "medication"
	SchemaReference    SchemaKind = "reference"
	SchemaEncyclopedia SchemaKind = "encyclopedia"
)

// ModelPlan is the output of the model/schema selector: which model to
// invoke, which schema to enforce, and how.
type ModelPlan struct {
	Model          string
	Schema         SchemaKind
	System         string
	Temperature    float32
	ThinkingBudget int32
}

// Part is one element of the ordered multi-part payload sent to the model.
// Exactly one of Text/Inline is set.
type Part struct {
	Text   string
	Inline *Blob
}

// ModelCall is the fully assembled invocation handed to the text provider.
type ModelCall struct {
	Plan  ModelPlan
	Parts []Part
}

// ModelOutput is the raw provider result before parsing.
type ModelOutput struct {
	Text       string
	TokenCount int
}

// GeneratedMedia is the binary outcome of an image, video or speech
// generation call.
type GeneratedMedia struct {
	Data       []byte
	MIMEType   string
	TokenCount int
}
