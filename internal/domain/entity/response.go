package entity

// ResultKind is the explicit discriminant carried by every response
// variant, including the two the upstream data model told apart only by
// field presence.
type ResultKind string

const (
	KindPrescription ResultKind = "prescription"
	KindMedication   ResultKind = "medication"
	KindReference    ResultKind = "reference"
	KindEncyclopedia ResultKind = "encyclopedia"
	KindImage        ResultKind = "image_generation"
	KindVideo        ResultKind = "video_generation"
)

// Result is the tagged union over the six structured response variants.
type Result interface {
	Kind() ResultKind
}

// Severity tiers for a prescription result.
const (
	SeverityLow    = "Low"
	SeverityMedium = "Medium"
	SeverityHigh   = "High"
)

// Dosage views selectable on a medication entry.
const (
	DosageAdult = "adult"
	DosageChild = "child"
)

// BrandRecommendation is one commercial speciality with its verified price.
type BrandRecommendation struct {
	Name         string `json:"name"`
	Price        string `json:"price"`
	PriceSource  string `json:"priceSource,omitempty"`
	LastVerified string `json:"lastVerified,omitempty"`
}

// Medication is one prescribed line: the DCI, its local brands and both
// dosage views.
type Medication struct {
	DCI               string                `json:"dci"`
	Type              string                `json:"type"`
	Duration          string                `json:"duration"`
	Brands            []BrandRecommendation `json:"brands"`
	DosageAdult       string                `json:"dosageAdult"`
	DosageChild       string                `json:"dosageChild"`
	SelectedDosage    string                `json:"selectedDosage,omitempty"`
	Contraindications []string              `json:"contraindications"`
	SideEffects       []string              `json:"sideEffects"`
	Instructions      string                `json:"instructions"`
}

// Analysis is one suggested lab analysis with its justification.
type Analysis struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// PrescriptionResult is the full ordonnance produced for pathology mode.
type PrescriptionResult struct {
	Type              ResultKind   `json:"type"`
	Pathology         string       `json:"pathology"`
	Severity          string       `json:"severity"`
	Medications       []Medication `json:"medications"`
	Analyses          []Analysis   `json:"analyses"`
	Advice            []string     `json:"advice"`
	ClinicalReasoning string       `json:"clinicalReasoning,omitempty"`
}

func (r *PrescriptionResult) Kind() ResultKind { return KindPrescription }

// MedicationResult is a single medication appended to an existing
// prescription (add_medication mode).
type MedicationResult struct {
	Type ResultKind `json:"type"`
	Medication
}

func (r *MedicationResult) Kind() ResultKind { return KindMedication }

// DrugReference is one entry of a molecule/class lookup.
type DrugReference struct {
	DCI         string   `json:"dci"`
	BrandNames  []string `json:"brandNames"`
	Forms       []string `json:"forms"`
	Indications string   `json:"indications"`
	PriceRange  string   `json:"priceRange,omitempty"`
}

// ReferenceResult answers molecule and therapeutic-class lookups.
type ReferenceResult struct {
	Type        ResultKind      `json:"type"`
	Query       string          `json:"query"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Results     []DrugReference `json:"results"`
}

func (r *ReferenceResult) Kind() ResultKind { return KindReference }

// Diagnosis groups the diagnostic criteria and exams of an encyclopedia
// entry.
type Diagnosis struct {
	Criteria []string `json:"criteria"`
	Exams    []string `json:"exams"`
}

// ScientificLink points at a published article backing an entry.
type ScientificLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// EncyclopediaResult is a full pathology encyclopedia entry.
type EncyclopediaResult struct {
	Type              ResultKind       `json:"type"`
	Name              string           `json:"name"`
	Definition        string           `json:"definition"`
	Symptoms          []string         `json:"symptoms"`
	Diagnosis         Diagnosis        `json:"diagnosis"`
	Management        string           `json:"management"`
	Medications       []string         `json:"medications"`
	Contraindications []string         `json:"contraindications"`
	Duration          string           `json:"duration"`
	EmergencySigns    []string         `json:"emergencySigns"`
	ReferencesMaroc   string           `json:"referencesMaroc,omitempty"`
	ScientificLinks   []ScientificLink `json:"scientificLinks,omitempty"`
}

func (r *EncyclopediaResult) Kind() ResultKind { return KindEncyclopedia }

// ImageResult carries the handle of a generated medical illustration.
type ImageResult struct {
	Type     ResultKind `json:"type"`
	Prompt   string     `json:"prompt"`
	ImageURL string     `json:"imageUrl"`
}

func (r *ImageResult) Kind() ResultKind { return KindImage }

// VideoResult carries the handle of a generated video sequence.
type VideoResult struct {
	Type     ResultKind `json:"type"`
	Prompt   string     `json:"prompt"`
	VideoURL string     `json:"videoUrl"`
}

func (r *VideoResult) Kind() ResultKind { return KindVideo }

// Generation is the envelope returned by the orchestrator: the structured
// result plus call metadata for the delivery layer.
type Generation struct {
	Result     Result `json:"result"`
	Cached     bool   `json:"cached"`
	Model      string `json:"model,omitempty"`
	TokenCount int    `json:"token_count,omitempty"`
	Latency    int64  `json:"latency_ms"`
}
