package client

import (
	"google.golang.org/genai"

	"ordo-core/internal/domain/entity"
)

// Structured-output schemas enforced at the model boundary. The model is
// constrained to emit only conformant JSON; free text is never accepted as
// a final result.

var medicationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"dci":      {Type: genai.TypeString, Description: "La molécule active"},
		"type":     {Type: genai.TypeString, Description: "Classe pharma"},
		"duration": {Type: genai.TypeString},
		"brands": {
			Type:        genai.TypeArray,
			Description: "3 spécialités commerciales au Maroc triées par prix croissant",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":         {Type: genai.TypeString},
					"price":        {Type: genai.TypeString, Description: "Prix avec devise (ex: 45.00 DH)"},
					"priceSource":  {Type: genai.TypeString, Description: "Source du prix (ex: PPM Officine)"},
					"lastVerified": {Type: genai.TypeString, Description: "Date de vérification (ex: 01/2025)"},
				},
				Required: []string{"name", "price", "priceSource", "lastVerified"},
			},
		},
		"dosageAdult":       {Type: genai.TypeString},
		"dosageChild":       {Type: genai.TypeString},
		"contraindications": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"sideEffects":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"instructions":      {Type: genai.TypeString},
	},
	Required: []string{
		"dci", "type", "duration", "brands", "dosageAdult", "dosageChild",
		"contraindications", "sideEffects", "instructions",
	},
}

var prescriptionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"pathology": {Type: genai.TypeString},
		"severity":  {Type: genai.TypeString, Enum: []string{"Low", "Medium", "High"}},
		"medications": {
			Type:  genai.TypeArray,
			Items: medicationSchema,
		},
		"analyses": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":   {Type: genai.TypeString},
					"reason": {Type: genai.TypeString},
				},
				Required: []string{"name", "reason"},
			},
		},
		"advice": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"clinicalReasoning": {
			Type:        genai.TypeString,
			Description: "Explication clinique et raisonnement médical (surtout pour mode Étudiant)",
		},
	},
	Required: []string{"pathology", "medications", "analyses", "advice", "severity"},
}

var referenceSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"type":        {Type: genai.TypeString, Enum: []string{"reference"}},
		"query":       {Type: genai.TypeString},
		"category":    {Type: genai.TypeString, Enum: []string{"Molecule", "Class"}},
		"description": {Type: genai.TypeString},
		"results": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"dci": {Type: genai.TypeString, Description: "Dénomination Commune Internationale"},
					"brandNames": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "Liste des noms commerciaux au Maroc",
					},
					"forms":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"indications": {Type: genai.TypeString},
					"priceRange":  {Type: genai.TypeString},
				},
				Required: []string{"dci", "brandNames", "forms", "indications"},
			},
		},
	},
	Required: []string{"type", "query", "category", "description", "results"},
}

var encyclopediaSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"type":       {Type: genai.TypeString, Enum: []string{"encyclopedia"}},
		"name":       {Type: genai.TypeString},
		"definition": {Type: genai.TypeString},
		"symptoms":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"diagnosis": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"criteria": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"exams":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"criteria", "exams"},
		},
		"management": {Type: genai.TypeString, Description: "Prise en charge globale et recommandations"},
		"medications": {
			Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString},
			Description: "Liste des molécules indiquées",
		},
		"contraindications": {
			Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString},
			Description: "Contre-indications majeures",
		},
		"duration": {Type: genai.TypeString, Description: "Durée typique d'évolution"},
		"emergencySigns": {
			Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString},
			Description: "Quand consulter en urgence",
		},
		"referencesMaroc": {Type: genai.TypeString, Description: "Références ou guidelines marocaines si existantes"},
		"scientificLinks": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title": {Type: genai.TypeString},
					"url":   {Type: genai.TypeString},
				},
				Required: []string{"title", "url"},
			},
		},
	},
	Required: []string{
		"type", "name", "definition", "symptoms", "diagnosis", "management",
		"medications", "contraindications", "duration", "emergencySigns",
	},
}

// schemaFor resolves a schema kind to its genai definition. The mapping is
// total over the kinds the selector can emit.
func schemaFor(kind entity.SchemaKind) *genai.Schema {
	switch kind {
	case entity.SchemaPrescription:
		return prescriptionSchema
	case entity.SchemaMedication:
		return medicationSchema
	case entity.SchemaEncyclopedia:
		return encyclopediaSchema
	default:
		return referenceSchema
	}
}
