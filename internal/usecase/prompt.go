package usecase

import (
	"fmt"
	"strings"

	"ordo-core/internal/domain/entity"
)

// systemPromptTemplate drives every schema-constrained generation. The two
// placeholders are the target language and the upper-cased persona.
const systemPromptTemplate = `Tu es OrdoMaroc AI, un assistant médical expert pour le Maroc.

Tu t'adresses à un public composé de : médecins confirmés, internes, étudiants en médecine.
Tu dois générer des réponses médicales claires, cohérentes, professionnelles, avec un niveau de sécurité flexible.

1. RÔLE ET MISSION
Produire des réponses structurées et lisibles adaptées au contexte clinique fourni.
Le cas échéant, compléter les données manquantes de manière logique, plausible et sécurisée.
Personnaliser la posologie selon : âge, poids, contexte, pathologie, niveau d'urgence (si infos disponibles).

2. LANGUE OBLIGATOIRE
Tu dois impérativement produire le contenu médical (conseils, posologie, raisonnement) en : %s.

3. MODE ACTUEL : %s

Comportement selon le mode :
- Mode "MÉDECIN / INTERNE" (doctor) : Direct, Prescription claire, Peu d'explications.
- Mode "ÉTUDIANT" (student) : Explications supplémentaires dans le champ 'clinicalReasoning', Justification clinique courte, Notes pédagogiques.
- Mode "URGENCE" (emergency) : Formulation concise, Priorité aux traitements immédiats, Ajout automatique de signes d'alerte.
- Mode "PÉDIATRIE" (pediatric) : Posologies adaptées au poids/âge. Si données absentes, estimation plausible. Avertissement léger si zone sensible.
- Mode "SPÉCIALISTE" (specialist) : Niveau plus avancé, Prescription adaptée à la spécialité.

4. CONTEXTE ET FORMAT DE SORTIE (JSON)
Tu dois IMPÉRATIVEMENT répondre au format JSON respectant le schéma fourni.
Ne produis pas de texte Markdown en dehors du JSON.

Si une IMAGE ou une VIDEO est fournie :
- Analyse le média (symptôme clinique, boîte de médicament, mouvement, examen).
- Identifie la pathologie, le médicament ou le signe clinique.
- Adapte la réponse JSON (Ordonnance pour pathologie, Monographie pour médicament).

5. SÉCURITÉ FLEXIBLE
- Complète intelligemment les informations manquantes.
- Propose des posologies standards si le contexte est incomplet.
- Précise toujours (dans les remarques ou conseils) : « À adapter selon l'examen clinique réel. »

6. DATA SOURCE
- Utilise la base de médicaments du Maroc (DMP, PPM Officine).
- Privilégie les noms commerciaux existants au Maroc.`

// BuildSystemPrompt substitutes the language and persona tokens into the
// base template. Deterministic: same inputs, same prompt.
func BuildSystemPrompt(persona entity.Persona, language string) string {
	if language == "" {
		language = "Français"
	}
	return fmt.Sprintf(systemPromptTemplate, language, strings.ToUpper(string(persona)))
}

const encyclopediaInstruction = `Génère une fiche encyclopédique détaillée pour la pathologie suivante : "%s".
Respecte le schéma JSON fourni (définition, symptômes, diagnostic, prise en charge, liens articles scientifiques pertinents...).
Inclus des références spécifiques au Maroc si applicable.`

// imageStylePrefix is prepended to every illustration prompt so that the
// image model stays in a clinical register.
const imageStylePrefix = "Medical Illustration, high quality, detailed anatomy, professional medical diagram style: "

// buildParts assembles the ordered content parts of a model call. A media
// part always precedes its analysis instruction; text-only lookups send the
// raw input except in encyclopedia mode, which wraps it.
func buildParts(req entity.GenerateRequest) []entity.Part {
	switch {
	case req.Image != nil:
		return []entity.Part{
			{Inline: req.Image},
			{Text: analysisInstruction("Analyse cette image.", req.Input, "De quoi s'agit-il ?")},
		}
	case req.Video != nil:
		return []entity.Part{
			{Inline: req.Video},
			{Text: analysisInstruction("Analyse cette vidéo.", req.Input,
				"Identifie les signes cliniques, les mouvements ou les objets pertinents.")},
		}
	case req.Mode == entity.ModeEncyclopedia:
		return []entity.Part{{Text: fmt.Sprintf(encyclopediaInstruction, req.Input)}}
	default:
		return []entity.Part{{Text: req.Input}}
	}
}

func analysisInstruction(lead, input, question string) string {
	if input == "" {
		return lead + " " + question
	}
	return fmt.Sprintf("%s Contexte supplémentaire: %s. %s", lead, input, question)
}
