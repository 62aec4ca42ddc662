package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorCode is the stable failure taxonomy consumed by the view layer.
type ErrorCode string

const (
	CodeAPIKeyMissing ErrorCode = "API_KEY_MISSING"
	CodeInvalidAPIKey ErrorCode = "INVALID_API_KEY"
	CodeQuotaExceeded ErrorCode = "QUOTA_EXCEEDED"
	CodeNetworkError  ErrorCode = "NETWORK_ERROR"
	CodeServerError   ErrorCode = "SERVER_ERROR"
	CodeParsingError  ErrorCode = "PARSING_ERROR"
	CodeUnknownError  ErrorCode = "UNKNOWN_ERROR"
)

// AppError is the only failure shape allowed to cross the orchestrator's
// public boundary. Title and Message are always populated.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Hint    string    `json:"hint,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// StatusError carries a provider HTTP-like status code alongside its
// message. The genai adapter wraps API failures into this shape so the
// classifier can match on the numeric status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

// ErrEmptyResponse marks a model call that resolved with no usable
// payload (no text, no inline data, no result handle).
var ErrEmptyResponse = errors.New("empty model response")

// MissingKeyError is raised before any network activity when no API
// credential is configured.
func MissingKeyError() *AppError {
	return &AppError{
		Code:    CodeAPIKeyMissing,
		Title:   "Clé API manquante",
		Message: "Une clé API est requise pour utiliser cette application.",
		Hint:    "Configurez la variable d'environnement GEMINI_API_KEY.",
	}
}

// EmptyRequestError is raised when a request carries neither text nor media.
func EmptyRequestError() *AppError {
	return &AppError{
		Code:    CodeUnknownError,
		Title:   "Requête vide",
		Message: "Aucun texte ni média n'a été fourni.",
		Hint:    "Saisissez une demande ou joignez une image/vidéo.",
	}
}

// QuotaError is raised when the daily usage quota of a user is exhausted.
func QuotaError() *AppError {
	return &AppError{
		Code:    CodeQuotaExceeded,
		Title:   "Limite atteinte",
		Message: "Votre quota journalier de requêtes est dépassé.",
		Hint:    "Réessayez demain ou contactez l'administrateur.",
	}
}

// Classify maps an arbitrary failure to exactly one AppError. First match
// wins; a failure that is already an AppError passes through untouched.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	status := 0
	msg := err.Error()
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		status = statusErr.Code
		msg = statusErr.Message
	}
	lower := strings.ToLower(msg)

	switch {
	// 1. Permissions / API key (403)
	case status == 403 || strings.Contains(lower, "api key") || strings.Contains(lower, "permission"):
		return &AppError{
			Code:    CodeInvalidAPIKey,
			Title:   "Accès Refusé (Permission)",
			Message: "Votre clé API n'a pas la permission d'accéder au modèle ou à l'API Generative Language.",
			Hint:    "Vérifiez la configuration de votre projet Google Cloud et activez l'API.",
		}

	// 2. Request rejected as invalid (400)
	case status == 400 || strings.Contains(lower, "invalid argument"):
		return &AppError{
			Code:    CodeUnknownError,
			Title:   "Requête Invalide",
			Message: "Le format de la requête a été rejeté par le fournisseur.",
			Hint:    "Si vous avez envoyé une image/vidéo, le format n'est peut-être pas supporté.",
		}

	// 3. Quota and rate limits (429)
	case status == 429 || strings.Contains(lower, "quota") ||
		strings.Contains(lower, "exhausted") || strings.Contains(lower, "too many requests"):
		return &AppError{
			Code:    CodeQuotaExceeded,
			Title:   "Limite atteinte",
			Message: "Le quota de requêtes Google Gemini est dépassé pour l'instant.",
			Hint:    "Réessayez dans quelques minutes ou changez de clé.",
		}

	// 4. Network failures, DNS, timeouts
	case isNetworkError(err) || strings.Contains(lower, "fetch") ||
		strings.Contains(lower, "network") || strings.Contains(lower, "failed to fetch"):
		return &AppError{
			Code:    CodeNetworkError,
			Title:   "Erreur de Connexion",
			Message: "Impossible de joindre les serveurs du modèle. Vérifiez votre connexion internet.",
			Hint:    "Vérifiez votre réseau puis réessayez.",
		}

	// 5. Provider-side faults (5xx)
	case status >= 500:
		return &AppError{
			Code:    CodeServerError,
			Title:   "Erreur Serveur (Google)",
			Message: "Le service Google Gemini rencontre des problèmes temporaires.",
			Hint:    "Réessayez plus tard.",
		}

	// 6. Unparseable or empty model output
	case isParseError(err) || strings.Contains(lower, "json") || strings.Contains(lower, "parse"):
		return &AppError{
			Code:    CodeParsingError,
			Title:   "Erreur de Format",
			Message: "L'IA a généré une réponse mal structurée ou vide.",
			Hint:    "Reformulez votre demande plus simplement.",
		}

	// 7. Safety filters
	case strings.Contains(lower, "safety") || strings.Contains(lower, "blocked") ||
		strings.Contains(lower, "harmful"):
		return &AppError{
			Code:    CodeUnknownError,
			Title:   "Contenu Bloqué",
			Message: "La demande a été bloquée par les filtres de sécurité de l'IA.",
			Hint:    "Reformulez de manière plus formelle et médicale.",
		}

	default:
		return &AppError{
			Code:    CodeUnknownError,
			Title:   "Erreur inattendue",
			Message: firstNonEmpty(msg, "Une erreur technique est survenue."),
			Hint:    "Veuillez réessayer.",
		}
	}
}

func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func isParseError(err error) bool {
	if errors.Is(err, ErrEmptyResponse) {
		return true
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
