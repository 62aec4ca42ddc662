package repository

import (
	"context"

	"ordo-core/internal/domain/entity"
)

// ResponseCache is the process-lifetime exact-fingerprint cache. Media
// requests never reach it.
type ResponseCache interface {
	Get(fingerprint string) (entity.Result, bool)
	Set(fingerprint string, result entity.Result)
	Reset()
}

// TextProvider runs a schema-constrained JSON generation round trip.
type TextProvider interface {
	GenerateJSON(ctx context.Context, call entity.ModelCall) (*entity.ModelOutput, error)
}

// MediaProvider covers the dedicated generation paths that bypass the
// JSON-schema contract.
type MediaProvider interface {
	GenerateImage(ctx context.Context, prompt, aspectRatio string) (*entity.GeneratedMedia, error)
	GenerateVideo(ctx context.Context, prompt string, seed *entity.Blob, aspectRatio string) (*entity.GeneratedMedia, error)
	GenerateSpeech(ctx context.Context, text, language string) (*entity.GeneratedMedia, error)
}

// MediaStore keeps generated binary payloads addressable by handle.
type MediaStore interface {
	Put(media *entity.GeneratedMedia) string
	Get(id string) (*entity.GeneratedMedia, bool)
}

// TokenLimiter enforces the per-user daily usage quota.
type TokenLimiter interface {
	CheckLimit(ctx context.Context, userID string) (bool, error)
	Increment(ctx context.Context, userID string, tokens int) error
}
