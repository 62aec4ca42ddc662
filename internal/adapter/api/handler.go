package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"ordo-core/internal/adapter/media"
	"ordo-core/internal/domain/entity"
	"ordo-core/internal/domain/repository"
)

// Generator is the slice of the orchestrator this delivery layer needs.
type Generator interface {
	Generate(ctx context.Context, req entity.GenerateRequest) (*entity.Generation, error)
	Speak(ctx context.Context, text, language, userID string) (string, error)
}

type GenerateHandler struct {
	orchestrator Generator
	files        repository.MediaStore
}

func NewGenerateHandler(orch Generator, files repository.MediaStore) *GenerateHandler {
	return &GenerateHandler{orchestrator: orch, files: files}
}

type generateBody struct {
	Input       string `json:"input"`
	Mode        string `json:"mode"`
	Persona     string `json:"persona"`
	Language    string `json:"language"`
	AspectRatio string `json:"aspect_ratio"`
	Image       string `json:"image"`
	Video       string `json:"video"`
	UserID      string `json:"user_id"`
}

func (h *GenerateHandler) HandleGenerate(c *fiber.Ctx) error {
	var body generateBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.Image != "" && body.Video != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "at most one of image/video may be provided"})
	}

	image, err := media.DecodePayload(body.Image, "image/jpeg")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	video, err := media.DecodePayload(body.Video, "video/mp4")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	req := entity.GenerateRequest{
		Input:       body.Input,
		Mode:        entity.Mode(body.Mode),
		Persona:     persona(body.Persona),
		Language:    body.Language,
		AspectRatio: body.AspectRatio,
		Image:       image,
		Video:       video,
		UserID:      body.UserID,
	}

	gen, err := h.orchestrator.Generate(c.Context(), req)
	if err != nil {
		return writeAppError(c, err)
	}

	c.Set("X-Ordo-Cache-Hit", "false")
	if gen.Cached {
		c.Set("X-Ordo-Cache-Hit", "true")
	}
	return c.Status(fiber.StatusOK).JSON(gen)
}

type speechBody struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	UserID   string `json:"user_id"`
}

func (h *GenerateHandler) HandleSpeech(c *fiber.Ctx) error {
	var body speechBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	url, err := h.orchestrator.Speak(c.Context(), body.Text, body.Language, body.UserID)
	if err != nil {
		return writeAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"audio_url": url})
}

func (h *GenerateHandler) HandleMedia(c *fiber.Ctx) error {
	blob, ok := h.files.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "media not found"})
	}
	c.Set(fiber.HeaderContentType, blob.MIMEType)
	return c.Status(fiber.StatusOK).Send(blob.Data)
}

// persona folds unknown roles onto the doctor baseline.
func persona(s string) entity.Persona {
	switch p := entity.Persona(s); p {
	case entity.PersonaDoctor, entity.PersonaStudent, entity.PersonaEmergency,
		entity.PersonaPediatric, entity.PersonaSpecialist:
		return p
	default:
		return entity.PersonaDoctor
	}
}

// writeAppError maps a classified failure to its HTTP status. The body is
// the AppError itself so the view layer always has a title, message and
// hint to display.
func writeAppError(c *fiber.Ctx, err error) error {
	var appErr *entity.AppError
	if !errors.As(err, &appErr) {
		appErr = entity.Classify(err)
	}
	return c.Status(statusFor(appErr.Code)).JSON(appErr)
}

func statusFor(code entity.ErrorCode) int {
	switch code {
	case entity.CodeAPIKeyMissing:
		return fiber.StatusServiceUnavailable
	case entity.CodeInvalidAPIKey:
		return fiber.StatusForbidden
	case entity.CodeQuotaExceeded:
		return fiber.StatusTooManyRequests
	case entity.CodeNetworkError, entity.CodeServerError, entity.CodeParsingError:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
