package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordo-core/internal/adapter/store"
	"ordo-core/internal/domain/entity"
)

type fakeGenerator struct {
	gen       *entity.Generation
	url       string
	err       error
	last      entity.GenerateRequest
	speakUser string
}

func (f *fakeGenerator) Generate(_ context.Context, req entity.GenerateRequest) (*entity.Generation, error) {
	f.last = req
	return f.gen, f.err
}

func (f *fakeGenerator) Speak(_ context.Context, _, _, userID string) (string, error) {
	f.speakUser = userID
	return f.url, f.err
}

func newTestApp(gen *fakeGenerator, files *store.MemoryMediaStore) *fiber.App {
	app := fiber.New()
	SetupRouter(app, NewGenerateHandler(gen, files))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestHandleGenerate(t *testing.T) {
	gen := &fakeGenerator{gen: &entity.Generation{
		Result: &entity.PrescriptionResult{
			Type:      entity.KindPrescription,
			Pathology: "Angine bactérienne",
			Severity:  entity.SeverityMedium,
		},
		Model: "gemini-2.5-flash-lite",
	}}
	app := newTestApp(gen, store.NewMemoryMediaStore())

	resp := postJSON(t, app, "/v1/generate",
		`{"input":"Angine bactérienne","mode":"pathology","persona":"doctor","language":"Français"}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "false", resp.Header.Get("X-Ordo-Cache-Hit"))

	var body struct {
		Result struct {
			Type      string `json:"type"`
			Pathology string `json:"pathology"`
		} `json:"result"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "prescription", body.Result.Type)
	assert.Equal(t, "Angine bactérienne", body.Result.Pathology)

	assert.Equal(t, entity.ModePathology, gen.last.Mode)
	assert.Equal(t, entity.PersonaDoctor, gen.last.Persona)
}

func TestHandleGenerateCacheHitHeader(t *testing.T) {
	gen := &fakeGenerator{gen: &entity.Generation{
		Result: &entity.ReferenceResult{Type: entity.KindReference},
		Cached: true,
	}}
	app := newTestApp(gen, store.NewMemoryMediaStore())

	resp := postJSON(t, app, "/v1/generate", `{"input":"Amoxicilline","mode":"molecule"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Ordo-Cache-Hit"))
}

func TestHandleGenerateUnknownPersonaFallsBack(t *testing.T) {
	gen := &fakeGenerator{gen: &entity.Generation{Result: &entity.ReferenceResult{Type: entity.KindReference}}}
	app := newTestApp(gen, store.NewMemoryMediaStore())

	resp := postJSON(t, app, "/v1/generate", `{"input":"Aspirine","mode":"molecule","persona":"alien"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.PersonaDoctor, gen.last.Persona)
}

func TestHandleGenerateDecodesImagePayload(t *testing.T) {
	gen := &fakeGenerator{gen: &entity.Generation{Result: &entity.PrescriptionResult{Type: entity.KindPrescription}}}
	app := newTestApp(gen, store.NewMemoryMediaStore())

	resp := postJSON(t, app, "/v1/generate",
		`{"input":"lésion","mode":"pathology","image":"data:image/png;base64,iVBORw0KGgo="}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, gen.last.Image)
	assert.Equal(t, "image/png", gen.last.Image.MIMEType)
	assert.Nil(t, gen.last.Video)
}

func TestHandleGenerateClassifiedErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *entity.AppError
		wantStatus int
	}{
		{"missing credential", entity.MissingKeyError(), fiber.StatusServiceUnavailable},
		{"quota", entity.QuotaError(), fiber.StatusTooManyRequests},
		{"parsing", &entity.AppError{Code: entity.CodeParsingError, Title: "t", Message: "m"}, fiber.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeGenerator{err: tt.err}, store.NewMemoryMediaStore())
			resp := postJSON(t, app, "/v1/generate", `{"input":"x","mode":"pathology"}`)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var appErr entity.AppError
			decodeBody(t, resp, &appErr)
			assert.Equal(t, tt.err.Code, appErr.Code)
			assert.NotEmpty(t, appErr.Title)
			assert.NotEmpty(t, appErr.Message)
		})
	}
}

func TestHandleGenerateRejectsBothMediaKinds(t *testing.T) {
	app := newTestApp(&fakeGenerator{}, store.NewMemoryMediaStore())
	resp := postJSON(t, app, "/v1/generate", `{"input":"x","mode":"pathology","image":"AQI=","video":"AQI="}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleSpeech(t *testing.T) {
	gen := &fakeGenerator{url: "/v1/media/abc"}
	app := newTestApp(gen, store.NewMemoryMediaStore())

	resp := postJSON(t, app, "/v1/speech",
		`{"text":"Prenez un comprimé matin et soir.","language":"Français","user_id":"u-42"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "/v1/media/abc", body["audio_url"])
	assert.Equal(t, "u-42", gen.speakUser)
}

func TestHandleMedia(t *testing.T) {
	files := store.NewMemoryMediaStore()
	id := files.Put(&entity.GeneratedMedia{Data: []byte{0x89, 0x50}, MIMEType: "image/png"})
	app := newTestApp(&fakeGenerator{}, files)

	req := httptest.NewRequest(http.MethodGet, "/v1/media/"+id, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, []byte{0x89, 0x50}, data)

	t.Run("unknown handle", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/media/nope", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
