package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"ordo-core/internal/domain/entity"
	"ordo-core/internal/domain/repository"
)

// Orchestrator is the public entry point of the generation core. Every
// failure it returns is an *entity.AppError; callers never see a raw
// provider error.
type Orchestrator struct {
	apiKey  string
	text    repository.TextProvider
	media   repository.MediaProvider
	cache   repository.ResponseCache
	files   repository.MediaStore
	limiter repository.TokenLimiter
	group   singleflight.Group
}

// NewOrchestrator wires the generation core. limiter may be nil (no quota
// enforcement). apiKey is only checked for presence here; the adapters own
// the credential itself.
func NewOrchestrator(apiKey string, text repository.TextProvider, media repository.MediaProvider,
	cache repository.ResponseCache, files repository.MediaStore, limiter repository.TokenLimiter) *Orchestrator {
	return &Orchestrator{
		apiKey:  apiKey,
		text:    text,
		media:   media,
		cache:   cache,
		files:   files,
		limiter: limiter,
	}
}

// Generate validates the request, consults the cache, invokes the selected
// model and normalizes the outcome. The result is always either a tagged
// structured variant or a classified AppError.
func (o *Orchestrator) Generate(ctx context.Context, req entity.GenerateRequest) (*entity.Generation, error) {
	started := time.Now()

	if o.apiKey == "" {
		return nil, entity.MissingKeyError()
	}
	if strings.TrimSpace(req.Input) == "" && !req.HasMedia() {
		return nil, entity.EmptyRequestError()
	}

	// Media-generation modes bypass the JSON-schema contract entirely.
	switch req.Mode {
	case entity.ModeImageGen:
		return o.generateImage(ctx, req, started)
	case entity.ModeVideoGen:
		return o.generateVideo(ctx, req, started)
	}

	fp := entity.Fingerprint(req.Mode, req.Persona, req.Language, req.Input)
	if !req.HasMedia() {
		if cached, ok := o.cache.Get(fp); ok {
			return &entity.Generation{Result: cached, Cached: true, Latency: time.Since(started).Milliseconds()}, nil
		}
	}

	if err := o.checkQuota(ctx, req.UserID); err != nil {
		return nil, entity.Classify(err)
	}

	plan := SelectPlan(req)
	call := entity.ModelCall{Plan: plan, Parts: buildParts(req)}

	var (
		out *entity.ModelOutput
		res entity.Result
		err error
	)
	if req.HasMedia() {
		res, out, err = o.invoke(ctx, call, req)
		if err == nil {
			o.recordUsage(req.UserID, out.TokenCount)
		}
	} else {
		// Concurrent identical queries share one live model call. Usage
		// is charged once per live call, to the caller that ran it;
		// joiners of the flight are not billed again.
		type outcome struct {
			res entity.Result
			out *entity.ModelOutput
		}
		v, sfErr, _ := o.group.Do(fp, func() (any, error) {
			r, mo, invErr := o.invoke(ctx, call, req)
			if invErr != nil {
				return nil, invErr
			}
			o.recordUsage(req.UserID, mo.TokenCount)
			return outcome{res: r, out: mo}, nil
		})
		if sfErr != nil {
			err = sfErr
		} else {
			oc := v.(outcome)
			res, out = oc.res, oc.out
		}
	}
	if err != nil {
		return nil, entity.Classify(err)
	}

	if !req.HasMedia() {
		o.cache.Set(fp, res)
	}

	return &entity.Generation{
		Result:     res,
		Model:      plan.Model,
		TokenCount: out.TokenCount,
		Latency:    time.Since(started).Milliseconds(),
	}, nil
}

// invoke runs the model round trip and parses the constrained JSON output
// into its tagged variant.
func (o *Orchestrator) invoke(ctx context.Context, call entity.ModelCall, req entity.GenerateRequest) (entity.Result, *entity.ModelOutput, error) {
	out, err := o.text.GenerateJSON(ctx, call)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(out.Text) == "" {
		return nil, nil, entity.ErrEmptyResponse
	}

	res, err := parseResult(call.Plan.Schema, out.Text, req.Persona)
	if err != nil {
		return nil, nil, err
	}
	return res, out, nil
}

// parseResult decodes the model output against the schema selected for the
// request and stamps the explicit discriminant on the variant.
func parseResult(schema entity.SchemaKind, text string, persona entity.Persona) (entity.Result, error) {
	switch schema {
	case entity.SchemaPrescription:
		var r entity.PrescriptionResult
		if err := json.Unmarshal([]byte(text), &r); err != nil {
			return nil, fmt.Errorf("parse prescription result: %w", err)
		}
		r.Type = entity.KindPrescription
		applyDosageDefault(r.Medications, persona)
		return &r, nil

	case entity.SchemaMedication:
		var r entity.MedicationResult
		if err := json.Unmarshal([]byte(text), &r); err != nil {
			return nil, fmt.Errorf("parse medication result: %w", err)
		}
		r.Type = entity.KindMedication
		return &r, nil

	case entity.SchemaEncyclopedia:
		var r entity.EncyclopediaResult
		if err := json.Unmarshal([]byte(text), &r); err != nil {
			return nil, fmt.Errorf("parse encyclopedia result: %w", err)
		}
		r.Type = entity.KindEncyclopedia
		return &r, nil

	default:
		var r entity.ReferenceResult
		if err := json.Unmarshal([]byte(text), &r); err != nil {
			return nil, fmt.Errorf("parse reference result: %w", err)
		}
		r.Type = entity.KindReference
		return &r, nil
	}
}

// applyDosageDefault selects the active dosage view on each medication.
// This is the only persona-driven mutation after generation.
func applyDosageDefault(meds []entity.Medication, persona entity.Persona) {
	view := entity.DosageAdult
	if persona == entity.PersonaPediatric {
		view = entity.DosageChild
	}
	for i := range meds {
		meds[i].SelectedDosage = view
	}
}

func (o *Orchestrator) generateImage(ctx context.Context, req entity.GenerateRequest, started time.Time) (*entity.Generation, error) {
	if err := o.checkQuota(ctx, req.UserID); err != nil {
		return nil, entity.Classify(err)
	}
	media, err := o.media.GenerateImage(ctx, imageStylePrefix+req.Input, req.AspectRatio)
	if err != nil {
		return nil, entity.Classify(err)
	}
	o.recordUsage(req.UserID, media.TokenCount)
	return &entity.Generation{
		Result: &entity.ImageResult{
			Type:     entity.KindImage,
			Prompt:   req.Input,
			ImageURL: o.storeMedia(media),
		},
		Model:      ModelImage,
		TokenCount: media.TokenCount,
		Latency:    time.Since(started).Milliseconds(),
	}, nil
}

func (o *Orchestrator) generateVideo(ctx context.Context, req entity.GenerateRequest, started time.Time) (*entity.Generation, error) {
	if err := o.checkQuota(ctx, req.UserID); err != nil {
		return nil, entity.Classify(err)
	}
	media, err := o.media.GenerateVideo(ctx, req.Input, req.Image, req.AspectRatio)
	if err != nil {
		return nil, entity.Classify(err)
	}
	o.recordUsage(req.UserID, media.TokenCount)
	return &entity.Generation{
		Result: &entity.VideoResult{
			Type:     entity.KindVideo,
			Prompt:   req.Input,
			VideoURL: o.storeMedia(media),
		},
		Model:      ModelVideo,
		TokenCount: media.TokenCount,
		Latency:    time.Since(started).Milliseconds(),
	}, nil
}

// Speak synthesizes the given text on the TTS model and returns the handle
// URL of the generated audio. Subject to the same per-user quota as the
// generation paths.
func (o *Orchestrator) Speak(ctx context.Context, text, language, userID string) (string, error) {
	if o.apiKey == "" {
		return "", entity.MissingKeyError()
	}
	if strings.TrimSpace(text) == "" {
		return "", entity.EmptyRequestError()
	}
	if err := o.checkQuota(ctx, userID); err != nil {
		return "", entity.Classify(err)
	}
	media, err := o.media.GenerateSpeech(ctx, text, language)
	if err != nil {
		return "", entity.Classify(err)
	}
	o.recordUsage(userID, media.TokenCount)
	return o.storeMedia(media), nil
}

func (o *Orchestrator) storeMedia(media *entity.GeneratedMedia) string {
	return "/v1/media/" + o.files.Put(media)
}

func (o *Orchestrator) checkQuota(ctx context.Context, userID string) error {
	if o.limiter == nil || userID == "" {
		return nil
	}
	allowed, err := o.limiter.CheckLimit(ctx, userID)
	if err != nil {
		// Wording must stay clear of the classifier's quota keywords: a
		// limiter outage is an infrastructure failure, not an exhausted
		// budget.
		return fmt.Errorf("rate limiter check failed: %w", err)
	}
	if !allowed {
		return entity.QuotaError()
	}
	return nil
}

func (o *Orchestrator) recordUsage(userID string, tokens int) {
	if o.limiter == nil || userID == "" || tokens == 0 {
		return
	}
	// The request context may be gone by the time Redis answers.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.limiter.Increment(ctx, userID, tokens)
	}()
}
