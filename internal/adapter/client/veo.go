package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"ordo-core/internal/domain/entity"
)

const videoModel = "veo-3.1-fast-generate-preview"

// Video jobs complete asynchronously; the status is polled on a fixed
// interval with a hard cap on attempts so a stuck job cannot hang a
// request forever.
const (
	videoPollInterval = 5 * time.Second
	videoMaxPolls     = 60
)

// GenerateVideo submits a video-generation job, optionally seeded with an
// input image, waits for completion and materializes the binary payload.
func (g *GeminiClient) GenerateVideo(ctx context.Context, prompt string, seed *entity.Blob, aspectRatio string) (*entity.GeneratedMedia, error) {
	if aspectRatio == "" {
		aspectRatio = "16:9"
	}

	cfg := &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     "1080p",
		AspectRatio:    aspectRatio,
	}

	var image *genai.Image
	if seed != nil {
		image = &genai.Image{ImageBytes: seed.Data, MIMEType: seed.MIMEType}
	}

	op, err := g.client.Models.GenerateVideos(ctx, videoModel, prompt, image, cfg)
	if err != nil {
		return nil, wrapAPIError(err)
	}

	op, err = pollVideoOperation(ctx, op, g.nextVideoStatus, videoPollInterval, videoMaxPolls)
	if err != nil {
		return nil, err
	}

	uri := videoURI(op)
	if uri == "" {
		return nil, fmt.Errorf("video job done with no result handle: %w", entity.ErrEmptyResponse)
	}

	return g.downloadVideo(ctx, uri)
}

func (g *GeminiClient) nextVideoStatus(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	next, err := g.client.Operations.GetVideosOperation(ctx, op, nil)
	if err != nil {
		return nil, wrapAPIError(err)
	}
	return next, nil
}

// pollVideoOperation waits for the job's completion flag, polling through
// next at the given interval up to maxPolls times. Each poll is a
// suspension point that honors ctx cancellation.
func pollVideoOperation(
	ctx context.Context,
	op *genai.GenerateVideosOperation,
	next func(context.Context, *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error),
	interval time.Duration,
	maxPolls int,
) (*genai.GenerateVideosOperation, error) {
	for polls := 0; !op.Done; polls++ {
		if polls >= maxPolls {
			return nil, fmt.Errorf("video generation still pending after %d polls: %w", maxPolls, context.DeadlineExceeded)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
		var err error
		op, err = next(ctx, op)
		if err != nil {
			return nil, err
		}
	}
	return op, nil
}

func videoURI(op *genai.GenerateVideosOperation) string {
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return ""
	}
	video := op.Response.GeneratedVideos[0].Video
	if video == nil {
		return ""
	}
	return video.URI
}

// downloadVideo dereferences the job's result handle into concrete bytes.
// The download endpoint authenticates with the same API key.
func (g *GeminiClient) downloadVideo(ctx context.Context, uri string) (*entity.GeneratedMedia, error) {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri+sep+"key="+g.apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("build video download request: %w", err)
	}

	resp, err := g.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &entity.StatusError{Code: resp.StatusCode, Message: "video download failed"}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read video payload: %w", err)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "video/mp4"
	}
	return &entity.GeneratedMedia{Data: data, MIMEType: mime}, nil
}
