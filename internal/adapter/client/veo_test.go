package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"ordo-core/internal/domain/entity"
)

func TestPollVideoOperationTerminatesOnDone(t *testing.T) {
	pending := &genai.GenerateVideosOperation{Done: false}
	done := &genai.GenerateVideosOperation{
		Done: true,
		Response: &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{
				{Video: &genai.Video{URI: "https://example.invalid/video/1"}},
			},
		},
	}

	polls := 0
	next := func(context.Context, *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
		polls++
		if polls < 3 {
			return pending, nil
		}
		return done, nil
	}

	op, err := pollVideoOperation(context.Background(), pending, next, time.Millisecond, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, polls)
	assert.Equal(t, "https://example.invalid/video/1", videoURI(op))
}

func TestPollVideoOperationAlreadyDone(t *testing.T) {
	done := &genai.GenerateVideosOperation{Done: true}
	next := func(context.Context, *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
		t.Fatal("no poll expected for a completed job")
		return nil, nil
	}

	_, err := pollVideoOperation(context.Background(), done, next, time.Millisecond, 10)
	require.NoError(t, err)
}

func TestPollVideoOperationBounded(t *testing.T) {
	pending := &genai.GenerateVideosOperation{Done: false}
	next := func(context.Context, *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
		return pending, nil
	}

	_, err := pollVideoOperation(context.Background(), pending, next, time.Millisecond, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, entity.CodeNetworkError, entity.Classify(err).Code)
}

func TestPollVideoOperationHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pending := &genai.GenerateVideosOperation{Done: false}
	next := func(context.Context, *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
		return pending, nil
	}

	_, err := pollVideoOperation(ctx, pending, next, time.Minute, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVideoURI(t *testing.T) {
	assert.Empty(t, videoURI(&genai.GenerateVideosOperation{Done: true}))
	assert.Empty(t, videoURI(&genai.GenerateVideosOperation{
		Done:     true,
		Response: &genai.GenerateVideosResponse{},
	}))
	assert.Empty(t, videoURI(&genai.GenerateVideosOperation{
		Done:     true,
		Response: &genai.GenerateVideosResponse{GeneratedVideos: []*genai.GeneratedVideo{{}}},
	}))
}
