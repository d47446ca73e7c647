package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youchat/youchat-api/internal/domain"
	"github.com/youchat/youchat-api/internal/store"
)

func TestTranscriptServiceGetOrFetch(t *testing.T) {
	const videoID = "dQw4w9WgXcQ"
	ctx := context.Background()

	t.Run("cache hit skips fetch", func(t *testing.T) {
		cached, err := domain.NewTranscript(videoID, "cached text")
		require.NoError(t, err)

		transcriptStore := &mockTranscriptStore{
			getByVideoIDFn: func(_ context.Context, id string) (*domain.Transcript, error) {
				assert.Equal(t, videoID, id)
				return cached, nil
			},
		}
		fetcher := &mockFetcher{
			fetchFn: func(context.Context, string) (string, error) {
				t.Fatal("fetcher should not be called on cache hit")
				return "", nil
			},
		}

		svc := NewTranscriptService(testLogger(), transcriptStore, fetcher)
		got, err := svc.GetOrFetch(ctx, videoID)

		require.NoError(t, err)
		assert.Equal(t, "cached text", got.Transcript)
	})

	t.Run("cache miss fetches and stores", func(t *testing.T) {
		var upserted *domain.Transcript
		transcriptStore := &mockTranscriptStore{
			upsertFn: func(_ context.Context, transcript *domain.Transcript) error {
				upserted = transcript
				return nil
			},
		}
		fetcher := &mockFetcher{
			fetchFn: func(_ context.Context, id string) (string, error) {
				assert.Equal(t, videoID, id)
				return "fresh text", nil
			},
		}

		svc := NewTranscriptService(testLogger(), transcriptStore, fetcher)
		got, err := svc.GetOrFetch(ctx, videoID)

		require.NoError(t, err)
		assert.Equal(t, "fresh text", got.Transcript)
		require.NotNil(t, upserted, "fetched transcript should be cached")
		assert.Equal(t, videoID, upserted.VideoID)
	})

	t.Run("fetch failure wraps ErrTranscriptFetch", func(t *testing.T) {
		fetcher := &mockFetcher{
			fetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("network down")
			},
		}

		svc := NewTranscriptService(testLogger(), &mockTranscriptStore{}, fetcher)
		_, err := svc.GetOrFetch(ctx, videoID)

		assert.ErrorIs(t, err, ErrTranscriptFetch)
	})

	t.Run("invalid video ID rejected without lookup", func(t *testing.T) {
		transcriptStore := &mockTranscriptStore{
			getByVideoIDFn: func(context.Context, string) (*domain.Transcript, error) {
				t.Fatal("store should not be queried for an invalid ID")
				return nil, nil
			},
		}

		svc := NewTranscriptService(testLogger(), transcriptStore, &mockFetcher{})
		_, err := svc.GetOrFetch(ctx, "nope")

		assert.ErrorIs(t, err, domain.ErrInvalidVideoID)
	})

	t.Run("store failure other than not found is returned", func(t *testing.T) {
		storeErr := errors.New("connection refused")
		transcriptStore := &mockTranscriptStore{
			getByVideoIDFn: func(context.Context, string) (*domain.Transcript, error) {
				return nil, storeErr
			},
		}

		svc := NewTranscriptService(testLogger(), transcriptStore, &mockFetcher{})
		_, err := svc.GetOrFetch(ctx, videoID)

		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("cache write failure does not fail the request", func(t *testing.T) {
		transcriptStore := &mockTranscriptStore{
			upsertFn: func(context.Context, *domain.Transcript) error {
				return store.ErrUpdateFailed
			},
		}

		svc := NewTranscriptService(testLogger(), transcriptStore, &mockFetcher{})
		got, err := svc.GetOrFetch(ctx, videoID)

		require.NoError(t, err)
		assert.Equal(t, "mock transcript", got.Transcript)
	})
}
