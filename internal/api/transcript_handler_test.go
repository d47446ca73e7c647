package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youchat/youchat-api/internal/platform/youtube"
	"github.com/youchat/youchat-api/internal/service"
)

func newTranscriptHandlerForTest(fetcher *stubFetcher) *TranscriptHandler {
	transcripts := service.NewTranscriptService(testLogger(), newMemTranscriptStore(), fetcher)
	return NewTranscriptHandler(transcripts, testLogger())
}

func getTranscript(t *testing.T, handler *TranscriptHandler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.GetTranscript(rec, req)
	return rec
}

func TestGetTranscriptByQueryParam(t *testing.T) {
	handler := newTranscriptHandlerForTest(&stubFetcher{transcript: "transcript text"})

	rec := getTranscript(t, handler, "/transcript/?video_id=dQw4w9WgXcQ")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TranscriptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dQw4w9WgXcQ", resp.VideoID)
	assert.Equal(t, "transcript text", resp.Transcript)
}

func TestGetTranscriptFetchFailureIsBadRequest(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{"no transcript", youtube.ErrNoTranscript},
		{"video unavailable", youtube.ErrVideoUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTranscriptHandlerForTest(&stubFetcher{err: tc.err})

			rec := getTranscript(t, handler, "/transcript/?video_id=dQw4w9WgXcQ")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetTranscriptInvalidVideoID(t *testing.T) {
	handler := newTranscriptHandlerForTest(&stubFetcher{transcript: "transcript text"})

	rec := getTranscript(t, handler, "/transcript/?video_id=nope")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
