package domain

import (
	"errors"
	"regexp"
	"time"
)

// SummaryStatus represents the processing state of a video summary.
type SummaryStatus string

// Possible summary status values
const (
	SummaryStatusNone       SummaryStatus = "none"
	SummaryStatusPending    SummaryStatus = "pending"
	SummaryStatusProcessing SummaryStatus = "processing"
	SummaryStatusCompleted  SummaryStatus = "completed"
	SummaryStatusFailed     SummaryStatus = "failed"
)

// Common validation errors for Transcript
var (
	ErrEmptyTranscriptText  = errors.New("transcript text cannot be empty")
	ErrInvalidSummaryStatus = errors.New("invalid summary status")
)

// videoIDPattern matches a bare 11-character YouTube video ID.
var videoIDPattern = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

// IsValidVideoID reports whether s is a well-formed YouTube video ID.
func IsValidVideoID(s string) bool {
	return videoIDPattern.MatchString(s)
}

// Transcript caches the caption text of a YouTube video, keyed by video ID,
// along with an optionally generated summary and its processing state.
type Transcript struct {
	VideoID       string        `json:"video_id"`
	Transcript    string        `json:"transcript"`
	Summary       string        `json:"summary,omitempty"`
	SummaryStatus SummaryStatus `json:"summary_status"`
	FetchedAt     time.Time     `json:"fetched_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewTranscript creates a Transcript for the given video.
// Returns an error if validation fails.
func NewTranscript(videoID, text string) (*Transcript, error) {
	now := time.Now().UTC()
	t := &Transcript{
		VideoID:       videoID,
		Transcript:    text,
		SummaryStatus: SummaryStatusNone,
		FetchedAt:     now,
		UpdatedAt:     now,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks if the Transcript has valid data.
func (t *Transcript) Validate() error {
	if !IsValidVideoID(t.VideoID) {
		return ErrInvalidVideoID
	}

	if t.Transcript == "" {
		return ErrEmptyTranscriptText
	}

	if !isValidSummaryStatus(t.SummaryStatus) {
		return ErrInvalidSummaryStatus
	}

	return nil
}

// isValidSummaryStatus checks if the given status is a valid SummaryStatus.
func isValidSummaryStatus(status SummaryStatus) bool {
	switch status {
	case SummaryStatusNone, SummaryStatusPending, SummaryStatusProcessing,
		SummaryStatusCompleted, SummaryStatusFailed:
		return true
	default:
		return false
	}
}
