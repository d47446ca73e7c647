package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidVideoID(t *testing.T) {
	testCases := []struct {
		name    string
		videoID string
		want    bool
	}{
		{"standard ID", "dQw4w9WgXcQ", true},
		{"ID with underscore and dash", "a_b-C1d2E3f", true},
		{"too short", "dQw4w9WgXc", false},
		{"too long", "dQw4w9WgXcQQ", false},
		{"empty", "", false},
		{"invalid characters", "dQw4w9WgXc!", false},
		{"full URL", "https://youtu.be/dQw4w9WgXcQ", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidVideoID(tc.videoID))
		})
	}
}

func TestNewTranscript(t *testing.T) {
	t.Run("valid transcript", func(t *testing.T) {
		transcript, err := NewTranscript("dQw4w9WgXcQ", "never gonna give you up")

		require.NoError(t, err)
		assert.Equal(t, "dQw4w9WgXcQ", transcript.VideoID)
		assert.Equal(t, SummaryStatusNone, transcript.SummaryStatus)
		assert.Empty(t, transcript.Summary)
		assert.False(t, transcript.FetchedAt.IsZero())
	})

	t.Run("invalid video ID", func(t *testing.T) {
		_, err := NewTranscript("bad", "some text")

		assert.ErrorIs(t, err, ErrInvalidVideoID)
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := NewTranscript("dQw4w9WgXcQ", "")

		assert.ErrorIs(t, err, ErrEmptyTranscriptText)
	})
}

func TestTranscriptValidateSummaryStatus(t *testing.T) {
	transcript, err := NewTranscript("dQw4w9WgXcQ", "text")
	require.NoError(t, err)

	transcript.SummaryStatus = SummaryStatus("unknown")
	assert.ErrorIs(t, transcript.Validate(), ErrInvalidSummaryStatus)

	for _, status := range []SummaryStatus{
		SummaryStatusNone, SummaryStatusPending, SummaryStatusProcessing,
		SummaryStatusCompleted, SummaryStatusFailed,
	} {
		transcript.SummaryStatus = status
		assert.NoError(t, transcript.Validate(), "status %s should be valid", status)
	}
}

func TestNewUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		user, err := NewUser("user@example.com", "averylongpassword")

		require.NoError(t, err)
		assert.Equal(t, "user@example.com", user.Email)
		assert.Equal(t, "averylongpassword", user.Password)
		assert.Empty(t, user.HashedPassword)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "averylongpassword")

		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("password too short", func(t *testing.T) {
		_, err := NewUser("user@example.com", "short")

		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("password too long", func(t *testing.T) {
		_, err := NewUser("user@example.com", strings.Repeat("a", 73))

		assert.ErrorIs(t, err, ErrPasswordTooLong)
	})

	t.Run("stored user with only hash validates", func(t *testing.T) {
		user, err := NewUser("user@example.com", "averylongpassword")
		require.NoError(t, err)

		user.Password = ""
		user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"

		assert.NoError(t, user.Validate())
	})
}
