package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatSession(t *testing.T) {
	t.Run("authenticated session", func(t *testing.T) {
		userID := uuid.New()
		session := NewChatSession(userID)

		require.NotNil(t, session)
		assert.NotEqual(t, uuid.Nil, session.ID)
		assert.Equal(t, userID, session.UserID)
		assert.Empty(t, session.VideoID)
		assert.False(t, session.CreatedAt.IsZero())
		assert.NoError(t, session.Validate())
	})

	t.Run("anonymous session", func(t *testing.T) {
		session := NewChatSession(uuid.Nil)

		require.NotNil(t, session)
		assert.Equal(t, uuid.Nil, session.UserID)
		assert.NoError(t, session.Validate())
	})
}

func TestChatSessionSetVideo(t *testing.T) {
	session := NewChatSession(uuid.Nil)
	before := session.UpdatedAt

	session.SetVideo("dQw4w9WgXcQ")

	assert.Equal(t, "dQw4w9WgXcQ", session.VideoID)
	assert.False(t, session.UpdatedAt.Before(before), "SetVideo should bump UpdatedAt")
}

func TestNewMessage(t *testing.T) {
	sessionID := uuid.New()

	t.Run("valid user message", func(t *testing.T) {
		msg, err := NewMessage(sessionID, MessageRoleUser, "hello")

		require.NoError(t, err)
		assert.Equal(t, sessionID, msg.SessionID)
		assert.Equal(t, MessageRoleUser, msg.Role)
		assert.Equal(t, "hello", msg.Content)
	})

	t.Run("valid assistant message", func(t *testing.T) {
		msg, err := NewMessage(sessionID, MessageRoleAssistant, "hi there")

		require.NoError(t, err)
		assert.Equal(t, MessageRoleAssistant, msg.Role)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := NewMessage(sessionID, MessageRoleUser, "")

		assert.ErrorIs(t, err, ErrEmptyMessageContent)
	})

	t.Run("empty session ID", func(t *testing.T) {
		_, err := NewMessage(uuid.Nil, MessageRoleUser, "hello")

		assert.ErrorIs(t, err, ErrEmptyMessageSessionID)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := NewMessage(sessionID, MessageRole("system"), "hello")

		assert.ErrorIs(t, err, ErrInvalidMessageRole)
	})
}
