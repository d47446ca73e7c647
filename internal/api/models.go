package api

import "time"

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned after successful registration, login, or token
// refresh.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
}

// RefreshTokenRequest is the payload for refreshing an access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChatRequest is the payload for a chat turn. SessionID is optional; when
// omitted a new session is started.
type ChatRequest struct {
	Message   string `json:"message"              validate:"required"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,uuid"`
}

// ChatReply is the assistant message inside a ChatResponse.
type ChatReply struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is returned for each chat turn.
type ChatResponse struct {
	Reply     ChatReply `json:"reply"`
	SessionID string    `json:"session_id"`
}

// TranscriptResponse is returned when fetching a transcript directly.
type TranscriptResponse struct {
	VideoID    string `json:"video_id"`
	Transcript string `json:"transcript"`
}

// SummaryResponse reports the state of an asynchronous summary.
type SummaryResponse struct {
	VideoID string `json:"video_id"`
	Status  string `json:"status"`
	Summary string `json:"summary,omitempty"`
}

// SessionResponse describes one chat session.
type SessionResponse struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageResponse describes one stored chat message.
type MessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
