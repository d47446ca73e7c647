package service

import "errors"

var (
	// ErrEmptyMessage indicates a chat request carried no message content.
	ErrEmptyMessage = errors.New("message must not be empty")

	// ErrSessionNotOwned indicates the session exists but belongs to a
	// different user.
	ErrSessionNotOwned = errors.New("session belongs to another user")

	// ErrTranscriptFetch indicates the transcript could not be retrieved
	// from YouTube.
	ErrTranscriptFetch = errors.New("failed to fetch transcript")

	// ErrSummaryNotReady indicates a summary was requested before
	// generation completed.
	ErrSummaryNotReady = errors.New("summary is not ready")
)
