// Package youtube fetches video transcripts from YouTube's public caption
// endpoints, replacing an external transcript API dependency.
package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Errors returned by the transcript client.
var (
	// ErrNoTranscript indicates the video has no caption tracks.
	ErrNoTranscript = errors.New("no transcript available for video")

	// ErrVideoUnavailable indicates the watch page could not be loaded.
	ErrVideoUnavailable = errors.New("video unavailable")
)

const (
	defaultBaseURL = "https://www.youtube.com"
	requestTimeout = 15 * time.Second
)

// videoIDInMessagePattern finds an 11-character video ID following "v=" or "/"
// anywhere in free text, matching how chat messages carry YouTube links.
var videoIDInMessagePattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// captionTracksPattern locates the caption track metadata embedded in the
// watch page's player response JSON.
var captionTracksPattern = regexp.MustCompile(`"captionTracks":(\[.*?\])`)

// ExtractVideoID extracts a YouTube video ID from a message containing a URL.
// Returns the ID and true when one is found.
func ExtractVideoID(message string) (string, bool) {
	match := videoIDInMessagePattern.FindStringSubmatch(message)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// captionTrack mirrors the fields we need from the player response metadata.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind,omitempty"`
}

// timedText is the XML document served by the caption track endpoint.
type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the YouTube origin. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// Client fetches transcripts from YouTube's caption endpoints.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a transcript client. If logger is nil, the default
// logger is used.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		http: resty.New().
			SetTimeout(requestTimeout).
			SetHeader("Accept-Language", "en-US,en"),
		baseURL: defaultBaseURL,
		logger:  logger.With(slog.String("component", "youtube_client")),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchTranscript returns the transcript of a video as a single string, the
// space-joined text of all caption segments. It prefers an English caption
// track and falls back to the first available one.
func (c *Client) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	track, err := c.findCaptionTrack(ctx, videoID)
	if err != nil {
		return "", err
	}

	resp, err := c.http.R().SetContext(ctx).Get(track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch caption track for video %s: %w", videoID, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: caption track request returned status %d",
			ErrNoTranscript, resp.StatusCode())
	}

	var doc timedText
	if err := xml.Unmarshal(resp.Body(), &doc); err != nil {
		return "", fmt.Errorf("failed to parse caption track XML for video %s: %w", videoID, err)
	}

	if len(doc.Texts) == 0 {
		return "", fmt.Errorf("%w: caption track is empty", ErrNoTranscript)
	}

	segments := make([]string, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		// Caption text arrives HTML-escaped with embedded line breaks.
		text := strings.ReplaceAll(html.UnescapeString(t.Value), "\n", " ")
		text = strings.TrimSpace(text)
		if text != "" {
			segments = append(segments, text)
		}
	}

	transcript := strings.Join(segments, " ")

	c.logger.DebugContext(ctx, "transcript fetched",
		slog.String("video_id", videoID),
		slog.Int("segments", len(segments)),
		slog.Int("length", len(transcript)))

	return transcript, nil
}

// findCaptionTrack loads the watch page and extracts the caption track
// metadata embedded in its player response.
func (c *Client) findCaptionTrack(ctx context.Context, videoID string) (*captionTrack, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("v", videoID).
		Get(c.baseURL + "/watch")
	if err != nil {
		return nil, fmt.Errorf("failed to load watch page for video %s: %w", videoID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: watch page returned status %d",
			ErrVideoUnavailable, resp.StatusCode())
	}

	match := captionTracksPattern.FindSubmatch(resp.Body())
	if match == nil {
		return nil, ErrNoTranscript
	}

	var tracks []captionTrack
	if err := json.Unmarshal(match[1], &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse caption track metadata for video %s: %w", videoID, err)
	}

	if len(tracks) == 0 {
		return nil, ErrNoTranscript
	}

	for i := range tracks {
		if strings.HasPrefix(tracks[i].LanguageCode, "en") {
			return &tracks[i], nil
		}
	}

	return &tracks[0], nil
}
