package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://www.youtube.com"
	defaultTimeout = 15 * time.Second
)

var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscript        = errors.New("no transcript found for this video")
)

// Segment is one timed caption line in provider order.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Client fetches a video's caption track from the timedtext endpoint.
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   "en",
		httpClient: &http.Client{Timeout: timeout},
	}
}

// timedTextResponse mirrors the json3 timedtext payload. Events without
// segs are styling markers and carry no caption text.
type timedTextResponse struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func (c *Client) FetchTranscript(ctx context.Context, videoID string) ([]Segment, error) {
	query := url.Values{}
	query.Set("v", videoID)
	query.Set("lang", c.language)
	query.Set("fmt", "json3")

	reqURL := c.baseURL + "/api/timedtext?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrTranscriptsDisabled
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNoTranscript
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("timedtext returned status %d", resp.StatusCode)
	}

	var payload timedTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode timedtext: %w", err)
	}
	if len(payload.Events) == 0 {
		return nil, ErrNoTranscript
	}

	segments := make([]Segment, 0, len(payload.Events))
	for _, event := range payload.Events {
		if len(event.Segs) == 0 {
			continue
		}
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		segments = append(segments, Segment{
			Text:     strings.TrimSpace(text.String()),
			Start:    float64(event.StartMs) / 1000,
			Duration: float64(event.DurationMs) / 1000,
		})
	}
	if len(segments) == 0 {
		return nil, ErrNoTranscript
	}
	return segments, nil
}
