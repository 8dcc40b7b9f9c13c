package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrNoAPIKey means the client cannot reach the scoring service at all; the
// gate treats it like any other upstream failure (fail open).
var ErrNoAPIKey = errors.New("perspective api key not configured")

// Scores carries the six attribute probabilities returned by the scoring
// service, each in [0,1].
type Scores struct {
	Toxicity       float64 `json:"toxicity"`
	SevereToxicity float64 `json:"severeToxicity"`
	IdentityAttack float64 `json:"identityAttack"`
	Insult         float64 `json:"insult"`
	Profanity      float64 `json:"profanity"`
	Threat         float64 `json:"threat"`
}

type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(endpoint, apiKey string, rps float64) *Client {
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)+1),
	}
}

type analyzeRequest struct {
	Comment             analyzeComment      `json:"comment"`
	RequestedAttributes map[string]struct{} `json:"requestedAttributes"`
}

type analyzeComment struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	AttributeScores map[string]struct {
		SummaryScore struct {
			Value float64 `json:"value"`
		} `json:"summaryScore"`
	} `json:"attributeScores"`
}

var requestedAttributes = []string{
	"TOXICITY", "SEVERE_TOXICITY", "IDENTITY_ATTACK", "INSULT", "PROFANITY", "THREAT",
}

// Analyze scores one piece of text against the six fixed attributes.
func (c *Client) Analyze(ctx context.Context, text string) (Scores, error) {
	if c.apiKey == "" {
		return Scores{}, ErrNoAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Scores{}, fmt.Errorf("rate limiter: %w", err)
	}

	var reqBody analyzeRequest
	reqBody.Comment.Text = text
	reqBody.RequestedAttributes = make(map[string]struct{}, len(requestedAttributes))
	for _, attr := range requestedAttributes {
		reqBody.RequestedAttributes[attr] = struct{}{}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Scores{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+c.apiKey, bytes.NewReader(payload))
	if err != nil {
		return Scores{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Scores{}, fmt.Errorf("perspective request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Scores{}, fmt.Errorf("perspective returned status %d", resp.StatusCode)
	}

	var body analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Scores{}, fmt.Errorf("decode response: %w", err)
	}

	score := func(attr string) float64 {
		return body.AttributeScores[attr].SummaryScore.Value
	}
	return Scores{
		Toxicity:       score("TOXICITY"),
		SevereToxicity: score("SEVERE_TOXICITY"),
		IdentityAttack: score("IDENTITY_ATTACK"),
		Insult:         score("INSULT"),
		Profanity:      score("PROFANITY"),
		Threat:         score("THREAT"),
	}, nil
}
