package reasoning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Second

// HTTPProvider calls the external explanation service. A single attempt, no
// retries: any failure is handled by the caller's deterministic fallback.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider builds a provider for the given service base URL.
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type explainRequest struct {
	Prompt string `json:"prompt"`
}

type explainResponse struct {
	Reasoning string `json:"reasoning"`
}

// Explain posts the match description and returns the service's reasoning
// string. Timeouts are indistinguishable from network failure.
func (p *HTTPProvider) Explain(ctx context.Context, payload Payload) (string, error) {
	body, err := json.Marshal(explainRequest{Prompt: buildPrompt(payload)})
	if err != nil {
		return "", fmt.Errorf("encode explain request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/explain", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build explain request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call explanation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("explanation service returned status %d", resp.StatusCode)
	}

	var decoded explainResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode explain response: %w", err)
	}
	if strings.TrimSpace(decoded.Reasoning) == "" {
		return "", fmt.Errorf("explanation service response missing reasoning")
	}
	return decoded.Reasoning, nil
}

func buildPrompt(payload Payload) string {
	details, _ := json.Marshal(payload.Details)
	return fmt.Sprintf(
		"Explain in 2-4 sentences why %s (subject: %s, %d years experience, classes: %s) "+
			"is a good substitute for %s (subject: %s, %d years experience, classes: %s). "+
			"The computed compatibility score is %d out of 100. Match details: %s",
		payload.Candidate.Name, payload.Candidate.Subject, payload.Candidate.Experience, strings.Join(payload.Candidate.Classes, ", "),
		payload.Absent.Name, payload.Absent.Subject, payload.Absent.Experience, strings.Join(payload.Absent.Classes, ", "),
		payload.Score, string(details),
	)
}
