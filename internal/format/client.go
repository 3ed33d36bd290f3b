package format

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Style is the house formatting configuration sent on every request.
// It never varies per caller; formatting is a pure transform.
type Style struct {
	Parser         string `json:"parser"`
	PrintWidth     int    `json:"printWidth"`
	TabWidth       int    `json:"tabWidth"`
	UseTabs        bool   `json:"useTabs"`
	SingleQuote    bool   `json:"singleQuote"`
	BracketSpacing bool   `json:"bracketSpacing"`
}

func houseStyle() Style {
	return Style{
		Parser:         "solidity-parse",
		PrintWidth:     100,
		TabWidth:       4,
		UseTabs:        false,
		SingleQuote:    false,
		BracketSpacing: true,
	}
}

// EngineError carries the formatter engine's own message (usually a syntax
// error in the submitted source) so the route can surface it.
type EngineError struct {
	Message string
}

func (e *EngineError) Error() string {
	return e.Message
}

// Client talks to the Solidity formatter engine.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type formatRequest struct {
	Code    string `json:"code"`
	Options Style  `json:"options"`
}

type formatResponse struct {
	Formatted string `json:"formatted"`
	Error     string `json:"error"`
}

// Format runs the engine once over the given source. No retries.
func (c *Client) Format(ctx context.Context, code string) (string, error) {
	b, err := json.Marshal(formatRequest{Code: code, Options: houseStyle()})
	if err != nil {
		return "", fmt.Errorf("format marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/format", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("formatter request failed: %w", err)
	}
	defer resp.Body.Close()

	var out formatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("formatter decode: %w", err)
	}

	if resp.StatusCode >= 400 || out.Error != "" {
		if out.Error != "" {
			return "", &EngineError{Message: out.Error}
		}
		return "", fmt.Errorf("formatter error (status %d)", resp.StatusCode)
	}

	return out.Formatted, nil
}
