package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const anthropicVersion = "2023-06-01"

// Client talks to the Anthropic Messages API. Every call is attempted
// exactly once; callers own retry policy (there is none in this app).
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int

	defaultClient *http.Client
	streamClient  *http.Client // no client timeout; streams are bounded by ctx
}

type Options struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
}

func NewClient(opt Options) *Client {
	if opt.BaseURL == "" {
		opt.BaseURL = "https://api.anthropic.com"
	}
	if opt.MaxTokens <= 0 {
		opt.MaxTokens = 1024
	}
	return &Client{
		baseURL:       strings.TrimRight(opt.BaseURL, "/"),
		apiKey:        opt.APIKey,
		model:         opt.Model,
		maxTokens:     opt.MaxTokens,
		defaultClient: &http.Client{Timeout: 60 * time.Second},
		streamClient:  &http.Client{Timeout: 0},
	}
}

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
	Stream    bool      `json:"stream,omitempty"`
}

// Complete runs a single non-streaming generation and returns the text of
// the first text content block.
func (c *Client) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	resp, err := c.post(ctx, c.defaultClient, messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    system,
		Messages:  messages,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("anthropic read: %w", err)
	}

	if resp.StatusCode >= 400 {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = string(body)
		}
		return "", fmt.Errorf("anthropic error (status %d): %s", resp.StatusCode, msg)
	}

	var text string
	gjson.GetBytes(body, "content").ForEach(func(_, block gjson.Result) bool {
		if block.Get("type").String() == "text" {
			text = block.Get("text").String()
			return false
		}
		return true
	})
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}
	return text, nil
}

// Stream runs a streaming generation, invoking onDelta for each text delta
// in generation order. It returns once the stream ends, errors, or ctx is
// done; a cancelled ctx aborts the upstream request.
func (c *Client) Stream(ctx context.Context, system string, messages []Message, onDelta func(text string) error) error {
	resp, err := c.post(ctx, c.streamClient, messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    system,
		Messages:  messages,
		Stream:    true,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = string(body)
		}
		return fmt.Errorf("anthropic error (status %d): %s", resp.StatusCode, msg)
	}

	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := sc.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}

		event := gjson.Parse(data)
		switch event.Get("type").String() {
		case "content_block_delta":
			delta := event.Get("delta")
			if delta.Get("type").String() == "text_delta" {
				if err := onDelta(delta.Get("text").String()); err != nil {
					return err
				}
			}
		case "error":
			return fmt.Errorf("anthropic stream error: %s", event.Get("error.message").String())
		case "message_stop":
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("anthropic stream: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, client *http.Client, payload messagesRequest) (*http.Response, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("anthropic marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	return resp, nil
}
