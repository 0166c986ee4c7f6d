// Package ai forwards natural-language questions about a JSON document
// to the Groq chat-completions API (OpenAI-compatible). Answers are
// cached per (question, document) pair so repeated questions do not burn
// quota.
package ai

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	json "github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"

	"jsonspect/internal/config"
	"jsonspect/internal/errors"
	"jsonspect/internal/models"
)

const systemPrompt = "You are an expert JSON data analyst. Do not answer anything that is not directly related to the JSON document."

// Client talks to the Groq chat-completions endpoint
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpc       *http.Client
	cache       *lru.Cache[string, string]
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient overrides the HTTP client (tests point it at a fake server)
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpc = c }
}

// WithBaseURL overrides the completion endpoint
func WithBaseURL(u string) Option {
	return func(cl *Client) { cl.baseURL = u }
}

// WithAPIKey sets the key explicitly instead of reading the environment
func WithAPIKey(k string) Option {
	return func(cl *Client) { cl.apiKey = k }
}

// NewClient builds a Client from config. The API key comes from the
// GROQ_API_KEY environment variable (godotenv loads .env in main) unless
// overridden by an option.
func NewClient(cfg config.AIConfig, opts ...Option) (*Client, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = 128
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, errors.NewAIError("failed to create answer cache", err)
	}

	c := &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      os.Getenv("GROQ_API_KEY"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpc:       &http.Client{Timeout: 30 * time.Second},
		cache:       cache,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Ask sends the question with the document as context and returns the
// model's answer.
func (c *Client) Ask(ctx context.Context, question string, doc models.Value) (string, error) {
	if c.apiKey == "" {
		return "", errors.NewAIError("Groq API key not configured", errors.ErrMissingAPIKey)
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return "", errors.NewAIError("failed to serialize document", err)
	}

	cacheKey := answerKey(question, docJSON)
	if answer, ok := c.cache.Get(cacheKey); ok {
		return answer, nil
	}

	prompt := fmt.Sprintf(
		"You are a JSON analyst. Given the following JSON, answer ONLY about its structure or content:\n\n%s\n\nQuestion: %s\n\nConcise, specific answer about the JSON:",
		docJSON, question,
	)

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", errors.NewAIError("failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.NewAIError("failed to build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpc.Do(req)
	if err != nil {
		return "", errors.NewAIError("request to Groq failed", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.NewAIError("failed to read Groq response", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", errors.NewAIError(fmt.Sprintf("Groq returned status %d", res.StatusCode), nil)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", errors.NewAIError("failed to decode Groq response", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", errors.NewAIError("Groq returned no answer", nil)
	}

	answer := parsed.Choices[0].Message.Content
	c.cache.Add(cacheKey, answer)
	return answer, nil
}

func answerKey(question string, docJSON []byte) string {
	h := sha256.New()
	h.Write([]byte(question))
	h.Write([]byte{0})
	h.Write(docJSON)
	return hex.EncodeToString(h.Sum(nil))
}
