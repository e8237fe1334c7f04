// Package analyze talks to the counselor model: prompt construction,
// the chat-completion round trip, and response parsing. Everything that
// judges the essay lives on the other side of this boundary.
package analyze

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/essayflow/essayflow/internal/model"
)

// Default model identifiers. The fallback is tried once when the provider
// rejects the primary.
const (
	DefaultModel         = "gemini-2.5-pro"
	DefaultFallbackModel = "gemini-1.5-pro"
)

// Options configures a Client beyond its credential.
type Options struct {
	BaseURL       string // OpenAI-compatible endpoint; empty means the provider default
	Model         string
	FallbackModel string
}

// Client performs essay analysis against one credential. Construct one per
// credential value and keep it for the session; see Cache.
type Client struct {
	api      *openai.Client
	model    string
	fallback string
}

// NewClient builds a client for the given credential.
func NewClient(credential string, opts Options) (*Client, error) {
	if credential == "" {
		return nil, ErrMissingCredential
	}

	cfg := openai.DefaultConfig(credential)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	mdl := opts.Model
	if mdl == "" {
		mdl = DefaultModel
	}
	fallback := opts.FallbackModel
	if fallback == "" {
		fallback = DefaultFallbackModel
	}

	return &Client{
		api:      openai.NewClientWithConfig(cfg),
		model:    mdl,
		fallback: fallback,
	}, nil
}

// Analyze runs one full analysis round trip: prompt, completion, parse.
// The ctx governs the network call; the caller decides about staleness
// (a session that has moved on just drops the result).
func (c *Client) Analyze(ctx context.Context, essay string, schools []model.School) (*model.AnalysisResult, error) {
	if len(essay) < model.MinEssayLen {
		return nil, ErrEssayTooShort
	}

	prompt := BuildPrompt(essay, schools)

	raw, err := c.complete(ctx, c.model, prompt)
	if err != nil {
		classified := classify(err)
		if !errors.Is(classified, ErrUnsupportedModel) {
			return nil, classified
		}
		slog.Warn("primary model rejected, retrying fallback",
			"model", c.model, "fallback", c.fallback)
		raw, err = c.complete(ctx, c.fallback, prompt)
		if err != nil {
			// Fallback failed too; from here on it is a plain transport failure.
			return nil, classify(err)
		}
	}

	return ParseResult(raw)
}

func (c *Client) complete(ctx context.Context, mdl, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: mdl,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("provider returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Cache is an explicit credential→client mapping. It replaces the usual
// module-level singleton so tests and sessions can own their instances.
type Cache struct {
	mu      sync.Mutex
	opts    Options
	clients map[string]*Client
}

// NewCache creates a cache whose clients share opts.
func NewCache(opts Options) *Cache {
	return &Cache{opts: opts, clients: make(map[string]*Client)}
}

// Get returns the client for credential, constructing it on first use.
func (c *Cache) Get(credential string) (*Client, error) {
	if credential == "" {
		return nil, ErrMissingCredential
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cl, ok := c.clients[credential]; ok {
		return cl, nil
	}
	cl, err := NewClient(credential, c.opts)
	if err != nil {
		return nil, err
	}
	c.clients[credential] = cl
	return cl, nil
}
