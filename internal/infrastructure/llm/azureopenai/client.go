package azureopenai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
	"github.com/okondratev/devdocs-qa/internal/infrastructure/resilience"
)

type Config struct {
	Endpoint   string
	Deployment string
	APIVersion string
	APIKey     string

	DefaultMaxTokens   int
	DefaultTemperature float64
	RateLimitRPS       float64
	RequestTimeout     time.Duration

	Executor *resilience.Executor
}

// Client talks to an Azure OpenAI chat-completions deployment. Calls are rate
// limited client-side and routed through the resilience executor when one is
// configured.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func New(cfg Config) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-05-01-preview"
	}
	if cfg.DefaultMaxTokens <= 0 {
		cfg.DefaultMaxTokens = 1024
	}
	if cfg.DefaultTemperature < 0 {
		cfg.DefaultTemperature = 0
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), 1)
	}

	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
	}
}

// Generate sends one prompt as a single user message and returns the first
// choice's content.
func (c *Client) Generate(ctx context.Context, prompt string, opts domain.GenerationOptions) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.cfg.DefaultMaxTokens
	}
	temperature := c.cfg.DefaultTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("generation rate limit wait: %w", err)
		}
	}

	reqBody := map[string]any{
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}

	var content string
	call := func(callCtx context.Context) error {
		var response struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := c.postJSON(callCtx, c.completionsURL(), reqBody, &response, "generate"); err != nil {
			return err
		}
		if len(response.Choices) == 0 {
			return fmt.Errorf("generate: response carries no choices")
		}
		content = response.Choices[0].Message.Content
		return nil
	}

	var err error
	if c.cfg.Executor != nil {
		err = c.cfg.Executor.Execute(ctx, "llm.generate", call, classifyGenerationError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", wrapTemporaryIfNeeded("generate", err)
	}
	return strings.TrimSpace(content), nil
}

func (c *Client) completionsURL() string {
	return fmt.Sprintf(
		"%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.cfg.Endpoint, c.cfg.Deployment, c.cfg.APIVersion,
	)
}
