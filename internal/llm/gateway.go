// Package llm exposes the model behind a probe-gated completion gateway.
package llm

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/venture-check/internal/resilience"
	"github.com/sells-group/venture-check/pkg/anthropic"
)

// jsonSystemPrompt forces bare-JSON responses for structured calls.
const jsonSystemPrompt = "You are a precise startup analyst. Respond with a single valid JSON object and nothing else: no markdown fences, no commentary."

const probeMaxTokens = 16

// Config carries the gateway's model and retry settings.
type Config struct {
	Model          string
	Temperature    float64
	ProbeTimeout   time.Duration
	RequestTimeout time.Duration
	Retry          resilience.RetryConfig
}

// CompletionRequest is one prompt sent through the gateway.
type CompletionRequest struct {
	Prompt    string
	MaxTokens int64
	// WantJSON adds the JSON-only system prompt.
	WantJSON bool
	// Phase labels the call for cost attribution logs.
	Phase string
}

// Gateway wraps the Anthropic client with availability probing, retry,
// and cost logging. Availability is decided once at construction: a
// probe that cannot complete a trivial message marks the gateway down
// and every later call fails fast instead of burning the retry budget.
type Gateway struct {
	client    anthropic.Client
	cfg       Config
	available bool
}

// NewGateway builds a gateway and probes the API once. A nil client
// (no API key configured) yields an unavailable gateway without any
// network call.
func NewGateway(ctx context.Context, client anthropic.Client, cfg Config) *Gateway {
	g := &Gateway{client: client, cfg: cfg}
	if client == nil {
		return g
	}

	probeCtx := ctx
	if cfg.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, cfg.ProbeTimeout)
		defer cancel()
	}

	_, err := client.CreateMessage(probeCtx, anthropic.MessageRequest{
		Model:     cfg.Model,
		MaxTokens: probeMaxTokens,
		Messages:  []anthropic.Message{{Role: "user", Content: "Reply with OK."}},
	})
	if err != nil {
		zap.L().Warn("llm probe failed, gateway unavailable",
			zap.String("model", cfg.Model),
			zap.Error(err),
		)
		return g
	}

	g.available = true
	return g
}

// Available reports whether the construction-time probe succeeded.
func (g *Gateway) Available() bool { return g.available }

// Complete sends the prompt and returns the raw text response. Only
// transient API failures are retried; an empty completion is an error.
func (g *Gateway) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if !g.available {
		return "", eris.New("llm: gateway unavailable")
	}

	if g.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.RequestTimeout)
		defer cancel()
	}

	msgReq := anthropic.MessageRequest{
		Model:       g.cfg.Model,
		MaxTokens:   req.MaxTokens,
		Messages:    []anthropic.Message{{Role: "user", Content: req.Prompt}},
		Temperature: &g.cfg.Temperature,
	}
	if req.WantJSON {
		msgReq.System = []anthropic.SystemBlock{{Text: jsonSystemPrompt}}
	}

	retryCfg := g.cfg.Retry
	retryCfg.ShouldRetry = resilience.IsTransientAPIFailure
	if retryCfg.OnRetry == nil {
		retryCfg.OnRetry = resilience.RetryLogger("anthropic", "create_message")
	}

	resp, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return g.client.CreateMessage(ctx, msgReq)
	})
	if err != nil {
		return "", eris.Wrap(err, "llm: complete")
	}

	resp.Usage.LogCost(g.cfg.Model, req.Phase)

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", eris.New("llm: empty completion")
	}
	return text, nil
}
