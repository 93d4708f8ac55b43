package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/venture-check/internal/analysis"
	"github.com/sells-group/venture-check/internal/llm"
	"github.com/sells-group/venture-check/internal/resilience"
	"github.com/sells-group/venture-check/internal/source"
	"github.com/sells-group/venture-check/internal/workflow"
	"github.com/sells-group/venture-check/pkg/anthropic"
	"github.com/sells-group/venture-check/pkg/reddit"
	"github.com/sells-group/venture-check/pkg/tavily"
	"github.com/sells-group/venture-check/pkg/trends"
)

// qualityRulesFile optionally overrides the validator's built-in
// quality ruleset when present in the working directory.
const qualityRulesFile = "quality.yaml"

// initEngine wires clients, sources, gateway, and validator from
// config. Sources whose keys are absent get nil clients and report
// themselves unavailable; the workflow degrades instead of failing.
func initEngine(ctx context.Context) (*workflow.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var trendsClient trends.Client
	if cfg.Trends.Key != "" {
		trendsClient = trends.NewClient(cfg.Trends.Key, trends.WithBaseURL(cfg.Trends.BaseURL))
	} else {
		zap.L().Warn("trends key not set, trends source disabled")
	}

	var tavilyClient tavily.Client
	if cfg.Tavily.Key != "" {
		tavilyClient = tavily.NewClient(cfg.Tavily.Key, tavily.WithBaseURL(cfg.Tavily.BaseURL))
	} else {
		zap.L().Warn("tavily key not set, competitor source disabled")
	}

	redditClient := reddit.NewClient(
		reddit.WithBaseURL(cfg.Reddit.BaseURL),
		reddit.WithUserAgent(cfg.Reddit.UserAgent),
	)

	gateway := llm.NewGateway(ctx, anthropic.NewClient(cfg.Anthropic.Key), llm.Config{
		Model:          cfg.Anthropic.Model,
		Temperature:    cfg.Anthropic.Temperature,
		ProbeTimeout:   time.Duration(cfg.Anthropic.ProbeTimeoutSecs) * time.Second,
		RequestTimeout: time.Duration(cfg.Anthropic.RequestTimeoutSecs) * time.Second,
		Retry: resilience.RetryConfig{
			MaxAttempts:    cfg.Retry.MaxAttempts,
			InitialBackoff: time.Duration(cfg.Retry.InitialBackoffSecs * float64(time.Second)),
			MaxBackoff:     time.Duration(cfg.Retry.MaxBackoffSecs * float64(time.Second)),
		},
	})

	rules := analysis.DefaultQualityRules()
	if _, err := os.Stat(qualityRulesFile); err == nil {
		loaded, err := analysis.LoadQualityRules(qualityRulesFile)
		if err != nil {
			zap.L().Warn("quality rules file ignored", zap.Error(err))
		} else {
			rules = loaded
			zap.L().Info("quality rules loaded", zap.String("file", qualityRulesFile))
		}
	}

	engine := workflow.NewEngine(
		source.NewTrendsSource(trendsClient, cfg.Trends.Geo),
		source.NewCompetitorSource(tavilyClient, cfg.Tavily.MaxResults),
		source.NewCommunitySource(redditClient, cfg.Reddit.Limit),
		gateway,
		analysis.NewValidator(rules),
		workflow.Config{
			StagePause:         time.Duration(cfg.Workflow.StagePauseMs) * time.Millisecond,
			MaxTokensFull:      cfg.Anthropic.MaxTokensFull,
			MaxTokensQuick:     cfg.Anthropic.MaxTokensQuick,
			BatchMaxConcurrent: cfg.Workflow.BatchMaxConcurrent,
			BatchMaxItems:      cfg.Workflow.BatchMaxItems,
		},
	)

	return engine, nil
}
