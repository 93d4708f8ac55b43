// Package workflow sequences source collection, LLM analysis, and
// validation for one idea. Every run resolves to a schema-valid
// envelope: failures substitute the deterministic error analysis
// instead of propagating.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/venture-check/internal/analysis"
	"github.com/sells-group/venture-check/internal/llm"
	"github.com/sells-group/venture-check/internal/model"
)

// Stage names the steps of a validation run, used in logs.
type Stage string

const (
	StageStart       Stage = "START"
	StageTrends      Stage = "TRENDS"
	StageCompetitors Stage = "COMPETITORS"
	StageCommunity   Stage = "COMMUNITY"
	StageAnalyze     Stage = "LLM_ANALYZE"
	StageValidate    Stage = "VALIDATE"
	StageDone        Stage = "DONE"
	StageFailed      Stage = "FAILED"
)

// TrendsSource fetches search-interest signals for an idea.
type TrendsSource interface {
	Available() bool
	Fetch(ctx context.Context, idea string) *model.TrendsData
}

// CompetitorSource fetches competitor-search signals for an idea.
type CompetitorSource interface {
	Available() bool
	Fetch(ctx context.Context, idea string) *model.CompetitorData
}

// CommunitySource fetches community-activity signals for an idea.
type CommunitySource interface {
	Available() bool
	Fetch(ctx context.Context, idea string) *model.CommunityData
}

// Completer is the LLM gateway surface the workflow depends on.
type Completer interface {
	Available() bool
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// Config carries the workflow's pacing and sizing knobs.
type Config struct {
	// StagePause spaces data-collection stages to respect provider
	// rate limits. Zero disables pacing.
	StagePause         time.Duration
	MaxTokensFull      int64
	MaxTokensQuick     int64
	BatchMaxConcurrent int
	BatchMaxItems      int
}

// Request selects which sources feed one validation run.
type Request struct {
	Idea               string
	IncludeTrends      bool
	IncludeCompetitors bool
	IncludeCommunity   bool
}

// Engine runs validation workflows. Safe for concurrent use; the
// stage pacer is shared so parallel runs still respect provider
// rate limits.
type Engine struct {
	trends      TrendsSource
	competitors CompetitorSource
	community   CommunitySource
	llm         Completer
	validator   *analysis.Validator
	cfg         Config
	pacer       *rate.Limiter
}

// NewEngine wires the workflow's collaborators.
func NewEngine(trends TrendsSource, competitors CompetitorSource, community CommunitySource, completer Completer, validator *analysis.Validator, cfg Config) *Engine {
	pacer := rate.NewLimiter(rate.Inf, 1)
	if cfg.StagePause > 0 {
		pacer = rate.NewLimiter(rate.Every(cfg.StagePause), 1)
	}
	return &Engine{
		trends:      trends,
		competitors: competitors,
		community:   community,
		llm:         completer,
		validator:   validator,
		cfg:         cfg,
		pacer:       pacer,
	}
}

// ServiceStatus reports per-collaborator availability.
func (e *Engine) ServiceStatus() map[string]bool {
	return map[string]bool{
		model.SourceTrends:      e.trends.Available(),
		model.SourceCompetitors: e.competitors.Available(),
		model.SourceCommunity:   e.community.Available(),
		model.SourceLLM:         e.llm.Available(),
	}
}

// Run executes the full validation workflow. It never returns an
// error: any failure, including a panic in a collaborator, resolves
// to an envelope holding the error-analysis placeholder.
func (e *Engine) Run(ctx context.Context, req Request) (result *model.ValidationResult) {
	start := time.Now()
	jobID := uuid.NewString()
	log := zap.L().With(zap.String("job_id", jobID))

	result = &model.ValidationResult{
		JobID:         jobID,
		Idea:          req.Idea,
		ServiceStatus: e.ServiceStatus(),
		Timestamp:     start.UTC(),
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("workflow panic recovered", zap.Any("panic", r))
			result.Analysis = model.NewErrorAnalysis()
			result.Error = fmt.Sprintf("internal error: %v", r)
		}
		result.ExecutionTime = time.Since(start).Seconds()
		stage := StageDone
		if result.Error != "" {
			stage = StageFailed
		}
		log.Info("workflow finished",
			zap.String("stage", string(stage)),
			zap.Float64("execution_time", result.ExecutionTime),
		)
	}()

	log.Info("workflow started", zap.String("stage", string(StageStart)), zap.String("idea", req.Idea))

	result.RawData = e.collect(ctx, req, log)

	log.Info("stage", zap.String("stage", string(StageAnalyze)))
	if !e.llm.Available() {
		result.Analysis = model.NewErrorAnalysis()
		result.Error = "llm gateway unavailable"
		return result
	}

	prompt := analysis.ComprehensivePrompt(req.Idea, analysis.BuildComprehensiveContext(req.Idea, result.RawData))
	text, err := e.llm.Complete(ctx, llm.CompletionRequest{
		Prompt:    prompt,
		MaxTokens: e.cfg.MaxTokensFull,
		WantJSON:  true,
		Phase:     "comprehensive",
	})
	if err != nil {
		log.Warn("llm analysis failed", zap.Error(err))
		result.Analysis = model.NewErrorAnalysis()
		result.Error = err.Error()
		return result
	}

	log.Info("stage", zap.String("stage", string(StageValidate)))
	parsed, issues, err := e.validator.ValidateComprehensive(text)
	if err != nil {
		log.Warn("validation failed", zap.Error(err))
		result.Analysis = model.NewErrorAnalysis()
		result.Error = err.Error()
		return result
	}

	parsed.Metadata.ConfidenceScore = analysis.RecomputeConfidence(
		parsed.Metadata.ConfidenceScore, result.RawData, len(issues))
	result.Analysis = parsed
	return result
}

// collect runs the enabled data-collection stages in order, pacing
// between them. A stage failure lands in its payload's Error field and
// never halts collection.
func (e *Engine) collect(ctx context.Context, req Request, log *zap.Logger) model.SourceData {
	var data model.SourceData

	if req.IncludeTrends {
		e.pace(ctx)
		log.Info("stage", zap.String("stage", string(StageTrends)))
		data.Trends = e.trends.Fetch(ctx, req.Idea)
	}
	if req.IncludeCompetitors {
		e.pace(ctx)
		log.Info("stage", zap.String("stage", string(StageCompetitors)))
		data.Competitors = e.competitors.Fetch(ctx, req.Idea)
	}
	if req.IncludeCommunity {
		e.pace(ctx)
		log.Info("stage", zap.String("stage", string(StageCommunity)))
		data.Community = e.community.Fetch(ctx, req.Idea)
	}

	return data
}

func (e *Engine) pace(ctx context.Context) {
	// A canceled context surfaces in the stage itself; pacing just
	// stops blocking.
	_ = e.pacer.Wait(ctx)
}
