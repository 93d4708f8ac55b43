package workflow

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/venture-check/internal/analysis"
	"github.com/sells-group/venture-check/internal/llm"
	"github.com/sells-group/venture-check/internal/model"
)

// RunQuick executes the reduced validation flow: same source
// collection, but a headline-metrics context and a cheaper prompt.
// Like Run, it never returns an error.
func (e *Engine) RunQuick(ctx context.Context, req Request) (result *model.QuickResult) {
	start := time.Now()
	log := zap.L().With(zap.String("flow", "quick"))

	result = &model.QuickResult{
		Idea:          req.Idea,
		ServiceStatus: e.ServiceStatus(),
		Timestamp:     start.UTC(),
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("quick workflow panic recovered", zap.Any("panic", r))
			result.Assessment = model.NewErrorQuickAssessment()
			result.Error = fmt.Sprintf("internal error: %v", r)
		}
		result.ExecutionTime = time.Since(start).Seconds()
	}()

	log.Info("quick workflow started", zap.String("idea", req.Idea))

	result.RawData = e.collect(ctx, req, log)

	if !e.llm.Available() {
		result.Assessment = model.NewErrorQuickAssessment()
		result.Error = "llm gateway unavailable"
		return result
	}

	prompt := analysis.QuickPrompt(req.Idea, analysis.BuildQuickContext(result.RawData))
	text, err := e.llm.Complete(ctx, llm.CompletionRequest{
		Prompt:    prompt,
		MaxTokens: e.cfg.MaxTokensQuick,
		WantJSON:  true,
		Phase:     "quick",
	})
	if err != nil {
		log.Warn("quick llm call failed", zap.Error(err))
		result.Assessment = model.NewErrorQuickAssessment()
		result.Error = err.Error()
		return result
	}

	assessment, err := e.validator.ValidateQuick(text)
	if err != nil {
		log.Warn("quick validation failed", zap.Error(err))
		result.Assessment = model.NewErrorQuickAssessment()
		result.Error = err.Error()
		return result
	}

	result.Assessment = assessment
	return result
}
