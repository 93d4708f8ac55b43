package workflow

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/venture-check/internal/model"
)

// BatchRequest validates several ideas with one set of source flags.
type BatchRequest struct {
	Ideas              []string
	IncludeTrends      bool
	IncludeCompetitors bool
	IncludeCommunity   bool
}

// RunBatch validates every idea with bounded concurrency. Items are
// isolated: one idea's failure (including a panic) yields its own
// error envelope and never aborts the rest. The only error case is a
// batch exceeding the configured size cap.
func (e *Engine) RunBatch(ctx context.Context, req BatchRequest) ([]*model.ValidationResult, error) {
	if len(req.Ideas) == 0 {
		return nil, eris.New("workflow: empty batch")
	}
	if maxItems := e.cfg.BatchMaxItems; maxItems > 0 && len(req.Ideas) > maxItems {
		return nil, eris.Errorf("workflow: batch size %d exceeds limit %d", len(req.Ideas), maxItems)
	}

	limit := e.cfg.BatchMaxConcurrent
	if limit <= 0 {
		limit = 1
	}

	zap.L().Info("batch started",
		zap.Int("items", len(req.Ideas)),
		zap.Int("max_concurrent", limit),
	)

	results := make([]*model.ValidationResult, len(req.Ideas))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, idea := range req.Ideas {
		g.Go(func() error {
			// Run recovers its own panics, so an item can never
			// poison the group.
			results[i] = e.Run(gctx, Request{
				Idea:               idea,
				IncludeTrends:      req.IncludeTrends,
				IncludeCompetitors: req.IncludeCompetitors,
				IncludeCommunity:   req.IncludeCommunity,
			})
			return nil
		})
	}

	// Closures never return errors; Wait only joins the goroutines.
	_ = g.Wait()
	return results, nil
}
