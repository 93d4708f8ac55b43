package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/sells-group/venture-check/internal/workflow"
)

// validateRequest is the body for the single-idea endpoints. Source
// flags default to enabled when omitted.
type validateRequest struct {
	Idea               string `json:"idea"`
	IncludeTrends      *bool  `json:"include_trends"`
	IncludeCompetitors *bool  `json:"include_competitors"`
	IncludeCommunity   *bool  `json:"include_community"`
}

func (r validateRequest) toWorkflow() workflow.Request {
	return workflow.Request{
		Idea:               r.Idea,
		IncludeTrends:      orTrue(r.IncludeTrends),
		IncludeCompetitors: orTrue(r.IncludeCompetitors),
		IncludeCommunity:   orTrue(r.IncludeCommunity),
	}
}

type batchRequest struct {
	Ideas              []string `json:"ideas"`
	IncludeTrends      *bool    `json:"include_trends"`
	IncludeCompetitors *bool    `json:"include_competitors"`
	IncludeCommunity   *bool    `json:"include_community"`
}

func orTrue(b *bool) bool { return b == nil || *b }

func checkIdea(idea string) error {
	n := utf8.RuneCountInString(idea)
	if n < minIdeaLen {
		return fmt.Errorf("idea must be at least %d characters", minIdeaLen)
	}
	if n > maxIdeaLen {
		return fmt.Errorf("idea must be at most %d characters", maxIdeaLen)
	}
	return nil
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := checkIdea(req.Idea); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.engine.Run(r.Context(), req.toWorkflow()))
}

func (s *Server) handleValidateQuick(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := checkIdea(req.Idea); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.engine.RunQuick(r.Context(), req.toWorkflow()))
}

func (s *Server) handleValidateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for i, idea := range req.Ideas {
		if err := checkIdea(idea); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("idea %d: %s", i+1, err))
			return
		}
	}

	results, err := s.engine.RunBatch(r.Context(), workflow.BatchRequest{
		Ideas:              req.Ideas,
		IncludeTrends:      orTrue(req.IncludeTrends),
		IncludeCompetitors: orTrue(req.IncludeCompetitors),
		IncludeCommunity:   orTrue(req.IncludeCommunity),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(results),
		"results": results,
	})
}

// handleHealth reports aggregate health: healthy when every collaborator
// is up, degraded while at least half are, unhealthy below that.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	services := s.engine.ServiceStatus()

	up := 0
	for _, ok := range services {
		if ok {
			up++
		}
	}

	status := "healthy"
	code := http.StatusOK
	switch {
	case up == len(services):
	case up*2 >= len(services):
		status = "degraded"
	default:
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":   status,
		"services": services,
	})
}
