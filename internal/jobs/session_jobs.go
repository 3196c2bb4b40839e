package jobs

import (
	"context"

	"nexuscore-backend/internal/logger"
)

// SweepIdleSessions evicts sessions unseen for longer than the idle TTL and
// stops their pending flow timers.
func (jr *JobRunner) SweepIdleSessions() {
	jr.runWithRecovery("SweepIdleSessions", func() {
		evicted, err := jr.services.Sessions.SweepIdle(context.Background())
		if err != nil {
			logger.Error("Failed to sweep idle sessions", "error", err)
			return
		}
		logger.Info("Idle sessions evicted", "count", len(evicted))
	})
}

// RefreshCommunityInsight recomputes the feed insight of every live session.
func (jr *JobRunner) RefreshCommunityInsight() {
	jr.runWithRecovery("RefreshCommunityInsight", func() {
		n, err := jr.services.Insight.RefreshAll(context.Background())
		if err != nil {
			logger.Error("Failed to refresh community insight", "error", err)
			return
		}
		logger.Info("Community insight refreshed", "sessions", n)
	})
}
