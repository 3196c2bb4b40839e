package scheduler

import (
	"testing"

	"nexuscore-backend/internal/config"
	"nexuscore-backend/internal/jobs"

	"github.com/stretchr/testify/assert"
)

func TestNewScheduler_RegistersJobs(t *testing.T) {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{
		SweepIdleSessions:       "0 */10 * * * *",
		RefreshCommunityInsight: "0 0 * * * *",
	}}
	s := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, cfg))
	assert.Equal(t, 2, s.Entries())
	assert.True(t, s.IsRunning())

	s.Start()
	s.Stop()
}

func TestNewScheduler_SkipsBadSpec(t *testing.T) {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{
		SweepIdleSessions:       "every tuesday",
		RefreshCommunityInsight: "0 0 * * * *",
	}}
	s := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, cfg))
	assert.Equal(t, 1, s.Entries())
}
