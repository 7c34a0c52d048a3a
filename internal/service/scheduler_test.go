package service

import (
	"atomic_sensei_backend/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func defaultSchedule() config.ScheduleConfig {
	return config.ScheduleConfig{
		MinIntervalMinutes:    1,
		MaxIntervalMinutes:    10080,
		LowScoreMinutes:       10,
		MidScoreMinutes:       30,
		BasePassMinutes:       60,
		DefaultSuggestMinutes: 30,
	}
}

func TestIntervalSchedulerPlan(t *testing.T) {
	s := NewIntervalScheduler(defaultSchedule())

	cases := []struct {
		name         string
		percentage   int
		reviews      int
		minutes      int
		expectReview bool
	}{
		{"failing", 20, 0, 10, true},
		{"boundary below mid", 49, 3, 10, true},
		{"mid", 50, 0, 30, true},
		{"upper mid", 79, 0, 30, true},
		{"pass first time", 80, 0, 60, false},
		{"pass after two reviews", 95, 2, 240, false},
		{"clamped", 100, 20, 10080, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan := s.Plan(tc.percentage, tc.reviews)
			assert.Equal(t, tc.minutes, plan.IntervalMinutes)
			assert.Equal(t, tc.expectReview, plan.IsReview)
			assert.NotEmpty(t, plan.Reason)
		})
	}
}

func TestIntervalSchedulerUpdate(t *testing.T) {
	s := NewIntervalScheduler(defaultSchedule())

	cfg := defaultSchedule()
	cfg.LowScoreMinutes = 5
	cfg.MaxIntervalMinutes = 120
	s.Update(cfg)

	assert.Equal(t, 5, s.Plan(10, 0).IntervalMinutes)
	assert.Equal(t, 120, s.Plan(90, 5).IntervalMinutes)
	assert.Equal(t, 1, s.Clamp(-4))
}

func TestRemaining(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	r := Remaining(now.Add(4*time.Minute+7*time.Second), now)
	assert.Equal(t, 4, r.Minutes)
	assert.Equal(t, 7, r.Seconds)
	assert.Equal(t, "04:07", r.Formatted)
	assert.Equal(t, int64(247000), r.TotalMillis)
	assert.False(t, r.Expired)

	r = Remaining(now.Add(-time.Second), now)
	assert.True(t, r.Expired)
	assert.Equal(t, "00:00", r.Formatted)
}
