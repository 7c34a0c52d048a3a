package service

import (
	"atomic_sensei_backend/internal/config"
	"fmt"
	"sync/atomic"
	"time"
)

// DeliveryPlan says when the next lesson should arrive.
type DeliveryPlan struct {
	IntervalMinutes int    `json:"intervalMinutes"`
	IsReview        bool   `json:"isReview"`
	Reason          string `json:"reason"`
}

// IntervalScheduler is the deterministic spaced repetition rule used when
// the model cannot plan the next delivery. Its settings can be swapped at
// runtime.
type IntervalScheduler struct {
	cfg atomic.Pointer[config.ScheduleConfig]
}

func NewIntervalScheduler(cfg config.ScheduleConfig) *IntervalScheduler {
	s := &IntervalScheduler{}
	s.Update(cfg)
	return s
}

func (s *IntervalScheduler) Update(cfg config.ScheduleConfig) {
	if cfg.MinIntervalMinutes < 1 {
		cfg.MinIntervalMinutes = 1
	}
	if cfg.MaxIntervalMinutes < cfg.MinIntervalMinutes {
		cfg.MaxIntervalMinutes = cfg.MinIntervalMinutes
	}
	s.cfg.Store(&cfg)
}

func (s *IntervalScheduler) Config() config.ScheduleConfig {
	return *s.cfg.Load()
}

// Clamp bounds minutes to the configured interval range.
func (s *IntervalScheduler) Clamp(minutes int) int {
	cfg := s.cfg.Load()
	if minutes < cfg.MinIntervalMinutes {
		return cfg.MinIntervalMinutes
	}
	if minutes > cfg.MaxIntervalMinutes {
		return cfg.MaxIntervalMinutes
	}
	return minutes
}

// Plan maps a quiz percentage to the next interval. Low scores come back
// soon as a review; passing scores double the base interval per review.
func (s *IntervalScheduler) Plan(percentage, reviewCount int) DeliveryPlan {
	cfg := s.cfg.Load()

	switch {
	case percentage < 50:
		return DeliveryPlan{
			IntervalMinutes: s.Clamp(cfg.LowScoreMinutes),
			IsReview:        true,
			Reason:          fmt.Sprintf("Score of %d%% needs a quick review", percentage),
		}
	case percentage < 80:
		return DeliveryPlan{
			IntervalMinutes: s.Clamp(cfg.MidScoreMinutes),
			IsReview:        true,
			Reason:          fmt.Sprintf("Score of %d%% would benefit from a review", percentage),
		}
	}

	minutes := cfg.BasePassMinutes
	for i := 0; i < reviewCount && minutes < cfg.MaxIntervalMinutes; i++ {
		minutes *= 2
	}
	return DeliveryPlan{
		IntervalMinutes: s.Clamp(minutes),
		Reason:          fmt.Sprintf("Score of %d%% after %d reviews, moving on", percentage, reviewCount),
	}
}

type TimeRemaining struct {
	Minutes     int    `json:"minutes"`
	Seconds     int    `json:"seconds"`
	TotalMillis int64  `json:"totalMillis"`
	Formatted   string `json:"formatted"`
	Expired     bool   `json:"expired"`
}

// Remaining reports the countdown to expiry as of now.
func Remaining(expiry, now time.Time) TimeRemaining {
	diff := expiry.Sub(now)
	if diff <= 0 {
		return TimeRemaining{Formatted: "00:00", Expired: true}
	}

	total := int(diff / time.Second)
	minutes, seconds := total/60, total%60
	return TimeRemaining{
		Minutes:     minutes,
		Seconds:     seconds,
		TotalMillis: diff.Milliseconds(),
		Formatted:   fmt.Sprintf("%02d:%02d", minutes, seconds),
	}
}
