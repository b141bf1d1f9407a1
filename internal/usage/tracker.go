// Package usage counts calls to a metered external API against daily and monthly limits.
package usage

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Quota reports one limit.
type Quota struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// Status is a snapshot of both quotas.
type Status struct {
	Date    string `json:"date"`
	Daily   Quota  `json:"daily"`
	Monthly Quota  `json:"monthly"`
}

// Tracker persists call counts and refuses calls over either limit.
type Tracker struct {
	mu           sync.Mutex
	state        *State
	filePath     string
	dailyLimit   int
	monthlyLimit int
	log          *zap.Logger
}

// NewTracker loads or initializes state from filePath. An empty path keeps counts in memory only.
func NewTracker(filePath string, dailyLimit, monthlyLimit int, log *zap.Logger) (*Tracker, error) {
	state := &State{}
	if filePath != "" {
		var err error
		if state, err = LoadState(filePath); err != nil {
			return nil, err
		}
	}
	return &Tracker{
		state:        state,
		filePath:     filePath,
		dailyLimit:   dailyLimit,
		monthlyLimit: monthlyLimit,
		log:          log,
	}, nil
}

// rollover resets counters whose period has passed. Caller holds mu.
func (t *Tracker) rollover(now time.Time) {
	if day := now.Format(dayLayout); t.state.Daily.Period != day {
		t.state.Daily = Counter{Period: day}
	}
	if month := now.Format(monthLayout); t.state.Monthly.Period != month {
		t.state.Monthly = Counter{Period: month}
	}
}

// Allow records one call at now, or reports false without recording when either
// limit is already reached.
func (t *Tracker) Allow(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rollover(now)
	if t.state.Daily.Count >= t.dailyLimit || t.state.Monthly.Count >= t.monthlyLimit {
		t.log.Warn("usage limit reached",
			zap.Int("daily", t.state.Daily.Count),
			zap.Int("monthly", t.state.Monthly.Count))
		return false
	}
	t.state.Daily.Count++
	t.state.Monthly.Count++

	t.save()
	return true
}

// Status reports the quotas as of now.
func (t *Tracker) Status(now time.Time) Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rollover(now)
	return Status{
		Date:    t.state.Daily.Period,
		Daily:   quota(t.state.Daily.Count, t.dailyLimit),
		Monthly: quota(t.state.Monthly.Count, t.monthlyLimit),
	}
}

func quota(used, limit int) Quota {
	return Quota{Used: used, Limit: limit, Remaining: max(limit-used, 0)}
}

func (t *Tracker) save() {
	if t.filePath == "" {
		return
	}
	if err := SaveState(t.filePath, t.state); err != nil {
		t.log.Error("failed to save usage state", zap.String("path", t.filePath), zap.Error(err))
	}
}
