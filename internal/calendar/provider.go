// Package calendar provides manseryuk lookups: the stem-branch pairs of the year,
// month and day of a solar date.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"FortuneTeller/internal/model"
)

// ErrNotFound means the calendar has no record for the requested date.
var ErrNotFound = errors.New("calendar: no record for date")

// Provider maps a solar date to its calendar record.
type Provider interface {
	Lookup(ctx context.Context, year, month, day int) (model.CalendarRecord, error)
	Name() string
}

type dateKey struct{ year, month, day int }

// MemoryProvider serves records from an in-memory table.
type MemoryProvider struct {
	mu      sync.RWMutex
	records map[dateKey]model.CalendarRecord
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{records: make(map[dateKey]model.CalendarRecord)}
}

func (p *MemoryProvider) Name() string { return "memory" }

// Add registers the record for a date, replacing any previous one.
func (p *MemoryProvider) Add(year, month, day int, rec model.CalendarRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records[dateKey{year, month, day}] = rec
}

func (p *MemoryProvider) Lookup(_ context.Context, year, month, day int) (model.CalendarRecord, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	rec, ok := p.records[dateKey{year, month, day}]
	if !ok {
		return model.CalendarRecord{}, fmt.Errorf("%04d-%02d-%02d: %w", year, month, day, ErrNotFound)
	}
	return rec, nil
}
