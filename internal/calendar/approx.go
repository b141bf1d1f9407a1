package calendar

import (
	"context"
	"fmt"
	"time"

	"FortuneTeller/internal/ganzhi"
	"FortuneTeller/internal/model"
)

// dayCycleOffset is the cycle index of 1970-01-01 (辛巳).
const dayCycleOffset = 17

// ApproxProvider computes records arithmetically instead of reading a manseryuk table.
// Year and month boundaries use the fixed SolarTerms days, so dates within a day of a
// real solar term may differ from the table.
type ApproxProvider struct {
	Terms   SolarTerms
	MinYear int
	MaxYear int
}

// NewApproxProvider covers 1900..2100 with DefaultSolarTerms.
func NewApproxProvider() *ApproxProvider {
	return &ApproxProvider{Terms: DefaultSolarTerms, MinYear: 1900, MaxYear: 2100}
}

func (p *ApproxProvider) Name() string { return "approx" }

func (p *ApproxProvider) Lookup(_ context.Context, year, month, day int) (model.CalendarRecord, error) {
	if year < p.MinYear || year > p.MaxYear || month < 1 || month > 12 || day < 1 {
		return model.CalendarRecord{}, fmt.Errorf("%04d-%02d-%02d: %w", year, month, day, ErrNotFound)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		// time.Date normalised an impossible date such as Feb 30.
		return model.CalendarRecord{}, fmt.Errorf("%04d-%02d-%02d: %w", year, month, day, ErrNotFound)
	}

	solarYear := year
	if month < 2 || (month == 2 && day < p.Terms.Day(2)) {
		solarYear--
	}
	startMonth := month
	if day < p.Terms.Day(month) {
		startMonth--
	}
	solarMonth := ganzhi.Mod(startMonth-2, 12) + 1

	yearPillar := ganzhi.YearPillar(solarYear)
	days := int(t.Unix() / 86400)
	return model.CalendarRecord{
		Year:  yearPillar,
		Month: ganzhi.MonthPillar(yearPillar.Stem, solarMonth),
		Day:   ganzhi.Sexagenary(days + dayCycleOffset),
	}, nil
}
