// Package saju derives the four-pillar chart and its five-element analysis.
package saju

import (
	"context"
	"errors"
	"fmt"

	"FortuneTeller/internal/calendar"
	"FortuneTeller/internal/ganzhi"
	"FortuneTeller/internal/model"
)

// ExtractChart validates the birth moment, looks its date up in the calendar and
// derives the hour pillar from the day stem. A calendar miss is not retried.
func ExtractChart(ctx context.Context, provider calendar.Provider, year, month, day, hour int) (model.Chart, error) {
	if err := ValidateDate(year, month, day, hour); err != nil {
		return model.Chart{}, err
	}
	rec, err := provider.Lookup(ctx, year, month, day)
	if err != nil {
		if errors.Is(err, calendar.ErrNotFound) {
			return model.Chart{}, &ChartExtractionError{Year: year, Month: month, Day: day, Err: err}
		}
		return model.Chart{}, fmt.Errorf("calendar lookup via %s: %w", provider.Name(), err)
	}
	return model.Chart{
		Year:  rec.Year,
		Month: rec.Month,
		Day:   rec.Day,
		Hour:  ganzhi.HourPillar(rec.Day.Stem, hour),
	}, nil
}

// ComputeElements counts the eight chart characters per element.
func ComputeElements(chart model.Chart) model.ElementHistogram {
	var h model.ElementHistogram
	for _, e := range chart.Elements() {
		h[e]++
	}
	return h
}

// ComputeStrength classifies the day stem: it is strong when characters of its own
// element plus those of the element feeding it number three or more.
func ComputeStrength(chart model.Chart, hist model.ElementHistogram) model.Strength {
	self := chart.DayStem().Element()
	support := hist[self] + hist[self.GeneratedBy()]

	s := model.Strength{SupportCount: support, DayElement: self}
	if support >= 3 {
		s.Label = model.Strong
		s.Favorable = self.Generates()
		s.Unfavorable = self
	} else {
		s.Label = model.Weak
		s.Favorable = self.GeneratedBy()
		s.Unfavorable = self.DestroyedBy()
	}
	return s
}

// TenGodOf names the relation of other to the day stem.
func TenGodOf(day, other ganzhi.Stem) model.TenGod {
	same := day.Yang() == other.Yang()
	pick := func(samePolarity, diffPolarity model.TenGod) model.TenGod {
		if same {
			return samePolarity
		}
		return diffPolarity
	}
	switch ganzhi.Relate(day.Element(), other.Element()) {
	case ganzhi.RelSame:
		return pick(model.Companion, model.RobWealth)
	case ganzhi.RelOutput:
		return pick(model.EatingGod, model.HurtingOfficer)
	case ganzhi.RelWealth:
		return pick(model.IndirectWealth, model.DirectWealth)
	case ganzhi.RelAuthority:
		return pick(model.SevenKillings, model.DirectOfficer)
	default:
		return pick(model.IndirectSeal, model.DirectSeal)
	}
}

// TenGods classifies the year, month and hour stems against the day stem.
func TenGods(chart model.Chart) []model.TenGodEntry {
	day := chart.DayStem()
	positions := []struct {
		name string
		stem ganzhi.Stem
	}{
		{"year", chart.Year.Stem},
		{"month", chart.Month.Stem},
		{"hour", chart.Hour.Stem},
	}
	out := make([]model.TenGodEntry, 0, len(positions))
	for _, p := range positions {
		out = append(out, model.TenGodEntry{Position: p.name, Stem: p.stem, God: TenGodOf(day, p.stem)})
	}
	return out
}

// Analyze runs the full chart pipeline for one person.
func Analyze(ctx context.Context, provider calendar.Provider, birth model.BirthInfo) (*model.Reading, error) {
	chart, err := ExtractChart(ctx, provider, birth.Year, birth.Month, birth.Day, birth.Hour)
	if err != nil {
		return nil, err
	}
	hist := ComputeElements(chart)
	strength := ComputeStrength(chart, hist)
	return &model.Reading{
		Birth:          birth,
		Chart:          chart,
		Elements:       hist,
		Strength:       strength,
		TenGods:        TenGods(chart),
		Interpretation: Interpret(hist, strength),
	}, nil
}
