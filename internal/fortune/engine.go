package fortune

import (
	"math"

	"FortuneTeller/internal/calendar"
	"FortuneTeller/internal/ganzhi"
	"FortuneTeller/internal/model"
	"FortuneTeller/internal/saju"
)

// PeriodCount is the number of great-fortune periods generated.
const PeriodCount = 8

// Annual aggregate weights.
const (
	yearWeight  = 0.7
	monthWeight = 0.3
)

// StartAge derives the great-fortune start offset from the distance between the
// birth day and the month's solar-term day, three days per year, clamped to [1, 10].
func StartAge(month, day int, terms calendar.SolarTerms) int {
	diff := day - terms.Day(month)
	if diff < 0 {
		diff = -diff
	}
	return min(max(diff/3, 1), 10)
}

// IsForward reports whether periods advance through the cycle: a yang year stem
// with a male birth, or a yin year stem with a female birth.
func IsForward(yearStem ganzhi.Stem, gender model.Gender) bool {
	return yearStem.Yang() == (gender == model.Male)
}

// GreatFortune builds the 8 ten-year periods that step away from the month pillar.
// currentYear only marks the current period; it does not change the sequence.
func GreatFortune(chart model.Chart, birth model.BirthInfo, terms calendar.SolarTerms, currentYear int) (*model.GreatFortune, error) {
	if err := saju.ValidateDate(birth.Year, birth.Month, birth.Day, birth.Hour); err != nil {
		return nil, err
	}
	gender, err := saju.ParseGender(string(birth.Gender))
	if err != nil {
		return nil, err
	}

	start := StartAge(birth.Month, birth.Day, terms)
	forward := IsForward(chart.Year.Stem, gender)
	sign := 1
	if !forward {
		sign = -1
	}

	gf := &model.GreatFortune{
		StartAge:   start,
		Forward:    forward,
		CurrentAge: currentYear - birth.Year,
		Periods:    make([]model.FortunePeriod, 0, PeriodCount),
	}
	self := chart.DayStem().Element()
	for i := 1; i <= PeriodCount; i++ {
		p := ganzhi.Pillar{
			Stem:   chart.Month.Stem.Step(sign * i),
			Branch: chart.Month.Branch.Step(sign * i),
		}
		period := newPeriod(p, self)
		period.StartAge = start + (i-1)*10
		period.EndAge = start + i*10 - 1
		period.IsCurrent = gf.CurrentAge >= period.StartAge && gf.CurrentAge <= period.EndAge
		gf.Periods = append(gf.Periods, period)
	}
	return gf, nil
}

// AnnualFortune scores the target year pillar and its 12 month pillars.
func AnnualFortune(chart model.Chart, targetYear int) (*model.AnnualFortune, error) {
	if targetYear < 1900 || targetYear > 2100 {
		return nil, &saju.ValidationError{Field: "target_year", Value: targetYear, Min: 1900, Max: 2100}
	}
	self := chart.DayStem().Element()

	yp := ganzhi.YearPillar(targetYear)
	af := &model.AnnualFortune{
		TargetYear: targetYear,
		Year:       newPeriod(yp, self),
		Months:     make([]model.FortunePeriod, 0, 12),
	}
	af.Year.Year = targetYear

	sum := 0
	for m := 1; m <= 12; m++ {
		period := newPeriod(ganzhi.MonthPillar(yp.Stem, m), self)
		period.Year = targetYear
		period.Month = m
		af.Months = append(af.Months, period)
		sum += period.Score
	}

	monthAvg := float64(sum) / 12
	total := yearWeight*float64(af.Year.Score) + monthWeight*monthAvg
	normalized := math.Min(math.Max((total+5)*10, 0), 100)
	af.Score = model.AnnualScore{
		YearScore:    float64(af.Year.Score),
		MonthAverage: monthAvg,
		Total:        total,
		Normalized:   normalized,
		Grade:        mapGrade(normalized),
	}
	return af, nil
}

// DailyFortune scores a single day pillar against the chart.
func DailyFortune(chart model.Chart, day ganzhi.Pillar) model.FortunePeriod {
	return newPeriod(day, chart.DayStem().Element())
}
