// Package fortune generates great-fortune (大運), annual (歲運) and daily periods
// and scores each one against the day-stem element.
package fortune

import "FortuneTeller/internal/model"

// Levels maps a pillar interaction score to a fortune level, highest first.
var Levels = []struct {
	MinScore int
	Level    model.FortuneLevel
}{
	{4, model.VeryFavorable},
	{2, model.Favorable},
	{-1, model.Neutral},
	{-3, model.Unfavorable},
}

// DefaultLevel is returned for scores below -3.
const DefaultLevel = model.VeryUnfavorable

func mapLevel(score int) model.FortuneLevel {
	for _, l := range Levels {
		if score >= l.MinScore {
			return l.Level
		}
	}
	return DefaultLevel
}

// Grades maps a normalized annual score (0..100) to its label.
var Grades = []struct {
	MinScore float64
	Label    string
}{
	{80, "대길"},
	{60, "길"},
	{40, "평"},
	{20, "소흉"},
}

// DefaultGrade is the label for normalized scores below 20.
const DefaultGrade = "흉"

func mapGrade(normalized float64) string {
	for _, g := range Grades {
		if normalized >= g.MinScore {
			return g.Label
		}
	}
	return DefaultGrade
}
