package model

import (
	"fmt"

	"FortuneTeller/internal/ganzhi"
)

// FortuneLevel is the 5-point ordinal attached to each period.
type FortuneLevel int

const (
	VeryUnfavorable FortuneLevel = iota
	Unfavorable
	Neutral
	Favorable
	VeryFavorable
)

var (
	levelCodes  = [...]string{"very_unfavorable", "unfavorable", "neutral", "favorable", "very_favorable"}
	levelLabels = [...]string{"매우 나쁨", "나쁨", "보통", "좋음", "매우 좋음"}
)

func (l FortuneLevel) Valid() bool { return l >= VeryUnfavorable && l <= VeryFavorable }

func (l FortuneLevel) String() string {
	if !l.Valid() {
		return fmt.Sprintf("FortuneLevel(%d)", int(l))
	}
	return levelCodes[l]
}

// Label is the display label.
func (l FortuneLevel) Label() string {
	if !l.Valid() {
		return ""
	}
	return levelLabels[l]
}

func (l FortuneLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid fortune level %d", int(l))
	}
	return []byte(levelCodes[l]), nil
}

// FortunePeriod is one step of a great-fortune or annual-fortune sequence.
// Great-fortune periods fill StartAge/EndAge; annual periods fill Year and Month
// (Month is 0 for the year period itself).
type FortunePeriod struct {
	StartAge        int            `json:"start_age"`
	EndAge          int            `json:"end_age"`
	Year            int            `json:"year"`
	Month           int            `json:"month"`
	Pillar          ganzhi.Pillar  `json:"pillar"`
	StemElement     ganzhi.Element `json:"stem_element"`
	BranchElement   ganzhi.Element `json:"branch_element"`
	Relation        string         `json:"relation"`
	Score           int            `json:"score"`
	Level           FortuneLevel   `json:"fortune_level"`
	LevelLabel      string         `json:"fortune_label"`
	IsCurrent       bool           `json:"is_current"`
	Characteristics []string       `json:"characteristics"`
	Opportunities   []string       `json:"opportunities"`
	Warnings        []string       `json:"warnings"`
	Advice          string         `json:"advice"`
}

// GreatFortune is the 10-year period sequence (大運).
type GreatFortune struct {
	StartAge   int             `json:"start_age"`
	Forward    bool            `json:"is_forward"`
	CurrentAge int             `json:"current_age"`
	Periods    []FortunePeriod `json:"periods"`
}

// AnnualScore aggregates a year's periods into one grade.
type AnnualScore struct {
	YearScore    float64 `json:"year_score"`
	MonthAverage float64 `json:"month_average"`
	Total        float64 `json:"total_score"`
	Normalized   float64 `json:"normalized_score"`
	Grade        string  `json:"grade"`
}

// AnnualFortune is the year and month period sequence (歲運) for one target year.
type AnnualFortune struct {
	TargetYear int             `json:"target_year"`
	Year       FortunePeriod   `json:"year_period"`
	Months     []FortunePeriod `json:"month_periods"`
	Score      AnnualScore     `json:"annual_score"`
}
