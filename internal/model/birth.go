package model

import "FortuneTeller/internal/ganzhi"

// Gender selects the direction of the great-fortune cycle.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// BirthInfo is the input of every chart computation.
type BirthInfo struct {
	Name   string `json:"name"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Hour   int    `json:"hour"`
	Gender Gender `json:"gender"`
}

// CalendarRecord is what the manseryuk calendar knows about one solar date.
type CalendarRecord struct {
	Year  ganzhi.Pillar
	Month ganzhi.Pillar
	Day   ganzhi.Pillar
}

// Chart holds the four pillars (四柱) of a birth moment.
type Chart struct {
	Year  ganzhi.Pillar `json:"year_pillar"`
	Month ganzhi.Pillar `json:"month_pillar"`
	Day   ganzhi.Pillar `json:"day_pillar"`
	Hour  ganzhi.Pillar `json:"hour_pillar"`
}

// DayStem is the chart's self reference point.
func (c Chart) DayStem() ganzhi.Stem { return c.Day.Stem }

// Pillars returns year, month, day and hour in order.
func (c Chart) Pillars() [4]ganzhi.Pillar {
	return [4]ganzhi.Pillar{c.Year, c.Month, c.Day, c.Hour}
}

// Elements returns the element of each of the eight characters,
// stem then branch per pillar.
func (c Chart) Elements() [8]ganzhi.Element {
	var out [8]ganzhi.Element
	for i, p := range c.Pillars() {
		out[2*i] = p.Stem.Element()
		out[2*i+1] = p.Branch.Element()
	}
	return out
}
