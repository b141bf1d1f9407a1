package model

import (
	"encoding/json"

	"FortuneTeller/internal/ganzhi"
)

// ElementHistogram counts chart characters per element. Derived from a Chart it sums to 8.
type ElementHistogram [5]int

func (h ElementHistogram) Count(e ganzhi.Element) int { return h[e] }

func (h ElementHistogram) Total() int {
	sum := 0
	for _, n := range h {
		sum += n
	}
	return sum
}

// Dominant returns the element with the highest count; ties go to the earlier element in wood→water order.
func (h ElementHistogram) Dominant() ganzhi.Element {
	best := ganzhi.Wood
	for _, e := range ganzhi.Elements {
		if h[e] > h[best] {
			best = e
		}
	}
	return best
}

// Weakest returns the element with the lowest count, ties as in Dominant.
func (h ElementHistogram) Weakest() ganzhi.Element {
	best := ganzhi.Wood
	for _, e := range ganzhi.Elements {
		if h[e] < h[best] {
			best = e
		}
	}
	return best
}

// Map returns the histogram keyed by element name.
func (h ElementHistogram) Map() map[string]int {
	m := make(map[string]int, len(h))
	for _, e := range ganzhi.Elements {
		m[e.String()] = h[e]
	}
	return m
}

func (h ElementHistogram) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Map())
}

// StrengthLabel is the binary day-stem strength classification.
type StrengthLabel string

const (
	Strong StrengthLabel = "strong"
	Weak   StrengthLabel = "weak"
)

// Strength describes the day stem's support and the elements that balance it.
type Strength struct {
	Label        StrengthLabel  `json:"label"`
	SupportCount int            `json:"support_count"`
	DayElement   ganzhi.Element `json:"day_element"`
	Favorable    ganzhi.Element `json:"favorable_element"`
	Unfavorable  ganzhi.Element `json:"unfavorable_element"`
}

// TenGod names the relation of a stem to the day stem (十神).
type TenGod string

const (
	Companion      TenGod = "비견"
	RobWealth      TenGod = "겁재"
	EatingGod      TenGod = "식신"
	HurtingOfficer TenGod = "상관"
	IndirectWealth TenGod = "편재"
	DirectWealth   TenGod = "정재"
	SevenKillings  TenGod = "편관"
	DirectOfficer  TenGod = "정관"
	IndirectSeal   TenGod = "편인"
	DirectSeal     TenGod = "정인"
)

// TenGodEntry places one chart stem in the ten-god scheme.
type TenGodEntry struct {
	Position string      `json:"position"`
	Stem     ganzhi.Stem `json:"stem"`
	God      TenGod      `json:"god"`
}
