package ganzhi

import "errors"

const (
	// CycleLength is the length of the sexagenary cycle.
	CycleLength = 60
	// CycleEpochYear is a 甲子 year used as the cycle origin.
	CycleEpochYear = 1984
)

// Sexagenary returns the k-th term of the 60-term cycle, stems and branches advancing in lockstep.
func Sexagenary(k int) Pillar {
	k = Mod(k, CycleLength)
	return Pillar{Stem: Stem(k % StemCount), Branch: Branch(k % BranchCount)}
}

// CycleIndex is the inverse of Sexagenary. Stem and branch must share parity.
func CycleIndex(p Pillar) (int, error) {
	if int(p.Stem)%2 != int(p.Branch)%2 {
		return 0, errors.New("stem and branch parity differ")
	}
	for k := int(p.Stem); k < CycleLength; k += StemCount {
		if k%BranchCount == int(p.Branch) {
			return k, nil
		}
	}
	return 0, errors.New("pillar not in cycle")
}

// YearPillar returns the pillar of a calendar year counted from the 1984 甲子 origin.
func YearPillar(year int) Pillar {
	return Sexagenary(year - CycleEpochYear)
}

// MonthBranch maps a solar month (1..12) to its branch: 1→寅, 11→子, 12→丑.
func MonthBranch(month int) Branch {
	return Branch(Mod(month+1, BranchCount))
}

// monthStemStart is the stem of month 1 keyed by the year stem.
var monthStemStart = [StemCount]Stem{
	2, // 甲 → 丙
	4, // 乙 → 戊
	6, // 丙 → 庚
	8, // 丁 → 壬
	0, // 戊 → 甲
	2, // 己 → 丙
	4, // 庚 → 戊
	6, // 辛 → 庚
	8, // 壬 → 壬
	0, // 癸 → 甲
}

// MonthStem returns the stem of a solar month in a year with the given year stem.
func MonthStem(yearStem Stem, month int) Stem {
	return monthStemStart[yearStem].Step(month - 1)
}

// MonthPillar combines MonthStem and MonthBranch.
func MonthPillar(yearStem Stem, month int) Pillar {
	return Pillar{Stem: MonthStem(yearStem, month), Branch: MonthBranch(month)}
}

// HourSlot maps a clock hour to one of 12 two-hour slots; slot 0 spans 23:00–00:59.
func HourSlot(hour int) int {
	return ((hour + 1) / 2) % BranchCount
}

// HourPillar derives the hour pillar from the day stem and the clock hour.
func HourPillar(dayStem Stem, hour int) Pillar {
	slot := HourSlot(hour)
	return Pillar{
		Stem:   Stem(Mod(int(dayStem)*2+slot, StemCount)),
		Branch: Branch(slot),
	}
}
