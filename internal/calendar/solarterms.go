package calendar

import "fmt"

// SolarTerms holds, per Gregorian month, the day on which that month's
// solar-term boundary (節) usually falls.
type SolarTerms [12]int

// DefaultSolarTerms: 소한 Jan 6, 입춘 Feb 4, 경칩 Mar 6, 청명 Apr 5, 입하 May 6, 망종 Jun 6,
// 소서 Jul 7, 입추 Aug 8, 백로 Sep 8, 한로 Oct 8, 입동 Nov 7, 대설 Dec 7.
var DefaultSolarTerms = SolarTerms{6, 4, 6, 5, 6, 6, 7, 8, 8, 8, 7, 7}

// Day returns the boundary day of a Gregorian month (1..12).
func (t SolarTerms) Day(month int) int { return t[month-1] }

// Validate checks every entry is a plausible day of month.
func (t SolarTerms) Validate() error {
	for i, d := range t {
		if d < 1 || d > 28 {
			return fmt.Errorf("solar term for month %d: day %d out of range", i+1, d)
		}
	}
	return nil
}
