package saju

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FortuneTeller/internal/calendar"
	"FortuneTeller/internal/ganzhi"
	"FortuneTeller/internal/model"
)

func pillar(t *testing.T, s string) ganzhi.Pillar {
	t.Helper()
	p, err := ganzhi.ParsePillar(s)
	require.NoError(t, err)
	return p
}

func chart(t *testing.T, y, m, d, h string) model.Chart {
	t.Helper()
	return model.Chart{Year: pillar(t, y), Month: pillar(t, m), Day: pillar(t, d), Hour: pillar(t, h)}
}

type countingProvider struct {
	calendar.Provider
	calls int
}

func (c *countingProvider) Lookup(ctx context.Context, y, m, d int) (model.CalendarRecord, error) {
	c.calls++
	return c.Provider.Lookup(ctx, y, m, d)
}

func TestExtractChart(t *testing.T) {
	mem := calendar.NewMemoryProvider()
	mem.Add(1990, 5, 5, model.CalendarRecord{
		Year:  pillar(t, "庚午"),
		Month: pillar(t, "庚辰"),
		Day:   pillar(t, "戊寅"),
	})

	c, err := ExtractChart(context.Background(), mem, 1990, 5, 5, 14)
	require.NoError(t, err)
	assert.Equal(t, "庚午", c.Year.String())
	assert.Equal(t, "戊寅", c.Day.String())
	assert.Equal(t, "己未", c.Hour.String())
}

func TestExtractChart_ValidatesBeforeLookup(t *testing.T) {
	p := &countingProvider{Provider: calendar.NewMemoryProvider()}
	tests := []struct {
		name       string
		y, m, d, h int
		field      string
	}{
		{"year low", 1899, 1, 1, 0, "year"},
		{"year high", 2101, 1, 1, 0, "year"},
		{"month", 2000, 13, 1, 0, "month"},
		{"day", 2000, 1, 32, 0, "day"},
		{"hour", 2000, 1, 1, 24, "hour"},
		{"negative hour", 2000, 1, 1, -1, "hour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractChart(context.Background(), p, tt.y, tt.m, tt.d, tt.h)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Zero(t, p.calls)
}

func TestExtractChart_Miss(t *testing.T) {
	_, err := ExtractChart(context.Background(), calendar.NewMemoryProvider(), 2000, 1, 1, 0)
	var cerr *ChartExtractionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2000, cerr.Year)
	assert.True(t, errors.Is(err, calendar.ErrNotFound))
	assert.Contains(t, err.Error(), "no calendar record")
}

func TestComputeStrength(t *testing.T) {
	strong := chart(t, "甲寅", "丙午", "甲戌", "庚申")
	h := ComputeElements(strong)
	assert.Equal(t, 3, h[ganzhi.Wood])
	assert.Equal(t, 0, h[ganzhi.Water])
	assert.Equal(t, 8, h.Total())

	s := ComputeStrength(strong, h)
	assert.Equal(t, model.Strong, s.Label)
	assert.Equal(t, 3, s.SupportCount)
	assert.Equal(t, ganzhi.Fire, s.Favorable)
	assert.Equal(t, ganzhi.Wood, s.Unfavorable)

	weak := chart(t, "庚申", "丙午", "甲戌", "戊辰")
	h = ComputeElements(weak)
	assert.Equal(t, 8, h.Total())
	s = ComputeStrength(weak, h)
	assert.Equal(t, model.Weak, s.Label)
	assert.Equal(t, 1, s.SupportCount)
	assert.Equal(t, ganzhi.Water, s.Favorable)
	assert.Equal(t, ganzhi.Metal, s.Unfavorable)
}

func TestComputeStrength_WaterSupport(t *testing.T) {
	// wood 3 plus water 1 is strong
	c := chart(t, "甲寅", "壬午", "甲戌", "庚午")
	h := ComputeElements(c)
	require.Equal(t, 3, h[ganzhi.Wood])
	require.Equal(t, 1, h[ganzhi.Water])
	assert.Equal(t, model.Strong, ComputeStrength(c, h).Label)
}

func TestElementsSumToEight(t *testing.T) {
	p := calendar.NewApproxProvider()
	for y := 1930; y <= 2090; y += 7 {
		for m := 1; m <= 12; m++ {
			for _, d := range []int{1, 9, 17, 28} {
				c, err := ExtractChart(context.Background(), p, y, m, d, (y+m+d)%24)
				require.NoError(t, err)
				require.Equal(t, 8, ComputeElements(c).Total(), "%d-%d-%d", y, m, d)
			}
		}
	}
}

func TestTenGodOf(t *testing.T) {
	day := ganzhi.Stem(0) // 甲
	want := []model.TenGod{
		model.Companion, model.RobWealth,
		model.EatingGod, model.HurtingOfficer,
		model.IndirectWealth, model.DirectWealth,
		model.SevenKillings, model.DirectOfficer,
		model.IndirectSeal, model.DirectSeal,
	}
	for i, god := range want {
		assert.Equal(t, god, TenGodOf(day, ganzhi.Stem(i)), "stem %s", ganzhi.Stem(i))
	}

	// yin day stem flips which god is same-polarity
	assert.Equal(t, model.Companion, TenGodOf(ganzhi.Stem(1), ganzhi.Stem(1)))
	assert.Equal(t, model.RobWealth, TenGodOf(ganzhi.Stem(1), ganzhi.Stem(0)))
}

func TestTenGods_Positions(t *testing.T) {
	gods := TenGods(chart(t, "甲寅", "丙午", "甲戌", "庚申"))
	require.Len(t, gods, 3)
	assert.Equal(t, "year", gods[0].Position)
	assert.Equal(t, model.Companion, gods[0].God)
	assert.Equal(t, model.EatingGod, gods[1].God)
	assert.Equal(t, model.SevenKillings, gods[2].God)
}

func TestInterpret(t *testing.T) {
	c := chart(t, "甲寅", "丙午", "甲戌", "庚申")
	h := ComputeElements(c)
	in := Interpret(h, ComputeStrength(c, h))

	assert.Equal(t, "성장과 발전을 추구하는 진취적인 성격", in.Nature)
	assert.Contains(t, in.CareerFields, "교육")
	require.Len(t, in.HealthNotes, 2)
	assert.Contains(t, in.HealthNotes[0], "목 기운이 강하므로")
	assert.Contains(t, in.HealthNotes[1], "수 기운이 약하므로")
	assert.Contains(t, in.Recommendations[0], "화 기운을 활용하여")
}

func TestAnalyze(t *testing.T) {
	r, err := Analyze(context.Background(), calendar.NewApproxProvider(), model.BirthInfo{
		Year: 1990, Month: 5, Day: 15, Hour: 10, Gender: model.Female,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, r.Elements.Total())
	assert.Len(t, r.TenGods, 3)
	assert.NotEmpty(t, r.Interpretation.Nature)
	assert.Equal(t, r.Chart.DayStem().Element(), r.Strength.DayElement)
}

func TestParseGender(t *testing.T) {
	for _, s := range []string{"male", "M", " 남 ", "남성"} {
		g, err := ParseGender(s)
		require.NoError(t, err)
		assert.Equal(t, model.Male, g)
	}
	for _, s := range []string{"female", "F", "여"} {
		g, err := ParseGender(s)
		require.NoError(t, err)
		assert.Equal(t, model.Female, g)
	}
	_, err := ParseGender("other")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
