package compat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FortuneTeller/internal/calendar"
	"FortuneTeller/internal/ganzhi"
	"FortuneTeller/internal/model"
	"FortuneTeller/internal/saju"
)

func reading(t *testing.T, name string, pillars ...string) *model.Reading {
	t.Helper()
	var ps [4]ganzhi.Pillar
	for i, s := range pillars {
		p, err := ganzhi.ParsePillar(s)
		require.NoError(t, err)
		ps[i] = p
	}
	c := model.Chart{Year: ps[0], Month: ps[1], Day: ps[2], Hour: ps[3]}
	h := saju.ComputeElements(c)
	return &model.Reading{
		Birth:    model.BirthInfo{Name: name},
		Chart:    c,
		Elements: h,
		Strength: saju.ComputeStrength(c, h),
	}
}

func TestElementScore(t *testing.T) {
	var wood, metal model.ElementHistogram
	wood[ganzhi.Wood] = 8
	metal[ganzhi.Metal] = 8

	assert.Equal(t, 79, ElementScore(wood, wood))
	// wood destroyed by metal: 25*0.7 + (100+100+100+92+92)/5*0.3
	assert.Equal(t, 46, ElementScore(wood, metal))
	// and the reverse direction: wood is wealth to metal
	assert.Equal(t, 50, ElementScore(metal, wood))
}

func TestDayStemScore(t *testing.T) {
	jia, xin := ganzhi.Stem(0), ganzhi.Stem(7)
	assert.Equal(t, 85, DayStemScore(jia, xin))
	assert.Equal(t, DayStemScore(xin, jia), DayStemScore(jia, xin))
	assert.Equal(t, neutralScore, DayStemScore(jia, jia))
}

func TestScore(t *testing.T) {
	a := reading(t, "", "甲寅", "丙午", "甲戌", "庚申")
	b := reading(t, "", "甲寅", "丙午", "甲戌", "庚申")

	c := Score(a, b)
	assert.Equal(t, 79, c.ElementScore)
	assert.Equal(t, 50, c.DayStemScore)
	assert.Equal(t, 67, c.Overall)
	assert.Equal(t, model.CompatibilityScores{Love: 70, Marriage: 64, Communication: 55, Values: 61}, c.Detailed)
	assert.Contains(t, c.Strengths, "오행 기운이 조화롭게 어우러짐")
	assert.Contains(t, c.Weaknesses, "성격적 차이로 인한 오해 가능성")
	assert.Contains(t, c.Summary, "첫 번째 분님과 두 번째 분님은 좋은 궁합")
}

func TestSummaryBands(t *testing.T) {
	assert.Contains(t, summary(80, "A", "B"), "천생연분")
	assert.Contains(t, summary(60, "A", "B"), "좋은 궁합")
	assert.Contains(t, summary(40, "A", "B"), "노력이 필요한")
	assert.Contains(t, summary(39, "A", "B"), "인내가 필요한")
}

func TestAnalyze(t *testing.T) {
	p := calendar.NewApproxProvider()
	first := model.BirthInfo{Name: "민수", Year: 1990, Month: 3, Day: 15, Hour: 9, Gender: model.Male}
	second := model.BirthInfo{Name: "지영", Year: 1992, Month: 8, Day: 2, Hour: 18, Gender: model.Female}

	c, err := Analyze(context.Background(), p, first, second)
	require.NoError(t, err)
	assert.Equal(t, "민수", c.First.Birth.Name)
	assert.Equal(t, "지영", c.Second.Birth.Name)
	assert.GreaterOrEqual(t, c.Overall, 0)
	assert.LessOrEqual(t, c.Overall, 100)
	assert.Contains(t, c.Summary, "민수님과 지영님")
}

func TestAnalyze_Failure(t *testing.T) {
	p := calendar.NewApproxProvider()
	first := model.BirthInfo{Year: 1990, Month: 3, Day: 15, Hour: 9}
	second := model.BirthInfo{Year: 1990, Month: 13, Day: 2, Hour: 9}

	_, err := Analyze(context.Background(), p, first, second)
	var verr *saju.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "month", verr.Field)
	assert.Contains(t, err.Error(), "second person")
}
