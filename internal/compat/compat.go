// Package compat scores the compatibility of two charts.
package compat

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"FortuneTeller/internal/calendar"
	"FortuneTeller/internal/ganzhi"
	"FortuneTeller/internal/model"
	"FortuneTeller/internal/saju"
)

// neutralScore is used when a ten-god pair has no table entry.
const neutralScore = 50

// elementScores is indexed by the relation of the second main element to the first.
var elementScores = [...]int{
	ganzhi.RelSame:      70,
	ganzhi.RelOutput:    85, // first generates second
	ganzhi.RelResource:  80, // second generates first
	ganzhi.RelWealth:    30, // first destroys second
	ganzhi.RelAuthority: 25, // second destroys first
}

type godPair [2]model.TenGod

var dayStemScores = map[godPair]int{
	{model.DirectOfficer, model.DirectSeal}:     90,
	{model.DirectOfficer, model.IndirectSeal}:   75,
	{model.DirectOfficer, model.Companion}:      60,
	{model.DirectOfficer, model.RobWealth}:      45,
	{model.DirectOfficer, model.EatingGod}:      80,
	{model.DirectOfficer, model.HurtingOfficer}: 30,
	{model.DirectOfficer, model.DirectWealth}:   85,
	{model.DirectOfficer, model.IndirectWealth}: 70,
	{model.DirectOfficer, model.SevenKillings}:  50,
	{model.DirectOfficer, model.DirectOfficer}:  65,

	{model.SevenKillings, model.DirectSeal}:     75,
	{model.SevenKillings, model.IndirectSeal}:   85,
	{model.SevenKillings, model.Companion}:      70,
	{model.SevenKillings, model.RobWealth}:      80,
	{model.SevenKillings, model.EatingGod}:      40,
	{model.SevenKillings, model.HurtingOfficer}: 75,
	{model.SevenKillings, model.DirectWealth}:   60,
	{model.SevenKillings, model.IndirectWealth}: 85,
	{model.SevenKillings, model.SevenKillings}:  70,
	{model.SevenKillings, model.DirectOfficer}:  50,

	{model.DirectWealth, model.DirectSeal}:     35,
	{model.DirectWealth, model.IndirectSeal}:   25,
	{model.DirectWealth, model.Companion}:      85,
	{model.DirectWealth, model.RobWealth}:      30,
	{model.DirectWealth, model.EatingGod}:      90,
	{model.DirectWealth, model.HurtingOfficer}: 75,
	{model.DirectWealth, model.DirectWealth}:   80,
	{model.DirectWealth, model.IndirectWealth}: 70,
	{model.DirectWealth, model.SevenKillings}:  60,
	{model.DirectWealth, model.DirectOfficer}:  85,

	{model.IndirectWealth, model.DirectSeal}:     25,
	{model.IndirectWealth, model.IndirectSeal}:   35,
	{model.IndirectWealth, model.Companion}:      70,
	{model.IndirectWealth, model.RobWealth}:      85,
	{model.IndirectWealth, model.EatingGod}:      75,
	{model.IndirectWealth, model.HurtingOfficer}: 90,
	{model.IndirectWealth, model.DirectWealth}:   70,
	{model.IndirectWealth, model.IndirectWealth}: 80,
	{model.IndirectWealth, model.SevenKillings}:  85,
	{model.IndirectWealth, model.DirectOfficer}:  70,
}

// ElementScore compares the dominant elements (70%) and the overall balance of
// the two histograms (30%).
func ElementScore(a, b model.ElementHistogram) int {
	main := elementScores[ganzhi.Relate(a.Dominant(), b.Dominant())]

	balance := 0.0
	for _, e := range ganzhi.Elements {
		d := a[e] - b[e]
		if d < 0 {
			d = -d
		}
		balance += float64(100 - d)
	}
	balance /= float64(len(ganzhi.Elements))

	return int(float64(main)*0.7 + balance*0.3)
}

// DayStemScore averages the table scores of each day stem seen from the other.
func DayStemScore(a, b ganzhi.Stem) int {
	g1 := saju.TenGodOf(a, b)
	g2 := saju.TenGodOf(b, a)
	return (lookup(g1, g2) + lookup(g2, g1)) / 2
}

func lookup(x, y model.TenGod) int {
	if s, ok := dayStemScores[godPair{x, y}]; ok {
		return s
	}
	return neutralScore
}

// Score compares two finished readings.
func Score(first, second *model.Reading) *model.Compatibility {
	el := ElementScore(first.Elements, second.Elements)
	ds := DayStemScore(first.Chart.DayStem(), second.Chart.DayStem())
	weigh := func(we, wd float64) int { return int(float64(el)*we + float64(ds)*wd) }

	c := &model.Compatibility{
		First:        first,
		Second:       second,
		ElementScore: el,
		DayStemScore: ds,
		Overall:      weigh(0.6, 0.4),
		Detailed: model.CompatibilityScores{
			Love:          weigh(0.7, 0.3),
			Marriage:      weigh(0.5, 0.5),
			Communication: weigh(0.2, 0.8),
			Values:        weigh(0.4, 0.6),
		},
		Strengths:  []string{},
		Weaknesses: []string{},
	}

	if c.Overall >= 70 {
		c.Strengths = append(c.Strengths, "서로를 이해하고 지지하는 관계", "자연스러운 소통이 가능", "상호 보완적인 성격")
		c.Advice = append(c.Advice, "현재의 좋은 관계를 유지하세요", "서로의 장점을 더욱 발휘할 수 있도록 격려하세요")
	} else {
		c.Weaknesses = append(c.Weaknesses, "성격적 차이로 인한 갈등 가능성", "서로 다른 가치관")
		c.Advice = append(c.Advice, "서로의 차이점을 인정하고 이해하려 노력하세요", "열린 마음으로 소통하는 시간을 늘리세요")
	}
	if el >= 70 {
		c.Strengths = append(c.Strengths, "오행 기운이 조화롭게 어우러짐")
	} else {
		c.Weaknesses = append(c.Weaknesses, "오행 상극으로 인한 에너지 충돌")
		c.Advice = append(c.Advice, "서로 다른 에너지를 이해하고 배려하세요")
	}
	if ds >= 70 {
		c.Strengths = append(c.Strengths, "성격적으로 잘 맞는 조합")
	} else {
		c.Weaknesses = append(c.Weaknesses, "성격적 차이로 인한 오해 가능성")
		c.Advice = append(c.Advice, "상대방의 성격을 깊이 이해하려 노력하세요")
	}

	c.Summary = summary(c.Overall, displayName(first.Birth.Name, "첫 번째 분"), displayName(second.Birth.Name, "두 번째 분"))
	return c
}

func displayName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func summary(score int, a, b string) string {
	switch {
	case score >= 80:
		return fmt.Sprintf("%s님과 %s님은 천생연분의 궁합입니다! 서로를 완벽하게 보완하며 행복한 관계를 만들어 갈 수 있습니다.", a, b)
	case score >= 60:
		return fmt.Sprintf("%s님과 %s님은 좋은 궁합을 가지고 있습니다. 서로를 이해하고 배려한다면 안정적이고 행복한 관계가 가능합니다.", a, b)
	case score >= 40:
		return fmt.Sprintf("%s님과 %s님은 노력이 필요한 관계입니다. 서로의 차이를 인정하고 소통을 늘린다면 좋은 관계로 발전할 수 있습니다.", a, b)
	default:
		return fmt.Sprintf("%s님과 %s님은 많은 이해와 인내가 필요한 관계입니다. 서로의 다름을 받아들이는 노력이 관계를 지켜 줍니다.", a, b)
	}
}

// Analyze reads both charts concurrently and scores them. Either failure aborts.
func Analyze(ctx context.Context, provider calendar.Provider, first, second model.BirthInfo) (*model.Compatibility, error) {
	var r1, r2 *model.Reading
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := saju.Analyze(gctx, provider, first)
		if err != nil {
			return fmt.Errorf("first person: %w", err)
		}
		r1 = r
		return nil
	})
	g.Go(func() error {
		r, err := saju.Analyze(gctx, provider, second)
		if err != nil {
			return fmt.Errorf("second person: %w", err)
		}
		r2 = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Score(r1, r2), nil
}
