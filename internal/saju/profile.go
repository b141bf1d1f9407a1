package saju

import (
	"fmt"

	"FortuneTeller/internal/ganzhi"
	"FortuneTeller/internal/model"
)

type profile struct {
	nature         string
	strengths      []string
	weaknesses     []string
	careerFields   []string
	careerTendency string
	relationship   string
	wealth         string
	organs         string
}

var profiles = [5]profile{
	ganzhi.Wood: {
		nature:         "성장과 발전을 추구하는 진취적인 성격",
		strengths:      []string{"창의적", "적응력", "성장 지향적"},
		weaknesses:     []string{"고집", "우유부단"},
		careerFields:   []string{"교육", "상담", "예술", "환경", "성장 산업"},
		careerTendency: "창의적이고 발전적인 분야에서 능력 발휘",
		relationship:   "성장 지향적이고 발전적인 관계 추구",
		wealth:         "꾸준히 키워 가는 장기 투자형 재물운",
		organs:         "간, 담낭, 신경계",
	},
	ganzhi.Fire: {
		nature:         "열정적이고 밝은 에너지를 가진 성격",
		strengths:      []string{"열정적", "사교적", "리더십"},
		weaknesses:     []string{"급함", "감정기복"},
		careerFields:   []string{"방송", "마케팅", "영업", "엔터테인먼트", "서비스업"},
		careerTendency: "사람들과의 소통이 중요한 분야에서 성공",
		relationship:   "밝고 활발한 관계 선호",
		wealth:         "들어오는 만큼 나가기 쉬우니 지출 관리가 관건",
		organs:         "심장, 소장, 혈액순환",
	},
	ganzhi.Earth: {
		nature:         "안정적이고 신뢰할 수 있는 성격",
		strengths:      []string{"신뢰성", "안정성", "포용력"},
		weaknesses:     []string{"보수적", "변화 기피"},
		careerFields:   []string{"부동산", "건설", "농업", "요식업", "안정적 직장"},
		careerTendency: "안정성과 신뢰성이 요구되는 분야에 적합",
		relationship:   "안정적이고 신뢰할 수 있는 관계 중시",
		wealth:         "부동산처럼 형태가 있는 자산에서 재물이 모임",
		organs:         "비장, 위장, 소화기",
	},
	ganzhi.Metal: {
		nature:         "의지가 강하고 원칙적인 성격",
		strengths:      []string{"의지력", "원칙성", "결단력"},
		weaknesses:     []string{"완고함", "융통성 부족"},
		careerFields:   []string{"금융", "법무", "기계", "IT", "정밀 기술"},
		careerTendency: "정확성과 전문성이 중요한 분야에서 두각",
		relationship:   "원칙적이고 명확한 관계 추구",
		wealth:         "계획적인 저축과 전문성으로 재물을 모음",
		organs:         "폐, 대장, 호흡기",
	},
	ganzhi.Water: {
		nature:         "지혜롭고 유연한 성격",
		strengths:      []string{"지혜", "유연성", "적응력"},
		weaknesses:     []string{"우유부단", "소극적"},
		careerFields:   []string{"연구", "학술", "물류", "유통", "컨설팅"},
		careerTendency: "지혜와 분석력을 활용하는 분야에 적성",
		relationship:   "지혜롭고 깊이 있는 관계 선호",
		wealth:         "정보와 흐름을 읽는 감각으로 기회를 잡음",
		organs:         "신장, 방광, 생식기",
	},
}

// Interpret builds the text profile for the day element, adding health notes for
// over-represented (more than two) and missing elements.
func Interpret(hist model.ElementHistogram, strength model.Strength) model.Interpretation {
	p := profiles[strength.DayElement]
	in := model.Interpretation{
		Nature:         p.nature,
		Strengths:      append([]string(nil), p.strengths...),
		Weaknesses:     append([]string(nil), p.weaknesses...),
		CareerFields:   append([]string(nil), p.careerFields...),
		CareerTendency: p.careerTendency,
		Relationship:   p.relationship,
		Wealth:         p.wealth,
		HealthNotes:    []string{},
	}

	for _, e := range ganzhi.Elements {
		switch n := hist[e]; {
		case n > 2:
			in.HealthNotes = append(in.HealthNotes,
				fmt.Sprintf("%s 기운이 강하므로 %s 관련 과로 주의", e.Korean(), profiles[e].organs))
		case n == 0:
			in.HealthNotes = append(in.HealthNotes,
				fmt.Sprintf("%s 기운이 약하므로 %s 관리 필요", e.Korean(), profiles[e].organs))
		}
	}

	use, avoid := strength.Favorable.Korean(), strength.Unfavorable.Korean()
	if strength.Label == model.Strong {
		in.Recommendations = append(in.Recommendations, fmt.Sprintf("%s 기운을 활용하여 에너지를 분산시키세요", use))
	} else {
		in.Recommendations = append(in.Recommendations, fmt.Sprintf("%s 기운을 보강하여 자신감을 키우세요", use))
	}
	in.Recommendations = append(in.Recommendations,
		fmt.Sprintf("%s 기운이 강한 시기나 환경에서 성공 가능성 높음", use),
		fmt.Sprintf("%s 기운이 강한 시기에는 신중한 결정 필요", avoid),
	)
	return in
}
