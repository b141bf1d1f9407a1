package fortune

import (
	"FortuneTeller/internal/ganzhi"
	"FortuneTeller/internal/model"
)

// scoreElement rates one character's element against the day element self.
func scoreElement(self, e ganzhi.Element) int {
	switch {
	case e == self:
		return 2
	case e.Generates() == self:
		return 3
	case e.Destroys() == self:
		return -2
	}
	return 0
}

// ScorePillar sums the stem and branch interaction scores against self.
func ScorePillar(p ganzhi.Pillar, self ganzhi.Element) int {
	return scoreElement(self, p.Stem.Element()) + scoreElement(self, p.Branch.Element())
}

type periodText struct {
	characteristics []string
	opportunities   []string
	warnings        []string
	advice          string
}

// relationTexts is keyed by the relation of the period stem's element to the day element.
var relationTexts = [...]periodText{
	ganzhi.RelSame: {
		characteristics: []string{"자립심이 강해지는 시기", "동료와 경쟁자가 함께 늘어남"},
		opportunities:   []string{"독립과 창업", "협업을 통한 확장"},
		warnings:        []string{"재물의 분산", "고집으로 인한 갈등"},
		advice:          "혼자보다 함께할 때 성과가 커집니다",
	},
	ganzhi.RelResource: {
		characteristics: []string{"도움과 지원이 들어오는 시기", "학업과 자격에 유리함"},
		opportunities:   []string{"공부와 자격 취득", "윗사람의 후원"},
		warnings:        []string{"의존심 증가", "실행력 저하"},
		advice:          "배움을 실천으로 옮기세요",
	},
	ganzhi.RelOutput: {
		characteristics: []string{"표현력과 창의력이 살아나는 시기", "활동 범위가 넓어짐"},
		opportunities:   []string{"창작과 기획", "새로운 사업 아이디어"},
		warnings:        []string{"말실수", "에너지 소모"},
		advice:          "재능을 드러내되 체력을 관리하세요",
	},
	ganzhi.RelWealth: {
		characteristics: []string{"재물과 결실을 추구하는 시기", "현실 감각이 강해짐"},
		opportunities:   []string{"수입 증가", "투자 기회"},
		warnings:        []string{"무리한 투자", "과로"},
		advice:          "욕심을 줄이고 계획적으로 관리하세요",
	},
	ganzhi.RelAuthority: {
		characteristics: []string{"책임과 압박이 커지는 시기", "조직과 규율의 영향이 큼"},
		opportunities:   []string{"승진과 직위 변화", "명예 상승"},
		warnings:        []string{"스트레스와 건강", "관재 구설"},
		advice:          "원칙을 지키며 무리하지 마세요",
	},
}

// newPeriod scores p against self and attaches the relation texts.
func newPeriod(p ganzhi.Pillar, self ganzhi.Element) model.FortunePeriod {
	score := ScorePillar(p, self)
	level := mapLevel(score)
	rel := ganzhi.Relate(self, p.Stem.Element())
	text := relationTexts[rel]
	return model.FortunePeriod{
		Pillar:          p,
		StemElement:     p.Stem.Element(),
		BranchElement:   p.Branch.Element(),
		Relation:        rel.String(),
		Score:           score,
		Level:           level,
		LevelLabel:      level.Label(),
		Characteristics: append([]string(nil), text.characteristics...),
		Opportunities:   append([]string(nil), text.opportunities...),
		Warnings:        append([]string(nil), text.warnings...),
		Advice:          text.advice,
	}
}
