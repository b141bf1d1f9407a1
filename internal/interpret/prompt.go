package interpret

import (
	"fmt"
	"strings"

	"FortuneTeller/internal/ganzhi"
	"FortuneTeller/internal/model"
)

// BuildPrompt renders a reading and the user's question into the model prompt.
func BuildPrompt(r *model.Reading, question string) string {
	var b strings.Builder
	b.WriteString("당신은 30년 경력의 전문 명리학자입니다.\n")
	b.WriteString("전통 명리학 이론을 바탕으로 정확하고 이해하기 쉬운 해석을 제공합니다.\n\n")

	b.WriteString("<사주 분석 결과>\n")
	fmt.Fprintf(&b, "- 년주: %s\n", r.Chart.Year)
	fmt.Fprintf(&b, "- 월주: %s\n", r.Chart.Month)
	fmt.Fprintf(&b, "- 일주: %s\n", r.Chart.Day)
	fmt.Fprintf(&b, "- 시주: %s\n", r.Chart.Hour)

	dist := make([]string, 0, len(ganzhi.Elements))
	for _, e := range ganzhi.Elements {
		dist = append(dist, fmt.Sprintf("%s %d", e.Korean(), r.Elements[e]))
	}
	fmt.Fprintf(&b, "- 오행 분포: %s\n", strings.Join(dist, ", "))
	fmt.Fprintf(&b, "- 일간 오행: %s (%s, 지지 세력 %d)\n",
		r.Strength.DayElement.Korean(), strengthLabel(r.Strength.Label), r.Strength.SupportCount)
	fmt.Fprintf(&b, "- 용신: %s, 기신: %s\n", r.Strength.Favorable.Korean(), r.Strength.Unfavorable.Korean())

	if len(r.TenGods) > 0 {
		gods := make([]string, 0, len(r.TenGods))
		for _, g := range r.TenGods {
			gods = append(gods, fmt.Sprintf("%s %s", g.Stem, g.God))
		}
		fmt.Fprintf(&b, "- 십성: %s\n", strings.Join(gods, ", "))
	}
	if r.Interpretation.Nature != "" {
		fmt.Fprintf(&b, "- 기본 성격: %s\n", r.Interpretation.Nature)
	}

	b.WriteString("\n<사용자 질문>\n")
	if q := strings.TrimSpace(question); q != "" {
		b.WriteString(q)
	} else {
		b.WriteString("전체 사주를 해석해 주세요.")
	}

	b.WriteString("\n\n<응답 가이드라인>\n")
	b.WriteString("1. 친근하면서도 전문적인 톤으로 작성\n")
	b.WriteString("2. 구체적이고 실용적인 조언 포함\n")
	b.WriteString("3. 단정하지 않고 \"~하는 경향이 있습니다\" 식으로 표현\n")
	b.WriteString("4. 1000자 이내로 간결하게 작성\n")
	return b.String()
}

func strengthLabel(l model.StrengthLabel) string {
	if l == model.Strong {
		return "신강"
	}
	return "신약"
}
