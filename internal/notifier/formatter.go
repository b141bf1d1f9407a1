package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"FortuneTeller/internal/ganzhi"
	"FortuneTeller/internal/model"
)

var levelIcons = [...]string{
	model.VeryUnfavorable: "⛈",
	model.Unfavorable:     "🌧",
	model.Neutral:         "⛅",
	model.Favorable:       "🌤",
	model.VeryFavorable:   "☀️",
}

func levelIcon(l model.FortuneLevel) string {
	if !l.Valid() {
		return ""
	}
	return levelIcons[l]
}

func title(name string) string {
	if name == "" {
		return "나"
	}
	return html.EscapeString(name)
}

// FormatReading summarizes a chart for a chat message.
func FormatReading(r *model.Reading) string {
	var b strings.Builder
	c := r.Chart

	b.WriteString(fmt.Sprintf("🔮 <b>%s의 사주</b>\n\n", title(r.Birth.Name)))
	b.WriteString("<code>")
	b.WriteString(fmt.Sprintf("시  일  월  년\n%s  %s  %s  %s\n", c.Hour, c.Day, c.Month, c.Year))
	b.WriteString("</code>\n")

	b.WriteString("오행: ")
	parts := make([]string, 0, len(ganzhi.Elements))
	for _, e := range ganzhi.Elements {
		parts = append(parts, fmt.Sprintf("%s%d", e.Korean(), r.Elements[e]))
	}
	b.WriteString(strings.Join(parts, " "))
	b.WriteString("\n")

	s := r.Strength
	label := "신약"
	if s.Label == model.Strong {
		label = "신강"
	}
	b.WriteString(fmt.Sprintf("일간: %s (%s) | 용신 %s · 기신 %s\n",
		c.Day.Stem, label, s.Favorable.Korean(), s.Unfavorable.Korean()))
	if r.Interpretation.Nature != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", r.Interpretation.Nature))
	}
	return b.String()
}

// FormatDailyFortune is the scheduled digest for one profile.
func FormatDailyFortune(name string, date time.Time, p model.FortunePeriod) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>오늘의 운세</b> | %s | %s\n\n", levelIcon(p.Level), date.Format("2006-01-02"), title(name)))
	b.WriteString(fmt.Sprintf("일진: %s (%s)\n", p.Pillar, p.Pillar.Korean()))
	b.WriteString(fmt.Sprintf("운세: %s (%+d)\n", p.LevelLabel, p.Score))
	if len(p.Opportunities) > 0 {
		b.WriteString(fmt.Sprintf("기회: %s\n", strings.Join(p.Opportunities, ", ")))
	}
	if len(p.Warnings) > 0 {
		b.WriteString(fmt.Sprintf("주의: %s\n", strings.Join(p.Warnings, ", ")))
	}
	if p.Advice != "" {
		b.WriteString(fmt.Sprintf("\n💡 %s\n", p.Advice))
	}
	return b.String()
}

// FormatAnnualFortune lists the year pillar, its grade and the month levels.
func FormatAnnualFortune(name string, af *model.AnnualFortune) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 <b>%d년 세운</b> | %s\n\n", af.TargetYear, title(name)))
	b.WriteString(fmt.Sprintf("세주: %s | %s (%.0f점)\n\n", af.Year.Pillar, af.Score.Grade, af.Score.Normalized))
	for _, m := range af.Months {
		b.WriteString(fmt.Sprintf("  %2d월 %s %s %s\n", m.Month, m.Pillar, levelIcon(m.Level), m.LevelLabel))
	}
	return b.String()
}

// FormatGreatFortune lists the ten-year periods, marking the current one.
func FormatGreatFortune(name string, gf *model.GreatFortune) string {
	var b strings.Builder
	dir := "순행"
	if !gf.Forward {
		dir = "역행"
	}
	b.WriteString(fmt.Sprintf("🧭 <b>대운</b> | %s | %d세 시작 · %s\n\n", title(name), gf.StartAge, dir))
	for _, p := range gf.Periods {
		mark := " "
		if p.IsCurrent {
			mark = "▶"
		}
		b.WriteString(fmt.Sprintf("%s %2d-%2d세 %s %s\n", mark, p.StartAge, p.EndAge, p.Pillar, p.LevelLabel))
	}
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return "🤖 <b>명령어</b>\n\n" +
		"/today - 오늘의 운세\n" +
		"/saeun [연도] - 세운 (기본: 올해)\n" +
		"/daeun - 대운\n" +
		"/help - 도움말"
}
