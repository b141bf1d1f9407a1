// Package scheduler runs the daily digest job and answers chat commands.
package scheduler

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"FortuneTeller/internal/calendar"
	"FortuneTeller/internal/fortune"
	"FortuneTeller/internal/model"
	"FortuneTeller/internal/notifier"
	"FortuneTeller/internal/recorder"
	"FortuneTeller/internal/saju"
)

// Notifier delivers a message, retrying transient failures.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

const sendRetries = 3

// Scheduler manages the cron tasks for the configured profiles.
type Scheduler struct {
	Cron     *cron.Cron
	Provider calendar.Provider
	Notifier Notifier
	Recorder recorder.Recorder
	Profiles []model.BirthInfo
	Terms    calendar.SolarTerms
	Ctx      context.Context

	log *zap.Logger
	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, provider calendar.Provider, tn Notifier, rec recorder.Recorder,
	profiles []model.BirthInfo, terms calendar.SolarTerms, log *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Provider: provider,
		Notifier: tn,
		Recorder: rec,
		Profiles: profiles,
		Terms:    terms,
		Ctx:      ctx,
		log:      log,
		now:      time.Now,
	}
}

// RegisterAll registers the daily digest and the new-year annual summary.
func (s *Scheduler) RegisterAll(dailyCron, yearlyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(yearlyCron, s.yearlyTask); err != nil {
		return fmt.Errorf("register yearly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started", zap.Int("profiles", len(s.Profiles)))
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunDailyNow executes the daily digest immediately.
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	s.log.Info("running daily digest")
	for _, birth := range s.Profiles {
		msg, err := s.daily(s.Ctx, birth)
		if err != nil {
			s.log.Error("daily digest failed", zap.String("profile", birth.Name), zap.Error(err))
			s.trySend(fmt.Sprintf("❌ %s 오늘의 운세 계산 실패: %s", html.EscapeString(birth.Name), html.EscapeString(err.Error())))
			continue
		}
		s.trySend(msg)
	}
}

func (s *Scheduler) yearlyTask() {
	year := s.now().Year()
	s.log.Info("running annual summary", zap.Int("year", year))
	for _, birth := range s.Profiles {
		msg, err := s.annual(s.Ctx, birth, year)
		if err != nil {
			s.log.Error("annual summary failed", zap.String("profile", birth.Name), zap.Error(err))
			continue
		}
		s.trySend(msg)
	}
}

func (s *Scheduler) daily(ctx context.Context, birth model.BirthInfo) (string, error) {
	chart, err := saju.ExtractChart(ctx, s.Provider, birth.Year, birth.Month, birth.Day, birth.Hour)
	if err != nil {
		return "", err
	}
	today := s.now()
	rec, err := s.Provider.Lookup(ctx, today.Year(), int(today.Month()), today.Day())
	if err != nil {
		return "", fmt.Errorf("look up today: %w", err)
	}
	return notifier.FormatDailyFortune(birth.Name, today, fortune.DailyFortune(chart, rec.Day)), nil
}

func (s *Scheduler) annual(ctx context.Context, birth model.BirthInfo, year int) (string, error) {
	chart, err := saju.ExtractChart(ctx, s.Provider, birth.Year, birth.Month, birth.Day, birth.Hour)
	if err != nil {
		return "", err
	}
	af, err := fortune.AnnualFortune(chart, year)
	if err != nil {
		return "", err
	}
	if err := s.Recorder.RecordAnnualFortune(chart, af); err != nil {
		s.log.Error("record annual fortune", zap.Error(err))
	}
	return notifier.FormatAnnualFortune(birth.Name, af), nil
}

func (s *Scheduler) great(ctx context.Context, birth model.BirthInfo) (string, error) {
	chart, err := saju.ExtractChart(ctx, s.Provider, birth.Year, birth.Month, birth.Day, birth.Hour)
	if err != nil {
		return "", err
	}
	gf, err := fortune.GreatFortune(chart, birth, s.Terms, s.now().Year())
	if err != nil {
		return "", err
	}
	if err := s.Recorder.RecordGreatFortune(birth, gf); err != nil {
		s.log.Error("record great fortune", zap.Error(err))
	}
	return notifier.FormatGreatFortune(birth.Name, gf), nil
}

func (s *Scheduler) chart(ctx context.Context, birth model.BirthInfo) (string, error) {
	r, err := saju.Analyze(ctx, s.Provider, birth)
	if err != nil {
		return "", err
	}
	if err := s.Recorder.RecordReading(r); err != nil {
		s.log.Error("record reading", zap.Error(err))
	}
	return notifier.FormatReading(r), nil
}

// HandleCommand processes a chat command and returns the reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// "/today@MyBot" is how commands arrive in group chats
	name, _, _ := strings.Cut(fields[0], "@")

	var run func(context.Context, model.BirthInfo) (string, error)
	switch name {
	case "/today":
		run = s.daily
	case "/daeun":
		run = s.great
	case "/chart":
		run = s.chart
	case "/saeun":
		year := s.now().Year()
		if len(fields) > 1 {
			y, err := strconv.Atoi(fields[1])
			if err != nil {
				return fmt.Sprintf("연도를 숫자로 입력하세요: %s", fields[1])
			}
			year = y
		}
		run = func(ctx context.Context, b model.BirthInfo) (string, error) { return s.annual(ctx, b, year) }
	default:
		return notifier.FormatHelp()
	}

	if len(s.Profiles) == 0 {
		return "설정된 프로필이 없습니다."
	}
	replies := make([]string, 0, len(s.Profiles))
	for _, birth := range s.Profiles {
		msg, err := run(ctx, birth)
		if err != nil {
			s.log.Warn("command failed", zap.String("command", name), zap.String("profile", birth.Name), zap.Error(err))
			msg = fmt.Sprintf("❌ %s: %s", html.EscapeString(birth.Name), html.EscapeString(err.Error()))
		}
		replies = append(replies, msg)
	}
	return strings.Join(replies, "\n\n")
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		s.log.Error("send notification", zap.Error(err))
	}
}
