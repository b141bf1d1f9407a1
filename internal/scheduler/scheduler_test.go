package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"FortuneTeller/internal/calendar"
	"FortuneTeller/internal/model"
	"FortuneTeller/internal/recorder"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func newTestScheduler(t *testing.T, profiles ...model.BirthInfo) (*Scheduler, *fakeNotifier) {
	t.Helper()
	fn := &fakeNotifier{}
	s := NewScheduler(context.Background(), calendar.NewApproxProvider(), fn, recorder.NewNoopRecorder(),
		profiles, calendar.DefaultSolarTerms, zap.NewNop())
	s.now = func() time.Time { return time.Date(2025, 4, 10, 8, 0, 0, 0, time.UTC) }
	return s, fn
}

var (
	alice = model.BirthInfo{Name: "앨리스", Year: 1991, Month: 6, Day: 12, Hour: 9, Gender: model.Female}
	bob   = model.BirthInfo{Name: "밥", Year: 1987, Month: 12, Day: 1, Hour: 22, Gender: model.Male}
)

func TestRunDailyNow(t *testing.T) {
	s, fn := newTestScheduler(t, alice, bob)
	s.RunDailyNow()

	require.Len(t, fn.sent, 2)
	assert.Contains(t, fn.sent[0], "2025-04-10")
	assert.Contains(t, fn.sent[0], "앨리스")
	assert.Contains(t, fn.sent[1], "밥")
}

func TestRunDailyNow_BadProfile(t *testing.T) {
	bad := model.BirthInfo{Name: "오류", Year: 1850, Month: 1, Day: 1}
	s, fn := newTestScheduler(t, bad)
	s.RunDailyNow()

	require.Len(t, fn.sent, 1)
	assert.Contains(t, fn.sent[0], "❌ 오류")
}

type htmlErrorProvider struct{}

func (htmlErrorProvider) Name() string { return "broken" }

func (htmlErrorProvider) Lookup(context.Context, int, int, int) (model.CalendarRecord, error) {
	return model.CalendarRecord{}, errors.New("status 502: <html><body>bad gateway</body></html>")
}

func TestFailureMessagesEscaped(t *testing.T) {
	s, fn := newTestScheduler(t, model.BirthInfo{Name: "<톰>", Year: 1990, Month: 5, Day: 15, Hour: 10, Gender: model.Male})
	s.Provider = htmlErrorProvider{}

	s.RunDailyNow()
	require.Len(t, fn.sent, 1)
	assert.Contains(t, fn.sent[0], "&lt;톰&gt;")
	assert.Contains(t, fn.sent[0], "&lt;html&gt;")
	assert.NotContains(t, fn.sent[0], "<html>")

	reply := s.HandleCommand(context.Background(), "/chart")
	assert.Contains(t, reply, "&lt;톰&gt;")
	assert.NotContains(t, reply, "<body>")
}

func TestHandleCommand(t *testing.T) {
	s, _ := newTestScheduler(t, alice)
	ctx := context.Background()

	assert.Contains(t, s.HandleCommand(ctx, "/today"), "오늘의 운세")
	assert.Contains(t, s.HandleCommand(ctx, "/today@FortuneBot"), "오늘의 운세")
	assert.Contains(t, s.HandleCommand(ctx, "/saeun"), "2025년 세운")
	assert.Contains(t, s.HandleCommand(ctx, "/saeun 2030"), "2030년 세운")
	assert.Contains(t, s.HandleCommand(ctx, "/saeun next"), "연도를 숫자로")
	assert.Contains(t, s.HandleCommand(ctx, "/saeun 1800"), "target_year")
	assert.Contains(t, s.HandleCommand(ctx, "/daeun"), "대운")
	assert.Contains(t, s.HandleCommand(ctx, "/chart"), "앨리스의 사주")
	assert.Contains(t, s.HandleCommand(ctx, "hello"), "/today")
	assert.Contains(t, s.HandleCommand(ctx, ""), "/today")
}

func TestHandleCommand_MultipleProfiles(t *testing.T) {
	s, _ := newTestScheduler(t, alice, bob)
	reply := s.HandleCommand(context.Background(), "/daeun")
	assert.Equal(t, 2, strings.Count(reply, "대운"))
}

func TestHandleCommand_NoProfiles(t *testing.T) {
	s, _ := newTestScheduler(t)
	assert.Equal(t, "설정된 프로필이 없습니다.", s.HandleCommand(context.Background(), "/today"))
}

func TestRegisterAll(t *testing.T) {
	s, _ := newTestScheduler(t)
	require.NoError(t, s.RegisterAll("0 0 8 * * *", "0 0 9 1 1 *"))
	assert.Len(t, s.Cron.Entries(), 2)

	s, _ = newTestScheduler(t)
	assert.Error(t, s.RegisterAll("bad", "0 0 9 1 1 *"))
}
