package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"FortuneTeller/internal/calendar"
	"FortuneTeller/internal/fortune"
	"FortuneTeller/internal/ganzhi"
	"FortuneTeller/internal/model"
	"FortuneTeller/internal/saju"
)

func TestSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "", zap.NewNop())
	n.APIBase = srv.URL
	require.NoError(t, n.Send(context.Background(), "<b>hi</b>"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "HTML", got["parse_mode"])
	assert.Equal(t, "<b>hi</b>", got["text"])
}

func TestSendWithRetry_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("T", "1", "", zap.NewNop())
	n.APIBase = srv.URL
	err := n.SendWithRetry(context.Background(), "x", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 retries exhausted")
	assert.Equal(t, int32(2), calls.Load())
}

func TestSendWithRetry_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("T", "1", "", zap.NewNop())
	n.APIBase = srv.URL
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, n.SendWithRetry(ctx, "x", 5), context.DeadlineExceeded)
}

func TestParseUpdates(t *testing.T) {
	body := []byte(`{"ok":true,"result":[
		{"update_id":10,"message":{"chat":{"id":42},"text":" /today "}},
		{"update_id":11,"edited_message":{"text":"ignored"}}
	]}`)
	ups, err := ParseUpdates(body)
	require.NoError(t, err)
	require.Len(t, ups, 2)
	assert.Equal(t, Update{ID: 10, ChatID: "42", Text: "/today"}, ups[0])
	assert.Equal(t, Update{ID: 11, Text: ""}, ups[1])

	_, err = ParseUpdates([]byte(`{"ok":false,"description":"Unauthorized"}`))
	assert.ErrorContains(t, err, "Unauthorized")
	_, err = ParseUpdates([]byte(`<html>`))
	assert.Error(t, err)
}

func TestStartPolling_IgnoresOtherChats(t *testing.T) {
	var polls, sends atomic.Int32
	var sent map[string]string
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botT/getUpdates":
			if polls.Add(1) > 1 {
				w.Write([]byte(`{"ok":true,"result":[]}`))
				return
			}
			w.Write([]byte(`{"ok":true,"result":[
				{"update_id":1,"message":{"chat":{"id":999},"text":"/chart"}},
				{"update_id":2,"message":{"chat":{"id":42},"text":"/today"}}
			]}`))
		case "/botT/sendMessage":
			sends.Add(1)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			w.Write([]byte(`{"ok":true}`))
			cancel()
		}
	}))
	defer srv.Close()

	n := NewTelegramNotifier("T", "42", "", zap.NewNop())
	n.APIBase = srv.URL

	var handled []string
	done := make(chan struct{})
	go func() {
		n.StartPolling(ctx, func(_ context.Context, cmd string) string {
			handled = append(handled, cmd)
			return "reply"
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop")
	}
	assert.Equal(t, []string{"/today"}, handled)
	assert.Equal(t, int32(1), sends.Load())
	assert.Equal(t, "42", sent["chat_id"])
}

func TestFormatters(t *testing.T) {
	r, err := saju.Analyze(context.Background(), calendar.NewApproxProvider(), model.BirthInfo{
		Name: "<별>", Year: 1990, Month: 5, Day: 15, Hour: 10, Gender: model.Male,
	})
	require.NoError(t, err)

	out := FormatReading(r)
	assert.Contains(t, out, "&lt;별&gt;")
	assert.Contains(t, out, r.Chart.Day.String())

	day, err := ganzhi.ParsePillar("甲子")
	require.NoError(t, err)
	daily := FormatDailyFortune("", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), fortune.DailyFortune(r.Chart, day))
	assert.Contains(t, daily, "2025-01-02")
	assert.Contains(t, daily, "일진: 甲子 (갑자)")

	af, err := fortune.AnnualFortune(r.Chart, 2025)
	require.NoError(t, err)
	annual := FormatAnnualFortune("별", af)
	assert.Contains(t, annual, "2025년 세운")
	assert.Equal(t, 12, strings.Count(annual, "월 "))

	gf, err := fortune.GreatFortune(r.Chart, r.Birth, calendar.DefaultSolarTerms, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(FormatGreatFortune("별", gf), "▶"))

	assert.Contains(t, FormatHelp(), "/saeun")
}
