package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// CommandHandler answers one user command; an empty reply sends nothing.
type CommandHandler func(ctx context.Context, command string) string

// Update is one incoming chat message.
type Update struct {
	ID     int64
	ChatID string
	Text   string
}

// ParseUpdates extracts message texts from a getUpdates response body.
func ParseUpdates(body []byte) ([]Update, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid getUpdates response")
	}
	res := gjson.ParseBytes(body)
	if !res.Get("ok").Bool() {
		return nil, fmt.Errorf("getUpdates not ok: %s", res.Get("description").String())
	}
	var out []Update
	res.Get("result").ForEach(func(_, u gjson.Result) bool {
		out = append(out, Update{
			ID:     u.Get("update_id").Int(),
			ChatID: u.Get("message.chat.id").String(),
			Text:   strings.TrimSpace(u.Get("message.text").String()),
		})
		return true
	})
	return out, nil
}

// accepts reports whether u came from the configured chat.
func (t *TelegramNotifier) accepts(u Update) bool {
	return u.ChatID != "" && u.ChatID == t.ChatID
}

// StartPolling long-polls for commands and replies to each. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	var offset int64
	client := &http.Client{Timeout: 35 * time.Second, Transport: t.Client.Transport}

	for {
		select {
		case <-ctx.Done():
			t.log.Info("telegram polling stopped")
			return
		default:
		}

		updates, err := t.poll(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			t.log.Warn("polling request failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, u := range updates {
			offset = u.ID + 1
			if u.Text == "" {
				continue
			}
			if !t.accepts(u) {
				t.log.Warn("ignoring command from unknown chat", zap.String("chat_id", u.ChatID))
				continue
			}
			t.log.Info("received command", zap.String("text", u.Text))
			if reply := handler(ctx, u.Text); reply != "" {
				if err := t.Send(ctx, reply); err != nil {
					t.log.Error("send reply failed", zap.Error(err))
				}
			}
		}
	}
}

func (t *TelegramNotifier) poll(ctx context.Context, client *http.Client, offset int64) ([]Update, error) {
	apiURL := fmt.Sprintf("%s?offset=%d&timeout=30", t.method("getUpdates"), offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read polling response: %w", err)
	}
	return ParseUpdates(body)
}
