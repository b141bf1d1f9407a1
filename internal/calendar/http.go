package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"FortuneTeller/internal/model"
)

// HTTPProvider queries a remote manseryuk service.
type HTTPProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPProvider creates a provider with optional proxy support.
func NewHTTPProvider(baseURL, apiKey, proxyURL string, timeout time.Duration) *HTTPProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (p *HTTPProvider) Name() string { return "http" }

// Field paths tried in order; the last mirrors the manseryuk column names.
var (
	yearPaths  = []string{"year_ganzhi", "data.year_ganzhi", "cd_hyganjee"}
	monthPaths = []string{"month_ganzhi", "data.month_ganzhi", "cd_hmganjee"}
	dayPaths   = []string{"day_ganzhi", "data.day_ganzhi", "cd_hdganjee"}
)

func (p *HTTPProvider) Lookup(ctx context.Context, year, month, day int) (model.CalendarRecord, error) {
	endpoint := fmt.Sprintf("%s/api/v1/calendar?year=%d&month=%d&day=%d", p.BaseURL, year, month, day)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.CalendarRecord{}, err
	}
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return model.CalendarRecord{}, fmt.Errorf("fetch calendar: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.CalendarRecord{}, fmt.Errorf("read calendar response: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.CalendarRecord{}, fmt.Errorf("%04d-%02d-%02d: %w", year, month, day, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return model.CalendarRecord{}, fmt.Errorf("fetch calendar: status %d, body: %s", resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return model.CalendarRecord{}, fmt.Errorf("calendar response is not valid JSON")
	}
	return parseRecord(firstString(body, yearPaths), firstString(body, monthPaths), firstString(body, dayPaths))
}

func firstString(body []byte, paths []string) string {
	for _, path := range paths {
		if r := gjson.GetBytes(body, path); r.Exists() {
			return r.String()
		}
	}
	return ""
}
