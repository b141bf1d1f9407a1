// Package interpret produces free-text chart interpretations from a language model.
package interpret

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"FortuneTeller/internal/model"
	"FortuneTeller/internal/usage"
)

var (
	// ErrDisabled is returned when no model backend is configured.
	ErrDisabled = errors.New("interpret: interpretation is disabled")
	// ErrQuotaExceeded is returned when the usage tracker refuses the call.
	ErrQuotaExceeded = errors.New("interpret: usage quota exceeded")
)

// Interpreter answers a question about a reading.
type Interpreter interface {
	Interpret(ctx context.Context, r *model.Reading, question string) (string, error)
}

// Disabled is the Interpreter used when no API key is configured.
type Disabled struct{}

func (Disabled) Interpret(context.Context, *model.Reading, string) (string, error) {
	return "", ErrDisabled
}

// Options tunes generation.
type Options struct {
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

// generateFunc sends one prompt and returns the model's text.
type generateFunc func(ctx context.Context, prompt string) (string, error)

// GeminiInterpreter calls the Gemini API, metered by a usage tracker.
type GeminiInterpreter struct {
	generate generateFunc
	tracker  *usage.Tracker
	now      func() time.Time
	log      *zap.Logger
}

// NewGeminiInterpreter creates the client. An empty apiKey returns ErrDisabled.
func NewGeminiInterpreter(ctx context.Context, apiKey string, opts Options, tracker *usage.Tracker, log *zap.Logger) (*GeminiInterpreter, error) {
	if apiKey == "" {
		return nil, ErrDisabled
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelName := opts.Model
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	temperature, topP := opts.Temperature, opts.TopP
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		TopP:            &topP,
		MaxOutputTokens: opts.MaxOutputTokens,
	}

	gen := func(ctx context.Context, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), cfg)
		if err != nil {
			return "", fmt.Errorf("gemini generate: %w", err)
		}
		return resp.Text(), nil
	}
	return newGemini(gen, tracker, log), nil
}

func newGemini(gen generateFunc, tracker *usage.Tracker, log *zap.Logger) *GeminiInterpreter {
	return &GeminiInterpreter{generate: gen, tracker: tracker, now: time.Now, log: log}
}

// Interpret checks the quota before calling the model; a refused call never reaches the API.
func (g *GeminiInterpreter) Interpret(ctx context.Context, r *model.Reading, question string) (string, error) {
	if r == nil {
		return "", errors.New("interpret: nil reading")
	}
	if g.tracker != nil && !g.tracker.Allow(g.now()) {
		return "", ErrQuotaExceeded
	}

	start := time.Now()
	text, err := g.generate(ctx, BuildPrompt(r, question))
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("interpret: empty response from model")
	}
	g.log.Info("interpretation generated",
		zap.Int("chars", len([]rune(text))),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}
