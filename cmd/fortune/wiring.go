package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"FortuneTeller/internal/calendar"
	"FortuneTeller/internal/config"
	"FortuneTeller/internal/interpret"
	"FortuneTeller/internal/recorder"
	"FortuneTeller/internal/usage"
)

// openProvider picks the calendar source. The returned close func is never nil.
func openProvider(cfg *config.Config, log *zap.Logger) (calendar.Provider, func() error, error) {
	switch cfg.Calendar.Source {
	case config.SourceSQLite:
		p, err := calendar.NewSQLiteProvider(cfg.Calendar.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	case config.SourceHTTP:
		p := calendar.NewHTTPProvider(cfg.Calendar.BaseURL, cfg.Calendar.APIKey, cfg.Proxy, cfg.Calendar.Timeout())
		return p, func() error { return nil }, nil
	default:
		p := calendar.NewApproxProvider()
		p.Terms = cfg.Calendar.Terms()
		return p, func() error { return nil }, nil
	}
}

// openRecorder falls back to the noop recorder when history is off or the
// database cannot be opened.
func openRecorder(cfg *config.Config, log *zap.Logger) recorder.Recorder {
	if !cfg.History.Enabled {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.History.SQLitePath, log)
	if err != nil {
		log.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	return sr
}

// openInterpreter returns the Gemini interpreter, or Disabled without an API key.
func openInterpreter(ctx context.Context, cfg *config.Config, tracker *usage.Tracker, log *zap.Logger) (interpret.Interpreter, error) {
	gi, err := interpret.NewGeminiInterpreter(ctx, cfg.Gemini.APIKey, interpret.Options{
		Model:           cfg.Gemini.Model,
		Temperature:     cfg.Gemini.Temperature,
		TopP:            cfg.Gemini.TopP,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
	}, tracker, log)
	if errors.Is(err, interpret.ErrDisabled) {
		log.Info("GEMINI_API_KEY not set, interpretation disabled")
		return interpret.Disabled{}, nil
	}
	if err != nil {
		return nil, err
	}
	return gi, nil
}
