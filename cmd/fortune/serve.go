package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"FortuneTeller/internal/logging"
	"FortuneTeller/internal/notifier"
	"FortuneTeller/internal/scheduler"
	"FortuneTeller/internal/server"
	"FortuneTeller/internal/usage"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and, when configured, the Telegram bot",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(debug, logging.DefaultDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
		_ = closeLog()
	}()

	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(cfg.Server.Mode)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	provider, closeProvider, err := openProvider(cfg, log)
	if err != nil {
		return fmt.Errorf("init calendar provider: %w", err)
	}
	defer closeProvider()
	log.Info("calendar source ready", zap.String("source", provider.Name()))

	tracker, err := usage.NewTracker(cfg.Gemini.UsageFile, cfg.Gemini.DailyLimit, cfg.Gemini.MonthlyLimit, log)
	if err != nil {
		return fmt.Errorf("init usage tracker: %w", err)
	}

	interp, err := openInterpreter(ctx, cfg, tracker, log)
	if err != nil {
		return fmt.Errorf("init interpreter: %w", err)
	}

	rec := openRecorder(cfg, log)
	defer rec.Close()

	srv := server.New(provider, server.Options{
		Recorder:    rec,
		Interpreter: interp,
		Tracker:     tracker,
		Terms:       cfg.Calendar.Terms(),
	}, log)

	if cfg.Telegram.Enabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		sched := scheduler.NewScheduler(ctx, provider, tn, rec, cfg.Births(), cfg.Calendar.Terms(), log)
		if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.YearlyCron); err != nil {
			return fmt.Errorf("register cron tasks: %w", err)
		}
		sched.Start()
		defer sched.Stop()

		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info("telegram polling started", zap.Int("profiles", len(cfg.Profiles)))

		if os.Getenv("RUN_ON_START") == "true" {
			log.Info("RUN_ON_START enabled, sending the daily digest now")
			go sched.RunDailyNow()
		}
	} else {
		log.Info("telegram not configured, bot disabled")
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}
	log.Info("fortune server stopped")
	return nil
}
