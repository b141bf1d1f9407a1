package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"FortuneTeller/internal/calendar"
	"FortuneTeller/internal/config"
	"FortuneTeller/internal/fortune"
	"FortuneTeller/internal/model"
	"FortuneTeller/internal/recorder"
	"FortuneTeller/internal/saju"
)

// birthFlags are shared by the one-shot commands.
var birthFlags struct {
	name   string
	year   int
	month  int
	day    int
	hour   int
	gender string
}

var (
	targetYear   int
	historyLimit int
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print the four pillars, elements and strength for a birth moment",
	RunE:  runChart,
}

var daeunCmd = &cobra.Command{
	Use:   "daeun",
	Short: "Print the eight ten-year great-fortune periods",
	RunE:  runDaeun,
}

var saeunCmd = &cobra.Command{
	Use:   "saeun",
	Short: "Print the annual fortune for a target year",
	RunE:  runSaeun,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently recorded readings",
	RunE:  runHistory,
}

func init() {
	for _, c := range []*cobra.Command{chartCmd, daeunCmd, saeunCmd} {
		f := c.Flags()
		f.StringVar(&birthFlags.name, "name", "", "Name shown in the output")
		f.IntVar(&birthFlags.year, "year", 0, "Birth year (1900-2100)")
		f.IntVar(&birthFlags.month, "month", 0, "Birth month (1-12)")
		f.IntVar(&birthFlags.day, "day", 0, "Birth day (1-31)")
		f.IntVar(&birthFlags.hour, "hour", 0, "Birth hour (0-23)")
		f.StringVar(&birthFlags.gender, "gender", "", "male or female")
		_ = c.MarkFlagRequired("year")
		_ = c.MarkFlagRequired("month")
		_ = c.MarkFlagRequired("day")
		_ = c.MarkFlagRequired("hour")
	}
	_ = daeunCmd.MarkFlagRequired("gender")
	saeunCmd.Flags().IntVar(&targetYear, "target-year", 0, "Year to read (default: current year)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of readings to list")
}

// cliLogger keeps stdout clean for JSON unless --debug is set.
func cliLogger() *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func birthFromFlags(requireGender bool) (model.BirthInfo, error) {
	b := model.BirthInfo{
		Name:  birthFlags.name,
		Year:  birthFlags.year,
		Month: birthFlags.month,
		Day:   birthFlags.day,
		Hour:  birthFlags.hour,
	}
	if birthFlags.gender != "" || requireGender {
		g, err := saju.ParseGender(birthFlags.gender)
		if err != nil {
			return b, err
		}
		b.Gender = g
	}
	return b, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

type oneShotFunc func(cfg *config.Config, p calendar.Provider, rec recorder.Recorder, log *zap.Logger) error

// withProvider loads config and opens the calendar source and recorder for fn.
func withProvider(fn oneShotFunc) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := cliLogger()

	p, closeProvider, err := openProvider(cfg, log)
	if err != nil {
		return fmt.Errorf("init calendar provider: %w", err)
	}
	defer closeProvider()

	rec := openRecorder(cfg, log)
	defer rec.Close()

	return fn(cfg, p, rec, log)
}

func runChart(cmd *cobra.Command, _ []string) error {
	birth, err := birthFromFlags(false)
	if err != nil {
		return err
	}
	return withProvider(func(_ *config.Config, p calendar.Provider, rec recorder.Recorder, log *zap.Logger) error {
		reading, err := saju.Analyze(cmd.Context(), p, birth)
		if err != nil {
			return err
		}
		if err := rec.RecordReading(reading); err != nil {
			log.Warn("record reading failed", zap.Error(err))
		}
		return printJSON(cmd.OutOrStdout(), reading)
	})
}

func runDaeun(cmd *cobra.Command, _ []string) error {
	birth, err := birthFromFlags(true)
	if err != nil {
		return err
	}
	return withProvider(func(cfg *config.Config, p calendar.Provider, rec recorder.Recorder, log *zap.Logger) error {
		chart, err := saju.ExtractChart(cmd.Context(), p, birth.Year, birth.Month, birth.Day, birth.Hour)
		if err != nil {
			return err
		}
		gf, err := fortune.GreatFortune(chart, birth, cfg.Calendar.Terms(), time.Now().Year())
		if err != nil {
			return err
		}
		if err := rec.RecordGreatFortune(birth, gf); err != nil {
			log.Warn("record great fortune failed", zap.Error(err))
		}
		return printJSON(cmd.OutOrStdout(), gf)
	})
}

func runSaeun(cmd *cobra.Command, _ []string) error {
	birth, err := birthFromFlags(false)
	if err != nil {
		return err
	}
	year := targetYear
	if year == 0 {
		year = time.Now().Year()
	}
	return withProvider(func(_ *config.Config, p calendar.Provider, rec recorder.Recorder, log *zap.Logger) error {
		chart, err := saju.ExtractChart(cmd.Context(), p, birth.Year, birth.Month, birth.Day, birth.Hour)
		if err != nil {
			return err
		}
		af, err := fortune.AnnualFortune(chart, year)
		if err != nil {
			return err
		}
		if err := rec.RecordAnnualFortune(chart, af); err != nil {
			log.Warn("record annual fortune failed", zap.Error(err))
		}
		return printJSON(cmd.OutOrStdout(), af)
	})
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if historyLimit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", historyLimit)
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.History.SQLitePath, cliLogger())
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer sr.Close()

	rows, err := sr.RecentReadings(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), rows)
}
