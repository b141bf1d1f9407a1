package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"FortuneTeller/internal/ganzhi"
	"FortuneTeller/internal/model"
)

// SQLiteProvider reads the manseryuk table `calenda_data`.
// Each of cd_hyganjee, cd_hmganjee and cd_hdganjee holds a two-character pair such as "甲子".
type SQLiteProvider struct {
	db  *sql.DB
	log *zap.Logger
}

// NewSQLiteProvider opens the manseryuk database read-only and checks the table is present.
// A missing file is an error; nothing is created.
func NewSQLiteProvider(dbPath string, log *zap.Logger) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='calenda_data'`).Scan(&name)
	if err != nil {
		db.Close()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: table calenda_data missing", dbPath)
		}
		return nil, fmt.Errorf("probe calendar table: %w", err)
	}
	log.Info("manseryuk calendar opened", zap.String("path", dbPath))
	return &SQLiteProvider{db: db, log: log}, nil
}

func (p *SQLiteProvider) Name() string { return "sqlite" }

func (p *SQLiteProvider) Lookup(ctx context.Context, year, month, day int) (model.CalendarRecord, error) {
	var y, m, d string
	err := p.db.QueryRowContext(ctx, `SELECT cd_hyganjee, cd_hmganjee, cd_hdganjee
		FROM calenda_data WHERE cd_sy = ? AND cd_sm = ? AND cd_sd = ? LIMIT 1`,
		year, month, day,
	).Scan(&y, &m, &d)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CalendarRecord{}, fmt.Errorf("%04d-%02d-%02d: %w", year, month, day, ErrNotFound)
	}
	if err != nil {
		return model.CalendarRecord{}, fmt.Errorf("query calendar: %w", err)
	}
	return parseRecord(y, m, d)
}

// DatedRecord is a calendar record with its solar date.
type DatedRecord struct {
	Year, Month, Day int
	Record           model.CalendarRecord
}

// Range returns every record between two years inclusive, in date order.
func (p *SQLiteProvider) Range(ctx context.Context, fromYear, toYear int) ([]DatedRecord, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT cd_sy, cd_sm, cd_sd, cd_hyganjee, cd_hmganjee, cd_hdganjee
		FROM calenda_data WHERE cd_sy BETWEEN ? AND ?
		ORDER BY cd_sy, cd_sm, cd_sd`, fromYear, toYear)
	if err != nil {
		return nil, fmt.Errorf("query calendar range: %w", err)
	}
	defer rows.Close()

	var out []DatedRecord
	for rows.Next() {
		var dr DatedRecord
		var y, m, d string
		if err := rows.Scan(&dr.Year, &dr.Month, &dr.Day, &y, &m, &d); err != nil {
			return nil, fmt.Errorf("scan calendar row: %w", err)
		}
		rec, err := parseRecord(y, m, d)
		if err != nil {
			p.log.Warn("skipping corrupt calendar row",
				zap.Int("year", dr.Year), zap.Int("month", dr.Month), zap.Int("day", dr.Day), zap.Error(err))
			continue
		}
		dr.Record = rec
		out = append(out, dr)
	}
	return out, rows.Err()
}

func (p *SQLiteProvider) Close() error {
	p.log.Info("closing manseryuk calendar")
	return p.db.Close()
}

func parseRecord(y, m, d string) (model.CalendarRecord, error) {
	var rec model.CalendarRecord
	var err error
	if rec.Year, err = ganzhi.ParsePillar(y); err != nil {
		return rec, fmt.Errorf("year ganzhi: %w", err)
	}
	if rec.Month, err = ganzhi.ParsePillar(m); err != nil {
		return rec, fmt.Errorf("month ganzhi: %w", err)
	}
	if rec.Day, err = ganzhi.ParsePillar(d); err != nil {
		return rec, fmt.Errorf("day ganzhi: %w", err)
	}
	return rec, nil
}
