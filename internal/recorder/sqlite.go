package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"FortuneTeller/internal/model"
)

var _ Recorder = (*SQLiteRecorder)(nil)

// SQLiteRecorder persists history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS readings (
			id           TEXT PRIMARY KEY,
			created_at   INTEGER NOT NULL,
			name         TEXT,
			birth_year   INTEGER,
			birth_month  INTEGER,
			birth_day    INTEGER,
			birth_hour   INTEGER,
			gender       TEXT,
			year_pillar  TEXT,
			month_pillar TEXT,
			day_pillar   TEXT,
			hour_pillar  TEXT,
			wood         INTEGER,
			fire         INTEGER,
			earth        INTEGER,
			metal        INTEGER,
			water        INTEGER,
			strength     TEXT,
			favorable    TEXT,
			unfavorable  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_ts ON readings(created_at)`,

		`CREATE TABLE IF NOT EXISTS great_fortunes (
			id          TEXT PRIMARY KEY,
			created_at  INTEGER NOT NULL,
			birth_year  INTEGER,
			birth_month INTEGER,
			birth_day   INTEGER,
			gender      TEXT,
			start_age   INTEGER,
			is_forward  INTEGER,
			current_age INTEGER,
			periods     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_great_ts ON great_fortunes(created_at)`,

		`CREATE TABLE IF NOT EXISTS annual_fortunes (
			id            TEXT PRIMARY KEY,
			created_at    INTEGER NOT NULL,
			day_pillar    TEXT,
			target_year   INTEGER,
			year_pillar   TEXT,
			year_score    REAL,
			month_average REAL,
			normalized    REAL,
			grade         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_annual_ts ON annual_fortunes(created_at)`,

		`CREATE TABLE IF NOT EXISTS compatibility_checks (
			id                TEXT PRIMARY KEY,
			created_at        INTEGER NOT NULL,
			first_day_pillar  TEXT,
			second_day_pillar TEXT,
			element_score     INTEGER,
			day_stem_score    INTEGER,
			overall           INTEGER,
			summary           TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_compat_ts ON compatibility_checks(created_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordReading(rd *model.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, c, h, s := rd.Birth, rd.Chart, rd.Elements, rd.Strength
	_, err := r.db.Exec(`INSERT INTO readings
		(id, created_at, name, birth_year, birth_month, birth_day, birth_hour, gender,
		 year_pillar, month_pillar, day_pillar, hour_pillar,
		 wood, fire, earth, metal, water,
		 strength, favorable, unfavorable)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		uuid.NewString(), r.now().Unix(), b.Name, b.Year, b.Month, b.Day, b.Hour, string(b.Gender),
		c.Year.String(), c.Month.String(), c.Day.String(), c.Hour.String(),
		h[0], h[1], h[2], h[3], h[4],
		string(s.Label), s.Favorable.String(), s.Unfavorable.String(),
	)
	return err
}

func (r *SQLiteRecorder) RecordGreatFortune(birth model.BirthInfo, gf *model.GreatFortune) error {
	periods, err := json.Marshal(gf.Periods)
	if err != nil {
		return fmt.Errorf("encode periods: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.Exec(`INSERT INTO great_fortunes
		(id, created_at, birth_year, birth_month, birth_day, gender, start_age, is_forward, current_age, periods)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		uuid.NewString(), r.now().Unix(), birth.Year, birth.Month, birth.Day, string(birth.Gender),
		gf.StartAge, gf.Forward, gf.CurrentAge, string(periods),
	)
	return err
}

func (r *SQLiteRecorder) RecordAnnualFortune(chart model.Chart, af *model.AnnualFortune) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO annual_fortunes
		(id, created_at, day_pillar, target_year, year_pillar, year_score, month_average, normalized, grade)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		uuid.NewString(), r.now().Unix(), chart.Day.String(), af.TargetYear, af.Year.Pillar.String(),
		af.Score.YearScore, af.Score.MonthAverage, af.Score.Normalized, af.Score.Grade,
	)
	return err
}

func (r *SQLiteRecorder) RecordCompatibility(c *model.Compatibility) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO compatibility_checks
		(id, created_at, first_day_pillar, second_day_pillar, element_score, day_stem_score, overall, summary)
		VALUES (?,?,?,?,?,?,?,?)`,
		uuid.NewString(), r.now().Unix(), c.First.Chart.Day.String(), c.Second.Chart.Day.String(),
		c.ElementScore, c.DayStemScore, c.Overall, c.Summary,
	)
	return err
}

// RecentReadings returns up to limit readings, newest first.
func (r *SQLiteRecorder) RecentReadings(ctx context.Context, limit int) ([]ReadingRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, created_at, name,
			birth_year, birth_month, birth_day, birth_hour,
			year_pillar, month_pillar, day_pillar, hour_pillar, strength
		FROM readings ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	var out []ReadingRow
	for rows.Next() {
		var (
			row            ReadingRow
			ts             int64
			y, m, d, h     int
			yp, mp, dp, hp string
		)
		if err := rows.Scan(&row.ID, &ts, &row.Name, &y, &m, &d, &h, &yp, &mp, &dp, &hp, &row.Strength); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		row.CreatedAt = time.Unix(ts, 0)
		row.Birth = fmt.Sprintf("%04d-%02d-%02d %02d시", y, m, d, h)
		row.Chart = fmt.Sprintf("%s %s %s %s", yp, mp, dp, hp)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
