package calendar

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"FortuneTeller/internal/ganzhi"
	"FortuneTeller/internal/model"
)

func mustPillar(t *testing.T, s string) ganzhi.Pillar {
	t.Helper()
	p, err := ganzhi.ParsePillar(s)
	require.NoError(t, err)
	return p
}

func TestMemoryProvider(t *testing.T) {
	p := NewMemoryProvider()
	rec := model.CalendarRecord{
		Year:  mustPillar(t, "甲子"),
		Month: mustPillar(t, "丙寅"),
		Day:   mustPillar(t, "戊午"),
	}
	p.Add(1984, 3, 1, rec)

	got, err := p.Lookup(context.Background(), 1984, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = p.Lookup(context.Background(), 1984, 3, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApproxProvider_KnownDates(t *testing.T) {
	p := NewApproxProvider()
	tests := []struct {
		y, m, d           int
		year, month, day string
	}{
		{2000, 1, 1, "己卯", "丙子", "戊午"},
		{2024, 3, 10, "甲辰", "丁卯", "癸酉"},
		{2024, 1, 10, "癸卯", "乙丑", "癸酉"},
		{2024, 2, 3, "癸卯", "乙丑", "丁酉"},
		{2024, 2, 4, "甲辰", "丙寅", "戊戌"},
		{1970, 1, 1, "己酉", "丙子", "辛巳"},
	}
	for _, tt := range tests {
		rec, err := p.Lookup(context.Background(), tt.y, tt.m, tt.d)
		require.NoError(t, err)
		assert.Equal(t, tt.year, rec.Year.String(), "%d-%d-%d year", tt.y, tt.m, tt.d)
		assert.Equal(t, tt.month, rec.Month.String(), "%d-%d-%d month", tt.y, tt.m, tt.d)
		assert.Equal(t, tt.day, rec.Day.String(), "%d-%d-%d day", tt.y, tt.m, tt.d)
	}
}

func TestApproxProvider_Misses(t *testing.T) {
	p := NewApproxProvider()
	for _, date := range [][3]int{{2023, 2, 30}, {1899, 12, 31}, {2101, 1, 1}, {2023, 4, 31}} {
		_, err := p.Lookup(context.Background(), date[0], date[1], date[2])
		assert.ErrorIs(t, err, ErrNotFound, "date %v", date)
	}
}

func TestSolarTermsValidate(t *testing.T) {
	assert.NoError(t, DefaultSolarTerms.Validate())
	bad := DefaultSolarTerms
	bad[5] = 0
	assert.Error(t, bad.Validate())
	assert.Equal(t, 4, DefaultSolarTerms.Day(2))
}

func seedSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manseryuk.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE calenda_data (
		cd_sy INTEGER, cd_sm INTEGER, cd_sd INTEGER,
		cd_hyganjee TEXT, cd_kyganjee TEXT,
		cd_hmganjee TEXT, cd_kmganjee TEXT,
		cd_hdganjee TEXT, cd_kdganjee TEXT)`)
	require.NoError(t, err)
	rows := [][]any{
		{1984, 3, 1, "甲子", "갑자", "丙寅", "병인", "戊午", "무오"},
		{1984, 3, 2, "甲子", "갑자", "丙寅", "병인", "己未", "기미"},
		{1985, 1, 1, "甲子", "갑자", "丙子", "병자", "XX", "??"},
	}
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO calenda_data VALUES (?,?,?,?,?,?,?,?,?)`, r...)
		require.NoError(t, err)
	}
	return path
}

func TestSQLiteProvider(t *testing.T) {
	p, err := NewSQLiteProvider(seedSQLite(t), zap.NewNop())
	require.NoError(t, err)
	defer p.Close()

	rec, err := p.Lookup(context.Background(), 1984, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, "甲子", rec.Year.String())
	assert.Equal(t, "丙寅", rec.Month.String())
	assert.Equal(t, "戊午", rec.Day.String())

	_, err = p.Lookup(context.Background(), 1990, 1, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = p.Lookup(context.Background(), 1985, 1, 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	all, err := p.Range(context.Background(), 1984, 1985)
	require.NoError(t, err)
	require.Len(t, all, 2, "corrupt row should be skipped")
	assert.Equal(t, 2, all[1].Day)
	assert.Equal(t, "己未", all[1].Record.Day.String())
}

func TestSQLiteProvider_MissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE unrelated (id INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = NewSQLiteProvider(path, zap.NewNop())
	assert.ErrorContains(t, err, "table calenda_data missing")
}

func TestSQLiteProvider_MissingFileNotCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.db")
	_, err := NewSQLiteProvider(path, zap.NewNop())
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "provider must not create %s", path)
}

func TestHTTPProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/calendar", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		switch r.URL.Query().Get("day") {
		case "1":
			w.Write([]byte(`{"year_ganzhi":"甲子","month_ganzhi":"丙寅","day_ganzhi":"戊午"}`))
		case "2":
			w.Write([]byte(`{"cd_hyganjee":"甲子","cd_hmganjee":"丙寅","cd_hdganjee":"己未"}`))
		case "3":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "secret", "", 0)
	ctx := context.Background()

	rec, err := p.Lookup(ctx, 1984, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, "戊午", rec.Day.String())

	rec, err = p.Lookup(ctx, 1984, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, "己未", rec.Day.String())

	_, err = p.Lookup(ctx, 1984, 3, 3)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = p.Lookup(ctx, 1984, 3, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}
