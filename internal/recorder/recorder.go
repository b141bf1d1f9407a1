// Package recorder keeps a history of computed readings for later analysis.
package recorder

import (
	"time"

	"FortuneTeller/internal/model"
)

// ReadingRow is one stored chart reading.
type ReadingRow struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Birth     string    `json:"birth"`
	Chart     string    `json:"chart"`
	Strength  string    `json:"strength"`
}

// Recorder persists computed results. Callers log failures and carry on.
type Recorder interface {
	RecordReading(r *model.Reading) error
	RecordGreatFortune(birth model.BirthInfo, gf *model.GreatFortune) error
	RecordAnnualFortune(chart model.Chart, af *model.AnnualFortune) error
	RecordCompatibility(c *model.Compatibility) error
	Close() error
}
