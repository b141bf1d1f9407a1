package recorder

import "FortuneTeller/internal/model"

// NoopRecorder is used when history is disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordReading(_ *model.Reading) error { return nil }

func (n *NoopRecorder) RecordGreatFortune(_ model.BirthInfo, _ *model.GreatFortune) error {
	return nil
}

func (n *NoopRecorder) RecordAnnualFortune(_ model.Chart, _ *model.AnnualFortune) error {
	return nil
}

func (n *NoopRecorder) RecordCompatibility(_ *model.Compatibility) error { return nil }

func (n *NoopRecorder) Close() error { return nil }
