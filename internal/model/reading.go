package model

// Interpretation is the table-driven text attached to a reading.
type Interpretation struct {
	Nature          string   `json:"nature"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	CareerFields    []string `json:"career_fields"`
	CareerTendency  string   `json:"career_tendency"`
	Relationship    string   `json:"relationship"`
	Wealth          string   `json:"wealth"`
	HealthNotes     []string `json:"health_notes"`
	Recommendations []string `json:"recommendations"`
}

// Reading bundles everything derived from one birth moment.
type Reading struct {
	Birth          BirthInfo        `json:"birth"`
	Chart          Chart            `json:"chart"`
	Elements       ElementHistogram `json:"elements"`
	Strength       Strength         `json:"strength"`
	TenGods        []TenGodEntry    `json:"ten_gods"`
	Interpretation Interpretation   `json:"interpretation"`
}

// CompatibilityScores breaks the overall score down by topic.
type CompatibilityScores struct {
	Love          int `json:"love"`
	Marriage      int `json:"marriage"`
	Communication int `json:"communication"`
	Values        int `json:"values"`
}

// Compatibility is the result of comparing two readings.
type Compatibility struct {
	First        *Reading            `json:"first"`
	Second       *Reading            `json:"second"`
	ElementScore int                 `json:"element_score"`
	DayStemScore int                 `json:"day_stem_score"`
	Overall      int                 `json:"overall_score"`
	Detailed     CompatibilityScores `json:"detailed_scores"`
	Strengths    []string            `json:"strengths"`
	Weaknesses   []string            `json:"weaknesses"`
	Advice       []string            `json:"advice"`
	Summary      string              `json:"summary"`
}
