package saju

import (
	"strings"

	"FortuneTeller/internal/model"
)

// ParseGender accepts male/m/남/남성 and female/f/여/여성, case-insensitively.
func ParseGender(s string) (model.Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "남", "남성":
		return model.Male, nil
	case "female", "f", "여", "여성":
		return model.Female, nil
	}
	return "", &ValidationError{Field: "gender", Msg: "must be one of male, female, m, f"}
}
