package assessment

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxNameLength matches the width of the stored name column.
const MaxNameLength = 80

// ValidationError reports a missing or unusable input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// Normalize turns a loosely typed request body into a BiometricInput.
// Values may be JSON numbers or numeric strings; the first bad field is reported.
func Normalize(raw map[string]any) (BiometricInput, error) {
	in := BiometricInput{Name: DefaultName}
	if v, ok := raw["name"]; ok && v != nil {
		if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
			in.Name = s
		}
	}
	if utf8.RuneCountInString(in.Name) > MaxNameLength {
		return BiometricInput{}, &ValidationError{Field: "name", Reason: "is too long"}
	}

	age, err := numberField(raw, "age")
	if err != nil {
		return BiometricInput{}, err
	}
	bmi, err := numberField(raw, "bmi")
	if err != nil {
		return BiometricInput{}, err
	}
	sbp, err := numberField(raw, "systolic_bp")
	if err != nil {
		return BiometricInput{}, err
	}
	sugar, err := numberField(raw, "blood_sugar")
	if err != nil {
		return BiometricInput{}, err
	}
	smoker, err := numberField(raw, "is_smoker")
	if err != nil {
		return BiometricInput{}, err
	}

	if in.Age, err = wholeNumber("age", age); err != nil {
		return BiometricInput{}, err
	}
	if in.Age < 0 {
		return BiometricInput{}, &ValidationError{Field: "age", Reason: "must not be negative"}
	}
	if bmi <= 0 {
		return BiometricInput{}, &ValidationError{Field: "bmi", Reason: "must be positive"}
	}
	if in.SystolicBP, err = wholeNumber("systolic_bp", sbp); err != nil {
		return BiometricInput{}, err
	}
	if in.BloodSugar, err = wholeNumber("blood_sugar", sugar); err != nil {
		return BiometricInput{}, err
	}
	if smoker != 0 && smoker != 1 {
		return BiometricInput{}, &ValidationError{Field: "is_smoker", Reason: "must be 0 or 1"}
	}

	in.BMI = bmi
	in.IsSmoker = smoker == 1
	return in, nil
}

// wholeNumber converts an integer field. Values must fit the INTEGER column;
// fractions are rejected so the scored value is the stored value.
func wholeNumber(key string, f float64) (int, error) {
	if f != math.Trunc(f) {
		return 0, &ValidationError{Field: key, Reason: "must be a whole number"}
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, &ValidationError{Field: key, Reason: "is out of range"}
	}
	return int(f), nil
}

func numberField(raw map[string]any, key string) (float64, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, &ValidationError{Field: key, Reason: "is required"}
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, &ValidationError{Field: key, Reason: "must be numeric"}
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, &ValidationError{Field: key, Reason: "must be numeric"}
		}
		f = parsed
	default:
		return 0, &ValidationError{Field: key, Reason: "must be numeric"}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ValidationError{Field: key, Reason: "must be a finite number"}
	}
	return f, nil
}
