package patient

import (
	"fmt"

	"heartrisk/internal/errors"
)

// PatientInput is an immutable snapshot of one form submission. Categorical
// fields hold the human-readable labels shown in the form; numeric fields
// hold raw clinical measurements. Validation happens once at the boundary.
type PatientInput struct {
	Age      int
	Trestbps int
	Chol     int
	Thalach  int
	Oldpeak  float64

	Sex       string
	ChestPain string
	FastingBS string
	RestECG   string
	Exercise  string
	Slope     string
	Vessels   string
	Thal      string
}

// NumericBound declares the inclusive range a numeric field accepts.
type NumericBound struct {
	Min float64
	Max float64
}

// Declared bounds for the numeric form controls.
var (
	AgeBound      = NumericBound{Min: 1, Max: 120}
	TrestbpsBound = NumericBound{Min: 80, Max: 200}
	CholBound     = NumericBound{Min: 100, Max: 600}
	ThalachBound  = NumericBound{Min: 60, Max: 220}
	OldpeakBound  = NumericBound{Min: 0.0, Max: 10.0}
)

// Defaults pre-populate the form controls.
var Defaults = PatientInput{
	Age:       30,
	Trestbps:  120,
	Chol:      200,
	Thalach:   150,
	Oldpeak:   1.0,
	Sex:       "Male",
	ChestPain: "Typical Angina",
	FastingBS: "False",
	RestECG:   "Abnormality",
	Exercise:  "No pain",
	Slope:     "Downsloping",
	Vessels:   "Normal",
	Thal:      "Reversible defect",
}

// Label sets for the categorical selects, in form display order.
var (
	SexLabels       = []string{"Male", "Female"}
	ChestPainLabels = []string{"Typical Angina", "Atypical Angina", "Non Anginal Pain", "Asymptomatic"}
	FastingBSLabels = []string{"False", "True"}
	RestECGLabels   = []string{"Abnormality", "Normal", "Left ventricular hypertrophy"}
	ExerciseLabels  = []string{"No pain", "Pain"}
	SlopeLabels     = []string{"Downsloping", "Upsloping", "Flat"}
	VesselsLabels   = []string{"Normal", "One vessel colored", "Two vessels colored", "Three vessels colored", "Four vessel colored"}
	ThalLabels      = []string{"Reversible defect", "Normal", "Fixed Defect", "Unknown"}
)

func (b NumericBound) contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

func inLabelSet(value string, labels []string) bool {
	for _, l := range labels {
		if l == value {
			return true
		}
	}
	return false
}

// Validate enforces the declared numeric bounds and categorical label sets.
// The form widgets restrict choices to this domain already; a failure here
// means the submission bypassed the form.
func (p PatientInput) Validate() error {
	numeric := []struct {
		field string
		value float64
		bound NumericBound
	}{
		{"age", float64(p.Age), AgeBound},
		{"resting blood pressure", float64(p.Trestbps), TrestbpsBound},
		{"cholesterol", float64(p.Chol), CholBound},
		{"max heart rate", float64(p.Thalach), ThalachBound},
		{"ST depression", p.Oldpeak, OldpeakBound},
	}
	for _, n := range numeric {
		if !n.bound.contains(n.value) {
			return errors.ValidationError(fmt.Sprintf(
				"%s must be between %g and %g, got %g", n.field, n.bound.Min, n.bound.Max, n.value))
		}
	}

	categorical := []struct {
		field  string
		value  string
		labels []string
	}{
		{"gender", p.Sex, SexLabels},
		{"chest pain type", p.ChestPain, ChestPainLabels},
		{"fasting blood sugar", p.FastingBS, FastingBSLabels},
		{"resting ECG result", p.RestECG, RestECGLabels},
		{"exercise induced angina", p.Exercise, ExerciseLabels},
		{"slope of ST segment", p.Slope, SlopeLabels},
		{"number of major vessels colored", p.Vessels, VesselsLabels},
		{"thalassemia", p.Thal, ThalLabels},
	}
	for _, c := range categorical {
		if !inLabelSet(c.value, c.labels) {
			return errors.ValidationError(fmt.Sprintf("%s has unknown value %q", c.field, c.value))
		}
	}

	return nil
}
