package encoding

import (
	"fmt"

	"heartrisk/domain/patient"
	"heartrisk/internal/errors"
)

// FeatureCount is the number of columns the classifier was fit on.
const FeatureCount = 13

// FeatureVector is the fixed-order numeric row passed to the classifier.
// Column order must match the order used at training time; reordering
// silently corrupts predictions.
type FeatureVector [FeatureCount]float64

// ColumnNames lists the feature columns in vector order. Continuous fields
// come first, then the encoded categoricals.
var ColumnNames = [FeatureCount]string{
	"age", "trestbps", "chol", "thalach", "oldpeak",
	"encoded_sex", "encoded_cp", "encoded_fbs",
	"encoded_restecg", "encoded_exang", "encoded_slope",
	"encoded_ca", "encoded_thal",
}

// Per-field label→code tables. Codes must stay in lockstep with the
// encoding the model artifact was trained against; a drifted table is a
// silent correctness bug, not a runtime error.
var (
	sexCodes = map[string]int{
		"Male":   1,
		"Female": 0,
	}
	chestPainCodes = map[string]int{
		"Typical Angina":   3,
		"Atypical Angina":  1,
		"Non Anginal Pain": 2,
		"Asymptomatic":     0,
	}
	fastingBSCodes = map[string]int{
		"False": 0,
		"True":  1,
	}
	restECGCodes = map[string]int{
		"Abnormality":                  0,
		"Normal":                       1,
		"Left ventricular hypertrophy": 2,
	}
	exerciseCodes = map[string]int{
		"No pain": 0,
		"Pain":    1,
	}
	slopeCodes = map[string]int{
		"Downsloping": 0,
		"Upsloping":   2,
		"Flat":        1,
	}
	vesselsCodes = map[string]int{
		"Normal":                0,
		"One vessel colored":    1,
		"Two vessels colored":   2,
		"Three vessels colored": 3,
		"Four vessel colored":   4,
	}
	thalCodes = map[string]int{
		"Reversible defect": 2,
		"Normal":            1,
		"Fixed Defect":      0,
		"Unknown":           3,
	}
)

// Tables maps form field names to their label→code tables, in vector order
// of the encoded columns. Exposed for coverage tests against the declared
// label sets.
var Tables = []struct {
	Field  string
	Labels []string
	Codes  map[string]int
}{
	{"sex", patient.SexLabels, sexCodes},
	{"cp", patient.ChestPainLabels, chestPainCodes},
	{"fbs", patient.FastingBSLabels, fastingBSCodes},
	{"restecg", patient.RestECGLabels, restECGCodes},
	{"exang", patient.ExerciseLabels, exerciseCodes},
	{"slope", patient.SlopeLabels, slopeCodes},
	{"ca", patient.VesselsLabels, vesselsCodes},
	{"thal", patient.ThalLabels, thalCodes},
}

func lookup(field, label string, codes map[string]int) (int, error) {
	code, ok := codes[label]
	if !ok {
		return 0, errors.EncodingError(fmt.Sprintf("field %s has no code for label %q", field, label))
	}
	return code, nil
}

// Encode maps a PatientInput to the feature row the classifier expects.
// The mapping is deterministic and total over the declared label sets; an
// unknown label means the input bypassed the form and must surface as an
// error rather than default silently.
func Encode(p patient.PatientInput) (FeatureVector, error) {
	var v FeatureVector

	v[0] = float64(p.Age)
	v[1] = float64(p.Trestbps)
	v[2] = float64(p.Chol)
	v[3] = float64(p.Thalach)
	v[4] = p.Oldpeak

	categorical := []struct {
		field string
		label string
		codes map[string]int
	}{
		{"sex", p.Sex, sexCodes},
		{"cp", p.ChestPain, chestPainCodes},
		{"fbs", p.FastingBS, fastingBSCodes},
		{"restecg", p.RestECG, restECGCodes},
		{"exang", p.Exercise, exerciseCodes},
		{"slope", p.Slope, slopeCodes},
		{"ca", p.Vessels, vesselsCodes},
		{"thal", p.Thal, thalCodes},
	}
	for i, c := range categorical {
		code, err := lookup(c.field, c.label, c.codes)
		if err != nil {
			return FeatureVector{}, err
		}
		v[5+i] = float64(code)
	}

	return v, nil
}
