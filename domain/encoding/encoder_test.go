package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heartrisk/domain/patient"
	"heartrisk/internal/errors"
)

func TestTables_CoverDeclaredLabelSets(t *testing.T) {
	for _, table := range Tables {
		t.Run(table.Field, func(t *testing.T) {
			require.Len(t, table.Codes, len(table.Labels),
				"table size must match the declared label set")

			seen := make(map[int]string)
			for _, label := range table.Labels {
				code, ok := table.Codes[label]
				require.True(t, ok, "declared label %q has no code", label)

				if prev, dup := seen[code]; dup {
					t.Errorf("labels %q and %q share code %d", prev, label, code)
				}
				seen[code] = label
			}
		})
	}
}

func TestTables_CodomainsAreDenseOrdinals(t *testing.T) {
	// Training used ordinal codes 0..n-1 per field; a gap would mean the
	// table drifted from the training-time encoding.
	for _, table := range Tables {
		codes := make(map[int]bool)
		for _, code := range table.Codes {
			codes[code] = true
		}
		for want := 0; want < len(table.Labels); want++ {
			assert.True(t, codes[want], "field %s is missing code %d", table.Field, want)
		}
	}
}

func TestEncode_ScenarioRow(t *testing.T) {
	input := patient.PatientInput{
		Age:       63,
		Sex:       "Male",
		ChestPain: "Typical Angina",
		Trestbps:  145,
		Chol:      233,
		FastingBS: "True",
		RestECG:   "Normal",
		Thalach:   150,
		Exercise:  "No pain",
		Oldpeak:   2.3,
		Slope:     "Downsloping",
		Vessels:   "Normal",
		Thal:      "Fixed Defect",
	}

	vector, err := Encode(input)
	require.NoError(t, err)

	want := FeatureVector{63, 145, 233, 150, 2.3, 1, 3, 1, 1, 0, 0, 0, 0}
	assert.Equal(t, want, vector)
}

func TestEncode_Deterministic(t *testing.T) {
	input := patient.Defaults

	first, err := Encode(input)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Encode(input)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEncode_UnknownLabelSurfaces(t *testing.T) {
	// A label outside the declared set means the form was bypassed; the
	// lookup must fail loudly rather than default.
	input := patient.Defaults
	input.Slope = "Sideways"

	_, err := Encode(input)
	require.Error(t, err)
	assert.Equal(t, errors.CodeEncodingError, errors.GetCode(err))
	assert.Contains(t, err.Error(), "Sideways")
}

func TestColumnNames_Order(t *testing.T) {
	want := [FeatureCount]string{
		"age", "trestbps", "chol", "thalach", "oldpeak",
		"encoded_sex", "encoded_cp", "encoded_fbs",
		"encoded_restecg", "encoded_exang", "encoded_slope",
		"encoded_ca", "encoded_thal",
	}
	assert.Equal(t, want, ColumnNames)
}
