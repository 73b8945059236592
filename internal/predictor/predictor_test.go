package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heartrisk/domain/encoding"
	"heartrisk/domain/patient"
	"heartrisk/internal/errors"
)

// stubClassifier records the row it was called with and returns canned
// outputs.
type stubClassifier struct {
	label    int
	p        float64
	lastRow  encoding.FeatureVector
	rowCalls int
}

func (s *stubClassifier) Classify(row encoding.FeatureVector) (int, error) {
	s.lastRow = row
	s.rowCalls++
	return s.label, nil
}

func (s *stubClassifier) EstimateProbability(row encoding.FeatureVector) (float64, error) {
	s.lastRow = row
	s.rowCalls++
	return s.p, nil
}

func TestPredict_PassesEncodedRow(t *testing.T) {
	stub := &stubClassifier{label: 1, p: 0.85}

	result, vector, err := Predict(stub, patient.Defaults, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Label)
	assert.Equal(t, 0.85, result.Probability)
	assert.Equal(t, vector, stub.lastRow)
	assert.Equal(t, 2, stub.rowCalls, "classify and probability estimation each invoked once")

	want, err := encoding.Encode(patient.Defaults)
	require.NoError(t, err)
	assert.Equal(t, want, vector)
}

func TestPredict_EncodingFailureSurfaces(t *testing.T) {
	stub := &stubClassifier{}
	input := patient.Defaults
	input.Thal = "bogus"

	_, _, err := Predict(stub, input, 0)
	require.Error(t, err)
	assert.Equal(t, errors.CodeEncodingError, errors.GetCode(err))
	assert.Zero(t, stub.rowCalls, "classifier must not be invoked on encoding failure")
}
