package predictor

import (
	"time"

	"heartrisk/domain/encoding"
	"heartrisk/domain/patient"
	"heartrisk/domain/risk"
	"heartrisk/internal/errors"
	"heartrisk/ports"
)

// Predict runs one validated submission through the encode-and-classify
// pipeline. The delay is presentational, not computational; it signals
// progress during an otherwise near-instant computation and may be zero.
func Predict(classifier ports.Classifier, input patient.PatientInput, delay time.Duration) (risk.Result, encoding.FeatureVector, error) {
	vector, err := encoding.Encode(input)
	if err != nil {
		return risk.Result{}, encoding.FeatureVector{}, err
	}

	if delay > 0 {
		time.Sleep(delay)
	}

	label, err := classifier.Classify(vector)
	if err != nil {
		return risk.Result{}, encoding.FeatureVector{}, errors.Wrap(err, "classification failed")
	}
	probability, err := classifier.EstimateProbability(vector)
	if err != nil {
		return risk.Result{}, encoding.FeatureVector{}, errors.Wrap(err, "probability estimation failed")
	}

	return risk.Result{Label: label, Probability: probability}, vector, nil
}
