package ports

import "heartrisk/domain/encoding"

// Classifier is the contract the pre-trained model artifact is consumed
// through. The artifact is loaded once at startup and treated as read-only
// for the process lifetime.
type Classifier interface {
	// Classify returns the predicted binary label for one encoded row
	// (0 = no disease, 1 = disease).
	Classify(row encoding.FeatureVector) (int, error)

	// EstimateProbability returns the estimated probability of the
	// positive class for one encoded row, in [0, 1].
	EstimateProbability(row encoding.FeatureVector) (float64, error)
}
