package risk

// Result is one prediction outcome: a binary label (0 = no disease,
// 1 = disease) and the estimated probability of the positive class.
type Result struct {
	Label       int
	Probability float64
}

// Positive reports whether the classifier predicted disease.
func (r Result) Positive() bool {
	return r.Label == 1
}

// Verdict is the textual outcome shown above the charts.
type Verdict struct {
	Positive  bool
	Message   string
	Celebrate bool
}

const (
	positiveMessage = "This patient may have heart disease. Immediate consultation is recommended."
	negativeMessage = "This patient is not likely to have heart disease."
)

// BuildVerdict selects one of the two mutually exclusive verdict texts.
// The negative verdict carries a celebratory cue.
func BuildVerdict(r Result) Verdict {
	if r.Positive() {
		return Verdict{Positive: true, Message: positiveMessage}
	}
	return Verdict{Message: negativeMessage, Celebrate: true}
}

// Band is one fixed background band of the risk gauge.
type Band struct {
	From  float64
	To    float64
	Color string
}

// GaugeSpec describes the radial risk gauge: the needle sits at the
// positive-class probability, over fixed low/high background bands. The
// needle color follows the predicted label, not the band the probability
// falls in, so the two can disagree for probabilities near 0.5. That
// disagreement is deliberate and must not be "fixed" here.
type GaugeSpec struct {
	Value       float64
	NeedleColor string
	Bands       [2]Band
	// NeedleAngle is the SVG rotation in degrees for a semicircular
	// gauge, -90 at probability 0 and +90 at probability 1.
	NeedleAngle float64
	HighRisk    bool
}

const (
	lowBandColor  = "#c8f7c5"
	highBandColor = "#f9c0c0"
	positiveColor = "red"
	negativeColor = "green"
)

// BuildGauge computes the gauge geometry for a result. Probability 0.5
// exactly falls in the high-risk band (inclusive lower bound).
func BuildGauge(r Result) GaugeSpec {
	color := negativeColor
	if r.Positive() {
		color = positiveColor
	}
	return GaugeSpec{
		Value:       r.Probability,
		NeedleColor: color,
		Bands: [2]Band{
			{From: 0, To: 0.5, Color: lowBandColor},
			{From: 0.5, To: 1, Color: highBandColor},
		},
		NeedleAngle: r.Probability*180 - 90,
		HighRisk:    r.Probability >= 0.5,
	}
}

// CholesterolThreshold is the clinical normal maximum in mg/dl. Values
// strictly above it are flagged.
const CholesterolThreshold = 200

// cholAxisMax matches the upper bound of the cholesterol form control.
const cholAxisMax = 600

// CholBarSpec describes the horizontal cholesterol comparison bar with a
// reference line at the clinical threshold.
type CholBarSpec struct {
	Value     int
	Elevated  bool
	Color     string
	Threshold int
	// Percent widths against the chart axis, for the SVG template.
	BarPercent       float64
	ThresholdPercent float64
}

const (
	elevatedBarColor = "salmon"
	normalBarColor   = "seagreen"
)

// BuildCholBar flags cholesterol strictly above the threshold; a value of
// exactly 200 is not elevated.
func BuildCholBar(chol int) CholBarSpec {
	elevated := chol > CholesterolThreshold
	color := normalBarColor
	if elevated {
		color = elevatedBarColor
	}
	return CholBarSpec{
		Value:            chol,
		Elevated:         elevated,
		Color:            color,
		Threshold:        CholesterolThreshold,
		BarPercent:       float64(chol) / cholAxisMax * 100,
		ThresholdPercent: float64(CholesterolThreshold) / cholAxisMax * 100,
	}
}
