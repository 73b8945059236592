package ui

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"heartrisk/domain/patient"
	"heartrisk/internal/errors"
)

// parsePatientForm reads the posted form into a PatientInput. Numeric
// parsing failures surface as validation errors; label-set and bounds
// checks happen in Validate afterwards.
func parsePatientForm(c *gin.Context) (patient.PatientInput, error) {
	var p patient.PatientInput

	intFields := []struct {
		name string
		dest *int
	}{
		{"age", &p.Age},
		{"trestbps", &p.Trestbps},
		{"chol", &p.Chol},
		{"thalach", &p.Thalach},
	}
	for _, f := range intFields {
		raw := c.PostForm(f.name)
		v, err := strconv.Atoi(raw)
		if err != nil {
			return patient.PatientInput{}, errors.ValidationError(fmt.Sprintf("field %s must be a whole number, got %q", f.name, raw))
		}
		*f.dest = v
	}

	rawOldpeak := c.PostForm("oldpeak")
	oldpeak, err := strconv.ParseFloat(rawOldpeak, 64)
	if err != nil {
		return patient.PatientInput{}, errors.ValidationError(fmt.Sprintf("field oldpeak must be a number, got %q", rawOldpeak))
	}
	p.Oldpeak = oldpeak

	p.Sex = c.PostForm("sex")
	p.ChestPain = c.PostForm("cp")
	p.FastingBS = c.PostForm("fbs")
	p.RestECG = c.PostForm("restecg")
	p.Exercise = c.PostForm("exercise")
	p.Slope = c.PostForm("slope")
	p.Vessels = c.PostForm("ca")
	p.Thal = c.PostForm("thal")

	if err := p.Validate(); err != nil {
		return patient.PatientInput{}, err
	}
	return p, nil
}
