package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ReportsEveryMissingField(t *testing.T) {
	_, err := Validate(map[string]any{"companyName": "  "})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"companyName", "whatYouSell", "serviceDescription"}, verr.Missing)
	assert.Contains(t, err.Error(), "serviceDescription")
}

func TestValidate_MalformedFields(t *testing.T) {
	_, err := Validate(map[string]any{
		"companyName":        42.0,
		"whatYouSell":        "signage",
		"serviceDescription": "We build signs",
		"yearsInBusiness":    "a decade",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, verr.Missing)
	assert.Equal(t, []string{"companyName", "yearsInBusiness"}, verr.Invalid)
	assert.Equal(t, []string{"companyName is malformed", "yearsInBusiness is malformed"}, verr.Fields())
}

func TestValidate_NormalizesProfile(t *testing.T) {
	res, err := Validate(map[string]any{
		"companyName":        " Acme ",
		"whatYouSell":        "custom signage",
		"serviceDescription": "We design and install storefront signage for local shops.",
		"yearsInBusiness":    12.0,
		"projectsCompleted":  "300+",
		"serviceArea":        "Denver",
		"toneOfVoice":        "friendly",
	})
	require.NoError(t, err)

	p := res.Profile
	assert.Equal(t, "Acme", p.CompanyName)
	assert.Equal(t, 12, p.YearsInBusiness)
	assert.Equal(t, 300, p.ProjectsCompleted)
	assert.Equal(t, "friendly", p.ToneOfVoice)
	assert.Equal(t, []string{
		"custom signage",
		"custom signage Denver",
		"We design and install storefront signage",
		"custom signage services",
	}, res.SearchTerms)
}

func TestSearchTerms_DedupAndCap(t *testing.T) {
	res, err := Validate(map[string]any{
		"companyName":        "Acme",
		"whatYouSell":        "Roofing services",
		"serviceDescription": "roofing services",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Roofing services"}, res.SearchTerms)
	assert.LessOrEqual(t, len(res.SearchTerms), MaxSearchTerms)
}
