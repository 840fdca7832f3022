package category

import (
	"testing"

	"github.com/bazaarhq/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mattressCategory() *models.CategoryModel {
	return &models.CategoryModel{
		Name: "Mattresses",
		Slug: "mattresses",
		Properties: []models.CategoryProperty{
			{Name: "firmness", Type: models.PropertyTypeSelect, Options: []string{"soft", "medium", "firm"}, Required: true},
			{Name: "thickness", Type: models.PropertyTypeNumber, Required: true, Unit: "cm"},
			{Name: "material", Type: models.PropertyTypeMultiselect, Options: []string{"foam", "latex", "spring"}},
			{Name: "removableCover", Type: models.PropertyTypeBoolean},
			{Name: "note", Type: models.PropertyTypeText},
		},
	}
}

func errFields(t *testing.T, cat *models.CategoryModel, props models.PropertyMap) []string {
	t.Helper()
	errs := ValidateProperties(cat, props)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidatePropertiesOK(t *testing.T) {
	errs := ValidateProperties(mattressCategory(), models.PropertyMap{
		"firmness":       "firm",
		"thickness":      float64(25),
		"material":       []interface{}{"foam", "latex"},
		"removableCover": true,
		"note":           "ships compressed",
	})
	assert.Empty(t, errs)
}

func TestValidatePropertiesMissingRequired(t *testing.T) {
	fields := errFields(t, mattressCategory(), models.PropertyMap{
		"firmness": "firm",
	})
	assert.Equal(t, []string{"properties.thickness"}, fields)
}

func TestValidatePropertiesTypeMismatches(t *testing.T) {
	fields := errFields(t, mattressCategory(), models.PropertyMap{
		"firmness":       "firm",
		"thickness":      "25",
		"removableCover": "yes",
	})
	assert.ElementsMatch(t, []string{"properties.thickness", "properties.removableCover"}, fields)
}

func TestValidatePropertiesSelectMembership(t *testing.T) {
	fields := errFields(t, mattressCategory(), models.PropertyMap{
		"firmness":  "squishy",
		"thickness": float64(20),
	})
	assert.Equal(t, []string{"properties.firmness"}, fields)
}

func TestValidatePropertiesMultiselectMembership(t *testing.T) {
	fields := errFields(t, mattressCategory(), models.PropertyMap{
		"firmness":  "soft",
		"thickness": float64(20),
		"material":  []interface{}{"foam", "water"},
	})
	assert.Equal(t, []string{"properties.material"}, fields)
}

func TestValidatePropertiesUndeclaredKey(t *testing.T) {
	fields := errFields(t, mattressCategory(), models.PropertyMap{
		"firmness":  "soft",
		"thickness": float64(20),
		"color":     "blue",
	})
	assert.Equal(t, []string{"properties.color"}, fields)
}

func TestValidatePropertiesNilValueCountsAsAbsent(t *testing.T) {
	errs := ValidateProperties(mattressCategory(), models.PropertyMap{
		"firmness":  "soft",
		"thickness": float64(20),
		"note":      nil,
	})
	require.Empty(t, errs)
}
