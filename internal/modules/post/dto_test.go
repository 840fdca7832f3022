package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenTags(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{[]string{"foam,latex , foam"}, []string{"foam", "latex"}},
		{[]string{"foam", "latex"}, []string{"foam", "latex"}},
		{[]string{"foam", "latex,king"}, []string{"foam", "latex", "king"}},
		{[]string{" , ,"}, []string{}},
		{nil, []string{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, flattenTags(tc.in))
	}
}

func TestParseProperties(t *testing.T) {
	props, err := parseProperties(`{"firmness":"firm","thickness":25}`)
	require.NoError(t, err)
	assert.Equal(t, "firm", props["firmness"])
	assert.Equal(t, float64(25), props["thickness"])
}

func TestParsePropertiesEmpty(t *testing.T) {
	props, err := parseProperties("  ")
	require.NoError(t, err)
	assert.Nil(t, props)
}

func TestParsePropertiesRejectsNonObject(t *testing.T) {
	_, err := parseProperties(`["a","b"]`)
	assert.Error(t, err)

	_, err = parseProperties(`{broken`)
	assert.Error(t, err)
}

func TestCreateDTOToInput(t *testing.T) {
	price := 99.99
	dto := createPostDTO{
		Title:      "  Amazing Product  ",
		Body:       "twenty characters!!!",
		Price:      &price,
		CategoryID: "cat-1",
		Tags:       []string{"foam,latex"},
		Properties: `{"firmness":"firm"}`,
	}

	input, err := dto.toInput()
	require.NoError(t, err)
	assert.Equal(t, "Amazing Product", input.Title)
	assert.Equal(t, []string{"foam", "latex"}, input.Tags)
	require.NotNil(t, input.Price)
	assert.Equal(t, 99.99, *input.Price)
	assert.Equal(t, "firm", input.Properties["firmness"])
}

func TestUpdateDTOToInputNilTags(t *testing.T) {
	dto := updatePostDTO{Title: "New Title"}
	input, err := dto.toInput()
	require.NoError(t, err)
	assert.Nil(t, input.Tags, "absent tags must not clear existing ones")
	assert.Nil(t, input.Price)
}
