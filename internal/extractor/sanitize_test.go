package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formpilot/internal/extractor"
)

func TestStripJSONFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}\n", `{"a": 1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.StripJSONFences(tt.input))
		})
	}
}

func TestDecodeRecord(t *testing.T) {
	raw := `{
		"attorney_family_name": "Nguyen",
		"attorney_given_name": "  Mai  ",
		"attorney_zip_code": 94107,
		"attorney_email": "",
		"attorney_city": "null",
		"attorney_state": "N/A",
		"beneficiary_sex": "F",
		"client_alien_number": 123456789
	}`

	rec, err := extractor.DecodeRecord(raw)

	require.NoError(t, err)
	require.NotNil(t, rec.AttorneyFamilyName)
	assert.Equal(t, "Nguyen", *rec.AttorneyFamilyName)

	// Values are trimmed on the way in.
	require.NotNil(t, rec.AttorneyGivenName)
	assert.Equal(t, "Mai", *rec.AttorneyGivenName)

	// Bare numbers become strings.
	require.NotNil(t, rec.AttorneyZipCode)
	assert.Equal(t, "94107", *rec.AttorneyZipCode)
	require.NotNil(t, rec.ClientAlienNumber)
	assert.Equal(t, "123456789", *rec.ClientAlienNumber)

	// Blank strings and textual null markers are absent, not empty.
	assert.Nil(t, rec.AttorneyEmail)
	assert.Nil(t, rec.AttorneyCity)
	assert.Nil(t, rec.AttorneyState)

	require.NotNil(t, rec.BeneficiarySex)
	assert.Equal(t, "F", *rec.BeneficiarySex)
}

func TestDecodeRecord_DropsNonScalarValues(t *testing.T) {
	raw := `{
		"attorney_family_name": "Nguyen",
		"attorney_law_firm": {"name": "Nguyen LLP"},
		"attorney_bar_number": ["112233"],
		"attorney_recognized_org": true
	}`

	rec, err := extractor.DecodeRecord(raw)

	require.NoError(t, err)
	require.NotNil(t, rec.AttorneyFamilyName)
	assert.Nil(t, rec.AttorneyLawFirm)
	assert.Nil(t, rec.AttorneyBarNumber)
	assert.Nil(t, rec.AttorneyRecognizedOrg)
}

func TestDecodeRecord_IgnoresUnknownFields(t *testing.T) {
	rec, err := extractor.DecodeRecord(`{"attorney_family_name": "Nguyen", "confidence": "high"}`)

	require.NoError(t, err)
	require.NotNil(t, rec.AttorneyFamilyName)
}

func TestDecodeRecord_Fenced(t *testing.T) {
	rec, err := extractor.DecodeRecord("```json\n{\"passport_number\": \"X1234567\"}\n```")

	require.NoError(t, err)
	require.NotNil(t, rec.PassportNumber)
	assert.Equal(t, "X1234567", *rec.PassportNumber)
}

func TestDecodeRecord_Malformed(t *testing.T) {
	_, err := extractor.DecodeRecord("I could not read the documents.")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing LLM JSON output")
}
