package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formpilot/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCaseRecord_Fields_CanonicalOrder(t *testing.T) {
	rec := &domain.CaseRecord{}
	fields := rec.Fields()

	require.Len(t, fields, 45)
	assert.Equal(t, "attorney_online_account", fields[0].Name)
	assert.Equal(t, "attorney_subject_to_restrictions", fields[16].Name)
	assert.Equal(t, "beneficiary_last_name", fields[20].Name)
	assert.Equal(t, "client_alien_number", fields[44].Name)

	names := domain.FieldNames()
	require.Len(t, names, len(fields))
	for i, f := range fields {
		assert.Equal(t, names[i], f.Name)
	}
}

func TestCaseRecord_NonNullFields(t *testing.T) {
	rec := &domain.CaseRecord{
		AttorneyFamilyName:  strPtr("Kapoor"),
		BeneficiaryLastName: strPtr("Okafor"),
	}

	set := rec.NonNullFields()
	require.Len(t, set, 2)
	assert.Equal(t, "attorney_family_name", set[0].Name)
	assert.Equal(t, "Kapoor", *set[0].Value)
	assert.Equal(t, "beneficiary_last_name", set[1].Name)
}

func TestCaseRecord_IsEmpty(t *testing.T) {
	assert.True(t, (&domain.CaseRecord{}).IsEmpty())
	assert.False(t, (&domain.CaseRecord{ClientCity: strPtr("Reno")}).IsEmpty())
}

func TestCaseRecord_HasAttorneyData(t *testing.T) {
	assert.False(t, (&domain.CaseRecord{}).HasAttorneyData())
	assert.False(t, (&domain.CaseRecord{ClientEmail: strPtr("a@b.co")}).HasAttorneyData())
	assert.True(t, (&domain.CaseRecord{AttorneyBarNumber: strPtr("998877")}).HasAttorneyData())
}

func TestStatusForRecord(t *testing.T) {
	assert.Equal(t, domain.ExtractionEmpty, domain.StatusForRecord(&domain.CaseRecord{}))

	partial := &domain.CaseRecord{AttorneyCity: strPtr("Austin")}
	assert.Equal(t, domain.ExtractionDegraded, domain.StatusForRecord(partial))

	full := &domain.CaseRecord{}
	v := "x"
	full.AttorneyOnlineAccount = &v
	full.AttorneyFamilyName = &v
	full.AttorneyGivenName = &v
	full.AttorneyMiddleName = &v
	full.AttorneyStreetNumber = &v
	full.AttorneyAptSteFlr = &v
	full.AttorneyCity = &v
	full.AttorneyState = &v
	full.AttorneyZipCode = &v
	full.AttorneyCountry = &v
	full.AttorneyDaytimePhone = &v
	full.AttorneyMobilePhone = &v
	full.AttorneyEmail = &v
	full.AttorneyFaxNumber = &v
	full.AttorneyLicensingAuthority = &v
	full.AttorneyBarNumber = &v
	full.AttorneySubjectRestrictions = &v
	full.AttorneyLawFirm = &v
	full.AttorneyRecognizedOrg = &v
	full.AttorneyAccreditationDate = &v
	full.BeneficiaryLastName = &v
	full.BeneficiaryFirstName = &v
	full.BeneficiaryMiddleName = &v
	full.PassportNumber = &v
	full.PassportCountryOfIssue = &v
	full.PassportNationality = &v
	full.BeneficiaryDateOfBirth = &v
	full.BeneficiaryPlaceOfBirth = &v
	full.BeneficiarySex = &v
	full.PassportDateOfIssue = &v
	full.PassportDateOfExpiration = &v
	full.ClientFamilyName = &v
	full.ClientGivenName = &v
	full.ClientMiddleName = &v
	full.ClientDaytimePhone = &v
	full.ClientMobilePhone = &v
	full.ClientEmail = &v
	full.ClientStreetNumber = &v
	full.ClientAptSteFlr = &v
	full.ClientCity = &v
	full.ClientState = &v
	full.ClientZipCode = &v
	full.ClientCountry = &v
	full.ClientUSCISAccount = &v
	full.ClientAlienNumber = &v
	require.Len(t, full.NonNullFields(), len(full.Fields()))
	assert.Equal(t, domain.ExtractionComplete, domain.StatusForRecord(full))
}

func TestDocumentKind_IsValid(t *testing.T) {
	assert.True(t, domain.DocumentPassport.IsValid())
	assert.True(t, domain.DocumentRepForm.IsValid())
	assert.False(t, domain.DocumentKind("visa").IsValid())
}
