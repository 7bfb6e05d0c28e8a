package domain

import "strings"

// CaseRecord holds the structured data extracted from one passport and/or one
// G-28 representation form. Every field is independently nullable: nil means
// "not found in the source documents", never an empty string. The record is
// built once by the extractor and only read afterwards.
type CaseRecord struct {
	// Part 1: attorney/representative identity (from the G-28 form)
	AttorneyOnlineAccount *string `json:"attorney_online_account"`
	AttorneyFamilyName    *string `json:"attorney_family_name"`
	AttorneyGivenName     *string `json:"attorney_given_name"`
	AttorneyMiddleName    *string `json:"attorney_middle_name"`
	AttorneyStreetNumber  *string `json:"attorney_street_number"`
	AttorneyAptSteFlr     *string `json:"attorney_apt_ste_flr"`
	AttorneyCity          *string `json:"attorney_city"`
	AttorneyState         *string `json:"attorney_state"`
	AttorneyZipCode       *string `json:"attorney_zip_code"`
	AttorneyCountry       *string `json:"attorney_country"`
	AttorneyDaytimePhone  *string `json:"attorney_daytime_phone"`
	AttorneyMobilePhone   *string `json:"attorney_mobile_phone"`
	AttorneyEmail         *string `json:"attorney_email"`
	AttorneyFaxNumber     *string `json:"attorney_fax_number"`

	// Part 2: attorney eligibility (from the G-28 form)
	AttorneyLicensingAuthority  *string `json:"attorney_licensing_authority"`
	AttorneyBarNumber           *string `json:"attorney_bar_number"`
	AttorneySubjectRestrictions *string `json:"attorney_subject_to_restrictions"`
	AttorneyLawFirm             *string `json:"attorney_law_firm"`
	AttorneyRecognizedOrg       *string `json:"attorney_recognized_org"`
	AttorneyAccreditationDate   *string `json:"attorney_accreditation_date"`

	// Part 3: beneficiary/passport identity (from the passport document)
	BeneficiaryLastName      *string `json:"beneficiary_last_name"`
	BeneficiaryFirstName     *string `json:"beneficiary_first_name"`
	BeneficiaryMiddleName    *string `json:"beneficiary_middle_name"`
	PassportNumber           *string `json:"passport_number"`
	PassportCountryOfIssue   *string `json:"passport_country_of_issue"`
	PassportNationality      *string `json:"passport_nationality"`
	BeneficiaryDateOfBirth   *string `json:"beneficiary_date_of_birth"`
	BeneficiaryPlaceOfBirth  *string `json:"beneficiary_place_of_birth"`
	BeneficiarySex           *string `json:"beneficiary_sex"`
	PassportDateOfIssue      *string `json:"passport_date_of_issue"`
	PassportDateOfExpiration *string `json:"passport_date_of_expiration"`

	// Part 4: client identity and contact (from the G-28 form)
	ClientFamilyName   *string `json:"client_family_name"`
	ClientGivenName    *string `json:"client_given_name"`
	ClientMiddleName   *string `json:"client_middle_name"`
	ClientDaytimePhone *string `json:"client_daytime_phone"`
	ClientMobilePhone  *string `json:"client_mobile_phone"`
	ClientEmail        *string `json:"client_email"`
	ClientStreetNumber *string `json:"client_street_number"`
	ClientAptSteFlr    *string `json:"client_apt_ste_flr"`
	ClientCity         *string `json:"client_city"`
	ClientState        *string `json:"client_state"`
	ClientZipCode      *string `json:"client_zip_code"`
	ClientCountry      *string `json:"client_country"`
	ClientUSCISAccount *string `json:"client_uscis_account"`
	ClientAlienNumber  *string `json:"client_alien_number"`
}

// Role prefixes that namespace the record's field names. The prefix is the only
// structural signal the matchers have.
const (
	RoleAttorney    = "attorney_"
	RoleClient      = "client_"
	RoleBeneficiary = "beneficiary_"
	RolePassport    = "passport_"
)

// FieldValue pairs a canonical field name with its (possibly nil) value.
type FieldValue struct {
	Name  string
	Value *string
}

// Fields returns all record fields in canonical order (declaration order,
// matching the extraction schema). Values are copies of the pointers; the
// record itself stays untouched.
func (r *CaseRecord) Fields() []FieldValue {
	return []FieldValue{
		{"attorney_online_account", r.AttorneyOnlineAccount},
		{"attorney_family_name", r.AttorneyFamilyName},
		{"attorney_given_name", r.AttorneyGivenName},
		{"attorney_middle_name", r.AttorneyMiddleName},
		{"attorney_street_number", r.AttorneyStreetNumber},
		{"attorney_apt_ste_flr", r.AttorneyAptSteFlr},
		{"attorney_city", r.AttorneyCity},
		{"attorney_state", r.AttorneyState},
		{"attorney_zip_code", r.AttorneyZipCode},
		{"attorney_country", r.AttorneyCountry},
		{"attorney_daytime_phone", r.AttorneyDaytimePhone},
		{"attorney_mobile_phone", r.AttorneyMobilePhone},
		{"attorney_email", r.AttorneyEmail},
		{"attorney_fax_number", r.AttorneyFaxNumber},
		{"attorney_licensing_authority", r.AttorneyLicensingAuthority},
		{"attorney_bar_number", r.AttorneyBarNumber},
		{"attorney_subject_to_restrictions", r.AttorneySubjectRestrictions},
		{"attorney_law_firm", r.AttorneyLawFirm},
		{"attorney_recognized_org", r.AttorneyRecognizedOrg},
		{"attorney_accreditation_date", r.AttorneyAccreditationDate},
		{"beneficiary_last_name", r.BeneficiaryLastName},
		{"beneficiary_first_name", r.BeneficiaryFirstName},
		{"beneficiary_middle_name", r.BeneficiaryMiddleName},
		{"passport_number", r.PassportNumber},
		{"passport_country_of_issue", r.PassportCountryOfIssue},
		{"passport_nationality", r.PassportNationality},
		{"beneficiary_date_of_birth", r.BeneficiaryDateOfBirth},
		{"beneficiary_place_of_birth", r.BeneficiaryPlaceOfBirth},
		{"beneficiary_sex", r.BeneficiarySex},
		{"passport_date_of_issue", r.PassportDateOfIssue},
		{"passport_date_of_expiration", r.PassportDateOfExpiration},
		{"client_family_name", r.ClientFamilyName},
		{"client_given_name", r.ClientGivenName},
		{"client_middle_name", r.ClientMiddleName},
		{"client_daytime_phone", r.ClientDaytimePhone},
		{"client_mobile_phone", r.ClientMobilePhone},
		{"client_email", r.ClientEmail},
		{"client_street_number", r.ClientStreetNumber},
		{"client_apt_ste_flr", r.ClientAptSteFlr},
		{"client_city", r.ClientCity},
		{"client_state", r.ClientState},
		{"client_zip_code", r.ClientZipCode},
		{"client_country", r.ClientCountry},
		{"client_uscis_account", r.ClientUSCISAccount},
		{"client_alien_number", r.ClientAlienNumber},
	}
}

// NonNullFields returns the set fields in canonical order.
func (r *CaseRecord) NonNullFields() []FieldValue {
	all := r.Fields()
	out := make([]FieldValue, 0, len(all))
	for _, f := range all {
		if f.Value != nil {
			out = append(out, f)
		}
	}
	return out
}

// IsEmpty reports whether no field was extracted.
func (r *CaseRecord) IsEmpty() bool {
	return len(r.NonNullFields()) == 0
}

// HasAttorneyData reports whether any attorney-namespaced field is set.
func (r *CaseRecord) HasAttorneyData() bool {
	for _, f := range r.NonNullFields() {
		if strings.HasPrefix(f.Name, RoleAttorney) {
			return true
		}
	}
	return false
}

// FieldNames returns the canonical field names in order.
func FieldNames() []string {
	fields := (&CaseRecord{}).Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
