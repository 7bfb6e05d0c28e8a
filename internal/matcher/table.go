package matcher

// Pattern maps one record field to the element id fragments that may carry
// it, in priority order. The first fragment present in the markup wins; there
// is no scoring across fragments.
type Pattern struct {
	Field     string
	Fragments []string
}

// Element ids with special handling. The restriction attestation is a pair
// of mutually exclusive checkboxes chosen by the value's wording, and the
// eligibility checkbox is derived from the presence of any attorney data
// rather than from a single field.
const (
	fieldSubjectToRestrictions = "attorney_subject_to_restrictions"

	restrictionsSubjectID    = "subject-to-restrictions"
	restrictionsNotSubjectID = "not-subject-to-restrictions"
	attorneyEligibleID       = "attorney-eligible"
)

// Table returns the candidate-id table for the known form layouts, in
// canonical record order. The bare ids in part 1 match the unprefixed
// attorney section of the reference form; prefixed variants cover later form
// revisions. attorney_subject_to_restrictions is absent here because the
// matcher special-cases it.
func Table() []Pattern {
	return []Pattern{
		{"attorney_online_account", []string{"uscis-online-account", "online-account-number"}},
		{"attorney_family_name", []string{"family-name", "attorney-family-name", "attorney-last-name"}},
		{"attorney_given_name", []string{"given-name", "attorney-given-name", "attorney-first-name"}},
		{"attorney_middle_name", []string{"middle-name", "attorney-middle-name"}},
		{"attorney_street_number", []string{"street-number", "attorney-street-number"}},
		{"attorney_apt_ste_flr", []string{"apt-ste-flr", "apt-suite-floor"}},
		{"attorney_city", []string{"city", "city-or-town", "attorney-city"}},
		{"attorney_state", []string{"state", "attorney-state"}},
		{"attorney_zip_code", []string{"zip-code", "zip", "attorney-zip"}},
		{"attorney_country", []string{"country", "attorney-country"}},
		{"attorney_daytime_phone", []string{"daytime-phone", "daytime-telephone", "attorney-phone"}},
		{"attorney_mobile_phone", []string{"mobile-phone", "mobile-telephone", "attorney-mobile"}},
		{"attorney_email", []string{"email", "email-address", "attorney-email"}},
		{"attorney_fax_number", []string{"fax-number", "fax", "attorney-fax"}},
		{"attorney_licensing_authority", []string{"licensing-authority", "bar-licensing-authority"}},
		{"attorney_bar_number", []string{"bar-number", "state-bar-number"}},
		{"attorney_law_firm", []string{"law-firm", "firm-name", "law-firm-organization"}},
		{"attorney_recognized_org", []string{"recognized-organization", "accredited-organization"}},
		{"attorney_accreditation_date", []string{"accreditation-date", "date-of-accreditation"}},
		{"beneficiary_last_name", []string{"beneficiary-family-name", "beneficiary-last-name"}},
		{"beneficiary_first_name", []string{"beneficiary-given-name", "beneficiary-first-name"}},
		{"beneficiary_middle_name", []string{"beneficiary-middle-name"}},
		{"passport_number", []string{"passport-number", "travel-document-number"}},
		{"passport_country_of_issue", []string{"passport-country", "country-of-issuance"}},
		{"passport_nationality", []string{"nationality", "citizenship"}},
		{"beneficiary_date_of_birth", []string{"date-of-birth", "beneficiary-dob", "dob"}},
		{"beneficiary_place_of_birth", []string{"place-of-birth", "birth-place"}},
		{"beneficiary_sex", []string{"sex", "gender"}},
		{"passport_date_of_issue", []string{"date-of-issue", "passport-issue-date", "issue-date"}},
		{"passport_date_of_expiration", []string{"date-of-expiration", "passport-expiry-date", "expiration-date"}},
		{"client_family_name", []string{"client-family-name", "client-last-name"}},
		{"client_given_name", []string{"client-given-name", "client-first-name"}},
		{"client_middle_name", []string{"client-middle-name"}},
		{"client_daytime_phone", []string{"client-daytime-phone", "client-phone"}},
		{"client_mobile_phone", []string{"client-mobile-phone", "client-mobile"}},
		{"client_email", []string{"client-email", "client-email-address"}},
		{"client_street_number", []string{"client-street-number", "client-street"}},
		{"client_apt_ste_flr", []string{"client-apt-ste-flr", "client-apt"}},
		{"client_city", []string{"client-city"}},
		{"client_state", []string{"client-state"}},
		{"client_zip_code", []string{"client-zip-code", "client-zip"}},
		{"client_country", []string{"client-country"}},
		{"client_uscis_account", []string{"client-uscis-account", "uscis-account-number"}},
		{"client_alien_number", []string{"alien-number", "a-number", "client-alien-number"}},
	}
}
