package extractor

// FieldDef describes one extraction schema field.
type FieldDef struct {
	Name        string
	Description string
}

// PromptPart groups schema fields under the section heading they appear in
// within the extraction prompt.
type PromptPart struct {
	Heading string
	Note    string
	Fields  []FieldDef
}

// SchemaParts returns the extraction schema grouped into prompt sections.
// Field order matches the canonical record field order.
func SchemaParts() []PromptPart {
	return []PromptPart{
		{
			Heading: "PART 1: ATTORNEY/REPRESENTATIVE INFORMATION (from G-28 form)",
			Fields: []FieldDef{
				{"attorney_online_account", "USCIS Online Account Number"},
				{"attorney_family_name", "Attorney's last name"},
				{"attorney_given_name", "Attorney's first name"},
				{"attorney_middle_name", "Attorney's middle name"},
				{"attorney_street_number", "Street number and name"},
				{"attorney_apt_ste_flr", "Apartment, Suite, or Floor"},
				{"attorney_city", "City or Town"},
				{"attorney_state", "State (use abbreviation like CA, NY)"},
				{"attorney_zip_code", "ZIP Code"},
				{"attorney_country", "Country"},
				{"attorney_daytime_phone", "Daytime Telephone Number"},
				{"attorney_mobile_phone", "Mobile Telephone Number"},
				{"attorney_email", "Email Address"},
				{"attorney_fax_number", "Fax Number"},
			},
		},
		{
			Heading: "PART 2: ATTORNEY ELIGIBILITY (from G-28 form)",
			Fields: []FieldDef{
				{"attorney_licensing_authority", `Licensing Authority (e.g., "State Bar of California")`},
				{"attorney_bar_number", "Bar Number"},
				{"attorney_subject_to_restrictions", `"am" or "am not" (whether subject to restrictions)`},
				{"attorney_law_firm", "Name of Law Firm or Organization"},
				{"attorney_recognized_org", "Name of Recognized Organization (if accredited rep)"},
				{"attorney_accreditation_date", "Date of Accreditation (MM/DD/YYYY)"},
			},
		},
		{
			Heading: "PART 3: PASSPORT/BENEFICIARY INFORMATION (from passport document)",
			Fields: []FieldDef{
				{"beneficiary_last_name", "Last name from passport"},
				{"beneficiary_first_name", "First name(s) from passport"},
				{"beneficiary_middle_name", "Middle name(s) from passport"},
				{"passport_number", "Passport number"},
				{"passport_country_of_issue", "Country that issued passport"},
				{"passport_nationality", "Nationality"},
				{"beneficiary_date_of_birth", "Date of birth (MM/DD/YYYY)"},
				{"beneficiary_place_of_birth", "Place/city of birth"},
				{"beneficiary_sex", "Sex (M, F, or X)"},
				{"passport_date_of_issue", "Passport issue date (MM/DD/YYYY)"},
				{"passport_date_of_expiration", "Passport expiration date (MM/DD/YYYY)"},
			},
		},
		{
			Heading: "PART 4: CLIENT INFORMATION (from G-28 form - this is about the CLIENT/APPLICANT, not the attorney)",
			Note:    `Look for "Information About Client" or "Part 3" or "Part 4" sections:`,
			Fields: []FieldDef{
				{"client_family_name", "Client's last name"},
				{"client_given_name", "Client's first name"},
				{"client_middle_name", "Client's middle name"},
				{"client_daytime_phone", "Client's daytime telephone"},
				{"client_mobile_phone", "Client's mobile telephone"},
				{"client_email", "Client's email address"},
				{"client_street_number", "Client's street address"},
				{"client_apt_ste_flr", "Client's apartment/suite/floor"},
				{"client_city", "Client's city"},
				{"client_state", "Client's state"},
				{"client_zip_code", "Client's ZIP code"},
				{"client_country", "Client's country"},
				{"client_uscis_account", "Client's USCIS Online Account Number"},
				{"client_alien_number", "Client's A-Number (Alien Registration Number)"},
			},
		},
	}
}

// SchemaFields returns every schema field in canonical order.
func SchemaFields() []FieldDef {
	var fields []FieldDef
	for _, part := range SchemaParts() {
		fields = append(fields, part.Fields...)
	}
	return fields
}

// JSONSchema returns a JSON Schema object describing the extraction output:
// one flat object whose properties are all nullable strings. Passed to
// providers that support structured output natively.
func JSONSchema() map[string]interface{} {
	props := make(map[string]interface{})
	for _, f := range SchemaFields() {
		props[f.Name] = map[string]interface{}{
			"type":        []string{"string", "null"},
			"description": f.Description,
		}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
}
