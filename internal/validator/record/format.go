package record

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"formpilot/internal/domain"
)

// dateLayout is the month-first notation extraction produces.
const dateLayout = "01/02/2006"

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	nonDigit     = regexp.MustCompile(`\D`)
)

// formatRule checks the shape of individual fields.
type formatRule struct {
	ruleKey  string
	ruleName string
	severity Severity
	check    func(*domain.CaseRecord) []Finding
}

func (r *formatRule) RuleKey() string    { return r.ruleKey }
func (r *formatRule) RuleName() string   { return r.ruleName }
func (r *formatRule) Severity() Severity { return r.severity }

func (r *formatRule) Check(rec *domain.CaseRecord) []Finding {
	return r.check(rec)
}

// FormatRules returns the field-shape rules in evaluation order. ZIP and
// phone checks are informational: foreign addresses and numbers are
// legitimate values that simply do not match the US shapes.
func FormatRules() []Rule {
	return []Rule{
		&formatRule{
			ruleKey: "format.dates", ruleName: "Date notation",
			severity: SeverityWarning,
			check:    checkDates,
		},
		&formatRule{
			ruleKey: "format.sex", ruleName: "Sex code",
			severity: SeverityWarning,
			check:    checkSex,
		},
		&formatRule{
			ruleKey: "format.email", ruleName: "Email shape",
			severity: SeverityWarning,
			check:    checkEmails,
		},
		&formatRule{
			ruleKey: "format.zip", ruleName: "ZIP code shape",
			severity: SeverityInfo,
			check:    checkZips,
		},
		&formatRule{
			ruleKey: "format.phone", ruleName: "Phone digits",
			severity: SeverityInfo,
			check:    checkPhones,
		},
	}
}

// namedField pairs a schema field name with its value for iteration.
type namedField struct {
	name  string
	value *string
}

func checkDates(rec *domain.CaseRecord) []Finding {
	fields := []namedField{
		{"attorney_accreditation_date", rec.AttorneyAccreditationDate},
		{"beneficiary_date_of_birth", rec.BeneficiaryDateOfBirth},
		{"passport_date_of_issue", rec.PassportDateOfIssue},
		{"passport_date_of_expiration", rec.PassportDateOfExpiration},
	}
	var findings []Finding
	for _, f := range fields {
		if f.value == nil || *f.value == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, *f.value); err != nil {
			findings = append(findings, Finding{
				Field:   f.name,
				Message: fmt.Sprintf("%s %q is not in MM/DD/YYYY notation", f.name, *f.value),
			})
		}
	}
	return findings
}

func checkSex(rec *domain.CaseRecord) []Finding {
	v := rec.BeneficiarySex
	if v == nil || *v == "" {
		return nil
	}
	switch strings.ToUpper(strings.TrimSpace(*v)) {
	case "M", "F", "X":
		return nil
	}
	return []Finding{{
		Field:   "beneficiary_sex",
		Message: fmt.Sprintf("beneficiary_sex %q is not one of M, F, X", *v),
	}}
}

func checkEmails(rec *domain.CaseRecord) []Finding {
	fields := []namedField{
		{"attorney_email", rec.AttorneyEmail},
		{"client_email", rec.ClientEmail},
	}
	var findings []Finding
	for _, f := range fields {
		if f.value == nil || *f.value == "" {
			continue
		}
		if !emailPattern.MatchString(*f.value) {
			findings = append(findings, Finding{
				Field:   f.name,
				Message: fmt.Sprintf("%s %q does not look like an email address", f.name, *f.value),
			})
		}
	}
	return findings
}

func checkZips(rec *domain.CaseRecord) []Finding {
	fields := []namedField{
		{"attorney_zip_code", rec.AttorneyZipCode},
		{"client_zip_code", rec.ClientZipCode},
	}
	var findings []Finding
	for _, f := range fields {
		if f.value == nil || *f.value == "" {
			continue
		}
		if !zipPattern.MatchString(*f.value) {
			findings = append(findings, Finding{
				Field:   f.name,
				Message: fmt.Sprintf("%s %q is not a 5-digit ZIP or ZIP+4", f.name, *f.value),
			})
		}
	}
	return findings
}

func checkPhones(rec *domain.CaseRecord) []Finding {
	fields := []namedField{
		{"attorney_daytime_phone", rec.AttorneyDaytimePhone},
		{"attorney_mobile_phone", rec.AttorneyMobilePhone},
		{"attorney_fax_number", rec.AttorneyFaxNumber},
		{"client_daytime_phone", rec.ClientDaytimePhone},
		{"client_mobile_phone", rec.ClientMobilePhone},
	}
	var findings []Finding
	for _, f := range fields {
		if f.value == nil || *f.value == "" {
			continue
		}
		digits := nonDigit.ReplaceAllString(*f.value, "")
		if len(digits) == 11 && strings.HasPrefix(digits, "1") {
			digits = digits[1:]
		}
		if len(digits) != 10 {
			findings = append(findings, Finding{
				Field:   f.name,
				Message: fmt.Sprintf("%s %q does not contain a 10-digit US phone number", f.name, *f.value),
			})
		}
	}
	return findings
}
