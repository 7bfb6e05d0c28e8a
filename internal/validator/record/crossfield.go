package record

import (
	"fmt"
	"time"

	"formpilot/internal/domain"
)

// crossFieldRule checks relationships between fields.
type crossFieldRule struct {
	ruleKey  string
	ruleName string
	severity Severity
	check    func(*domain.CaseRecord) []Finding
}

func (r *crossFieldRule) RuleKey() string    { return r.ruleKey }
func (r *crossFieldRule) RuleName() string   { return r.ruleName }
func (r *crossFieldRule) Severity() Severity { return r.severity }

func (r *crossFieldRule) Check(rec *domain.CaseRecord) []Finding {
	return r.check(rec)
}

// CrossFieldRules returns the rules that compare fields to each other.
func CrossFieldRules() []Rule {
	return []Rule{
		&crossFieldRule{
			ruleKey: "xf.passport.issue_before_expiration", ruleName: "Passport issue before expiration",
			severity: SeverityWarning,
			check:    checkIssueBeforeExpiration,
		},
		&crossFieldRule{
			ruleKey: "xf.passport.expired", ruleName: "Passport expiration in the past",
			severity: SeverityInfo,
			check:    checkNotExpired,
		},
	}
}

func checkIssueBeforeExpiration(rec *domain.CaseRecord) []Finding {
	issue, okIssue := parseRecordDate(rec.PassportDateOfIssue)
	expiry, okExpiry := parseRecordDate(rec.PassportDateOfExpiration)
	if !okIssue || !okExpiry {
		return nil
	}
	if issue.Before(expiry) {
		return nil
	}
	return []Finding{{
		Field: "passport_date_of_issue",
		Message: fmt.Sprintf("passport_date_of_issue %q is not before passport_date_of_expiration %q",
			*rec.PassportDateOfIssue, *rec.PassportDateOfExpiration),
	}}
}

func checkNotExpired(rec *domain.CaseRecord) []Finding {
	expiry, ok := parseRecordDate(rec.PassportDateOfExpiration)
	if !ok {
		return nil
	}
	if expiry.After(time.Now()) {
		return nil
	}
	return []Finding{{
		Field:   "passport_date_of_expiration",
		Message: fmt.Sprintf("passport expired on %s", expiry.Format(dateLayout)),
	}}
}

// parseRecordDate reads a month-first date, reporting whether it parsed.
// Unparseable values are the format rules' problem, not a cross-field one.
func parseRecordDate(v *string) (time.Time, bool) {
	if v == nil || *v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, *v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
