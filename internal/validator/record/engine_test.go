package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formpilot/internal/domain"
	"formpilot/internal/validator/record"
)

// stubRule is a fixed-output rule for registry and engine tests.
type stubRule struct {
	key      string
	severity record.Severity
	findings []record.Finding
}

func (r *stubRule) RuleKey() string           { return r.key }
func (r *stubRule) RuleName() string          { return r.key }
func (r *stubRule) Severity() record.Severity { return r.severity }

func (r *stubRule) Check(*domain.CaseRecord) []record.Finding {
	return r.findings
}

func TestEngine_Validate_CleanRecord(t *testing.T) {
	engine := record.NewEngine()

	rec := &domain.CaseRecord{
		AttorneyFamilyName:       strPtr("Nguyen"),
		AttorneyEmail:            strPtr("counsel@firm.example"),
		AttorneyZipCode:          strPtr("94107"),
		ClientDaytimePhone:       strPtr("(415) 555-0100"),
		BeneficiarySex:           strPtr("F"),
		BeneficiaryDateOfBirth:   strPtr("03/14/1992"),
		PassportDateOfIssue:      strPtr("01/15/2022"),
		PassportDateOfExpiration: strPtr("01/15/2090"),
	}

	assert.Empty(t, engine.Validate(rec))
}

func TestEngine_Validate_StampsKeyAndSeverity(t *testing.T) {
	engine := record.NewEngine()

	rec := &domain.CaseRecord{
		BeneficiarySex:           strPtr("Male"),
		ClientZipCode:            strPtr("SW1A 1AA"),
		PassportDateOfExpiration: strPtr("01/15/2020"),
	}

	findings := engine.Validate(rec)
	require.Len(t, findings, 3)

	// Format rules run before cross-field rules, in registration order.
	assert.Equal(t, "format.sex", findings[0].RuleKey)
	assert.Equal(t, record.SeverityWarning, findings[0].Severity)
	assert.Equal(t, "format.zip", findings[1].RuleKey)
	assert.Equal(t, record.SeverityInfo, findings[1].Severity)
	assert.Equal(t, "xf.passport.expired", findings[2].RuleKey)
	assert.Equal(t, record.SeverityInfo, findings[2].Severity)
}

func TestEngine_Validate_NilRecord(t *testing.T) {
	engine := record.NewEngine()

	assert.Nil(t, engine.Validate(nil))
}

func TestEngine_WithCustomRegistry(t *testing.T) {
	reg := record.NewRegistry()
	reg.Register(&stubRule{
		key:      "stub.always",
		severity: record.SeverityWarning,
		findings: []record.Finding{{Field: "attorney_email", Message: "stub finding"}},
	})
	engine := record.NewEngineWithRegistry(reg)

	findings := engine.Validate(&domain.CaseRecord{})

	require.Len(t, findings, 1)
	assert.Equal(t, "stub.always", findings[0].RuleKey)
	assert.Equal(t, record.SeverityWarning, findings[0].Severity)
	assert.Equal(t, "attorney_email", findings[0].Field)
}

func TestRegistry_RegisterReplacesInPlace(t *testing.T) {
	reg := record.NewRegistry()
	reg.Register(&stubRule{key: "rule.a", severity: record.SeverityInfo})
	reg.Register(&stubRule{key: "rule.b", severity: record.SeverityInfo})

	replacement := &stubRule{
		key:      "rule.a",
		severity: record.SeverityWarning,
		findings: []record.Finding{{Message: "replaced"}},
	}
	reg.Register(replacement)

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "rule.a", all[0].RuleKey())
	assert.Equal(t, record.SeverityWarning, all[0].Severity())
	assert.Same(t, replacement, reg.Get("rule.a"))
	assert.Equal(t, "rule.b", all[1].RuleKey())
}
