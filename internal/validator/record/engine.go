package record

import (
	"log"

	"formpilot/internal/domain"
)

// Engine runs every registered rule against a record.
type Engine struct {
	registry *Registry
}

// NewEngine builds an engine with the built-in rule set.
func NewEngine() *Engine {
	return NewEngineWithRegistry(DefaultRegistry())
}

// NewEngineWithRegistry builds an engine over a custom rule set.
func NewEngineWithRegistry(reg *Registry) *Engine {
	return &Engine{registry: reg}
}

// DefaultRegistry registers the built-in rules: format checks first, then
// cross-field checks.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, r := range FormatRules() {
		reg.Register(r)
	}
	for _, r := range CrossFieldRules() {
		reg.Register(r)
	}
	return reg
}

// Validate runs all rules in order and returns their findings stamped with
// the owning rule's key and severity. Callers report findings beside the
// record; they never reject it.
func (e *Engine) Validate(rec *domain.CaseRecord) []Finding {
	if rec == nil {
		return nil
	}
	var findings []Finding
	for _, rule := range e.registry.All() {
		for _, f := range rule.Check(rec) {
			f.RuleKey = rule.RuleKey()
			f.Severity = rule.Severity()
			findings = append(findings, f)
		}
	}
	if len(findings) > 0 {
		log.Printf("record.Engine: %d validation findings", len(findings))
	}
	return findings
}
