// Package record validates extracted case records. Findings are advisory: a
// record with warnings still flows through the pipeline unchanged, so there
// is no error severity and no rule can reject a record.
package record

import "formpilot/internal/domain"

// Severity ranks how much attention a finding deserves.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Finding is one observation about a record field.
type Finding struct {
	RuleKey  string   `json:"rule_key"`
	Field    string   `json:"field,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Rule is a single validation check over a case record. Check returns one
// finding per problem observed; the engine stamps RuleKey and Severity.
type Rule interface {
	RuleKey() string
	RuleName() string
	Severity() Severity
	Check(rec *domain.CaseRecord) []Finding
}

// Registry holds rules in the order they run.
type Registry struct {
	rules []Rule
	byKey map[string]Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]Rule)}
}

// Register adds a rule. Re-registering a key replaces the rule in place, so
// an override keeps the original's position in the run order.
func (r *Registry) Register(rule Rule) {
	key := rule.RuleKey()
	if _, ok := r.byKey[key]; ok {
		for i, existing := range r.rules {
			if existing.RuleKey() == key {
				r.rules[i] = rule
				break
			}
		}
	} else {
		r.rules = append(r.rules, rule)
	}
	r.byKey[key] = rule
}

// Get returns the rule for a given key, or nil if not registered.
func (r *Registry) Get(key string) Rule {
	return r.byKey[key]
}

// All returns the registered rules in registration order.
func (r *Registry) All() []Rule {
	return r.rules
}
