// Package matcher resolves extracted record fields to form elements. The
// deterministic pass walks a static candidate-id table against the captured
// markup and emits typed fill operations without a model call; fields it
// cannot place are handed to the model-assisted mapper, and Merge folds both
// results into one deduplicated operation list.
package matcher

import (
	"regexp"

	"formpilot/internal/domain"
	"formpilot/internal/markup"
)

// Result is the outcome of one deterministic pass.
type Result struct {
	// Operations holds one operation per resolved field, in canonical
	// record order.
	Operations []domain.FillOperation
	// Unresolved holds the non-null fields the table could not place.
	// These go to the model-assisted mapper.
	Unresolved []domain.FieldValue
	// Derived is the eligibility checkbox operation, present at most once
	// per run. Merge appends it after all field operations.
	Derived *domain.FillOperation
}

// Deterministic matches record fields against markup using the candidate-id
// table. It never errors; anything it cannot resolve lands in
// Result.Unresolved.
type Deterministic struct {
	table []Pattern
}

// NewDeterministic creates a matcher over the built-in pattern table.
func NewDeterministic() *Deterministic {
	return &Deterministic{table: Table()}
}

// NewDeterministicWithTable creates a matcher over a custom table (for
// testing).
func NewDeterministicWithTable(table []Pattern) *Deterministic {
	return &Deterministic{table: table}
}

var negationRe = regexp.MustCompile(`(?i)\bnot\b`)

// Match walks the record's non-null fields in canonical order and resolves
// each against the markup. One field yields at most one operation.
func (m *Deterministic) Match(ins markup.Inspector, record *domain.CaseRecord) *Result {
	res := &Result{}
	if record == nil {
		return res
	}

	patterns := make(map[string]Pattern, len(m.table))
	for _, p := range m.table {
		patterns[p.Field] = p
	}

	for _, fv := range record.NonNullFields() {
		if fv.Name == fieldSubjectToRestrictions {
			if op := restrictionOperation(ins, *fv.Value); op != nil {
				res.Operations = append(res.Operations, *op)
			} else {
				res.Unresolved = append(res.Unresolved, fv)
			}
			continue
		}

		pattern, ok := patterns[fv.Name]
		if !ok {
			res.Unresolved = append(res.Unresolved, fv)
			continue
		}
		if op := matchPattern(ins, pattern, fv); op != nil {
			res.Operations = append(res.Operations, *op)
		} else {
			res.Unresolved = append(res.Unresolved, fv)
		}
	}

	if record.HasAttorneyData() && ins.HasID(attorneyEligibleID) {
		res.Derived = &domain.FillOperation{
			Action:   domain.ActionCheck,
			Selector: "#" + attorneyEligibleID,
			Field:    "attorney_eligible",
		}
	}

	return res
}

// matchPattern returns the operation for the first candidate fragment
// present in the markup, or nil when none is.
func matchPattern(ins markup.Inspector, pattern Pattern, fv domain.FieldValue) *domain.FillOperation {
	for _, fragment := range pattern.Fragments {
		if !ins.HasID(fragment) {
			continue
		}
		op := &domain.FillOperation{
			Action:   actionFor(ins.KindOf(fragment)),
			Selector: "#" + fragment,
			Field:    fv.Name,
		}
		if op.Action != domain.ActionCheck {
			op.Value = fv.Value
		}
		return op
	}
	return nil
}

// restrictionOperation picks between the two mutually exclusive attestation
// checkboxes. A value wording that negates ("am not subject to...") targets
// the not-subject box; anything else targets the subject box. The two never
// both fire for one record.
func restrictionOperation(ins markup.Inspector, value string) *domain.FillOperation {
	target := restrictionsSubjectID
	if negationRe.MatchString(value) {
		target = restrictionsNotSubjectID
	}
	if !ins.HasID(target) {
		return nil
	}
	return &domain.FillOperation{
		Action:   domain.ActionCheck,
		Selector: "#" + target,
		Field:    fieldSubjectToRestrictions,
	}
}

func actionFor(kind markup.ElementKind) domain.ActionKind {
	switch kind {
	case markup.KindSelect:
		return domain.ActionSelect
	case markup.KindDate:
		return domain.ActionDate
	case markup.KindCheckbox:
		return domain.ActionCheck
	default:
		return domain.ActionFill
	}
}
