package matcher

import "formpilot/internal/domain"

// Merge folds the deterministic and model-assisted results into the final
// execution sequence: deterministic operations first, then model operations,
// then the derived eligibility operation. Later operations whose selector
// was already taken are dropped, so the merged list never targets one
// selector twice.
func Merge(deterministic, model []domain.FillOperation, derived *domain.FillOperation) []domain.FillOperation {
	merged := make([]domain.FillOperation, 0, len(deterministic)+len(model)+1)
	seen := make(map[string]struct{}, cap(merged))

	add := func(op domain.FillOperation) {
		if _, dup := seen[op.Selector]; dup {
			return
		}
		seen[op.Selector] = struct{}{}
		merged = append(merged, op)
	}

	for _, op := range deterministic {
		add(op)
	}
	for _, op := range model {
		add(op)
	}
	if derived != nil {
		add(*derived)
	}
	return merged
}
