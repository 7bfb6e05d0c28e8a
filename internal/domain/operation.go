package domain

// ActionKind identifies how a fill operation manipulates its target element.
type ActionKind string

const (
	// ActionFill types a text value into an input or textarea.
	ActionFill ActionKind = "fill"
	// ActionSelect chooses an option in a select element by visible text or value.
	ActionSelect ActionKind = "select"
	// ActionCheck sets a checkbox or radio element to checked.
	ActionCheck ActionKind = "check"
	// ActionDate types a date value normalized to the target's expected notation.
	ActionDate ActionKind = "date"
)

// IsValid reports whether the action kind is one the executor understands.
func (a ActionKind) IsValid() bool {
	switch a {
	case ActionFill, ActionSelect, ActionCheck, ActionDate:
		return true
	}
	return false
}

// FillOperation is one planned interaction with the target form. Selector is
// always a CSS selector. Value is nil for check actions and set for the rest.
// Field carries the canonical record field that produced the operation, when
// known; derived operations leave it empty.
type FillOperation struct {
	Action   ActionKind `json:"action"`
	Selector string     `json:"selector"`
	Value    *string    `json:"value"`
	Field    string     `json:"field,omitempty"`
}

// OperationResult records the outcome of executing one operation.
type OperationResult struct {
	Operation FillOperation `json:"operation"`
	Applied   bool          `json:"applied"`
	Reason    string        `json:"reason,omitempty"`
}

// SessionArtifact describes everything a populate run left behind: the remote
// browser session, the stored debug artifacts, and the fill tally.
type SessionArtifact struct {
	RunID                  string            `json:"run_id"`
	SessionID              string            `json:"session_id"`
	ViewerURL              string            `json:"viewer_url,omitempty"`
	FormURL                string            `json:"form_url"`
	AttemptedCount         int               `json:"attempted_count"`
	FilledCount            int               `json:"filled_count"`
	Results                []OperationResult `json:"results,omitempty"`
	ScreenshotLocation     string            `json:"screenshot_location,omitempty"`
	MarkupLocation         string            `json:"markup_location,omitempty"`
	MapperOutputLocation   string            `json:"mapper_output_location,omitempty"`
	ExtractionStatus       ExtractionStatus  `json:"extraction_status"`
	DeterministicMatched   int               `json:"deterministic_matched"`
	ModelMappedAdditional  int               `json:"model_mapped_additional"`
	EligibilityCheckIssued bool              `json:"eligibility_check_issued"`
}
