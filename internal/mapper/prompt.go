package mapper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"formpilot/internal/domain"
)

// DefaultMarkupLimit caps how much page HTML rides in the mapping prompt.
// Form pages past this size are truncated; the interesting inputs sit near
// the top of the document on every form observed so far.
const DefaultMarkupLimit = 20000

// BuildMappingPrompt assembles the free-form mapping prompt: the captured
// form markup, the unresolved field/value pairs, and the instruction set the
// model must follow to emit typed fill commands.
func BuildMappingPrompt(markup string, fields []domain.FieldValue, markupLimit int) string {
	if markupLimit <= 0 {
		markupLimit = DefaultMarkupLimit
	}
	if len(markup) > markupLimit {
		markup = markup[:markupLimit]
	}

	values := make(map[string]string, len(fields))
	for _, f := range fields {
		if f.Value != nil {
			values[f.Name] = *f.Value
		}
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		data = []byte("{}")
	}

	var b strings.Builder
	b.WriteString("You are a form-filling expert. Analyze this HTML form and create fill commands for the data below.\n\n")
	b.WriteString("HTML Form:\n")
	b.WriteString(markup)
	b.WriteString("\n\nData to Fill (field_name: value):\n")
	b.Write(data)
	b.WriteString(`

CRITICAL INSTRUCTIONS:
1. Find the ACTUAL input/select/textarea elements in the HTML. Only include fields you can ACTUALLY FIND in the HTML above.
2. For each data field, identify the matching form element by:
   - Looking at element "id" attributes
   - Looking at element "name" attributes
   - Looking at "placeholder" text
   - Looking at nearby <label> text
   - Looking at data-* attributes
3. Field matching hints:
   - "attorney_family_name": inputs related to attorney/lawyer/representative last name
   - "attorney_given_name": attorney first name
   - "client_family_name": client/applicant last name
   - "beneficiary_date_of_birth": beneficiary date of birth
   - etc.
4. Choose the "action" from the element type:
   - text inputs and textareas: "fill"
   - <select> elements: "select" (the value MUST be the option's value attribute, NOT its display text)
   - checkboxes: "check" (no value required)
   - date inputs: "date" (keep the value exactly as provided, do not reformat it)
5. Generate SPECIFIC CSS selectors, preferring id, then name, then placeholder:
   GOOD: input[id="clientFirstName"], input[name="attorneyLastName"]
   BAD: input[name="attorney_family_name"] (if that name does not exist in the HTML)
6. Return a JSON array of commands. Each command MUST have:
   - "action": one of "fill", "select", "check", "date"
   - "selector": a CSS selector that EXISTS in the HTML
   - "value": the text to apply (omit for "check")

Return ONLY a valid JSON array, no markdown, no explanation:
[
  {"action": "fill", "selector": "input[id='clientFirstName']", "value": "Barbara"},
  {"action": "select", "selector": "select[id='state']", "value": "CA"}
]`)
	return b.String()
}

type rawCommand struct {
	Action   string      `json:"action"`
	Selector string      `json:"selector"`
	Value    interface{} `json:"value"`
}

// DecodeOperations parses a model response into fill operations. Commands
// without a selector are dropped; an unknown or missing action becomes a
// plain fill. A response that is not a JSON array is an error so the caller
// can fall through to the next mapper tier.
func DecodeOperations(raw string) ([]domain.FillOperation, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty mapper response")
	}

	var cmds []rawCommand
	if err := json.Unmarshal([]byte(cleaned), &cmds); err != nil {
		return nil, fmt.Errorf("parsing fill commands: %w", err)
	}

	ops := make([]domain.FillOperation, 0, len(cmds))
	for _, cmd := range cmds {
		selector := strings.TrimSpace(cmd.Selector)
		if selector == "" {
			continue
		}
		action := domain.ActionKind(strings.ToLower(strings.TrimSpace(cmd.Action)))
		if !action.IsValid() {
			action = domain.ActionFill
		}
		op := domain.FillOperation{Action: action, Selector: selector}
		if v, ok := coerceValue(cmd.Value); ok {
			op.Value = &v
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func coerceValue(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// stripFences removes a markdown code fence wrapper if the model added one
// despite the instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	return s
}
