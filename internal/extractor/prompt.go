package extractor

import (
	"fmt"
	"strings"
)

// BuildExtractionPrompt returns the extraction prompt sent alongside the
// uploaded documents. The field list is generated from the schema so prompt
// and schema cannot drift apart.
func BuildExtractionPrompt() string {
	var b strings.Builder

	b.WriteString("Extract ALL information from the provided documents (passport and/or G-28 form) to fill Form A-28: Legal Documentation.\n")

	for _, part := range SchemaParts() {
		fmt.Fprintf(&b, "\n**%s**\n", part.Heading)
		if part.Note != "" {
			b.WriteString(part.Note + "\n")
		}
		for _, f := range part.Fields {
			fmt.Fprintf(&b, "- %s: %s\n", f.Name, f.Description)
		}
	}

	b.WriteString(`
**IMPORTANT INSTRUCTIONS:**
1. Convert ALL dates to MM/DD/YYYY format
2. For sex/gender, return only: M, F, or X
3. If a field is blank/empty in the document, return null (not "N/A")
4. Look at BOTH the passport MRZ and main fields
5. Distinguish between ATTORNEY information (Part 1-2) and CLIENT information (Part 3-4)
6. The client is the person being represented; the attorney is the legal representative
7. Return null for any fields not found

Return ONLY a valid JSON object with these exact field names. No markdown, no code fences, no explanation.`)

	return b.String()
}
