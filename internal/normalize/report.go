package normalize

// FieldChange is one formatting field that differs between the pre- and
// post-normalization snapshot of a paragraph.
type FieldChange struct {
	Field  string `json:"field"`
	Before any    `json:"before"`
	After  any    `json:"after"`
}

// ChangeRecord describes every field the engine changed on one paragraph.
type ChangeRecord struct {
	ParagraphIndex   int           `json:"paragraph_index"`
	ParagraphPreview string        `json:"paragraph_preview"`
	StyleName        string        `json:"style_name"`
	AppliedRuleName  string        `json:"applied_rule_name"`
	Changes          []FieldChange `json:"changes"`
}

// Report summarizes one normalization pass. ChangesDetail is capped; the
// summary and counters always cover the full document.
type Report struct {
	TotalParagraphs    int            `json:"paragraphs_total"`
	AdjustedParagraphs int            `json:"paragraphs_adjusted"`
	StylesApplied      []string       `json:"styles_applied"`
	ChangesSummary     map[string]int `json:"changes_summary"`
	ChangesDetail      []ChangeRecord `json:"changes_detail"`
}
