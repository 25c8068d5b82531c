// Package validate runs structural checks over a normalized document:
// figure captions, reference citations and blank-paragraph runs. The
// figure check may inject visible warning paragraphs; everything else is
// read-only.
package validate

// Issue types.
const (
	TypeMissingFigureCaption = "missing_figure_caption"
	TypeNoReferenceSection   = "no_reference_section"
	TypeNoReferenceItems     = "no_reference_items"
	TypeMissingCitations     = "missing_citations"
	TypeExcessiveBlanks      = "excessive_blanks"
)

// Issue is one structural finding. Fields beyond type/message/suggestion
// are populated per type.
type Issue struct {
	Type           string     `json:"type"`
	ParagraphIndex int        `json:"paragraph_index"`
	Message        string     `json:"message"`
	Suggestion     string     `json:"suggestion,omitempty"`
	ContextBefore  string     `json:"context_before,omitempty"`
	ContextAfter   string     `json:"context_after,omitempty"`
	ReferenceCount int        `json:"reference_count,omitempty"`
	BlankCount     int        `json:"blank_count,omitempty"`
	Locations      []Location `json:"locations,omitempty"`
}

// Location points at a paragraph likely involved in an issue.
type Location struct {
	ParagraphIndex int    `json:"paragraph_index"`
	Preview        string `json:"preview"`
}
