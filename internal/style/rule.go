// Package style defines the typed formatting rule model: a Rule is a pure
// overlay of optional fields, and a Template is a named rule set derived
// from a reference document.
package style

import (
	"encoding/json"
	"fmt"
)

// Paragraph alignment values, matching the w:jc vocabulary.
const (
	AlignLeft       = "left"
	AlignCenter     = "center"
	AlignRight      = "right"
	AlignJustify    = "justify"
	AlignDistribute = "distribute"
)

// ValidAlignment reports whether v is one of the supported alignments.
func ValidAlignment(v string) bool {
	switch v {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify, AlignDistribute:
		return true
	}
	return false
}

// LineSpacing is either single-line spacing or an exact point value.
// Values of 1.0 or below collapse to single spacing; anything above 1.0
// is an exact point-based spacing, not a multiplier.
type LineSpacing struct {
	Single bool
	Points float64
}

// SingleSpacing returns the single-line spacing value.
func SingleSpacing() LineSpacing {
	return LineSpacing{Single: true}
}

// ExactSpacing returns a fixed point-based spacing. Values not above 1.0
// fall back to single spacing.
func ExactSpacing(points float64) LineSpacing {
	if points <= 1.0 {
		return SingleSpacing()
	}
	return LineSpacing{Points: points}
}

// MarshalJSON renders "single" or a bare number.
func (ls LineSpacing) MarshalJSON() ([]byte, error) {
	if ls.Single {
		return json.Marshal("single")
	}
	return json.Marshal(ls.Points)
}

// UnmarshalJSON accepts "single" or a number.
func (ls *LineSpacing) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "single" {
			return fmt.Errorf("unknown line spacing %q", s)
		}
		*ls = SingleSpacing()
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid line spacing: %w", err)
	}
	*ls = ExactSpacing(n)
	return nil
}

// Rule is a formatting overlay. A nil field means "do not alter this
// property"; absence is observably distinct from an explicit zero or
// false.
type Rule struct {
	FontName        *string      `json:"font_name,omitempty"`
	FontSize        *float64     `json:"font_size,omitempty"`
	Bold            *bool        `json:"bold,omitempty"`
	Alignment       *string      `json:"alignment,omitempty"`
	LineSpacing     *LineSpacing `json:"line_spacing,omitempty"`
	SpaceBefore     *float64     `json:"space_before,omitempty"`
	SpaceAfter      *float64     `json:"space_after,omitempty"`
	FirstLineIndent *float64     `json:"first_line_indent,omitempty"`
	LeftIndent      *float64     `json:"left_indent,omitempty"`
	RightIndent     *float64     `json:"right_indent,omitempty"`
}

// Clone returns a deep copy, so override policies can edit a candidate
// rule without touching the template.
func (r *Rule) Clone() *Rule {
	if r == nil {
		return nil
	}
	out := &Rule{}
	if r.FontName != nil {
		v := *r.FontName
		out.FontName = &v
	}
	if r.FontSize != nil {
		v := *r.FontSize
		out.FontSize = &v
	}
	if r.Bold != nil {
		v := *r.Bold
		out.Bold = &v
	}
	if r.Alignment != nil {
		v := *r.Alignment
		out.Alignment = &v
	}
	if r.LineSpacing != nil {
		v := *r.LineSpacing
		out.LineSpacing = &v
	}
	if r.SpaceBefore != nil {
		v := *r.SpaceBefore
		out.SpaceBefore = &v
	}
	if r.SpaceAfter != nil {
		v := *r.SpaceAfter
		out.SpaceAfter = &v
	}
	if r.FirstLineIndent != nil {
		v := *r.FirstLineIndent
		out.FirstLineIndent = &v
	}
	if r.LeftIndent != nil {
		v := *r.LeftIndent
		out.LeftIndent = &v
	}
	if r.RightIndent != nil {
		v := *r.RightIndent
		out.RightIndent = &v
	}
	return out
}

// Template maps style names to rules, with an optional default style
// selection pointing into the same mapping.
type Template struct {
	Styles       map[string]*Rule `json:"styles"`
	DefaultStyle string           `json:"default_style,omitempty"`
}

// DefaultRule returns the rule named by DefaultStyle, or nil when the
// selection is absent or dangling.
func (t *Template) DefaultRule() *Rule {
	if t.DefaultStyle == "" {
		return nil
	}
	return t.Styles[t.DefaultStyle]
}

// Empty reports whether the template carries no rules at all.
func (t *Template) Empty() bool {
	return t == nil || len(t.Styles) == 0
}

// ParseTemplate decodes a JSON template document.
func ParseTemplate(data []byte) (*Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse style template: %w", err)
	}
	if t.Styles == nil {
		t.Styles = map[string]*Rule{}
	}
	return &t, nil
}

// JSON renders the template as indented JSON suitable for storage.
func (t *Template) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode style template: %w", err)
	}
	return data, nil
}

// Resolve returns the rule for a paragraph's style name: an exact match
// first, the default rule otherwise. The second return is the name of the
// rule actually applied, "" when none is available.
func (t *Template) Resolve(styleName string) (*Rule, string) {
	if r, ok := t.Styles[styleName]; ok {
		return r, styleName
	}
	if r := t.DefaultRule(); r != nil {
		return r, t.DefaultStyle
	}
	return nil, ""
}
