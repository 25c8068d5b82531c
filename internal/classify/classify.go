// Package classify labels a paragraph's structural role from its style
// name, alignment and text. The role gates the normalization override
// policies; it is never persisted.
package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Role is a paragraph's structural role.
type Role int

const (
	// Body is ordinary prose, subject to the fixed body-font override.
	Body Role = iota
	// SectionTitle is the abstract or table-of-contents title line.
	SectionTitle
	// Caption is a figure or table caption line.
	Caption
	// Heading is any other section-title-shaped paragraph.
	Heading
)

func (r Role) String() string {
	switch r {
	case SectionTitle:
		return "section_title"
	case Caption:
		return "caption"
	case Heading:
		return "heading"
	}
	return "body"
}

// Classify returns the paragraph's role. Checks run in a fixed priority
// order and the first match wins; the abstract/TOC title check runs before
// the generic heading check so a centered short title line keeps its
// forced-center treatment.
func Classify(styleName, alignment, text string) Role {
	trimmed := strings.TrimSpace(text)
	switch {
	case IsSectionTitle(trimmed):
		return SectionTitle
	case IsCaption(trimmed):
		return Caption
	case IsHeadingLike(styleName, alignment, trimmed):
		return Heading
	}
	return Body
}

// IsHeadingLike reports whether the paragraph structurally resembles a
// section heading: a heading-marked style name, a short centered line, or
// a short line starting with a digit (numbered headings without a style).
func IsHeadingLike(styleName, alignment, text string) bool {
	lower := strings.ToLower(styleName)
	if strings.Contains(lower, "heading") || strings.Contains(styleName, "标题") {
		return true
	}
	runes := []rune(strings.TrimSpace(text))
	if alignment == "center" && len(runes) < 50 {
		return true
	}
	return len(runes) > 0 && unicode.IsDigit(runes[0]) && len(runes) < 30
}

// IsSectionTitle reports whether the text is the abstract title or the
// table-of-contents title. The two-ideograph forms tolerate up to five
// whitespace characters between the characters ("摘  要"); Latin forms are
// matched after width folding, punctuation stripping and case folding.
func IsSectionTitle(text string) bool {
	trimmed := strings.TrimSpace(text)
	if spacedPair(trimmed, '摘', '要') || spacedPair(trimmed, '目', '录') {
		return true
	}
	switch cleanTitle(trimmed) {
	case "abstract", "contents", "tableofcontents":
		return true
	}
	return false
}

// IsCaption reports whether the text looks like a figure or table caption:
// it starts with the 图 or 表 marker glyph and stays under 100 characters.
func IsCaption(text string) bool {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 || len(runes) >= 100 {
		return false
	}
	return runes[0] == '图' || runes[0] == '表'
}

// structuralTitles are short standalone section titles that legitimately
// sit centered even though they are not headings by style name.
var structuralTitles = map[string]struct{}{
	"目录":             {},
	"引言":             {},
	"概述":             {},
	"参考文献":           {},
	"致谢":             {},
	"contents":         {},
	"introduction":     {},
	"overview":         {},
	"references":       {},
	"acknowledgements": {},
}

// IsStructuralTitle reports whether the text is one of the fixed
// structural section titles that may keep a centered alignment rule.
func IsStructuralTitle(text string) bool {
	_, ok := structuralTitles[cleanTitle(strings.TrimSpace(text))]
	return ok
}

// spacedPair matches a two-character title with up to five whitespace
// characters strictly between the two runes.
func spacedPair(s string, first, last rune) bool {
	runes := []rune(s)
	if len(runes) < 2 || runes[0] != first || runes[len(runes)-1] != last {
		return false
	}
	gap := runes[1 : len(runes)-1]
	if len(gap) > 5 {
		return false
	}
	for _, c := range gap {
		if !unicode.IsSpace(c) {
			return false
		}
	}
	return true
}

// cleanTitle folds full-width Latin to ASCII, drops whitespace and
// punctuation, and lowercases, so "ＡＢＳＴＲＡＣＴ" and "Contents:" both
// reduce to comparable keys.
func cleanTitle(s string) string {
	folded := width.Fold.String(s)
	var sb strings.Builder
	for _, c := range folded {
		if unicode.IsSpace(c) || unicode.IsPunct(c) {
			continue
		}
		sb.WriteRune(unicode.ToLower(c))
	}
	return sb.String()
}
