package normalize

import (
	"github.com/thesis-tools/go-thesis-formatter/internal/docx"
	"github.com/thesis-tools/go-thesis-formatter/internal/style"
)

// snapshot captures the ten formatting fields the engine may change. Font
// fields come from the first non-whitespace run, the run the engine also
// unifies the paragraph against.
type snapshot struct {
	fontName        string
	fontSize        *float64
	bold            *bool
	alignment       string
	lineSpacing     *style.LineSpacing
	spaceBefore     *float64
	spaceAfter      *float64
	firstLineIndent *float64
	leftIndent      *float64
	rightIndent     *float64
}

func takeSnapshot(p *docx.Paragraph) snapshot {
	var s snapshot

	if run := p.FirstContentRun(); run != nil && run.Properties != nil {
		pr := run.Properties
		if f := pr.Font; f != nil {
			switch {
			case f.EastAsia != "":
				s.fontName = f.EastAsia
			case f.ASCII != "":
				s.fontName = f.ASCII
			default:
				s.fontName = f.HAnsi
			}
		}
		if pr.Size != nil {
			if pt, ok := docx.HalfPointsToPoints(pr.Size.Val); ok {
				s.fontSize = &pt
			}
		}
		if pr.Bold != nil {
			b := !pr.Bold.Off()
			s.bold = &b
		}
	}

	s.alignment = style.AlignmentFromJc(p.AlignmentValue())

	if props := p.Properties; props != nil {
		if sp := props.Spacing; sp != nil {
			if pt, ok := docx.TwipsToPoints(sp.Before); ok {
				s.spaceBefore = &pt
			}
			if pt, ok := docx.TwipsToPoints(sp.After); ok {
				s.spaceAfter = &pt
			}
			if ls, ok := style.LineSpacingFromLine(sp.Line, sp.LineRule); ok {
				s.lineSpacing = &ls
			}
		}
		if in := props.Indent; in != nil {
			if pt, ok := docx.TwipsToPoints(in.FirstLine); ok {
				s.firstLineIndent = &pt
			}
			if pt, ok := docx.TwipsToPoints(in.Left); ok {
				s.leftIndent = &pt
			}
			if pt, ok := docx.TwipsToPoints(in.Right); ok {
				s.rightIndent = &pt
			}
		}
	}
	return s
}

// diff compares two snapshots field by field and emits one FieldChange per
// differing field, with JSON-friendly before/after values.
func diff(before, after snapshot) []FieldChange {
	var changes []FieldChange

	if before.fontName != after.fontName {
		changes = append(changes, FieldChange{"font_name", strValue(before.fontName), strValue(after.fontName)})
	}
	if !floatPtrEqual(before.fontSize, after.fontSize) {
		changes = append(changes, FieldChange{"font_size", floatValue(before.fontSize), floatValue(after.fontSize)})
	}
	if !boolPtrEqual(before.bold, after.bold) {
		changes = append(changes, FieldChange{"bold", boolValue(before.bold), boolValue(after.bold)})
	}
	if before.alignment != after.alignment {
		changes = append(changes, FieldChange{"alignment", strValue(before.alignment), strValue(after.alignment)})
	}
	if !spacingEqual(before.lineSpacing, after.lineSpacing) {
		changes = append(changes, FieldChange{"line_spacing", spacingValue(before.lineSpacing), spacingValue(after.lineSpacing)})
	}
	if !floatPtrEqual(before.spaceBefore, after.spaceBefore) {
		changes = append(changes, FieldChange{"space_before", floatValue(before.spaceBefore), floatValue(after.spaceBefore)})
	}
	if !floatPtrEqual(before.spaceAfter, after.spaceAfter) {
		changes = append(changes, FieldChange{"space_after", floatValue(before.spaceAfter), floatValue(after.spaceAfter)})
	}
	if !floatPtrEqual(before.firstLineIndent, after.firstLineIndent) {
		changes = append(changes, FieldChange{"first_line_indent", floatValue(before.firstLineIndent), floatValue(after.firstLineIndent)})
	}
	if !floatPtrEqual(before.leftIndent, after.leftIndent) {
		changes = append(changes, FieldChange{"left_indent", floatValue(before.leftIndent), floatValue(after.leftIndent)})
	}
	if !floatPtrEqual(before.rightIndent, after.rightIndent) {
		changes = append(changes, FieldChange{"right_indent", floatValue(before.rightIndent), floatValue(after.rightIndent)})
	}
	return changes
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func spacingEqual(a, b *style.LineSpacing) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strValue(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func floatValue(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func boolValue(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func spacingValue(ls *style.LineSpacing) any {
	if ls == nil {
		return nil
	}
	if ls.Single {
		return "single"
	}
	return ls.Points
}
