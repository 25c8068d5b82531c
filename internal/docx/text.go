package docx

import (
	"strings"
)

// Text concatenates the paragraph's run text, rendering tabs and breaks
// the way they read.
func (p *Paragraph) Text() string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	for i := range p.Runs {
		sb.WriteString(p.Runs[i].text())
	}
	return sb.String()
}

func (r *Run) text() string {
	switch {
	case r.Text != nil:
		return r.Text.Text
	case r.Tab != nil:
		return "\t"
	case r.Break != nil:
		if r.Break.Type == "page" {
			return "\n\n"
		}
		return "\n"
	}
	return ""
}

// StyleName returns the referenced paragraph style, or "" when unstyled.
func (p *Paragraph) StyleName() string {
	if p == nil || p.Properties == nil || p.Properties.Style == nil {
		return ""
	}
	return p.Properties.Style.Val
}

// FirstContentRun returns the first run carrying non-whitespace text.
func (p *Paragraph) FirstContentRun() *Run {
	for i := range p.Runs {
		r := &p.Runs[i]
		if r.Text != nil && strings.TrimSpace(r.Text.Text) != "" {
			return r
		}
	}
	return nil
}

// AlignmentValue returns the w:jc value, or "" when unset.
func (p *Paragraph) AlignmentValue() string {
	if p.Properties == nil || p.Properties.Align == nil {
		return ""
	}
	return p.Properties.Align.Val
}

// SetAlignment sets w:jc, allocating properties as needed.
func (p *Paragraph) SetAlignment(val string) {
	p.ensureProps()
	p.Properties.Align = &Alignment{Val: val}
}

func (p *Paragraph) ensureProps() {
	if p.Properties == nil {
		p.Properties = &ParagraphProps{}
	}
}

// EnsureSpacing returns the paragraph's spacing element, allocating it as
// needed.
func (p *Paragraph) EnsureSpacing() *Spacing {
	p.ensureProps()
	if p.Properties.Spacing == nil {
		p.Properties.Spacing = &Spacing{}
	}
	return p.Properties.Spacing
}

// EnsureIndent returns the paragraph's indent element, allocating it as
// needed.
func (p *Paragraph) EnsureIndent() *Indent {
	p.ensureProps()
	if p.Properties.Indent == nil {
		p.Properties.Indent = &Indent{}
	}
	return p.Properties.Indent
}

// GraphicXML returns the raw inner XML of every drawing, pict and object
// in the paragraph, one entry per marker, in run order.
func (p *Paragraph) GraphicXML() []string {
	var out []string
	for i := range p.Runs {
		r := &p.Runs[i]
		if r.Drawing != nil {
			out = append(out, r.Drawing.Inner)
		}
		if r.Pict != nil {
			out = append(out, r.Pict.Inner)
		}
		if r.Object != nil {
			out = append(out, r.Object.Inner)
		}
	}
	return out
}
