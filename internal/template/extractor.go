// Package template derives a style rule set from a reference document:
// one rule per distinct style name, first occurrence wins, plus a default
// body style selection.
package template

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/thesis-tools/go-thesis-formatter/internal/docx"
	"github.com/thesis-tools/go-thesis-formatter/internal/style"
)

// ErrTemplateEmpty is returned when the reference document yields no rules.
var ErrTemplateEmpty = errors.New("reference document contains no paragraphs")

// Extract walks the reference document in document order and builds a
// Template. The reference document is never modified.
func Extract(doc *docx.Document, log *zap.Logger) (*style.Template, error) {
	if log == nil {
		log = zap.NewNop()
	}

	paras := doc.Paragraphs()
	if len(paras) == 0 {
		return nil, ErrTemplateEmpty
	}

	tpl := &style.Template{Styles: map[string]*style.Rule{}}
	counts := map[string]int{}
	var seen []string

	for _, p := range paras {
		name := p.StyleName()
		if name == "" {
			name = "Normal"
		}
		if counts[name] == 0 {
			seen = append(seen, name)
		}
		counts[name]++

		if _, exists := tpl.Styles[name]; exists {
			continue
		}
		rule := sampleRule(p)
		tpl.Styles[name] = rule
		log.Debug("sampled style rule",
			zap.String("style", name),
			zap.Any("rule", rule))
	}

	tpl.DefaultStyle = selectDefault(counts, seen)
	log.Info("template extracted",
		zap.Int("styles", len(tpl.Styles)),
		zap.String("default_style", tpl.DefaultStyle))
	return tpl, nil
}

// sampleRule reads one paragraph's observable formatting into a rule.
// Fields that cannot be resolved stay unset.
func sampleRule(p *docx.Paragraph) *style.Rule {
	rule := &style.Rule{}

	if run := p.FirstContentRun(); run != nil && run.Properties != nil {
		pr := run.Properties
		if name := fontName(pr.Font); name != "" {
			rule.FontName = &name
		}
		if pr.Size != nil {
			if pt, ok := docx.HalfPointsToPoints(pr.Size.Val); ok {
				rule.FontSize = &pt
			}
		}
		if pr.Bold != nil {
			b := !pr.Bold.Off()
			rule.Bold = &b
		}
	}

	if align := style.AlignmentFromJc(p.AlignmentValue()); align != "" {
		rule.Alignment = &align
	}

	if props := p.Properties; props != nil {
		if sp := props.Spacing; sp != nil {
			if pt, ok := docx.TwipsToPoints(sp.Before); ok {
				rule.SpaceBefore = &pt
			}
			if pt, ok := docx.TwipsToPoints(sp.After); ok {
				rule.SpaceAfter = &pt
			}
			if ls, ok := style.LineSpacingFromLine(sp.Line, sp.LineRule); ok {
				rule.LineSpacing = &ls
			}
		}
		if in := props.Indent; in != nil {
			if pt, ok := docx.TwipsToPoints(in.FirstLine); ok {
				rule.FirstLineIndent = &pt
			}
			if pt, ok := docx.TwipsToPoints(in.Left); ok {
				rule.LeftIndent = &pt
			}
			if pt, ok := docx.TwipsToPoints(in.Right); ok {
				rule.RightIndent = &pt
			}
		}
	}
	return rule
}

// fontName picks the east-asian variant first: for the documents this
// system handles it is the authoritative face, with ascii as the fallback.
func fontName(f *docx.RunFont) string {
	if f == nil {
		return ""
	}
	if f.EastAsia != "" {
		return f.EastAsia
	}
	if f.ASCII != "" {
		return f.ASCII
	}
	return f.HAnsi
}

// selectDefault picks the most frequent non-heading style name, ties
// broken by count descending then first-seen order. When every style is
// heading-like the single most frequent wins regardless.
func selectDefault(counts map[string]int, seen []string) string {
	best := ""
	bestAny := ""
	for _, name := range seen {
		if bestAny == "" || counts[name] > counts[bestAny] {
			bestAny = name
		}
		if headingStyleName(name) {
			continue
		}
		if best == "" || counts[name] > counts[best] {
			best = name
		}
	}
	if best != "" {
		return best
	}
	return bestAny
}

func headingStyleName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "heading") || strings.Contains(name, "标题")
}
