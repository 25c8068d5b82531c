// Package normalize applies a style template to a target document in
// place, with layered override policies and per-paragraph change tracking.
package normalize

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/thesis-tools/go-thesis-formatter/internal/classify"
	"github.com/thesis-tools/go-thesis-formatter/internal/docx"
	"github.com/thesis-tools/go-thesis-formatter/internal/style"
)

// Options tunes the engine's fixed body identity and reporting caps.
type Options struct {
	// BodyFontName and BodyFontSize are forced onto every non-heading
	// paragraph regardless of what its rule says.
	BodyFontName string
	BodyFontSize float64
	// DetailLimit caps ChangesDetail in the report.
	DetailLimit int
}

// DefaultOptions returns the institution defaults.
func DefaultOptions() Options {
	return Options{
		BodyFontName: "宋体",
		BodyFontSize: 12,
		DetailLimit:  50,
	}
}

// Engine normalizes documents against a template. Safe for concurrent use
// across distinct documents.
type Engine struct {
	opts Options
	log  *zap.Logger
}

// New constructs an engine, filling unset options from the defaults.
func New(opts Options, log *zap.Logger) *Engine {
	def := DefaultOptions()
	if opts.BodyFontName == "" {
		opts.BodyFontName = def.BodyFontName
	}
	if opts.BodyFontSize <= 0 {
		opts.BodyFontSize = def.BodyFontSize
	}
	if opts.DetailLimit <= 0 {
		opts.DetailLimit = def.DetailLimit
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{opts: opts, log: log}
}

// Apply normalizes the document's paragraphs under the template and
// returns the change report. The document is mutated in place.
func (e *Engine) Apply(doc *docx.Document, tpl *style.Template) *Report {
	paras := doc.Paragraphs()
	report := &Report{
		TotalParagraphs: len(paras),
		StylesApplied:   []string{},
		ChangesSummary:  map[string]int{},
		ChangesDetail:   []ChangeRecord{},
	}
	appliedStyles := map[string]bool{}

	for i, p := range paras {
		rec := e.normalizeParagraph(i, p, tpl)
		if rec == nil {
			continue
		}
		report.AdjustedParagraphs++
		if !appliedStyles[rec.StyleName] {
			appliedStyles[rec.StyleName] = true
			report.StylesApplied = append(report.StylesApplied, rec.StyleName)
		}
		for _, ch := range rec.Changes {
			report.ChangesSummary[ch.Field]++
		}
		if len(report.ChangesDetail) < e.opts.DetailLimit {
			report.ChangesDetail = append(report.ChangesDetail, *rec)
		}
	}

	e.log.Info("normalization finished",
		zap.Int("paragraphs_total", report.TotalParagraphs),
		zap.Int("paragraphs_adjusted", report.AdjustedParagraphs),
		zap.Strings("styles_applied", report.StylesApplied))
	return report
}

// normalizeParagraph runs the full override pipeline on one paragraph and
// returns its change record, or nil when nothing changed.
func (e *Engine) normalizeParagraph(idx int, p *docx.Paragraph, tpl *style.Template) *ChangeRecord {
	styleName := p.StyleName()
	if styleName == "" {
		styleName = "Normal"
	}
	rule, ruleName := tpl.Resolve(styleName)
	if rule == nil {
		return nil
	}

	text := strings.TrimSpace(p.Text())
	role := classify.Classify(styleName, p.AlignmentValue(), text)
	headingLike := classify.IsHeadingLike(styleName, p.AlignmentValue(), text)

	before := takeSnapshot(p)
	effective := rule.Clone()

	if !headingLike {
		// Body text always gets the one fixed typographic identity.
		name, size, bold := e.opts.BodyFontName, e.opts.BodyFontSize, false
		effective.FontName = &name
		effective.FontSize = &size
		effective.Bold = &bold
	} else if def := tpl.DefaultRule(); def != nil {
		if effective.FontSize == nil && def.FontSize != nil {
			v := *def.FontSize
			effective.FontSize = &v
		}
		if effective.FontName == nil && def.FontName != nil {
			v := *def.FontName
			effective.FontName = &v
		}
	}

	e.overrideAlignment(effective, role, text, before.alignment)

	if effective.Alignment != nil {
		p.SetAlignment(style.JcFromAlignment(*effective.Alignment))
	}
	applySpacing(p, effective)
	applyIndent(p, effective)
	unifyRuns(p, effective)

	// Later steps must never undo the title centering.
	if role == classify.SectionTitle {
		p.SetAlignment(style.AlignCenter)
	}

	changes := diff(before, takeSnapshot(p))
	if len(changes) == 0 {
		return nil
	}
	return &ChangeRecord{
		ParagraphIndex:   idx,
		ParagraphPreview: runewidth.Truncate(text, 50, "..."),
		StyleName:        styleName,
		AppliedRuleName:  ruleName,
		Changes:          changes,
	}
}

// overrideAlignment rewrites the effective rule's alignment field under
// the layered policy: title lines are always centered, captions and
// structural titles may keep a centered rule, and centered rules applied
// to plain body prose flip to left instead.
func (e *Engine) overrideAlignment(effective *style.Rule, role classify.Role, text, current string) {
	if role == classify.SectionTitle {
		center := style.AlignCenter
		effective.Alignment = &center
		return
	}
	if effective.Alignment == nil || *effective.Alignment != style.AlignCenter {
		return
	}
	if role == classify.Caption || classify.IsStructuralTitle(text) {
		return
	}
	if role == classify.Body {
		if current != "" && current != style.AlignLeft {
			left := style.AlignLeft
			effective.Alignment = &left
		} else {
			// Already effectively left; dropping the field avoids a
			// spurious change record.
			effective.Alignment = nil
		}
	}
}

func applySpacing(p *docx.Paragraph, r *style.Rule) {
	if r.SpaceBefore == nil && r.SpaceAfter == nil && r.LineSpacing == nil {
		return
	}
	sp := p.EnsureSpacing()
	if r.SpaceBefore != nil {
		sp.Before = docx.PointsToTwips(*r.SpaceBefore)
	}
	if r.SpaceAfter != nil {
		sp.After = docx.PointsToTwips(*r.SpaceAfter)
	}
	if ls := r.LineSpacing; ls != nil {
		if ls.Single {
			sp.Line = "240"
			sp.LineRule = "auto"
		} else {
			sp.Line = docx.PointsToTwips(ls.Points)
			sp.LineRule = "exact"
		}
	}
}

func applyIndent(p *docx.Paragraph, r *style.Rule) {
	if r.FirstLineIndent == nil && r.LeftIndent == nil && r.RightIndent == nil {
		return
	}
	in := p.EnsureIndent()
	if r.FirstLineIndent != nil {
		in.FirstLine = docx.PointsToTwips(*r.FirstLineIndent)
	}
	if r.LeftIndent != nil {
		in.Left = docx.PointsToTwips(*r.LeftIndent)
	}
	if r.RightIndent != nil {
		in.Right = docx.PointsToTwips(*r.RightIndent)
	}
}

// unifyRuns forces a single font identity across the paragraph's text
// runs. Without a rule size the first run's existing size is propagated,
// homogenizing without inventing a value.
func unifyRuns(p *docx.Paragraph, r *style.Rule) {
	size := r.FontSize
	if size == nil {
		if run := p.FirstContentRun(); run != nil && run.Properties != nil && run.Properties.Size != nil {
			if pt, ok := docx.HalfPointsToPoints(run.Properties.Size.Val); ok {
				size = &pt
			}
		}
	}
	if size == nil && r.FontName == nil && r.Bold == nil {
		return
	}

	for i := range p.Runs {
		run := &p.Runs[i]
		if run.Text == nil || strings.TrimSpace(run.Text.Text) == "" {
			continue
		}
		if run.Properties == nil {
			run.Properties = &docx.RunProps{}
		}
		if size != nil {
			run.Properties.Size = &docx.FontSize{Val: docx.PointsToHalfPoints(*size)}
		}
		if r.FontName != nil {
			run.Properties.Font = &docx.RunFont{
				ASCII:    *r.FontName,
				HAnsi:    *r.FontName,
				EastAsia: *r.FontName,
			}
		}
		if r.Bold != nil {
			if *r.Bold {
				run.Properties.Bold = &docx.Bold{}
			} else {
				run.Properties.Bold = &docx.Bold{Val: "0"}
			}
		}
	}
}
