// Package formatter orchestrates one document run: template extraction
// or loading, normalization, structural validation and preview
// generation, sequentially per the engine's synchronous model.
package formatter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/thesis-tools/go-thesis-formatter/internal/config"
	"github.com/thesis-tools/go-thesis-formatter/internal/docx"
	"github.com/thesis-tools/go-thesis-formatter/internal/normalize"
	"github.com/thesis-tools/go-thesis-formatter/internal/preview"
	"github.com/thesis-tools/go-thesis-formatter/internal/style"
	"github.com/thesis-tools/go-thesis-formatter/internal/template"
	"github.com/thesis-tools/go-thesis-formatter/internal/validate"
)

// Fatal error kinds. Callers match with errors.Is and map each to its own
// user-facing response.
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrTemplateNotFound  = errors.New("style template not found")
	ErrTemplateEmpty     = errors.New("style template is empty")
)

// Report is the run's structured output: the normalization report plus
// the validators' findings.
type Report struct {
	normalize.Report
	FigureIssues    []validate.Issue `json:"figure_issues,omitempty"`
	ReferenceIssues []validate.Issue `json:"reference_issues,omitempty"`
	BlankIssues     []validate.Issue `json:"blank_issues,omitempty"`
}

// Result carries one run's artifacts. PreviewWarning is set instead of a
// returned error when preview generation fails; the report and the
// normalized document are still valid in that case.
type Result struct {
	Normalized     []byte
	Preview        []byte
	PreviewHTML    string
	Report         *Report
	PreviewWarning string
}

// Formatter runs the pipeline. Safe for concurrent use across distinct
// documents; repeat runs on one document must be serialized by the caller.
type Formatter struct {
	cfg    *config.Config
	log    *zap.Logger
	engine *normalize.Engine
}

// New constructs a Formatter. A nil config uses the defaults.
func New(cfg *config.Config, log *zap.Logger) *Formatter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	engine := normalize.New(normalize.Options{
		BodyFontName: cfg.BodyFontName,
		BodyFontSize: cfg.BodyFontSize,
		DetailLimit:  cfg.ChangeDetailLimit,
	}, log)
	return &Formatter{cfg: cfg, log: log, engine: engine}
}

// ExtractTemplate derives a style template from a reference document
// stream. The reference document is not modified.
func (f *Formatter) ExtractTemplate(ctx context.Context, reference io.Reader) (*style.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := docx.Load(reference)
	if err != nil {
		if errors.Is(err, docx.ErrInvalidContainer) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("failed to load reference document: %w", err)
	}
	tpl, err := template.Extract(doc, f.log)
	if err != nil {
		if errors.Is(err, template.ErrTemplateEmpty) {
			return nil, fmt.Errorf("%w: %v", ErrTemplateEmpty, err)
		}
		return nil, err
	}
	return tpl, nil
}

// Process normalizes the target document under the template, validates
// it, and produces the preview artifacts. Preview failures do not fail
// the call; they surface as Result.PreviewWarning.
func (f *Formatter) Process(ctx context.Context, target io.Reader, tpl *style.Template) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}
	if tpl.Empty() {
		return nil, ErrTemplateEmpty
	}

	doc, err := docx.Load(target)
	if err != nil {
		if errors.Is(err, docx.ErrInvalidContainer) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("failed to load target document: %w", err)
	}

	report := &Report{Report: *f.engine.Apply(doc, tpl)}
	report.FigureIssues = validate.CheckFigures(doc, f.log)
	report.ReferenceIssues = validate.CheckReferences(doc, f.log)
	report.BlankIssues = validate.CheckBlanks(doc)

	normalized, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize normalized document: %w", err)
	}
	result := &Result{Normalized: normalized, Report: report}

	f.generatePreview(doc, result)
	return result, nil
}

// generatePreview fills in the watermarked document and the HTML
// rendering. Any failure lands in result.PreviewWarning.
func (f *Formatter) generatePreview(doc *docx.Document, result *Result) {
	marked, err := preview.Watermark(doc, preview.WatermarkOptions{
		Text:        f.cfg.WatermarkText,
		TargetCount: f.cfg.WatermarkTargetCount,
	}, f.log)
	if err != nil {
		f.log.Warn("watermark pass failed", zap.Error(err))
		result.PreviewWarning = err.Error()
		return
	}
	markedBytes, err := marked.Bytes()
	if err != nil {
		f.log.Warn("failed to serialize preview document", zap.Error(err))
		result.PreviewWarning = err.Error()
		return
	}
	result.Preview = markedBytes
	result.PreviewHTML = preview.RenderHTML(marked, preview.HTMLData{
		ChangesSummary: result.Report.ChangesSummary,
		FigureIssues:   result.Report.FigureIssues,
		WatermarkText:  f.cfg.WatermarkText,
	})
}
