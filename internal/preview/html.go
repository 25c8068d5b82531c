package preview

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/thesis-tools/go-thesis-formatter/internal/classify"
	"github.com/thesis-tools/go-thesis-formatter/internal/docx"
	"github.com/thesis-tools/go-thesis-formatter/internal/validate"
)

// HTMLData carries the summaries prepended to the rendering.
type HTMLData struct {
	ChangesSummary map[string]int
	FigureIssues   []validate.Issue
	WatermarkText  string
}

// maxListedIssues caps the figure issues listed in the summary block.
const maxListedIssues = 10

const previewCSS = `body{background:#e8e8e8;margin:0;font-family:"宋体",serif}
.sheet{width:794px;min-height:1123px;margin:16px auto;padding:90px 72px;background:#fff;box-shadow:0 1px 4px rgba(0,0,0,.3);position:relative}
.sheet p{text-indent:2em;line-height:1.6;margin:0 0 6px}
.sheet p.no-indent{text-indent:0}
.sheet .center{text-align:center;text-indent:0}
.sheet .right{text-align:right}
.sheet .bold{font-weight:bold}
.sheet h1,.sheet h2,.sheet h3{text-align:inherit}
.watermark{position:fixed;top:40%;left:50%;transform:translate(-50%,-50%) rotate(-45deg);font-size:48px;color:rgba(160,160,160,.35);pointer-events:none;white-space:nowrap;z-index:10}
.summary{border:1px solid #d0d0d0;background:#fafafa;padding:12px 16px;margin-bottom:24px;font-size:13px}
.summary h2{font-size:15px;margin:0 0 8px}
.summary ul{margin:0 0 8px;padding-left:20px}
.warning-mark{background:#ffff00;color:#ff0000;font-weight:bold}
.footer-note{text-align:center;color:#999;font-size:12px;margin-top:32px}`

// RenderHTML walks the watermarked document and emits a structurally
// faithful HTML page: heading levels from the style name, alignment and
// bold as classes, plus the prepended change/validation summary. The
// document is not modified.
func RenderHTML(doc *docx.Document, data HTMLData) string {
	if data.WatermarkText == "" {
		data.WatermarkText = DefaultWatermarkText
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"zh\">\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<title>格式规范化预览</title>\n<style>")
	sb.WriteString(previewCSS)
	sb.WriteString("</style>\n</head>\n<body>\n")
	sb.WriteString(`<div class="watermark">` + html.EscapeString(data.WatermarkText) + "</div>\n")
	sb.WriteString(`<div class="sheet">` + "\n")

	writeSummary(&sb, data)

	for _, p := range doc.Paragraphs() {
		writeParagraph(&sb, p)
	}

	sb.WriteString(`<p class="footer-note">` + html.EscapeString(data.WatermarkText) + "</p>\n")
	sb.WriteString("</div>\n</body>\n</html>\n")
	return sb.String()
}

func writeSummary(sb *strings.Builder, data HTMLData) {
	sb.WriteString(`<div class="summary">` + "\n<h2>格式调整摘要</h2>\n")
	if len(data.ChangesSummary) == 0 {
		sb.WriteString("<p class=\"no-indent\">没有需要调整的格式</p>\n")
	} else {
		fields := make([]string, 0, len(data.ChangesSummary))
		for f := range data.ChangesSummary {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		sb.WriteString("<ul>\n")
		for _, f := range fields {
			fmt.Fprintf(sb, "<li>%s：%d 处</li>\n", html.EscapeString(f), data.ChangesSummary[f])
		}
		sb.WriteString("</ul>\n")
	}

	if len(data.FigureIssues) > 0 {
		sb.WriteString("<h2>图题检查</h2>\n<ul>\n")
		listed := data.FigureIssues
		if len(listed) > maxListedIssues {
			listed = listed[:maxListedIssues]
		}
		for _, issue := range listed {
			fmt.Fprintf(sb, "<li>第 %d 段：%s</li>\n", issue.ParagraphIndex+1, html.EscapeString(issue.Message))
		}
		sb.WriteString("</ul>\n")
		if overflow := len(data.FigureIssues) - maxListedIssues; overflow > 0 {
			fmt.Fprintf(sb, "<p class=\"no-indent\">另有 %d 处问题未列出</p>\n", overflow)
		}
	}
	sb.WriteString("</div>\n")
}

func writeParagraph(sb *strings.Builder, p *docx.Paragraph) {
	text := strings.TrimSpace(p.Text())
	styleName := p.StyleName()
	align := p.AlignmentValue()

	if text != "" && classify.IsHeadingLike(styleName, align, text) && !classify.IsCaption(text) {
		level := headingLevel(styleName)
		classes := paragraphClasses(p, false)
		fmt.Fprintf(sb, "<h%d%s>%s</h%d>\n", level, classAttr(classes), html.EscapeString(text), level)
		return
	}

	classes := paragraphClasses(p, true)
	sb.WriteString("<p" + classAttr(classes) + inlineIndent(p) + ">")
	if text == "" {
		sb.WriteString("&nbsp;")
	} else {
		writeRuns(sb, p)
	}
	sb.WriteString("</p>\n")
}

// writeRuns emits the paragraph's text with run-level emphasis: warning
// runs (highlighted) get the warning-mark class, bold runs a <strong>.
func writeRuns(sb *strings.Builder, p *docx.Paragraph) {
	for i := range p.Runs {
		r := &p.Runs[i]
		if r.Text == nil {
			continue
		}
		escaped := html.EscapeString(r.Text.Text)
		switch {
		case r.Properties != nil && r.Properties.Highlight != nil:
			sb.WriteString(`<span class="warning-mark">` + escaped + "</span>")
		case r.Properties != nil && r.Properties.Bold != nil && !r.Properties.Bold.Off():
			sb.WriteString("<strong>" + escaped + "</strong>")
		default:
			sb.WriteString(escaped)
		}
	}
}

// headingLevel maps a style name onto h1..h3, defaulting to 2.
func headingLevel(styleName string) int {
	switch {
	case strings.Contains(styleName, "1"):
		return 1
	case strings.Contains(styleName, "2"):
		return 2
	case strings.Contains(styleName, "3"):
		return 3
	}
	return 2
}

func paragraphClasses(p *docx.Paragraph, indentable bool) []string {
	var classes []string
	switch p.AlignmentValue() {
	case "center":
		classes = append(classes, "center")
	case "right":
		classes = append(classes, "right")
	}
	if run := p.FirstContentRun(); run != nil && run.Properties != nil &&
		run.Properties.Bold != nil && !run.Properties.Bold.Off() {
		classes = append(classes, "bold")
	}
	if indentable && hasExplicitFirstLineIndent(p) {
		classes = append(classes, "no-indent")
	}
	return classes
}

// hasExplicitFirstLineIndent reports whether the paragraph carries its own
// first-line indent; the stylesheet's default 2em indent is disabled for
// those and the explicit value is emitted inline instead.
func hasExplicitFirstLineIndent(p *docx.Paragraph) bool {
	return p.Properties != nil && p.Properties.Indent != nil && p.Properties.Indent.FirstLine != ""
}

func inlineIndent(p *docx.Paragraph) string {
	if !hasExplicitFirstLineIndent(p) {
		return ""
	}
	pt, ok := docx.TwipsToPoints(p.Properties.Indent.FirstLine)
	if !ok {
		return ""
	}
	return fmt.Sprintf(` style="text-indent:%.0fpt"`, pt)
}

func classAttr(classes []string) string {
	if len(classes) == 0 {
		return ""
	}
	return ` class="` + strings.Join(classes, " ") + `"`
}
