package validate

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/thesis-tools/go-thesis-formatter/internal/classify"
	"github.com/thesis-tools/go-thesis-formatter/internal/docx"
)

const (
	// maxReferenceEntries caps how many paragraphs after the references
	// heading are considered as entries.
	maxReferenceEntries = 100
	// maxCitationScan caps how many prose paragraphs before the
	// references section are searched for citation markers.
	maxCitationScan = 100
	// proseMinLength separates prose from headings and TOC lines.
	proseMinLength = 50
)

var (
	refHeadingPattern = regexp.MustCompile(`^\s*(参\s*考\s*文\s*献|References|REFERENCES|Bibliography)\s*$`)

	// entryMarkerPattern requires the numbering marker to be followed by
	// actual entry content, not to stand alone on its line. regexp2 for
	// the lookahead stdlib RE2 cannot express.
	entryMarkerPattern = regexp2.MustCompile(`^(\[\d+\]|［\d+］|\(\d+\)|（\d+）|\d+[.、])\s*(?=.{5,})`, regexp2.None)

	yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

	bracketCitationPattern = regexp.MustCompile(`[\[［]\d+([,，\-~]\s*\d+)*[\]］]`)
	yearCitationPattern    = regexp.MustCompile(`[（(](19|20)\d{2}[a-zA-Z]?[）)]`)
)

// academicKeywords flags prose that almost certainly should carry
// citations.
var academicKeywords = []string{"研究", "文献", "表明", "发现", "提出", "分析", "方法", "理论", "模型"}

// CheckReferences validates that a references section exists, holds
// entries, and is actually cited from the body prose. Read-only.
func CheckReferences(doc *docx.Document, log *zap.Logger) []Issue {
	if log == nil {
		log = zap.NewNop()
	}

	paras := doc.Paragraphs()
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = strings.TrimSpace(p.Text())
	}

	refIdx := -1
	for i, t := range texts {
		if refHeadingPattern.MatchString(t) {
			refIdx = i
			break
		}
	}
	if refIdx < 0 {
		return []Issue{{
			Type:       TypeNoReferenceSection,
			Message:    "未找到参考文献部分",
			Suggestion: "请在论文末尾添加参考文献部分",
		}}
	}

	count := countEntries(paras, texts, refIdx)
	if count == 0 {
		return []Issue{{
			Type:           TypeNoReferenceItems,
			ParagraphIndex: refIdx,
			Message:        "参考文献部分没有条目",
			Suggestion:     "请在参考文献标题下列出引用的文献，如：[1] 作者. 标题[J]. 期刊, 年份.",
		}}
	}

	if citations := countCitations(texts, refIdx); citations > 0 {
		log.Debug("citation markers found",
			zap.Int("citations", citations), zap.Int("references", count))
		return nil
	}

	issue := Issue{
		Type:           TypeMissingCitations,
		ParagraphIndex: refIdx,
		Message:        "正文中未找到任何引用标注",
		Suggestion:     "请在正文引用文献处添加标注，如 [1] 或（2023）",
		ReferenceCount: count,
		Locations:      keywordLocations(texts, refIdx),
	}
	return []Issue{issue}
}

// countEntries walks up to maxReferenceEntries paragraphs after the
// heading, stopping early at what looks like the next section heading.
func countEntries(paras []*docx.Paragraph, texts []string, refIdx int) int {
	count := 0
	for i := refIdx + 1; i < len(texts) && i <= refIdx+maxReferenceEntries; i++ {
		t := texts[i]
		if t == "" {
			continue
		}
		if isEntry(t) {
			count++
			continue
		}
		if len([]rune(t)) < proseMinLength &&
			(classify.IsHeadingLike(paras[i].StyleName(), paras[i].AlignmentValue(), t) ||
				classify.IsStructuralTitle(t)) {
			break
		}
	}
	return count
}

// isEntry recognizes a reference entry by its numbering marker, or
// secondarily by length plus a 4-digit year token.
func isEntry(text string) bool {
	if ok, _ := entryMarkerPattern.MatchString(text); ok {
		return true
	}
	return len([]rune(text)) > 20 && yearPattern.MatchString(text)
}

// countCitations counts inline citation markers in the first
// maxCitationScan prose paragraphs before the references section.
func countCitations(texts []string, refIdx int) int {
	total := 0
	scanned := 0
	for i := 0; i < refIdx && scanned < maxCitationScan; i++ {
		t := texts[i]
		if len([]rune(t)) <= proseMinLength {
			continue
		}
		scanned++
		total += len(bracketCitationPattern.FindAllString(t, -1))
		total += len(yearCitationPattern.FindAllString(t, -1))
	}
	return total
}

// keywordLocations returns up to 10 long prose paragraphs carrying
// academic-register vocabulary, the likeliest places citations belong.
func keywordLocations(texts []string, refIdx int) []Location {
	var locs []Location
	for i := 0; i < refIdx && len(locs) < 10; i++ {
		t := texts[i]
		if len([]rune(t)) <= proseMinLength {
			continue
		}
		for _, kw := range academicKeywords {
			if strings.Contains(t, kw) {
				locs = append(locs, Location{
					ParagraphIndex: i,
					Preview:        runewidth.Truncate(t, 50, "..."),
				})
				break
			}
		}
	}
	return locs
}
