package validate

import (
	"strings"

	"github.com/thesis-tools/go-thesis-formatter/internal/docx"
)

// CheckBlanks reports runs of two or more consecutive empty paragraphs.
// Read-only; the issues point at the first paragraph of each run.
func CheckBlanks(doc *docx.Document) []Issue {
	var issues []Issue
	start := -1
	blanks := 0

	flush := func() {
		if blanks >= 2 {
			issues = append(issues, Issue{
				Type:           TypeExcessiveBlanks,
				ParagraphIndex: start,
				BlankCount:     blanks,
				Message:        "存在连续空段落",
				Suggestion:     "请删除多余的空段落，段落之间的间距应通过段前段后距控制",
			})
		}
		start = -1
		blanks = 0
	}

	for i, p := range doc.Paragraphs() {
		if strings.TrimSpace(p.Text()) == "" {
			if blanks == 0 {
				start = i
			}
			blanks++
			continue
		}
		flush()
	}
	flush()
	return issues
}
