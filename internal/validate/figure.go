package validate

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/thesis-tools/go-thesis-formatter/internal/docx"
)

const (
	// captionScanWindow is how many paragraphs past the picture are
	// searched for a caption line.
	captionScanWindow = 5
	// proseSkipLength excludes long prose paragraphs from the picture
	// scan outright.
	proseSkipLength = 200

	warningText  = "⚠️ 【缺少图题】请在图片后添加图题，格式如：图X-X 图片说明"
	warningColor = "FF0000"
)

// captionPattern matches a figure caption's numbering: the marker glyph
// (with the flow-chart variant), digits, and an optional sub-number.
var captionPattern = regexp.MustCompile(`^(?:流程)?图\s*\d+(?:[.\-]\s*\d+)?`)

// CheckFigures verifies every picture-bearing paragraph is followed by a
// caption. Picture paragraphs are forced to center alignment; a missing
// caption yields an issue and a synthesized warning paragraph right after
// the picture. This is the one validator that mutates the document.
func CheckFigures(doc *docx.Document, log *zap.Logger) []Issue {
	if log == nil {
		log = zap.NewNop()
	}

	paras := doc.Paragraphs()
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = strings.TrimSpace(p.Text())
	}

	var issues []Issue
	for i, p := range paras {
		if len([]rune(texts[i])) > proseSkipLength && len(p.GraphicXML()) == 0 {
			continue
		}
		if paragraphGraphic(p) != GraphicPicture {
			continue
		}

		p.SetAlignment("center")

		if hasNearbyCaption(texts, i) {
			continue
		}
		issue := Issue{
			Type:           TypeMissingFigureCaption,
			ParagraphIndex: i,
			Message:        "图片后缺少图题",
			Suggestion:     "请在图片后添加图题，格式如：图X-X 图片说明",
		}
		if i > 0 {
			issue.ContextBefore = runewidth.Truncate(texts[i-1], 50, "...")
		}
		if i+1 < len(texts) {
			issue.ContextAfter = runewidth.Truncate(texts[i+1], 50, "...")
		}
		issues = append(issues, issue)
		log.Debug("figure without caption", zap.Int("paragraph", i))
	}

	// Insert warnings back to front so earlier insertions do not shift
	// the indices still to be processed.
	for k := len(issues) - 1; k >= 0; k-- {
		idx := issues[k].ParagraphIndex
		if err := doc.InsertParagraphAfter(idx, warningParagraph()); err != nil {
			log.Warn("failed to insert caption warning",
				zap.Int("paragraph", idx), zap.Error(err))
		}
	}
	return issues
}

// hasNearbyCaption scans the picture paragraph and up to the next
// captionScanWindow paragraphs for a caption line. Long intervening prose
// that is not itself caption-shaped stops the scan early.
func hasNearbyCaption(texts []string, pictureIdx int) bool {
	for j := pictureIdx; j <= pictureIdx+captionScanWindow && j < len(texts); j++ {
		t := texts[j]
		if isFigureCaption(t) {
			return true
		}
		if j > pictureIdx && len([]rune(t)) > 50 && !startsWithFigureMarker(t) {
			return false
		}
	}
	return false
}

func isFigureCaption(text string) bool {
	if len([]rune(text)) >= 100 {
		return false
	}
	return captionPattern.MatchString(text)
}

func startsWithFigureMarker(text string) bool {
	return strings.HasPrefix(text, "图") || strings.HasPrefix(text, "流程图")
}

// warningParagraph builds the visible caption-missing marker: bold, red,
// highlighted, so it cannot be overlooked in the preview.
func warningParagraph() docx.Paragraph {
	return docx.Paragraph{
		Runs: []docx.Run{{
			Properties: &docx.RunProps{
				Bold:      &docx.Bold{},
				Color:     &docx.Color{Val: warningColor},
				Highlight: &docx.Highlight{Val: "yellow"},
			},
			Text: &docx.Text{Text: warningText},
		}},
	}
}
