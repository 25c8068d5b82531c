package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/thesis-tools/go-thesis-formatter/internal/docx"
)

const citedProse = "现有研究[1]提出了一种规范化方法，随后的工作[2,3]在更大的数据集上验证了它，" +
	"这一段足够长因而会被当作正文参与引用标注的扫描。"

const uncitedProse = "现有研究提出了一种新的文档规范化方法，并在真实数据集上进行了充分的实验验证，" +
	"这一段足够长因而会被当作正文参与引用标注的扫描。"

func referenceEntries() []docx.Paragraph {
	return []docx.Paragraph{
		textParagraph("[1] 张三. 文档规范化方法研究[J]. 计算机学报, 2021."),
		textParagraph("[2] 李四. 样式模板提取技术[C]. 全国学术会议, 2022."),
		textParagraph("[3] 王五. 结构化校验系统设计[D]. 某大学, 2023."),
	}
}

func TestCheckReferencesNoSection(t *testing.T) {
	doc := makeDocument(
		textParagraph("第一章 绪论"),
		textParagraph(uncitedProse),
	)
	issues := CheckReferences(doc, zap.NewNop())
	require.Len(t, issues, 1)
	assert.Equal(t, TypeNoReferenceSection, issues[0].Type)
}

func TestCheckReferencesNoItems(t *testing.T) {
	doc := makeDocument(
		textParagraph(uncitedProse),
		textParagraph("参考文献"),
		textParagraph("致谢"),
		textParagraph("感谢导师的悉心指导。"),
	)
	issues := CheckReferences(doc, zap.NewNop())
	require.Len(t, issues, 1)
	assert.Equal(t, TypeNoReferenceItems, issues[0].Type)
	assert.Equal(t, 1, issues[0].ParagraphIndex)
}

func TestCheckReferencesMissingCitations(t *testing.T) {
	paras := []docx.Paragraph{
		textParagraph("第一章 绪论"),
		textParagraph(uncitedProse),
		textParagraph("参考文献"),
	}
	paras = append(paras, referenceEntries()...)
	doc := makeDocument(paras...)

	issues := CheckReferences(doc, zap.NewNop())
	require.Len(t, issues, 1)
	issue := issues[0]
	assert.Equal(t, TypeMissingCitations, issue.Type)
	assert.Equal(t, 3, issue.ReferenceCount)
	require.NotEmpty(t, issue.Locations, "prose with academic vocabulary flagged")
	assert.Equal(t, 1, issue.Locations[0].ParagraphIndex)
}

func TestCheckReferencesCitedDocumentClean(t *testing.T) {
	paras := []docx.Paragraph{
		textParagraph("第一章 绪论"),
		textParagraph(citedProse),
		textParagraph("参考文献"),
	}
	paras = append(paras, referenceEntries()...)
	doc := makeDocument(paras...)

	assert.Empty(t, CheckReferences(doc, zap.NewNop()))
}

func TestCheckReferencesYearCitationCounts(t *testing.T) {
	prose := "该结论与早期工作（2019）以及后续研究（2021a）一致，这一段足够长因而会被当作正文参与引用标注的扫描检查。"
	paras := []docx.Paragraph{
		textParagraph(prose),
		textParagraph("参考文献"),
		textParagraph("[1] 某作者. 某标题[J]. 某期刊, 2019."),
	}
	doc := makeDocument(paras...)

	assert.Empty(t, CheckReferences(doc, zap.NewNop()))
}

func TestCheckReferencesEntryRecognition(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"bracketed", "[1] 作者. 标题[J]. 期刊, 2020.", true},
		{"fullwidth bracketed", "［2］作者. 标题[M]. 出版社, 2019.", true},
		{"parenthesized", "(3) 作者. 标题[C]. 会议, 2021.", true},
		{"dotted number", "4. 作者. 标题[D]. 大学, 2018.", true},
		{"bare marker without content", "[5]", false},
		{"long with year", "某位作者撰写的缺少编号却带有年份标记的文献条目 2020 年出版", true},
		{"short without marker", "不是条目", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isEntry(tt.text))
		})
	}
}

func TestCheckReferencesEntriesStopAtNextHeading(t *testing.T) {
	paras := []docx.Paragraph{
		textParagraph(citedProse),
		textParagraph("参考文献"),
		textParagraph("[1] 作者. 标题[J]. 期刊, 2020."),
		textParagraph("6.1 附录说明"),
		textParagraph("附录里的一行提到 2020 年的事件，但它不应再被算作参考文献条目，因为扫描已经在上一个标题处停止。"),
	}
	doc := makeDocument(paras...)

	// Citations exist, so a clean result proves entry counting stopped
	// cleanly rather than erroring out.
	assert.Empty(t, CheckReferences(doc, zap.NewNop()))
}

func TestCheckBlanks(t *testing.T) {
	doc := makeDocument(
		textParagraph("正文一"),
		textParagraph(""),
		textParagraph("  "),
		textParagraph(""),
		textParagraph("正文二"),
		textParagraph(""),
		textParagraph("正文三"),
	)
	issues := CheckBlanks(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, TypeExcessiveBlanks, issues[0].Type)
	assert.Equal(t, 1, issues[0].ParagraphIndex)
	assert.Equal(t, 3, issues[0].BlankCount)
}
