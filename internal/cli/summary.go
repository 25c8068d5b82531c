package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/thesis-tools/go-thesis-formatter/internal/formatter"
	"github.com/thesis-tools/go-thesis-formatter/internal/validate"
)

// printReport 在终端打印一次运行的格式化结果摘要
func printReport(w io.Writer, rep *formatter.Report, runDir string) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintln(w, "📋 格式调整摘要")
	title.Fprintln(w, strings.Repeat("=", 50))

	fmt.Fprintln(w)
	printSection(w, "🎯 总体情况", [][]string{
		{"段落总数", fmt.Sprintf("%d", rep.TotalParagraphs)},
		{"调整段落数", fmt.Sprintf("%d", rep.AdjustedParagraphs)},
		{"应用的样式", strings.Join(rep.StylesApplied, ", ")},
		{"产物目录", runDir},
	})

	if len(rep.ChangesSummary) > 0 {
		fmt.Fprintln(w)
		printChangesTable(w, rep.ChangesSummary)
	}

	printIssues(w, "🖼  图题检查", rep.FigureIssues)
	printIssues(w, "📚 参考文献检查", rep.ReferenceIssues)
	printIssues(w, "⬜ 空行检查", rep.BlankIssues)
	fmt.Fprintln(w)
}

// printSection 打印标签与取值的两列段
func printSection(w io.Writer, name string, rows [][]string) {
	sectionColor := color.New(color.FgYellow, color.Bold)
	sectionColor.Fprintln(w, name)

	labelColor := color.New(color.FgCyan)
	valueColor := color.New(color.FgWhite, color.Bold)
	for _, row := range rows {
		labelColor.Fprintf(w, "  %-12s", row[0])
		valueColor.Fprintln(w, row[1])
	}
}

// printChangesTable 按字段打印调整次数表
func printChangesTable(w io.Writer, summary map[string]int) {
	fields := make([]string, 0, len(summary))
	for field := range summary {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"调整字段", "次数"})
	for _, field := range fields {
		t.AppendRow(table.Row{field, summary[field]})
	}
	t.Render()
}

func printIssues(w io.Writer, name string, issues []validate.Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintln(w)

	sectionColor := color.New(color.FgYellow, color.Bold)
	sectionColor.Fprintln(w, name)

	issueColor := color.New(color.FgRed)
	for _, issue := range issues {
		issueColor.Fprintf(w, "  第 %d 段: %s\n", issue.ParagraphIndex, issue.Message)
		if issue.Suggestion != "" {
			fmt.Fprintf(w, "    建议: %s\n", issue.Suggestion)
		}
	}
}
