package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thesis-tools/go-thesis-formatter/internal/config"
	"github.com/thesis-tools/go-thesis-formatter/internal/formatter"
	"github.com/thesis-tools/go-thesis-formatter/internal/logger"
)

var extractOutput string

// NewExtractCommand 创建 extract 命令，仅提取模板而不处理目标文档
func NewExtractCommand() *cobra.Command {
	extractCmd := &cobra.Command{
		Use:   "extract [flags] reference_file",
		Short: "从参考文档中提取样式模板",
		Long: `从参考文档（格式规范模板）中提取各样式的排版规则，
输出为 JSON 格式的样式模板。模板可被人工检查或修改后复用。

示例:
  # 提取模板并打印到标准输出
  thesisfmt extract 格式规范.docx

  # 提取模板并保存到文件
  thesisfmt extract 格式规范.docx -t template.json`,
		Args: cobra.ExactArgs(1),
		RunE: runExtractCommand,
	}

	extractCmd.Flags().StringVarP(&extractOutput, "template-out", "t", "", "模板输出文件（默认打印到标准输出）")

	return extractCmd
}

func runExtractCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Root().PersistentFlags().Changed("debug") {
		cfg.Debug = debugMode
	}

	log := logger.NewLogger(cfg.Debug)
	defer func() {
		_ = log.Sync()
	}()

	reference, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open reference file: %w", err)
	}
	defer reference.Close()

	f := formatter.New(cfg, log)
	tpl, err := f.ExtractTemplate(cmd.Context(), reference)
	if err != nil {
		return fmt.Errorf("failed to extract template from %s: %w", args[0], err)
	}

	data, err := tpl.JSON()
	if err != nil {
		return fmt.Errorf("failed to encode template: %w", err)
	}

	if extractOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := os.WriteFile(extractOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}
	log.Info("模板已保存",
		zap.String("文件", extractOutput),
		zap.Int("样式数", len(tpl.Styles)),
		zap.String("默认样式", tpl.DefaultStyle))
	return nil
}
