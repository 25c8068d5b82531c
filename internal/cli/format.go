package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thesis-tools/go-thesis-formatter/internal/config"
	"github.com/thesis-tools/go-thesis-formatter/internal/formatter"
	"github.com/thesis-tools/go-thesis-formatter/internal/logger"
	"github.com/thesis-tools/go-thesis-formatter/internal/style"
)

var formatTemplatePath string

// NewFormatCommand 创建 format 命令，使用已有的样式模板处理目标文档
func NewFormatCommand() *cobra.Command {
	formatCmd := &cobra.Command{
		Use:   "format [flags] target_file",
		Short: "使用已提取的样式模板规范化目标文档",
		Long: `使用 extract 命令产出（或人工编写）的 JSON 样式模板规范化目标文档，
无需重新解析参考文档。产物与根命令一致。

示例:
  thesisfmt format -t template.json 毕业论文.docx`,
		Args: cobra.ExactArgs(1),
		RunE: runFormatCommand,
	}

	formatCmd.Flags().StringVarP(&formatTemplatePath, "template", "t", "", "样式模板 JSON 文件（必填）")
	_ = formatCmd.MarkFlagRequired("template")
	formatCmd.Flags().StringVar(&watermarkText, "watermark", "", "预览水印文字")
	formatCmd.Flags().BoolVar(&noPreview, "no-preview", false, "跳过预览文件生成")

	return formatCmd
}

func runFormatCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cmd, cfg)
	if cmd.Root().PersistentFlags().Changed("output") {
		cfg.OutputDir = outputDir
	}
	if cmd.Root().PersistentFlags().Changed("debug") {
		cfg.Debug = debugMode
	}

	log := logger.NewLogger(cfg.Debug)
	defer func() {
		_ = log.Sync()
	}()

	data, err := os.ReadFile(formatTemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read template file: %w", err)
	}
	tpl, err := style.ParseTemplate(data)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", formatTemplatePath, err)
	}

	f := formatter.New(cfg, log)
	return processAndSave(cmd, cfg, log, f, tpl, args[0])
}
