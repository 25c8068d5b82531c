package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thesis-tools/go-thesis-formatter/internal/config"
	"github.com/thesis-tools/go-thesis-formatter/internal/formatter"
	"github.com/thesis-tools/go-thesis-formatter/internal/logger"
	"github.com/thesis-tools/go-thesis-formatter/internal/store"
	"github.com/thesis-tools/go-thesis-formatter/internal/style"
)

var (
	// 命令行标志变量
	cfgFile       string
	outputDir     string
	watermarkText string
	debugMode     bool
	noPreview     bool
)

// NewRootCommand 创建根命令
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "thesisfmt [flags] reference_file target_file",
		Short: "论文格式化工具：从参考文档提取样式并规范化目标文档",
		Long: `论文格式化工具从参考文档（格式规范模板）中提取各样式的排版规则，
然后将规则应用到目标文档：统一字体字号、对齐方式、行距和缩进，
检查图题缺失与参考文献引用情况，并生成带水印的预览文件。

每次运行的产物保存在输出目录下的独立子目录中：
  - normalized.docx  规范化后的文档
  - preview.docx     带水印的预览文档
  - preview.html     网页预览
  - report.json      格式调整报告
  - template.json    提取的样式模板`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("accepts 2 arg(s), received %d", len(args))
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
				os.Exit(1)
			}
			applyFlagOverrides(cmd, cfg)

			log := logger.NewLogger(cfg.Debug)
			defer func() {
				_ = log.Sync()
			}()

			if err := runFormat(cmd, cfg, log, args[0], args[1]); err != nil {
				log.Error("格式化失败", zap.Error(err))
				os.Exit(1)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "产物输出目录")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "启用调试日志")
	rootCmd.Flags().StringVar(&watermarkText, "watermark", "", "预览水印文字")
	rootCmd.Flags().BoolVar(&noPreview, "no-preview", false, "跳过预览文件生成")

	rootCmd.AddCommand(NewExtractCommand())
	rootCmd.AddCommand(NewFormatCommand())

	return rootCmd
}

// applyFlagOverrides 使用命令行参数覆盖配置
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debugMode
	}
	if cmd.Flags().Changed("watermark") {
		cfg.WatermarkText = watermarkText
	}
}

// runFormat 执行完整流程：提取模板、规范化目标文档并保存产物
func runFormat(cmd *cobra.Command, cfg *config.Config, log *zap.Logger, referencePath, targetPath string) error {
	ctx := cmd.Context()

	reference, err := os.Open(referencePath)
	if err != nil {
		return fmt.Errorf("failed to open reference file: %w", err)
	}
	defer reference.Close()

	f := formatter.New(cfg, log)

	tpl, err := f.ExtractTemplate(ctx, reference)
	if err != nil {
		return fmt.Errorf("failed to extract template from %s: %w", referencePath, err)
	}
	log.Info("模板提取完成",
		zap.String("参考文档", referencePath),
		zap.Int("样式数", len(tpl.Styles)),
		zap.String("默认样式", tpl.DefaultStyle))

	return processAndSave(cmd, cfg, log, f, tpl, targetPath)
}

// processAndSave 规范化目标文档并将产物保存为一次独立运行
func processAndSave(cmd *cobra.Command, cfg *config.Config, log *zap.Logger, f *formatter.Formatter, tpl *style.Template, targetPath string) error {
	target, err := os.Open(targetPath)
	if err != nil {
		return fmt.Errorf("failed to open target file: %w", err)
	}
	defer target.Close()

	result, err := f.Process(cmd.Context(), target, tpl)
	if err != nil {
		return fmt.Errorf("failed to process %s: %w", targetPath, err)
	}
	if noPreview {
		result.Preview = nil
		result.PreviewHTML = ""
	}
	if result.PreviewWarning != "" {
		log.Warn("预览生成失败，已跳过", zap.String("原因", result.PreviewWarning))
	}

	st, err := store.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	run, err := st.NewRun()
	if err != nil {
		return fmt.Errorf("failed to create run dir: %w", err)
	}
	if err := run.SaveResult(result); err != nil {
		return fmt.Errorf("failed to save artifacts: %w", err)
	}
	if err := run.SaveTemplate(tpl); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	printReport(cmd.OutOrStdout(), result.Report, run.Dir)
	return nil
}
