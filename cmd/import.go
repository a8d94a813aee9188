/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/spellnet/internal/infrastructure/database"
	"github.com/eslsoft/spellnet/internal/usecase/transfer"
)

const (
	importInputKey  = "transfer.import.input"
	importFormatKey = "transfer.import.format"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "从 CSV 或 XLSX 文件导入单词",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		inputPath := viper.GetString(importInputKey)
		if inputPath == "" {
			return fmt.Errorf("请通过 --input 指定导入文件或使用 - 表示标准输入")
		}
		format, err := importFormat(inputPath, viper.GetString(importFormatKey))
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.cleanup()

		if err := database.Migrate(ctx, store.db); err != nil {
			return fmt.Errorf("执行数据库迁移失败: %w", err)
		}

		reader := cmd.InOrStdin()
		if inputPath != "-" {
			file, openErr := os.Open(filepath.Clean(inputPath))
			if openErr != nil {
				return fmt.Errorf("打开导入文件失败: %w", openErr)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			reader = file
		}

		progress := newCLIProgress(cmd.ErrOrStderr(), "导入")
		service := transfer.NewService(store.words(), store.logger, transfer.WithProgressReporter(progress))
		result, err := service.Import(ctx, reader, format)
		if err != nil {
			return fmt.Errorf("导入单词失败: %w", err)
		}

		cmd.Printf("导入完成！共处理 %d 行，成功导入 %d 个新单词，跳过 %d 个（重复或无效数据）。\n",
			result.Processed, result.Imported, result.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("input", "i", "", "导入文件路径，使用 - 表示标准输入")
	importCmd.Flags().String("format", "", "文件格式 csv 或 xlsx (默认按扩展名判断)")
	bindImportConfig()
}

// importFormat prefers an explicit format over the file extension. Standard
// input without a format is read as CSV.
func importFormat(path, explicit string) (transfer.Format, error) {
	switch strings.ToLower(strings.TrimSpace(explicit)) {
	case "":
	case string(transfer.FormatCSV):
		return transfer.FormatCSV, nil
	case string(transfer.FormatXLSX):
		return transfer.FormatXLSX, nil
	default:
		return "", fmt.Errorf("不支持的文件格式: %s", explicit)
	}
	if path == "-" {
		return transfer.FormatCSV, nil
	}
	return transfer.DetectFormat(path)
}

func bindImportConfig() {
	bindFlagToViper(importInputKey, importCmd.Flags().Lookup("input"))
	bindFlagToViper(importFormatKey, importCmd.Flags().Lookup("format"))
}
