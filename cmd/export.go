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
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/spellnet/internal/usecase/transfer"
)

const exportOutputKey = "transfer.export.output"

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "导出词库为 CSV",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		outputPath := viper.GetString(exportOutputKey)
		if outputPath == "" {
			outputPath = defaultExportFilename(time.Now())
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.cleanup()

		writer := cmd.OutOrStdout()
		if outputPath != "-" {
			if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
				return fmt.Errorf("创建输出目录失败: %w", err)
			}
			file, openErr := os.Create(filepath.Clean(outputPath))
			if openErr != nil {
				return fmt.Errorf("创建导出文件失败: %w", openErr)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			writer = file
		}

		progress := newCLIProgress(cmd.ErrOrStderr(), "导出")
		service := transfer.NewService(store.words(), store.logger, transfer.WithProgressReporter(progress))
		n, err := service.Export(ctx, writer)
		if err != nil {
			return fmt.Errorf("导出词库失败: %w", err)
		}

		if outputPath == "-" {
			cmd.PrintErrf("导出完成: %d 个单词输出到标准输出\n", n)
		} else {
			cmd.Printf("导出完成: %d 个单词 -> %s\n", n, outputPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "CSV 输出文件路径，使用 - 表示标准输出")
	bindExportConfig()
}

func defaultExportFilename(now time.Time) string {
	return fmt.Sprintf("spellnet-words-%s.csv", now.UTC().Format("20060102-150405"))
}

func bindExportConfig() {
	bindFlagToViper(exportOutputKey, exportCmd.Flags().Lookup("output"))
}
