package wordlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gematria/internal/gematria"
)

// 支持的词表文件扩展名，按优先级排列（同名时 .txt 优先）
var sourceExts = []string{".txt", ".xlsx"}

func isSourceFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range sourceExts {
		if ext == e {
			return true
		}
	}
	return false
}

// readSource 按扩展名读取词表文件
func readSource(path string) ([]gematria.Word, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path)
	default:
		return readText(path)
	}
}

// readText 每行一个词
func readText(path string) ([]gematria.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	words, err := gematria.ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return words, nil
}

// readXLSX 读取第一个工作表的 A 列，每个单元格一个词
func readXLSX(path string) ([]gematria.Word, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		lines = append(lines, row[0])
	}
	return gematria.LoadWords(lines), nil
}

// baseName 去掉扩展名的文件名
func baseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
