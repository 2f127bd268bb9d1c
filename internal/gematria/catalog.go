package gematria

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// maxLineSize 单行词条最大长度（bufio.Scanner 默认 64K 对超长行会报错）
const maxLineSize = 1 << 20

// Word 候选词，Text 为大写 A-Z，Score 在加载时计算一次
type Word struct {
	Text  string
	Score int
}

// ParseWord 解析一行词条：去除首尾空白、转大写，整行必须匹配 ^[A-Z]+$
func ParseWord(line string) (Word, bool) {
	text := strings.ToUpper(strings.TrimSpace(line))
	if text == "" {
		return Word{}, false
	}
	score := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c < 'A' || c > 'Z' {
			return Word{}, false
		}
		score += int(c-'A') + 1
	}
	return Word{Text: text, Score: score}, true
}

// LoadWords 按原顺序过滤词条，不合法的行静默丢弃
func LoadWords(lines []string) []Word {
	words := make([]Word, 0, len(lines))
	for _, line := range lines {
		if w, ok := ParseWord(line); ok {
			words = append(words, w)
		}
	}
	return words
}

// ReadWords 从按行组织的词表读取词条
func ReadWords(r io.Reader) ([]Word, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var words []Word
	for scanner.Scan() {
		if w, ok := ParseWord(scanner.Text()); ok {
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word lines: %w", err)
	}
	return words, nil
}

// NormalizeThemeName 主题名归一化：NFKC + 去空白 + 小写
func NormalizeThemeName(name string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(name)))
}

// Catalog 一次生成所使用的候选词池：主题词在前，通用词典在后
// 构建后只读，可被多个请求并发读取
type Catalog struct {
	words []Word
}

// NewCatalog 拼接主题词与通用词典，重复词条不去重
func NewCatalog(theme, general []Word) Catalog {
	words := make([]Word, 0, len(theme)+len(general))
	words = append(words, theme...)
	words = append(words, general...)
	return Catalog{words: words}
}

// Len 词条数量
func (c Catalog) Len() int {
	return len(c.words)
}

// At 返回第 i 个词条
func (c Catalog) At(i int) Word {
	return c.words[i]
}

// Words 返回词条副本
func (c Catalog) Words() []Word {
	out := make([]Word, len(c.words))
	copy(out, c.words)
	return out
}
