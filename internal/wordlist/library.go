package wordlist

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gematria/internal/gematria"
)

// ErrNotFound 词表不存在
var ErrNotFound = errors.New("word list not found")

// Library 词表库：通用词典按需加载并缓存，主题词表启动时一次性加载
type Library struct {
	dictDir   string
	themesDir string

	mu    sync.Mutex
	cache map[string][]gematria.Word // key: 文件路径

	themes map[string][]gematria.Word // key: 归一化主题名
}

// New 创建词表库并加载主题目录（目录不存在时视为没有主题）
func New(dictDir, themesDir string) (*Library, error) {
	lib := &Library{
		dictDir:   dictDir,
		themesDir: themesDir,
		cache:     make(map[string][]gematria.Word),
		themes:    make(map[string][]gematria.Word),
	}
	if err := lib.loadThemes(); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *Library) loadThemes() error {
	if l.themesDir == "" {
		return nil
	}
	entries, err := os.ReadDir(l.themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read themes directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !isSourceFile(e.Name()) {
			continue
		}
		key := gematria.NormalizeThemeName(baseName(e.Name()))
		if key == "" {
			continue
		}
		if _, exists := l.themes[key]; exists {
			log.Printf("主题 %s 重复，忽略 %s", key, e.Name())
			continue
		}
		words, err := readSource(filepath.Join(l.themesDir, e.Name()))
		if err != nil {
			return fmt.Errorf("failed to load theme %s: %w", key, err)
		}
		l.themes[key] = words
	}
	return nil
}

// Names 列出词典名称（每次调用重新扫描目录）
func (l *Library) Names() ([]string, error) {
	entries, err := os.ReadDir(l.dictDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionaries directory: %w", err)
	}

	seen := make(map[string]struct{})
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isSourceFile(e.Name()) {
			continue
		}
		name := baseName(e.Name())
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// resolve 把词典名映射为文件路径；名称中不允许出现路径成分
func (l *Library) resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", ErrNotFound
	}
	for _, ext := range sourceExts {
		path := filepath.Join(l.dictDir, name+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat %s: %w", filepath.Base(path), err)
		}
	}
	return "", ErrNotFound
}

// Exists 词典是否存在
func (l *Library) Exists(name string) (bool, error) {
	_, err := l.resolve(name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Dictionary 加载词典，同一文件只读取一次
func (l *Library) Dictionary(name string) ([]gematria.Word, error) {
	path, err := l.resolve(name)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if words, ok := l.cache[path]; ok {
		return words, nil
	}
	words, err := readSource(path)
	if err != nil {
		return nil, err
	}
	l.cache[path] = words
	return words, nil
}

// Theme 按主题名查找，名称先归一化
func (l *Library) Theme(name string) ([]gematria.Word, bool) {
	key := gematria.NormalizeThemeName(name)
	if key == "" {
		return nil, false
	}
	words, ok := l.themes[key]
	return words, ok
}

// ThemeNames 已加载的主题名（排序）
func (l *Library) ThemeNames() []string {
	names := make([]string, 0, len(l.themes))
	for k := range l.themes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Catalog 组装一次生成使用的词池；未知主题静默忽略
func (l *Library) Catalog(name, theme string) (gematria.Catalog, error) {
	general, err := l.Dictionary(name)
	if err != nil {
		return gematria.Catalog{}, err
	}
	themeWords, _ := l.Theme(theme)
	return gematria.NewCatalog(themeWords, general), nil
}
