package gematria

import (
	"math/rand"
	"strings"
	"time"
)

// Phrase 生成结果：小写单词序列，词内不重复，总分等于目标值
type Phrase struct {
	Words []string
}

// String 以单个空格连接
func (p Phrase) String() string {
	return strings.Join(p.Words, " ")
}

// Score 短语总分
func (p Phrase) Score() int {
	return Score(p.String())
}

// Searcher 单次短语构造（随机贪心 + 可行性剪枝，不回溯）
// 非并发安全：rand.Rand 不能被多个 goroutine 共享
type Searcher struct {
	rng *rand.Rand
}

// NewSearcher 创建搜索器；rng 为 nil 时使用基于当前时间的独立随机源
func NewSearcher(rng *rand.Rand) *Searcher {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Searcher{rng: rng}
}

// Search 执行一次尝试
// 每一步在 “未使用且加入后不超过目标” 的词里均匀抽取一个；
// 没有可选词或达到词数上限即停止，只有总分恰好等于 target 才算成功。
// 早期选择可能堵死剩余空间，这里不回溯，由 Generator 的重复尝试弥补。
// target <= 0 或 maxWords <= 0 直接放弃，不产生空短语。
func (s *Searcher) Search(catalog Catalog, target, maxWords int) (Phrase, bool) {
	if target <= 0 || maxWords <= 0 {
		return Phrase{}, false
	}

	used := make(map[string]struct{}, maxWords)
	chosen := make([]string, 0, maxWords)
	running := 0
	available := make([]Word, 0, catalog.Len())

	for len(chosen) < maxWords && running < target {
		available = available[:0]
		for _, w := range catalog.words {
			if _, ok := used[w.Text]; ok {
				continue
			}
			if running+w.Score <= target {
				available = append(available, w)
			}
		}
		if len(available) == 0 {
			break
		}

		next := available[s.rng.Intn(len(available))]
		chosen = append(chosen, strings.ToLower(next.Text))
		used[next.Text] = struct{}{}
		running += next.Score
	}

	if running != target {
		return Phrase{}, false
	}
	return Phrase{Words: chosen}, true
}
