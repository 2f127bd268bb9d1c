package gematria

import (
	"context"
	"errors"
	"math/rand"
)

var (
	// ErrInvalidTarget 目标分值必须为正整数
	ErrInvalidTarget = errors.New("target score must be a positive integer")
	// ErrInvalidBudget 预算参数不能为负，且每个短语至少允许一个词
	ErrInvalidBudget = errors.New("invalid generation budget")
)

// Budget 单次生成的预算
type Budget struct {
	MaxWords    int // 每个短语最多词数
	MaxPhrases  int // 成功短语上限
	MaxAttempts int // 尝试次数上限
}

// DefaultBudget 默认预算
var DefaultBudget = Budget{
	MaxWords:    6,
	MaxPhrases:  50,
	MaxAttempts: 500,
}

// Request 生成请求
type Request struct {
	Target  int
	Catalog Catalog
	Budget  Budget
}

// Validate 校验请求参数
func (r Request) Validate() error {
	if r.Target <= 0 {
		return ErrInvalidTarget
	}
	if r.Budget.MaxWords <= 0 || r.Budget.MaxPhrases < 0 || r.Budget.MaxAttempts < 0 {
		return ErrInvalidBudget
	}
	return nil
}

// Option Generator 配置项
type Option func(*Generator)

// WithRand 注入随机源（测试可复现）；nil 忽略
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithSeed 使用固定种子
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// Generator 反复调用 Searcher，逐个产出成功短语
type Generator struct {
	rng *rand.Rand
}

// NewGenerator 创建生成器
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate 校验请求并返回惰性的结果流
// 同一个 Generator 生成的多个 Stream 共享随机源，不能并发消费；
// 每个请求应使用自己的 Generator（或未注入随机源的 Generator）。
func (g *Generator) Generate(req Request) (*Stream, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &Stream{
		req:      req,
		searcher: NewSearcher(g.rng),
	}, nil
}

// Stats 生成统计
type Stats struct {
	Attempts  int
	Phrases   int
	Cancelled bool
}

// Stream 有限、不可重启的短语序列
// 不启动 goroutine：每次 Next 在调用方的 goroutine 中同步执行尝试，
// 拿到一个成功短语即返回，调用方可以立刻转发给客户端
type Stream struct {
	req      Request
	searcher *Searcher
	stats    Stats
	err      error
	done     bool
}

// Next 返回下一个短语；预算耗尽、词池为空或 ctx 结束时返回 false，之后一直返回 false
func (s *Stream) Next(ctx context.Context) (Phrase, bool) {
	if s.done {
		return Phrase{}, false
	}
	if s.req.Catalog.Len() == 0 {
		s.done = true
		return Phrase{}, false
	}

	budget := s.req.Budget
	for s.stats.Phrases < budget.MaxPhrases && s.stats.Attempts < budget.MaxAttempts {
		if err := ctx.Err(); err != nil {
			s.err = err
			s.stats.Cancelled = true
			s.done = true
			return Phrase{}, false
		}

		s.stats.Attempts++
		if phrase, ok := s.searcher.Search(s.req.Catalog, s.req.Target, budget.MaxWords); ok {
			s.stats.Phrases++
			return phrase, true
		}
	}

	s.done = true
	return Phrase{}, false
}

// Collect 消费剩余全部短语
func (s *Stream) Collect(ctx context.Context) []Phrase {
	var out []Phrase
	for {
		p, ok := s.Next(ctx)
		if !ok {
			return out
		}
		out = append(out, p)
	}
}

// Stats 当前统计
func (s *Stream) Stats() Stats {
	return s.stats
}

// Err 因 ctx 结束而中止时返回对应错误，正常结束（包括零结果）返回 nil
func (s *Stream) Err() error {
	return s.err
}
