package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gematria/internal/gematria"
	"gematria/internal/store"
	"gematria/internal/wordlist"
)

// 返回给客户端的通用错误信息，不暴露内部细节
const msgInternalError = "An unexpected error occurred. Please try again later."

// Handler V1 API 处理器
type Handler struct {
	library *wordlist.Library
	store   *store.Store // 可为 nil（不记录运行日志）
	budget  gematria.Budget
	seed    int64
}

// Option Handler 配置项
type Option func(*Handler)

// WithBudget 设置生成预算
func WithBudget(b gematria.Budget) Option {
	return func(h *Handler) {
		h.budget = b
	}
}

// WithSeed 固定随机种子，0 表示每个请求独立随机
func WithSeed(seed int64) Option {
	return func(h *Handler) {
		h.seed = seed
	}
}

// WithStore 设置运行日志存储
func WithStore(st *store.Store) Option {
	return func(h *Handler) {
		h.store = st
	}
}

// NewHandler 创建 V1 API 处理器
func NewHandler(library *wordlist.Library, opts ...Option) *Handler {
	h := &Handler{
		library: library,
		budget:  gematria.DefaultBudget,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 分值计算
	router.POST("/calculate", h.Calculate)

	// 短语生成（NDJSON 流）
	router.POST("/generate-stream", h.GenerateStream)

	// 词表
	router.GET("/word-lists", h.ListWordLists)
	router.GET("/themes", h.ListThemes)

	// 系统状态
	router.GET("/status", h.GetStatus)
	router.GET("/runs", h.ListRuns)
}

// newGenerator 每个请求一个生成器，随机源不跨请求共享
func (h *Handler) newGenerator() *gematria.Generator {
	if h.seed != 0 {
		return gematria.NewGenerator(gematria.WithSeed(h.seed))
	}
	return gematria.NewGenerator()
}

func abortInternal(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
}
