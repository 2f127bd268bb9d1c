package v1

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gematria/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	WordLists   int             `json:"wordLists"`   // 词典数量
	Themes      int             `json:"themes"`      // 主题数量
	MaxWords    int             `json:"maxWords"`    // 每个短语最多词数
	MaxPhrases  int             `json:"maxPhrases"`  // 每次生成的短语上限
	MaxAttempts int             `json:"maxAttempts"` // 每次生成的尝试上限
	Totals      store.RunTotals `json:"totals"`      // 历史运行汇总
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	names, err := h.library.Names()
	if err != nil {
		log.Printf("读取词典目录失败: %v", err)
	}

	resp := StatusResponse{
		WordLists:   len(names),
		Themes:      len(h.library.ThemeNames()),
		MaxWords:    h.budget.MaxWords,
		MaxPhrases:  h.budget.MaxPhrases,
		MaxAttempts: h.budget.MaxAttempts,
	}

	if h.store != nil {
		totals, err := h.store.Totals()
		if err != nil {
			log.Printf("查询运行汇总失败: %v", err)
		} else {
			resp.Totals = totals
		}
	}

	c.JSON(http.StatusOK, resp)
}

// ListRuns 最近的生成记录
// GET /api/runs?limit=20
func (h *Handler) ListRuns(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []store.Run{}})
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	runs, err := h.store.ListRecentRuns(limit)
	if err != nil {
		log.Printf("查询生成记录失败: %v", err)
		abortInternal(c)
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
