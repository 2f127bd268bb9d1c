package v1

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gematria/internal/gematria"
	"gematria/internal/store"
	"gematria/internal/wordlist"
)

type generateRequest struct {
	Score    any    `json:"score"` // 数字或数字字符串
	Theme    string `json:"theme"`
	WordList string `json:"wordList"`
}

// phraseRecord NDJSON 流中的一行
type phraseRecord struct {
	Phrase string `json:"phrase"`
}

// parseTarget 解析目标分值：必须是正整数
func parseTarget(v any) (int, bool) {
	var f float64
	switch s := v.(type) {
	case float64:
		f = s
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || f <= 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// GenerateStream 按目标分值流式生成短语
// POST /api/generate-stream
// 所有校验在开始写流之前完成；流开始后只会因为客户端断开或写失败而提前结束，不发送错误帧
func (h *Handler) GenerateStream(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	name := strings.TrimSpace(req.WordList)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No word list selected."})
		return
	}

	exists, err := h.library.Exists(name)
	if err != nil {
		log.Printf("检查词表 %s 失败: %v", name, err)
		abortInternal(c)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Word list file '" + name + "' not found"})
		return
	}

	target, ok := parseTarget(req.Score)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid score is required"})
		return
	}

	catalog, err := h.library.Catalog(name, req.Theme)
	if err != nil {
		if errors.Is(err, wordlist.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Word list file '" + name + "' not found"})
			return
		}
		log.Printf("加载词表 %s 失败: %v", name, err)
		abortInternal(c)
		return
	}

	stream, err := h.newGenerator().Generate(gematria.Request{
		Target:  target,
		Catalog: catalog,
		Budget:  h.budget,
	})
	if err != nil {
		if errors.Is(err, gematria.ErrInvalidTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid score is required"})
			return
		}
		log.Printf("创建生成任务失败: %v", err)
		abortInternal(c)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		log.Printf("响应不支持流式输出")
		abortInternal(c)
		return
	}

	theme := ""
	if _, found := h.library.Theme(req.Theme); found {
		theme = gematria.NormalizeThemeName(req.Theme)
	}

	runID := uuid.New().String()
	startedAt := time.Now()
	h.recordRunStart(store.Run{
		ID:        runID,
		WordList:  name,
		Theme:     theme,
		Target:    target,
		MaxWords:  h.budget.MaxWords,
		StartedAt: startedAt,
	})

	c.Header("Content-Type", "application/x-ndjson")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Header("X-Run-Id", runID)
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	flusher.Flush()

	ctx := c.Request.Context()
	enc := json.NewEncoder(c.Writer)
	writeFailed := false
	for {
		phrase, ok := stream.Next(ctx)
		if !ok {
			break
		}
		if err := enc.Encode(phraseRecord{Phrase: phrase.String()}); err != nil {
			log.Printf("写入短语失败 run=%s: %v", runID, err)
			writeFailed = true
			break
		}
		flusher.Flush()
	}

	stats := stream.Stats()
	status := store.RunStatusCompleted
	if stats.Cancelled || writeFailed {
		status = store.RunStatusCancelled
	}
	h.recordRunEnd(runID, stats, status)

	log.Printf("生成完成 run=%s list=%s theme=%q target=%d attempts=%d phrases=%d status=%s elapsed=%s",
		runID, name, theme, target, stats.Attempts, stats.Phrases, status, time.Since(startedAt).Round(time.Millisecond))
}

func (h *Handler) recordRunStart(run store.Run) {
	if h.store == nil {
		return
	}
	if err := h.store.CreateRun(run); err != nil {
		log.Printf("记录生成任务失败 run=%s: %v", run.ID, err)
	}
}

func (h *Handler) recordRunEnd(runID string, stats gematria.Stats, status string) {
	if h.store == nil {
		return
	}
	if err := h.store.CompleteRun(runID, stats.Attempts, stats.Phrases, status); err != nil {
		log.Printf("更新生成任务失败 run=%s: %v", runID, err)
	}
}
