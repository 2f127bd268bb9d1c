package v1

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListWordLists 列出可用词典
// GET /api/word-lists
func (h *Handler) ListWordLists(c *gin.Context) {
	names, err := h.library.Names()
	if err != nil {
		log.Printf("读取词典目录失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not retrieve word lists."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wordLists": names})
}

// ListThemes 列出已加载的主题
// GET /api/themes
func (h *Handler) ListThemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"themes": h.library.ThemeNames()})
}
