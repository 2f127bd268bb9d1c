package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gematria/internal/gematria"
)

type calculateRequest struct {
	Phrase string `json:"phrase"`
}

type calculateResponse struct {
	Score int `json:"score"`
}

// Calculate 计算短语分值
// POST /api/calculate
func (h *Handler) Calculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Phrase) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phrase is required"})
		return
	}

	c.JSON(http.StatusOK, calculateResponse{Score: gematria.Score(req.Phrase)})
}
