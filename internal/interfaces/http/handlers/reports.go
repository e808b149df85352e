// internal/interfaces/http/handlers/reports.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-terminal/internal/domain/order"
	"gorm.io/gorm"
)

// ReportsHandler exposes sales aggregates for the back office
type ReportsHandler struct {
	repo *order.Repository
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(db *gorm.DB) *ReportsHandler {
	return &ReportsHandler{repo: order.NewRepository(db)}
}

// Summary aggregates persisted orders since the given time, defaulting to
// the start of today
func (h *ReportsHandler) Summary(c *gin.Context) {
	since := startOfToday()
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be RFC3339"})
			return
		}
		since = parsed
	}

	summary, err := h.repo.Summarize(c.Request.Context(), since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"since":   since,
		"summary": summary,
	})
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
