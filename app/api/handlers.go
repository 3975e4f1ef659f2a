package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"status":         "ok",
		"timestamp":      time.Now().In(time.Local).Format(time.RFC3339),
		"version":        h.version,
		"export_running": h.scheduler.ExportRunning(),
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := gin.H{
		"passes":         h.stats.PassCount(),
		"export_running": h.scheduler.ExportRunning(),
	}

	result, at := h.stats.LastExport()
	if result != nil {
		lastPass := gin.H{
			"total":    result.Processed,
			"synced":   result.Synced,
			"skipped":  result.Skipped,
			"failed":   result.Failed,
			"duration": result.Duration.String(),
		}
		if at != nil {
			lastPass["finished_at"] = at.Format(time.RFC3339)
		}
		stats["last_pass"] = lastPass
	}

	c.JSON(http.StatusOK, stats)
}

// APITriggerExport starts an export pass unless one is already
// running.
func (h *Handler) APITriggerExport(c *gin.Context) {
	if !h.scheduler.TriggerExport() {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "An export pass is already running",
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Export pass triggered",
	})
}
