package v1

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arobertov/trans-schedule-sub000/internal/exporter"
)

// Export 导出排班表 Excel（完成后返回一次性下载地址）
// POST /api/schedules/:id/export
func (h *Handler) Export(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "排班表不存在"})
		return
	}

	sc := s.Schedule()
	exp := exporter.NewExporter()
	file, err := exp.Export(exporter.ExportOptions{
		Schedule: sc,
		Rows:     s.Snapshot(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}
	defer file.Close()

	tempPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("roster_export_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := file.SaveAs(tempPath); err != nil {
		_ = os.Remove(tempPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败: " + err.Error()})
		return
	}

	token := h.downloads.put(tempPath, sc.ID, sc.Year, sc.Month, h.opts.DownloadTTL)

	c.JSON(http.StatusOK, gin.H{
		"downloadUrl": "/api/export/download/" + token,
	})
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(item.year, item.month))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

// buildExportContentDisposition 下载文件名，兼容非 ASCII
func buildExportContentDisposition(year, month int) string {
	name := fmt.Sprintf("排班表_%d年%02d月.xlsx", year, month)
	fallback := fmt.Sprintf("roster_%d_%02d.xlsx", year, month)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`,
		fallback, url.PathEscape(name))
}
