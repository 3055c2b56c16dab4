package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arobertov/trans-schedule-sub000/internal/session"
	"github.com/arobertov/trans-schedule-sub000/internal/store"
)

// Handler V1 API 处理器
type Handler struct {
	store     *store.Store
	sessions  *session.Registry
	opts      Options
	downloads *exportDownloadStore
}

// Options 接口层业务默认值（来自 config.toml 的 [schedule] 段）
type Options struct {
	DefaultP1End int           // 新建排班表的区间一默认结束日
	DefaultP2End int           // 新建排班表的区间二默认结束日
	DownloadTTL  time.Duration // 导出下载令牌有效期
}

// DefaultOptions 配置缺省时的接口层默认值
func DefaultOptions() Options {
	return Options{
		DefaultP1End: 10,
		DefaultP2End: 20,
		DownloadTTL:  10 * time.Minute,
	}
}

// NewHandler 创建 V1 API 处理器
func NewHandler(store *store.Store, sessions *session.Registry, opts Options) *Handler {
	def := DefaultOptions()
	if opts.DefaultP1End <= 0 {
		opts.DefaultP1End = def.DefaultP1End
	}
	if opts.DefaultP2End <= 0 {
		opts.DefaultP2End = def.DefaultP2End
	}
	if opts.DownloadTTL <= 0 {
		opts.DownloadTTL = def.DownloadTTL
	}
	return &Handler{
		store:     store,
		sessions:  sessions,
		opts:      opts,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 员工名录
	router.GET("/employees", h.ListEmployees)
	router.GET("/employees/:id", h.GetEmployee)

	// 排班矩阵
	router.GET("/matrices", h.ListMatrices)
	router.GET("/matrices/:id", h.GetMatrix)

	// 排班表
	router.POST("/schedules", h.CreateSchedule)
	router.GET("/schedules", h.ListSchedules)
	router.GET("/schedules/:id", h.OpenSchedule)
	router.DELETE("/schedules/:id", h.DeleteSchedule)
	router.PATCH("/schedules/:id/cells", h.EditCells)
	router.PUT("/schedules/:id/matrix", h.SelectMatrix)
	router.PUT("/schedules/:id/period", h.SetPeriod)
	router.POST("/schedules/:id/save", h.SaveSchedule)
	router.GET("/schedules/:id/autosave", h.AutosaveState)
	router.GET("/schedules/:id/preferences", h.GetPreferences)
	router.PUT("/schedules/:id/preferences", h.SetPreferences)

	// 日历
	router.GET("/calendar/:year/:month", h.MonthCalendar)

	// 数据导出
	router.POST("/schedules/:id/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
