package server

import (
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/arobertov/trans-schedule-sub000/internal/api/v1"
	"github.com/arobertov/trans-schedule-sub000/internal/config"
	"github.com/arobertov/trans-schedule-sub000/internal/roster"
	"github.com/arobertov/trans-schedule-sub000/internal/session"
	"github.com/arobertov/trans-schedule-sub000/internal/store"
)

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	store    *store.Store
	sessions *session.Registry
	v1       *v1.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化 SQLite Store
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "roster.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sessions := session.NewRegistry(
		sqliteStore,
		cfg.Schedule.AutosaveDebounce,
		cfg.Schedule.AutosaveDisplay,
		roster.ValidationColors{
			Single:    cfg.Colors.Single,
			Duplicate: cfg.Colors.Duplicate,
			Weekend:   cfg.Colors.Weekend,
		},
	)

	s := &Server{
		router:   gin.Default(),
		store:    sqliteStore,
		sessions: sessions,
		v1: v1.NewHandler(sqliteStore, sessions, v1.Options{
			DefaultP1End: cfg.Schedule.DefaultP1End,
			DefaultP2End: cfg.Schedule.DefaultP2End,
			DownloadTTL:  time.Duration(cfg.Schedule.DownloadTTLMinute) * time.Minute,
		}),
	}

	s.setupRoutes(devMode)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// V1 API 路由
	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}

	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Shutdown 关停：冲刷全部编辑会话并关闭数据库
func (s *Server) Shutdown() {
	s.sessions.CloseAll()
	if err := s.store.Close(); err != nil {
		log.Printf("close store: %v", err)
	}
}
