package server

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"gematria/internal/api/v1"
	"gematria/internal/config"
	"gematria/internal/gematria"
	"gematria/internal/store"
	"gematria/internal/wordlist"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP服务器
type Server struct {
	router  *gin.Engine
	store   *store.Store
	library *wordlist.Library
	v1      *v1.Handler
}

// NewServer 创建服务器：加载词表库、打开运行日志数据库并注册路由
func NewServer(cfg *config.AppConfig) (*Server, error) {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	library, err := wordlist.New(
		config.ResolvePath(cfg.Data.DictionariesDir),
		config.ResolvePath(cfg.Data.ThemesDir),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load word lists: %w", err)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	sqliteStore, err := store.New(filepath.Join(dataDir, "gematria.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	budget := gematria.Budget{
		MaxWords:    cfg.Generation.MaxWords,
		MaxPhrases:  cfg.Generation.MaxPhrases,
		MaxAttempts: cfg.Generation.MaxAttempts,
	}
	if budget.MaxWords <= 0 {
		log.Printf("max_words=%d 无效，使用默认值 %d", budget.MaxWords, gematria.DefaultBudget.MaxWords)
		budget.MaxWords = gematria.DefaultBudget.MaxWords
	}

	s := &Server{
		router:  gin.Default(),
		store:   sqliteStore,
		library: library,
		v1: v1.NewHandler(library,
			v1.WithStore(sqliteStore),
			v1.WithBudget(budget),
			v1.WithSeed(cfg.Generation.Seed),
		),
	}
	s.router.HandleMethodNotAllowed = true

	s.setupRoutes(devMode)

	log.Printf("已加载主题 %d 个: %v", len(library.ThemeNames()), library.ThemeNames())
	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Expose-Headers", "X-Run-Id")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	s.router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
	})

	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}

	if devMode {
		// 开发模式：前端由独立的开发服务器提供
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	// 生产模式：使用 embed 的静态页面
	sub, _ := fs.Sub(staticFiles, "dist")

	s.router.GET("/favicon.svg", func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "favicon.svg")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", data)
	})

	s.router.GET("/", func(c *gin.Context) {
		data, _ := fs.ReadFile(sub, "index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})
}

// Handler 返回底层 http.Handler（测试用）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放数据库连接
func (s *Server) Close() error {
	return s.store.Close()
}
