// Package web gin server
package web

import (
	"net/http"

	gmw "github.com/Laisky/gin-middlewares/v7"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/notion-blog/internal/web/blog/controller"
	"github.com/Laisky/notion-blog/library/log"
)

// NewServer assembles the gin engine with the site routes mounted.
func NewServer(site *controller.Site) *gin.Engine {
	if !gconfig.Shared.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	server := gin.New()
	server.Use(
		gin.Recovery(),
		gmw.NewLoggerMiddleware(
			gmw.WithLogger(log.Logger.Named("gin")),
		),
	)

	server.Any("/health", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world")
	})

	site.RegisterRoutes(server)
	return server
}

// RunServer blocks serving HTTP on addr.
func RunServer(addr string, site *controller.Site) {
	server := NewServer(site)

	log.Logger.Info("listening on http", zap.String("addr", addr))
	log.Logger.Panic("httpServer exit", zap.Error(server.Run(addr)))
}
