package server

import (
	"context"
	"net/http"

	"github.com/chaos-io/matting/imagedata"
	"github.com/chaos-io/matting/rembg"
	"github.com/gin-gonic/gin"
)

type Picker interface {
	OpenImage(ctx context.Context) (imagedata.ImageResult, error)
	PickFolder(ctx context.Context) (string, error)
}

type Remover interface {
	rembg.Remover
	Account(ctx context.Context, apiKey string) (*rembg.AccountInfo, error)
}

type Options struct {
	// APIKey / SaveDir 请求中未携带时使用
	APIKey        string
	SaveDir       string
	ThumbnailSize int
	// AllowedOrigins 为空时只接受不带 Origin 的请求（CLI、本地进程）
	AllowedOrigins []string
}

type Server struct {
	picker  Picker
	remover Remover
	opts    Options
}

func New(picker Picker, remover Remover, opts Options) *Server {
	return &Server{
		picker:  picker,
		remover: remover,
		opts:    opts,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(LoggingMiddleware())
	router.Use(gin.CustomRecovery(HandlePanics()))
	router.Use(OriginGuard(s.opts.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("api")
	api.Use(RequireJSON())
	{
		api.POST("/open-image", s.openImage)
		api.POST("/matting-image", s.mattingImage)
		api.POST("/save-matting-image-path", s.saveMattingImagePath)
		api.GET("/thumbnail", s.thumbnail)
		api.GET("/account", s.account)
	}

	return router
}
