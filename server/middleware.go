package server

import (
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("handled request")
	}
}

func HandlePanics() gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		if err, ok := recovered.(error); ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResp{Error: err.Error(), Kind: KindInternal})
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// OriginGuard 拒绝 Origin 不在白名单中的请求，不带 Origin 的请求（CLI、curl）直接放行
func OriginGuard(allowed []string) gin.HandlerFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		if _, ok := set[origin]; !ok {
			log.Warn().Str("origin", origin).Str("path", c.Request.URL.Path).Msg("rejected cross-origin request")
			c.AbortWithStatusJSON(http.StatusForbidden, errorResp{
				Error: "origin " + origin + " is not allowed",
				Kind:  KindForbiddenOrigin,
			})
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
		if c.Request.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, X-Api-Key")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequireJSON POST 请求只接受 application/json
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
		if err != nil || mediaType != gin.MIMEJSON {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, errorResp{
				Error: "content type must be " + gin.MIMEJSON,
				Kind:  KindUnsupportedMedia,
			})
			return
		}
		c.Next()
	}
}
