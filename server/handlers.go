package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chaos-io/matting/imaging"
	"github.com/chaos-io/matting/rembg"
	"github.com/gin-gonic/gin"
)

var errAPIKeyRequired = errors.New("api key is required")

type mattingImageReq struct {
	FilePath string `json:"file_path" binding:"required"`
	SavePath string `json:"save_path"`
	APIKey   string `json:"api_key"`
}

type folderResp struct {
	Path string `json:"path"`
}

func (s *Server) openImage(c *gin.Context) {
	res, err := s.picker.OpenImage(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) mattingImage(c *gin.Context) {
	var req mattingImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	apiKey := firstNonEmpty(req.APIKey, s.opts.APIKey)
	if apiKey == "" {
		writeBadRequest(c, errAPIKeyRequired)
		return
	}

	res, err := s.remover.Remove(c.Request.Context(), rembg.Request{
		SourcePath: req.FilePath,
		SaveDir:    firstNonEmpty(req.SavePath, s.opts.SaveDir),
		APIKey:     apiKey,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) saveMattingImagePath(c *gin.Context) {
	path, err := s.picker.PickFolder(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, folderResp{Path: path})
}

// thumbnail GET /api/thumbnail?path=...&max=256&crop=true
func (s *Server) thumbnail(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		writeBadRequest(c, errors.New("path is required"))
		return
	}

	maxSize := s.opts.ThumbnailSize
	if v := c.Query("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeBadRequest(c, errors.New("max must be a non-negative integer"))
			return
		}
		maxSize = n
	}
	crop, _ := strconv.ParseBool(c.DefaultQuery("crop", "false"))

	data, err := imaging.Thumbnail(path, imaging.ThumbnailOptions{MaxSize: maxSize, CropToSubject: crop})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func (s *Server) account(c *gin.Context) {
	apiKey := firstNonEmpty(c.GetHeader("X-Api-Key"), s.opts.APIKey)
	if apiKey == "" {
		writeBadRequest(c, errAPIKeyRequired)
		return
	}

	info, err := s.remover.Account(c.Request.Context(), apiKey)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
