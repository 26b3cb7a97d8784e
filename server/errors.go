package server

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/chaos-io/matting/imagedata"
	"github.com/chaos-io/matting/imaging"
	"github.com/chaos-io/matting/picker"
	"github.com/chaos-io/matting/rembg"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	KindBadRequest        = "bad_request"
	KindInvalidPath       = "invalid_path"
	KindIO                = "io_error"
	KindForbidden         = "forbidden"
	KindForbiddenOrigin   = "forbidden_origin"
	KindUnsupportedMedia  = "unsupported_media_type"
	KindNetwork           = "network_error"
	KindDialogUnavailable = "dialog_unavailable"
	KindNotFound          = "not_found"
	KindUnprocessable     = "unprocessable_image"
	KindInternal          = "internal_error"
)

type errorResp struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, imagedata.ErrInvalidPath):
		return http.StatusBadRequest, KindInvalidPath
	case errors.Is(err, rembg.ErrForbidden):
		return http.StatusForbidden, KindForbidden
	case errors.Is(err, rembg.ErrNetwork):
		return http.StatusBadGateway, KindNetwork
	case errors.Is(err, imagedata.ErrIO):
		return http.StatusInternalServerError, KindIO
	case errors.Is(err, picker.ErrUnavailable):
		return http.StatusNotImplemented, KindDialogUnavailable
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound, KindNotFound
	case errors.Is(err, imaging.ErrNoSubject):
		return http.StatusUnprocessableEntity, KindUnprocessable
	default:
		return http.StatusInternalServerError, KindInternal
	}
}

func writeError(c *gin.Context, err error) {
	status, kind := classify(err)
	log.Error().Err(err).Str("kind", kind).Str("path", c.FullPath()).Msg("request failed")
	c.AbortWithStatusJSON(status, errorResp{Error: err.Error(), Kind: kind})
}

func writeBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResp{Error: err.Error(), Kind: KindBadRequest})
}
