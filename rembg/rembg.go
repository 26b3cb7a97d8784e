package rembg

import (
	"context"
	"errors"
	"io"

	"github.com/chaos-io/matting/imagedata"
)

var (
	// ErrForbidden 服务端返回 403（API Key 无效或额度不足）
	ErrForbidden = errors.New("forbidden")
	// ErrNetwork 传输失败或其他非成功状态码
	ErrNetwork = errors.New("network error")
)

type Remover interface {
	Remove(ctx context.Context, req Request) (imagedata.ImageResult, error)
}

type Request struct {
	// SourcePath 待抠图的图片
	SourcePath string
	// SaveDir 结果保存目录
	SaveDir string
	APIKey  string

	// UploadProgress 非空时上传的字节会同步写入，用于进度条
	UploadProgress io.Writer
}
