package picker

import (
	"context"
	"errors"
	"fmt"

	"github.com/chaos-io/matting/imagedata"
	"github.com/rs/zerolog/log"
)

var (
	// ErrCancelled 用户关闭了对话框，不算失败
	ErrCancelled = errors.New("dialog cancelled")
	// ErrUnavailable 当前构建不带原生对话框
	ErrUnavailable = errors.New("native dialog not available in this build")
)

// ImageExtensions 选择图片时允许的扩展名
var ImageExtensions = []string{"png", "jpeg", "jpg"}

type FileOptions struct {
	Title      string
	FilterName string
	Extensions []string
	StartDir   string
}

type FolderOptions struct {
	Title    string
	StartDir string
}

//go:generate mockgen -destination=mocks/dialog.go -package=mocks . Dialog
type Dialog interface {
	PickFile(opts FileOptions) (string, error)
	PickFolder(opts FolderOptions) (string, error)
}

type Picker struct {
	dialog   Dialog
	startDir string
}

// NewPicker startDir 为空时从文件系统根目录开始
func NewPicker(d Dialog, startDir string) *Picker {
	if startDir == "" {
		startDir = rootDir()
	}
	return &Picker{dialog: d, startDir: startDir}
}

// OpenImage 选择一张图片并编码；取消时返回空结果
func (p *Picker) OpenImage(ctx context.Context) (imagedata.ImageResult, error) {
	path, err := await(ctx, func() (string, error) {
		return p.dialog.PickFile(FileOptions{
			Title:      "Select image",
			FilterName: "image",
			Extensions: ImageExtensions,
			StartDir:   p.startDir,
		})
	})
	if errors.Is(err, ErrCancelled) || (err == nil && path == "") {
		log.Debug().Msg("image selection cancelled")
		return imagedata.Empty(), nil
	}
	if err != nil {
		return imagedata.ImageResult{}, fmt.Errorf("pick file: %w", err)
	}

	log.Info().Str("path", path).Msg("image selected")
	return imagedata.Encode(path)
}

// PickFolder 选择保存目录；取消时返回空字符串
func (p *Picker) PickFolder(ctx context.Context) (string, error) {
	path, err := await(ctx, func() (string, error) {
		return p.dialog.PickFolder(FolderOptions{
			Title:    "Select save folder",
			StartDir: p.startDir,
		})
	})
	if errors.Is(err, ErrCancelled) {
		log.Debug().Msg("folder selection cancelled")
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("pick folder: %w", err)
	}

	log.Info().Str("path", path).Msg("folder selected")
	return path, nil
}

type pickResult struct {
	path string
	err  error
}

// await 在独立 goroutine 中运行对话框，调用方可以通过 ctx 放弃等待
// 原生对话框本身无法从外部关闭
func await(ctx context.Context, fn func() (string, error)) (string, error) {
	ch := make(chan pickResult, 1)
	go func() {
		path, err := fn()
		ch <- pickResult{path: path, err: err}
	}()

	select {
	case r := <-ch:
		return r.path, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
