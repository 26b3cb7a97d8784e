package imagedata

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrIO             = errors.New("io error")
	ErrInvalidPath    = errors.New("invalid path")
	ErrInvalidDataURI = errors.New("invalid data uri")
)

// encoding 标准字母表，带填充
var encoding = base64.StdEncoding

// ImageResult 返回给界面的图片：data URI + 文件路径
// 两个字段要么都有值，要么都为空（未选择文件）
type ImageResult struct {
	ImageDataURI string `json:"image_data_uri"`
	ImagePath    string `json:"image_path"`
}

func Empty() ImageResult {
	return ImageResult{}
}

func (r ImageResult) IsEmpty() bool {
	return r.ImageDataURI == "" && r.ImagePath == ""
}

// Extension 返回不带点的扩展名，原样保留大小写（jpg 不会变成 jpeg）
func Extension(path string) (string, error) {
	base := filepath.Base(path)
	idx := strings.LastIndex(base, ".")
	if idx <= 0 || idx == len(base)-1 {
		return "", fmt.Errorf("%w: %q has no file extension", ErrInvalidPath, path)
	}
	return base[idx+1:], nil
}

func DataURI(ext string, data []byte) string {
	return "data:image/" + ext + ";base64," + encoding.EncodeToString(data)
}

// Encode 读取整个文件并转成 data URI，ImagePath 与入参一致
func Encode(path string) (ImageResult, error) {
	ext, err := Extension(path)
	if err != nil {
		return ImageResult{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ImageResult{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return ImageResult{
		ImageDataURI: DataURI(ext, data),
		ImagePath:    path,
	}, nil
}

// Decode 是 DataURI 的逆过程，返回子类型和原始字节
func Decode(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:image/")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data:image/ prefix", ErrInvalidDataURI)
	}
	ext, payload, ok := strings.Cut(rest, ";base64,")
	if !ok || ext == "" {
		return "", nil, fmt.Errorf("%w: missing ;base64, separator", ErrInvalidDataURI)
	}
	data, err := encoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
	}
	return ext, data, nil
}
