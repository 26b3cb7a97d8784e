package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var ErrNoSubject = errors.New("no foreground detected")

type ThumbnailOptions struct {
	// MaxSize 最长边上限，<= 0 表示不缩放
	MaxSize int
	// CropToSubject 先按 alpha 裁掉透明边缘
	CropToSubject bool
}

// Thumbnail 生成 PNG 预览图，支持 png / jpeg / webp 输入
func Thumbnail(path string, opts ThumbnailOptions) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	img, err := decode(data)
	if err != nil {
		return nil, err
	}
	src := toNRGBA(img)

	if opts.CropToSubject && hasUsefulAlpha(src) {
		bbox, err := alphaBBox(src, 0)
		if err != nil {
			return nil, err
		}
		src = crop(src, bbox)
	}

	if opts.MaxSize > 0 {
		src = resizeWithinMax(src, opts.MaxSize)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// HasTransparency 图片是否包含非完全不透明的像素（即抠图是否生效）
func HasTransparency(data []byte) (bool, error) {
	img, err := decode(data)
	if err != nil {
		return false, err
	}
	return hasUsefulAlpha(toNRGBA(img)), nil
}

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// hasUsefulAlpha 只要存在非 255 的 alpha，就认为“已有抠图”
func hasUsefulAlpha(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			return true
		}
	}
	return false
}

// resizeWithinMax 缩放（最长边 <= maxSize）
func resizeWithinMax(img *image.NRGBA, maxSize int) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	longest := max(w, h)

	if longest <= maxSize {
		return img
	}

	scale := float64(maxSize) / float64(longest)
	newW := max(1, int(float64(w)*scale))
	newH := max(1, int(float64(h)*scale))

	resized := resize.Resize(uint(newW), uint(newH), img, resize.Lanczos3)
	return toNRGBA(resized)
}

// alphaBBox 把 alpha > threshold * 255 的像素当作主体，返回其外接矩形
func alphaBBox(img *image.NRGBA, threshold float64) (image.Rectangle, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	th := uint8(threshold * 255)

	minX, minY := w, h
	maxX, maxY := 0, 0
	found := false

	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			if img.Pix[row+x*4+3] > th {
				found = true
				minX, minY = min(minX, x), min(minY, y)
				maxX, maxY = max(maxX, x), max(maxY, y)
			}
		}
	}

	if !found {
		return image.Rectangle{}, ErrNoSubject
	}

	return image.Rect(minX, minY, maxX+1, maxY+1), nil
}

func crop(img *image.NRGBA, rect image.Rectangle) *image.NRGBA {
	rect = rect.Add(img.Bounds().Min).Intersect(img.Bounds())
	dst := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
	return dst
}

func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
