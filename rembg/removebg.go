package rembg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/chaos-io/matting/imagedata"
	"github.com/chaos-io/matting/imaging"
	nhttp "github.com/chaos-io/matting/util/http"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"
)

const (
	RemoveBGModel  = "remove.bg"
	DefaultBaseURL = "https://api.remove.bg/v1.0/"
	DefaultSize    = "auto"

	removeBGPath = "removebg"
	accountPath  = "account"
	apiKeyHeader = "X-Api-Key"

	// maxSuffix 同一毫秒内最多尝试的文件名数量
	maxSuffix = 1000
)

type RemoveBG struct {
	baseURL string
	size    string
	cli     nhttp.IClient
	now     func() time.Time
}

type Option func(*RemoveBG)

func WithBaseURL(u string) Option {
	return func(r *RemoveBG) {
		r.baseURL = u
	}
}

// WithSize 输出尺寸（auto / preview / full ...）
func WithSize(size string) Option {
	return func(r *RemoveBG) {
		r.size = size
	}
}

func WithClient(cli nhttp.IClient) Option {
	return func(r *RemoveBG) {
		r.cli = cli
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *RemoveBG) {
		r.now = now
	}
}

func NewRemoveBG(opts ...Option) *RemoveBG {
	r := &RemoveBG{
		baseURL: DefaultBaseURL,
		size:    DefaultSize,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	// 抠图请求不设整体超时，由调用方的 ctx 或 WithClient 控制
	if r.cli == nil {
		r.cli = nhttp.NewHTTPClient(nhttp.WithTimeout(0))
	}
	if r.size == "" {
		r.size = DefaultSize
	}
	return r
}

/*
	curl -H 'X-API-Key: INSERT_YOUR_API_KEY_HERE' \
	  -F 'image_file=@/path/to/file.jpg' \
	  -F 'size=auto' \
	  -f https://api.remove.bg/v1.0/removebg -o no-bg.png
*/
func (r *RemoveBG) Remove(ctx context.Context, req Request) (imagedata.ImageResult, error) {
	logger := log.With().
		Str("request_id", ksuid.New().String()).
		Str("model", RemoveBGModel).
		Str("source", req.SourcePath).
		Logger()
	logger.Info().Msg("start removing background")

	contents, err := os.ReadFile(req.SourcePath)
	if err != nil {
		return imagedata.ImageResult{}, fmt.Errorf("%w: read source: %w", imagedata.ErrIO, err)
	}

	ext, err := imagedata.Extension(req.SourcePath)
	if err != nil {
		return imagedata.ImageResult{}, err
	}
	if req.SaveDir == "" {
		return imagedata.ImageResult{}, fmt.Errorf("%w: save directory is empty", imagedata.ErrInvalidPath)
	}

	body, contentType, err := r.buildForm(contents, ext)
	if err != nil {
		return imagedata.ImageResult{}, err
	}

	var reqBody io.Reader = body
	if req.UploadProgress != nil {
		reqBody = io.TeeReader(body, req.UploadProgress)
	}

	var processed []byte
	reqParam := &nhttp.RequestParam{
		RequestURI: r.baseURL + removeBGPath,
		Method:     http.MethodPost,
		Header: map[string]string{
			"Content-Type": contentType,
			apiKeyHeader:   req.APIKey,
		},
		Body:     reqBody,
		Response: &processed,
	}
	if err := r.cli.DoHTTPRequest(ctx, reqParam); err != nil {
		logger.Error().Err(err).Msg("remove background request failed")
		return imagedata.ImageResult{}, classify(err)
	}
	logger.Debug().Int("bytes", len(processed)).Msg("get the response")

	if ok, err := imaging.HasTransparency(processed); err != nil {
		logger.Warn().Err(err).Msg("response is not a decodable image")
	} else if !ok {
		logger.Warn().Msg("response image has no transparent pixels")
	}

	savePath, err := r.save(req.SaveDir, ext, processed)
	if err != nil {
		return imagedata.ImageResult{}, err
	}
	logger.Info().Str("output", savePath).Msg("background removed")

	return imagedata.Encode(savePath)
}

// buildForm image_file=@file.<ext>, size=<size>
func (r *RemoveBG) buildForm(contents []byte, ext string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image_file", "file."+ext)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(contents); err != nil {
		return nil, "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.WriteField("size", r.size); err != nil {
		return nil, "", fmt.Errorf("write form field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

func classify(err error) error {
	var statusErr *nhttp.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status %d", ErrForbidden, statusErr.StatusCode)
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

// save 写入 <dir>/<毫秒时间戳>.<ext>，同名文件已存在时追加 -1、-2 ...
func (r *RemoveBG) save(dir, ext string, data []byte) (string, error) {
	f, err := r.createOutput(dir, ext)
	if err != nil {
		return "", fmt.Errorf("%w: create output: %w", imagedata.ErrIO, err)
	}

	path := f.Name()
	_, werr := f.Write(data)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: write output: %w", imagedata.ErrIO, err)
	}

	return path, nil
}

func (r *RemoveBG) createOutput(dir, ext string) (*os.File, error) {
	stamp := strconv.FormatInt(r.now().UnixMilli(), 10)
	name := stamp + "." + ext

	for i := 1; ; i++ {
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil || !errors.Is(err, fs.ErrExist) || i > maxSuffix {
			return f, err
		}
		name = fmt.Sprintf("%s-%d.%s", stamp, i, ext)
	}
}
