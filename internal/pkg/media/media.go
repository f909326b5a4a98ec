package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const (
	// SquareSize Instagram 正方形图片边长
	SquareSize = 1080
	// MaxImageBytes 单张图片大小上限
	MaxImageBytes = 10 << 20
	ContentType   = "image/jpeg"
)

var (
	ErrInvalidImage  = errors.New("无效的图片")
	ErrForbiddenHost = errors.New("不允许访问的地址")
)

// SquareJPEG 居中裁剪为 SquareSize 正方形并编码为 JPEG
func SquareJPEG(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(io.LimitReader(r, MaxImageBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidImage, err.Error())
	}
	squared := imaging.Fill(img, SquareSize, SquareSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, squared, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Fetcher 拉取远程图片
type Fetcher struct {
	client *resty.Client
}

func NewFetcher() *Fetcher {
	return newFetcher(false)
}

// newFetcher allowPrivate 仅供本地测试放开内网地址
func newFetcher(allowPrivate bool) *Fetcher {
	dialer := &net.Dialer{Timeout: 5 * time.Second}
	if !allowPrivate {
		dialer.Control = denyPrivate
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
	}
	client := resty.New().
		SetTransport(transport).
		SetTimeout(20*time.Second).
		SetRetryCount(2).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(3)).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "image/*")
	return &Fetcher{client: client}
}

// denyPrivate 在建立连接前检查解析后的地址，重定向同样受限
func denyPrivate(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsMulticast() {
		return errors.Wrap(ErrForbiddenHost, host)
	}
	return nil
}

// Fetch 下载图片内容，非 2xx、非 http(s) 或超过大小上限视为无效图片
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return nil, errors.Wrap(ErrInvalidImage, "仅支持 http/https 地址")
	}

	resp, err := f.client.R().SetContext(ctx).Get(u.String())
	if err != nil {
		return nil, errors.Wrap(ErrInvalidImage, err.Error())
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	if !resp.IsSuccess() {
		return nil, errors.Wrap(ErrInvalidImage, fmt.Sprintf("下载失败: %s", resp.Status()))
	}
	if resp.RawResponse.ContentLength > MaxImageBytes {
		return nil, errors.Wrap(ErrInvalidImage, "图片过大")
	}
	data, err := io.ReadAll(io.LimitReader(body, MaxImageBytes+1))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidImage, err.Error())
	}
	if len(data) > MaxImageBytes {
		return nil, errors.Wrap(ErrInvalidImage, "图片过大")
	}
	return data, nil
}
