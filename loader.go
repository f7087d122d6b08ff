package faceframe

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// LoadStatus is the state of an ImageSource.
type LoadStatus uint8

const (
	LoadPending LoadStatus = iota
	LoadReady
	LoadFailed
)

func (s LoadStatus) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	}
	return "unknown"
}

// ImageSource supplies an image that may still be loading. Poll is called
// from the update loop and must not block.
type ImageSource interface {
	Poll() (*ebiten.Image, LoadStatus)
}

type staticImage struct {
	img *ebiten.Image
}

func (s staticImage) Poll() (*ebiten.Image, LoadStatus) {
	if s.img == nil {
		return nil, LoadFailed
	}
	return s.img, LoadReady
}

// StaticImage wraps an already loaded image. A nil image reports failed.
func StaticImage(img *ebiten.Image) ImageSource {
	return staticImage{img: img}
}

type decodeResult struct {
	img image.Image
	err error
}

// PendingImage is an image decoded on a background goroutine. Poll it from
// the update goroutine only.
type PendingImage struct {
	Path string

	result chan decodeResult
	logger *zap.Logger

	img    *ebiten.Image
	status LoadStatus
	err    error
}

// LoadOption configures LoadImage.
type LoadOption func(*PendingImage)

// WithLoadLogger reports decode failures to logger.
func WithLoadLogger(logger *zap.Logger) LoadOption {
	return func(p *PendingImage) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// LoadImage starts decoding the PNG, JPEG or WebP file at path. Cancelling
// ctx before decoding finishes marks the image failed.
func LoadImage(ctx context.Context, path string, opts ...LoadOption) *PendingImage {
	p := &PendingImage{
		Path:   path,
		result: make(chan decodeResult, 1),
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(p)
	}
	go func() {
		img, err := decodeFile(path)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		p.result <- decodeResult{img: img, err: err}
	}()
	return p
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Poll returns the image once decoding has finished. The GPU image is
// created on the calling goroutine.
func (p *PendingImage) Poll() (*ebiten.Image, LoadStatus) {
	if p.status != LoadPending {
		return p.img, p.status
	}
	select {
	case r := <-p.result:
		p.finish(r)
	default:
	}
	return p.img, p.status
}

func (p *PendingImage) finish(r decodeResult) {
	if r.err != nil {
		p.err = r.err
		p.status = LoadFailed
		p.logger.Warn("image load failed", zap.String("path", p.Path), zap.Error(r.err))
		return
	}
	p.img = ebiten.NewImageFromImage(r.img)
	p.status = LoadReady
	p.logger.Debug("image loaded", zap.String("path", p.Path),
		zap.Int("width", r.img.Bounds().Dx()), zap.Int("height", r.img.Bounds().Dy()))
}

// Err returns the decode error once Poll has reported LoadFailed.
func (p *PendingImage) Err() error {
	return p.err
}
