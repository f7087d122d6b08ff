package faceframe

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func pollUntilSettled(t *testing.T, p *PendingImage) LoadStatus {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, st := p.Poll(); st != LoadPending {
			return st
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("image never settled")
	return LoadPending
}

func TestLoadImagePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "after.png")
	src := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	src.Set(1, 1, color.NRGBA{R: 200, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	p := LoadImage(context.Background(), path)
	if st := pollUntilSettled(t, p); st != LoadReady {
		t.Fatalf("status = %v, want ready (err %v)", st, p.Err())
	}
	img, _ := p.Poll()
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 8x4", b)
	}
}

func TestPendingImageSettlesOnce(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := LoadImage(context.Background(), filepath.Join(t.TempDir(), "missing.png"),
		WithLoadLogger(zap.New(core)))
	if st := pollUntilSettled(t, p); st != LoadFailed {
		t.Fatalf("status = %v, want failed", st)
	}
	for i := 0; i < 5; i++ {
		if img, st := p.Poll(); img != nil || st != LoadFailed {
			t.Fatalf("poll %d = (%v, %v), want (nil, failed)", i, img, st)
		}
	}
	if n := logs.FilterMessage("image load failed").Len(); n != 1 {
		t.Errorf("failure logged %d times, want 1", n)
	}
}

func TestLoadImageFailures(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.jpg")},
		{"corrupt", garbage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			p := LoadImage(context.Background(), tt.path, WithLoadLogger(zap.New(core)))
			if st := pollUntilSettled(t, p); st != LoadFailed {
				t.Fatalf("status = %v, want failed", st)
			}
			if p.Err() == nil {
				t.Error("Err should report the failure")
			}
			if img, _ := p.Poll(); img != nil {
				t.Error("failed image should be nil")
			}
			if logs.FilterMessage("image load failed").Len() != 1 {
				t.Errorf("expected one warning, got %d", logs.Len())
			}
		})
	}
}

func TestLoadImageCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := LoadImage(ctx, filepath.Join(t.TempDir(), "missing.png"))
	if st := pollUntilSettled(t, p); st != LoadFailed {
		t.Errorf("status = %v, want failed", st)
	}
}

func TestStaticImage(t *testing.T) {
	if _, st := StaticImage(nil).Poll(); st != LoadFailed {
		t.Errorf("nil static image = %v, want failed", st)
	}
}

func TestLoadStatusString(t *testing.T) {
	for st, want := range map[LoadStatus]string{
		LoadPending: "pending", LoadReady: "ready", LoadFailed: "failed", LoadStatus(9): "unknown",
	} {
		if got := st.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", st, got, want)
		}
	}
}
