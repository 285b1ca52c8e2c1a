package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Screenshot queues a capture of the next frame Draw renders. Each queued
// label produces one PNG in ScreenshotDir. Safe to call from Update or Draw.
func (r *Renderer) Screenshot(label string) {
	r.screenshotQueue = append(r.screenshotQueue, label)
}

// flushScreenshots reads the finished frame back once and writes it under
// every queued label.
func (r *Renderer) flushScreenshots(screen *ebiten.Image, frame uint64) {
	if len(r.screenshotQueue) == 0 {
		return
	}
	labels := r.screenshotQueue
	r.screenshotQueue = r.screenshotQueue[:0]

	if err := os.MkdirAll(r.ScreenshotDir, 0o755); err != nil {
		r.log.Error("screenshot dir", zap.String("dir", r.ScreenshotDir), zap.Error(err))
		return
	}

	size := screen.Bounds().Size()
	pixels := make([]byte, 4*size.X*size.Y)
	screen.ReadPixels(pixels)
	data, err := encodePNG(unpremultiply(pixels, size.X, size.Y))
	if err != nil {
		r.log.Error("screenshot encode", zap.Uint64("frame", frame), zap.Error(err))
		return
	}

	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		path := filepath.Join(r.ScreenshotDir, screenshotName(stamp, frame, label))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			r.log.Error("screenshot write", zap.String("path", path), zap.Error(err))
			continue
		}
		r.log.Info("screenshot saved", zap.String("path", path), zap.Uint64("frame", frame))
	}
}

// screenshotName builds "<stamp>_f<frame>_<label>.png".
func screenshotName(stamp string, frame uint64, label string) string {
	return fmt.Sprintf("%s_f%d_%s.png", stamp, frame, sanitizeLabel(label))
}

// unpremultiply converts ebiten's premultiplied RGBA read-back to NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pixels)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := i; c < i+3; c++ {
			img.Pix[c] = uint8(min(int(img.Pix[c])*255/a, 255))
		}
	}
	return img
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', replacing anything
// else with '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '.':
			return c
		}
		return '_'
	}, label)
}
