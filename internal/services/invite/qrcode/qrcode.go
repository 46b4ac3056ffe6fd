// Package qrcode renders invitation URLs as PNG QR codes.
package qrcode

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	goqrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG width and height in pixels.
const DefaultSize = 300

// Options configures a Generator.
type Options struct {
	// Size is the image width in pixels. Zero uses DefaultSize.
	Size       int
	Foreground color.Color
	Background color.Color
	// CacheSize bounds the number of memoized PNGs. Zero disables caching.
	CacheSize int
}

// Generator encodes URLs with the highest error correction level and the
// standard quiet zone. Output only depends on the URL and the options.
type Generator struct {
	size       int
	foreground color.Color
	background color.Color
	cache      *lru.Cache[string, []byte]
}

// NewGenerator builds a Generator.
func NewGenerator(opts Options) (*Generator, error) {
	if opts.Size < 0 {
		return nil, fmt.Errorf("qr size must not be negative, got %d", opts.Size)
	}
	g := &Generator{
		size:       opts.Size,
		foreground: opts.Foreground,
		background: opts.Background,
	}
	if g.size == 0 {
		g.size = DefaultSize
	}
	if g.foreground == nil {
		g.foreground = color.Black
	}
	if g.background == nil {
		g.background = color.White
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, []byte](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create qr cache: %w", err)
		}
		g.cache = cache
	}
	return g, nil
}

// Generate returns PNG bytes encoding content.
func (g *Generator) Generate(content string) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("qr content is required")
	}
	if g.cache != nil {
		if png, ok := g.cache.Get(content); ok {
			return png, nil
		}
	}
	code, err := goqrcode.New(content, goqrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	code.ForegroundColor = g.foreground
	code.BackgroundColor = g.background
	png, err := code.PNG(g.size)
	if err != nil {
		return nil, fmt.Errorf("render qr png: %w", err)
	}
	if g.cache != nil {
		g.cache.Add(content, png)
	}
	return png, nil
}
