package card

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/fogleman/gg"
)

// Layer is a named region of a surface whose visibility can be toggled.
type Layer interface {
	Marker() string
	Visible() bool
	SetVisible(visible bool)
}

// Surface is a rendered node holding both card faces at once.
//
// Visibility changes made through Layer only reach the pixels after Commit returns; Snapshot
// samples the last committed frame.
type Surface interface {
	Find(marker string) (Layer, bool)
	Commit(ctx context.Context) error
	Snapshot(ctx context.Context) (image.Image, error)
}

var errNoFrame = errors.New("surface has not been rendered")

// Painter draws one layer onto the frame.
type Painter func(dc *gg.Context)

// Canvas is an in-memory Surface. Layers are painted in the order they were added,
// so later layers cover earlier ones.
type Canvas struct {
	width, height int

	mu     sync.Mutex
	layers []*canvasLayer
	frame  image.Image
}

// NewCanvas creates an empty canvas of the given pixel size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

// AddLayer appends a visible layer painted by paint.
func (c *Canvas) AddLayer(marker string, paint Painter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers = append(c.layers, &canvasLayer{canvas: c, marker: marker, visible: true, paint: paint})
}

// Bounds returns the canvas size.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

func (c *Canvas) Find(marker string) (Layer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.layers {
		if l.marker == marker {
			return l, true
		}
	}
	return nil, false
}

// Commit paints every visible layer into a new frame. It returns once the frame is complete.
func (c *Canvas) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	dc := gg.NewContext(c.width, c.height)
	for _, l := range c.layers {
		if l.visible {
			l.paint(dc)
		}
	}
	c.frame = dc.Image()
	return nil
}

func (c *Canvas) Snapshot(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		return nil, errNoFrame
	}
	return c.frame, nil
}

type canvasLayer struct {
	canvas  *Canvas
	marker  string
	visible bool
	paint   Painter
}

func (l *canvasLayer) Marker() string { return l.marker }

func (l *canvasLayer) Visible() bool {
	l.canvas.mu.Lock()
	defer l.canvas.mu.Unlock()
	return l.visible
}

func (l *canvasLayer) SetVisible(visible bool) {
	l.canvas.mu.Lock()
	defer l.canvas.mu.Unlock()
	l.visible = visible
}
