// Package input bridges document-wide pointer and resize notifications to
// the rotation controller and renderer. It normalizes but never smooths.
package input

import "sync"

// Document is the host page: viewport size and document-scoped listeners.
// Each Add call returns the function that removes that listener.
type Document interface {
	Viewport() (width, height int, deviceScale float64)
	AddPointerListener(fn func(x, y float64)) (remove func())
	AddResizeListener(fn func(width, height int, deviceScale float64)) (remove func())
}

// PointerSink receives pointer offsets from the viewport centre.
type PointerSink interface {
	SetPointer(x, y float64)
}

// ResizeSink receives viewport changes.
type ResizeSink interface {
	Resize(width, height int, deviceScale float64)
}

// Bridge holds the two listener subscriptions of a mounted layer.
type Bridge struct {
	sensitivity   float64
	pointer       PointerSink
	resize        ResizeSink
	width, height int

	removePointer func()
	removeResize  func()
	detach        sync.Once
}

// Attach subscribes to pointer and resize notifications on doc. Pointer
// positions become (pos - centre) * sensitivity per axis.
func Attach(doc Document, pointer PointerSink, resize ResizeSink, sensitivity float64) *Bridge {
	b := &Bridge{
		sensitivity: sensitivity,
		pointer:     pointer,
		resize:      resize,
	}
	b.width, b.height, _ = doc.Viewport()
	b.removePointer = doc.AddPointerListener(b.onPointer)
	b.removeResize = doc.AddResizeListener(b.onResize)
	return b
}

// Normalize maps a pointer position in a width x height viewport to the
// scaled offset from its centre.
func Normalize(x, y float64, width, height int, sensitivity float64) (float64, float64) {
	return (x - float64(width)/2) * sensitivity, (y - float64(height)/2) * sensitivity
}

func (b *Bridge) onPointer(x, y float64) {
	nx, ny := Normalize(x, y, b.width, b.height, b.sensitivity)
	b.pointer.SetPointer(nx, ny)
}

func (b *Bridge) onResize(width, height int, deviceScale float64) {
	b.width, b.height = width, height
	b.resize.Resize(width, height, deviceScale)
}

// Detach removes both listeners. Only the first call has an effect.
func (b *Bridge) Detach() {
	b.detach.Do(func() {
		b.removePointer()
		b.removeResize()
	})
}
